// Package directory holds the dealer set of the current load and swaps it
// atomically when a reload completes.
//
// Readers take a Snapshot and query it; a snapshot never changes after it is
// published, so queries need no locking.
package directory

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/dealerlocator/internal/dealer"
	"github.com/JonMunkholm/dealerlocator/internal/ingest"
)

// Snapshot is the published state of one load.
type Snapshot struct {
	LoadID     uuid.UUID
	LoadedAt   time.Time
	Source     string
	Repository *dealer.Repository
	Stats      ingest.Stats

	// Err is set when the load failed. The repository is then empty, or the
	// previous good one when the directory keeps data on failure.
	Err error
}

// Ready reports whether the snapshot comes from a successful load.
func (s *Snapshot) Ready() bool {
	return s.Err == nil && !s.LoadedAt.IsZero()
}

// Query runs the list query over the snapshot.
func (s *Snapshot) Query(p dealer.Params) []dealer.Dealer {
	return dealer.Query(s.Repository.All(), p)
}

// Coverage aggregates the dealers admitted by cat over the canonical regions.
// The search text does not narrow coverage.
func (s *Snapshot) Coverage(cat dealer.Category) dealer.Coverage {
	return dealer.AggregateCanonical(dealer.FilterCategory(s.Repository.All(), cat))
}

// Lookup resolves a dealer by id.
func (s *Snapshot) Lookup(id any) (dealer.Dealer, bool) {
	return s.Repository.Lookup(id)
}

// Ingester is the load step, satisfied by *ingest.Pipeline.
type Ingester interface {
	Ingest(ctx context.Context, src ingest.Source) (*ingest.Result, error)
}

// Options configures a Directory.
type Options struct {
	// KeepOnFailure keeps serving the previous good set when a reload fails.
	// When false a failed load publishes an empty set.
	KeepOnFailure bool

	Logger *slog.Logger
}

// Directory publishes snapshots loaded from one source.
type Directory struct {
	source   ingest.Source
	ingester Ingester
	opts     Options
	logger   *slog.Logger

	current atomic.Pointer[Snapshot]

	// loadMu serializes loads so publications follow completion order.
	loadMu sync.Mutex
	// lastGood is the most recent successful snapshot. Guarded by loadMu.
	lastGood *Snapshot

	now func() time.Time
}

// New returns a directory that has not loaded yet. Until the first Load
// completes it serves an empty set.
func New(src ingest.Source, ing Ingester, opts Options) *Directory {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	d := &Directory{
		source:   src,
		ingester: ing,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
	d.current.Store(&Snapshot{
		Source:     src.Name(),
		Repository: dealer.Empty(),
	})
	return d
}

// Snapshot returns the currently published snapshot.
func (d *Directory) Snapshot() *Snapshot {
	return d.current.Load()
}

// Load runs one ingestion and publishes its result. The returned error is the
// load failure, if any; the directory stays queryable either way.
func (d *Directory) Load(ctx context.Context) error {
	d.loadMu.Lock()
	defer d.loadMu.Unlock()

	loadID := uuid.New()
	log := d.logger.With("load_id", loadID.String())
	log.Info("load started", "source", d.source.Name())

	res, err := d.ingester.Ingest(ctx, d.source)
	if err != nil {
		next := &Snapshot{
			LoadID:     loadID,
			LoadedAt:   d.now(),
			Source:     d.source.Name(),
			Repository: dealer.Empty(),
			Err:        err,
		}
		if prev := d.lastGood; d.opts.KeepOnFailure && prev != nil {
			next.Repository = prev.Repository
			next.Stats = prev.Stats
			log.Warn("load failed, keeping previous dealer set",
				"error", err,
				"previous_load_id", prev.LoadID.String(),
				"dealers", prev.Repository.Len(),
			)
		} else {
			log.Error("load failed, serving empty dealer set", "error", err)
		}
		d.current.Store(next)
		return err
	}

	snap := &Snapshot{
		LoadID:     loadID,
		LoadedAt:   d.now(),
		Source:     d.source.Name(),
		Repository: res.Repository,
		Stats:      res.Stats,
	}
	d.lastGood = snap
	d.current.Store(snap)
	log.Info("dealer set published", "dealers", res.Repository.Len())
	return nil
}

// Query runs p against the current snapshot.
func (d *Directory) Query(p dealer.Params) []dealer.Dealer {
	return d.Snapshot().Query(p)
}

// Coverage aggregates the current snapshot for cat.
func (d *Directory) Coverage(cat dealer.Category) dealer.Coverage {
	return d.Snapshot().Coverage(cat)
}

// Lookup resolves id against the current snapshot.
func (d *Directory) Lookup(id any) (dealer.Dealer, bool) {
	return d.Snapshot().Lookup(id)
}
