// Package ingest loads the dealer sheet from its source and builds the
// repository for one load.
//
// A load is a fetch, a parse, per-row normalization and a repository build,
// in that order. Load failures are reported as *Error; rejected rows are
// counted in Stats and otherwise ignored.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/JonMunkholm/dealerlocator/internal/dealer"
)

// Stats summarizes one load.
type Stats struct {
	Rows           int      `json:"rows"`
	Admitted       int      `json:"admitted"`
	Rejected       int      `json:"rejected"`
	MissingName    int      `json:"missingName"`
	MissingState   int      `json:"missingState"`
	Duplicates     []string `json:"duplicates,omitempty"`
	Unmatched      int      `json:"unmatched"`
	UnmatchedNames []string `json:"unmatchedStates,omitempty"`
	MissingColumns []string `json:"missingColumns,omitempty"`
}

// Result is a successful load.
type Result struct {
	Repository *dealer.Repository
	Stats      Stats
}

// Pipeline runs loads. The zero value logs to slog.Default().
type Pipeline struct {
	Logger *slog.Logger
}

// NewPipeline returns a pipeline logging to logger.
func NewPipeline(logger *slog.Logger) *Pipeline {
	return &Pipeline{Logger: logger}
}

func (p *Pipeline) logger() *slog.Logger {
	if p == nil || p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// Ingest runs one load from src.
//
// On failure no repository is returned and the error is an *Error. Zero
// admitted rows is a success with an empty repository.
func (p *Pipeline) Ingest(ctx context.Context, src Source) (*Result, error) {
	log := p.logger().With("source", src.Name())
	start := time.Now()

	table, err := src.Read(ctx)
	if err != nil {
		var ie *Error
		if !errors.As(err, &ie) {
			err = unavailable(src.Name(), err)
		}
		log.Error("ingestion failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	stats := Stats{Rows: len(table.Records)}

	stats.MissingColumns = missingColumns(table)
	if len(stats.MissingColumns) > 0 {
		log.Warn("source header is missing columns", "missing", stats.MissingColumns)
	}

	rows := table.Rows()
	dealers, outcomes := dealer.NormalizeAll(rows)
	for i, out := range outcomes {
		if out.Admitted {
			continue
		}
		stats.Rejected++
		switch out.Reason {
		case dealer.RejectMissingName:
			stats.MissingName++
		case dealer.RejectMissingState:
			stats.MissingState++
		}
		// Line 1 is the header.
		log.Debug("row rejected", "line", i+2, "reason", out.Reason.String())
	}
	stats.Admitted = len(dealers)

	repo := dealer.NewRepository(dealers)

	stats.Duplicates = repo.Duplicates()
	if len(stats.Duplicates) > 0 {
		log.Warn("duplicate dealer ids, lookups resolve to the first row", "ids", stats.Duplicates)
	}

	stats.UnmatchedNames = unmatchedStates(dealers)
	stats.Unmatched = dealer.AggregateCanonical(dealers).Unmatched
	if stats.Unmatched > 0 {
		log.Warn("dealers outside the canonical region list are not counted in coverage",
			"dealers", stats.Unmatched,
			"states", stats.UnmatchedNames,
		)
	}

	log.Info("ingestion completed",
		"rows", stats.Rows,
		"admitted", stats.Admitted,
		"rejected", stats.Rejected,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Result{Repository: repo, Stats: stats}, nil
}

// missingColumns lists the sheet labels absent from the header, in sheet order.
func missingColumns(t *Table) []string {
	have := sets.NewString(t.Header...)
	var missing []string
	for _, col := range dealer.Columns() {
		if !have.Has(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// unmatchedStates returns the distinct states that are not canonical regions, sorted.
func unmatchedStates(dealers []dealer.Dealer) []string {
	canonical := sets.NewString(dealer.Regions()...)
	unknown := sets.NewString()
	for _, d := range dealers {
		if !canonical.Has(d.State) {
			unknown.Insert(d.State)
		}
	}
	if unknown.Len() == 0 {
		return nil
	}
	return unknown.List()
}
