package directory

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/dealerlocator/internal/dealer"
	"github.com/JonMunkholm/dealerlocator/internal/ingest"
)

const header = "S. No.,Dealer Name,Location,State/Country,Contact,AI Dealer,API Dealer\n"

// swapFetcher serves whatever body or error is currently set.
type swapFetcher struct {
	mu   sync.Mutex
	body string
	err  error
}

func (f *swapFetcher) Name() string { return "memory" }

func (f *swapFetcher) Fetch(context.Context) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func (f *swapFetcher) set(body string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.body, f.err = body, err
}

func newDirectory(body string, keep bool) (*Directory, *swapFetcher) {
	f := &swapFetcher{body: body}
	d := New(ingest.NewCSVSource(f, 0), ingest.NewPipeline(nil), Options{KeepOnFailure: keep})
	return d, f
}

func TestDirectory_EmptyBeforeLoad(t *testing.T) {
	d, _ := newDirectory(header, false)

	snap := d.Snapshot()
	assert.False(t, snap.Ready())
	assert.Equal(t, uuid.Nil, snap.LoadID)
	assert.Empty(t, snap.Query(dealer.DefaultParams()))
	assert.Equal(t, 0, snap.Coverage(dealer.CategoryAll).Total())
}

func TestDirectory_LoadPublishes(t *testing.T) {
	body := header +
		"1,Acme Motors,Kochi,Kerala,0484-1,TRUE,\n" +
		"2,Beta Cars,Pune,Maharashtra,020-2,,TRUE\n" +
		"3,Gamma Autos,Kollam,Kerala,0474-3,TRUE,TRUE\n"
	d, _ := newDirectory(body, false)

	require.NoError(t, d.Load(context.Background()))

	snap := d.Snapshot()
	assert.True(t, snap.Ready())
	assert.NotEqual(t, uuid.Nil, snap.LoadID)
	assert.Equal(t, "memory", snap.Source)
	assert.Equal(t, 3, snap.Stats.Admitted)

	got := snap.Query(dealer.Params{Search: "kerala", Category: dealer.CategoryAll, Sort: dealer.SortByName, Direction: dealer.Ascending})
	require.Len(t, got, 2)
	assert.Equal(t, "Acme Motors", got[0].Name)
	assert.Equal(t, "Gamma Autos", got[1].Name)

	cov := snap.Coverage(dealer.CategoryAI)
	assert.Equal(t, 2, cov.Count("Kerala"))
	assert.Equal(t, 0, cov.Count("Maharashtra"))

	dl, ok := snap.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "Beta Cars", dl.Name)
}

func TestDirectory_FailedLoadServesEmpty(t *testing.T) {
	d, f := newDirectory(header+"1,Acme,Kochi,Kerala,,,\n", false)
	require.NoError(t, d.Load(context.Background()))
	first := d.Snapshot()

	f.set("", errors.New("connection reset"))
	err := d.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ingest.ErrSourceUnavailable))

	snap := d.Snapshot()
	assert.False(t, snap.Ready())
	assert.Equal(t, 0, snap.Repository.Len())
	assert.NotEqual(t, first.LoadID, snap.LoadID)

	// The earlier snapshot is untouched.
	assert.Equal(t, 1, first.Repository.Len())
}

func TestDirectory_KeepOnFailure(t *testing.T) {
	d, f := newDirectory(header+"1,Acme,Kochi,Kerala,,,\n", true)
	require.NoError(t, d.Load(context.Background()))
	good := d.Snapshot()

	f.set("", errors.New("timeout"))
	require.Error(t, d.Load(context.Background()))

	snap := d.Snapshot()
	assert.Error(t, snap.Err)
	assert.Same(t, good.Repository, snap.Repository)
	assert.Equal(t, good.Stats, snap.Stats)
}

func TestDirectory_KeepOnFailureAcrossRepeatedFailures(t *testing.T) {
	d, f := newDirectory(header+"1,Acme,Kochi,Kerala,,,\n", true)
	require.NoError(t, d.Load(context.Background()))
	good := d.Snapshot()

	f.set("", errors.New("timeout"))
	for i := 0; i < 3; i++ {
		require.Error(t, d.Load(context.Background()))

		snap := d.Snapshot()
		assert.Error(t, snap.Err)
		assert.Same(t, good.Repository, snap.Repository, "failure %d", i+1)
		assert.Equal(t, 1, snap.Repository.Len())
	}

	// A later success replaces the kept set.
	f.set(header+"1,Acme,Kochi,Kerala,,,\n2,Beta,Pune,Maharashtra,,,\n", nil)
	require.NoError(t, d.Load(context.Background()))
	assert.True(t, d.Snapshot().Ready())
	assert.Equal(t, 2, d.Snapshot().Repository.Len())
}

func TestDirectory_KeepOnFailureWithoutPriorLoad(t *testing.T) {
	d, f := newDirectory("", true)
	f.set("", errors.New("unreachable"))

	require.Error(t, d.Load(context.Background()))
	assert.Equal(t, 0, d.Snapshot().Repository.Len())
}

func TestDirectory_MalformedSource(t *testing.T) {
	d, _ := newDirectory("", false)

	err := d.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ingest.ErrMalformedSource))
	assert.True(t, errors.Is(d.Snapshot().Err, ingest.ErrMalformedSource))
}

func TestDirectory_ConcurrentReadersDuringReload(t *testing.T) {
	d, f := newDirectory(header+"1,Acme,Kochi,Kerala,,,\n", false)
	require.NoError(t, d.Load(context.Background()))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := d.Snapshot()
				n := len(snap.Query(dealer.DefaultParams()))
				if n != snap.Repository.Len() {
					t.Errorf("query returned %d of %d dealers", n, snap.Repository.Len())
					return
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			f.set(header+"1,Acme,Kochi,Kerala,,,\n2,Beta,Pune,Maharashtra,,,\n", nil)
		} else {
			f.set(header+"1,Acme,Kochi,Kerala,,,\n", nil)
		}
		require.NoError(t, d.Load(context.Background()))
	}
	close(stop)
	wg.Wait()
}

type countingIngester struct {
	calls atomic.Int32
}

func (c *countingIngester) Ingest(context.Context, ingest.Source) (*ingest.Result, error) {
	c.calls.Add(1)
	return &ingest.Result{Repository: dealer.Empty()}, nil
}

func TestStartReloader(t *testing.T) {
	ing := &countingIngester{}
	d := New(ingest.NewCSVSource(&swapFetcher{}, 0), ing, Options{})

	r, err := StartReloader(d, 20*time.Millisecond, time.Second)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return ing.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, r.Stop())

	after := ing.calls.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, ing.calls.Load())
	assert.True(t, d.Snapshot().Ready())
}

func TestStartReloader_ZeroIntervalDisables(t *testing.T) {
	ing := &countingIngester{}
	d := New(ingest.NewCSVSource(&swapFetcher{}, 0), ing, Options{})

	r, err := StartReloader(d, 0, 0)
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, ing.calls.Load())
	assert.NoError(t, r.Stop())
}

func TestStartReloader_RejectsNegativeInterval(t *testing.T) {
	d, _ := newDirectory(header, false)
	_, err := StartReloader(d, -time.Second, 0)
	assert.Error(t, err)
}
