package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vmunix/boxoffice/internal/tmdb"
)

var errUpstream = errors.New("upstream unavailable")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedToday(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
}

func result(id int64, date string) tmdb.DiscoverResult {
	return tmdb.DiscoverResult{ID: id, Title: fmt.Sprintf("Movie %d", id), ReleaseDate: date}
}

func page(n, total int, results ...tmdb.DiscoverResult) *tmdb.DiscoverPage {
	return &tmdb.DiscoverPage{Page: n, TotalPages: total, Results: results}
}

// fakeProvider serves fixed discover pages and revenues and counts calls.
type fakeProvider struct {
	mu       sync.Mutex
	pages    map[int][]tmdb.DiscoverResult // page number -> results
	revenue  map[int64]int64
	failIDs  map[int64]bool
	gate     chan struct{} // when set, DiscoverByYear blocks until closed
	delay    time.Duration
	// afterPage runs once a discover page has been served.
	afterPage func()
	discover atomic.Int64
	details  atomic.Int64
	inFlight atomic.Int64
	maxSeen  atomic.Int64
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		pages:   make(map[int][]tmdb.DiscoverResult),
		revenue: make(map[int64]int64),
		failIDs: make(map[int64]bool),
	}
}

func (f *fakeProvider) setRevenue(id, revenue int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revenue[id] = revenue
}

func (f *fakeProvider) setPage(n int, results ...tmdb.DiscoverResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[n] = results
}

func (f *fakeProvider) DiscoverByYear(ctx context.Context, year, n int) (*tmdb.DiscoverPage, error) {
	f.discover.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	p := page(n, 0, f.pages[n]...)
	f.mu.Unlock()
	if f.afterPage != nil {
		f.afterPage()
	}
	return p, nil
}

func (f *fakeProvider) GetMovie(ctx context.Context, id int64) (*tmdb.Movie, error) {
	f.details.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if cur <= seen || f.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[id] {
		return nil, errUpstream
	}
	return &tmdb.Movie{ID: id, Revenue: f.revenue[id]}, nil
}

func (f *fakeProvider) Genres(context.Context) ([]tmdb.Genre, error) {
	return []tmdb.Genre{{ID: 28, Name: "Action"}}, nil
}
