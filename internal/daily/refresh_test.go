package daily

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/boxoffice/internal/catalog"
	"github.com/vmunix/boxoffice/internal/ratings"
)

type fakeCatalog struct {
	today     time.Time
	movies    []catalog.Movie
	reloadErr error
	calls     []string
}

func (f *fakeCatalog) Today() time.Time  { return f.today }
func (f *fakeCatalog) CurrentYear() int { return f.today.Year() }

func (f *fakeCatalog) Reload(_ context.Context, year int) error {
	f.calls = append(f.calls, "reload")
	return f.reloadErr
}

func (f *fakeCatalog) RefreshRevenue(_ context.Context, year int) error {
	f.calls = append(f.calls, "revenue")
	return nil
}

func (f *fakeCatalog) Movies(_ context.Context, year int) ([]catalog.Movie, error) {
	f.calls = append(f.calls, "movies")
	return f.movies, nil
}

type fakeRatings struct {
	mu     sync.Mutex
	looked []string
	fail   map[string]bool
}

func (f *fakeRatings) Lookup(_ context.Context, title string, year int, _ string) (*ratings.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.looked = append(f.looked, title)
	if f.fail[title] {
		return nil, errors.New("lookup failed")
	}
	return &ratings.Rating{Title: title}, nil
}

func TestInWindow(t *testing.T) {
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	movies := []catalog.Movie{
		{ID: 1, ReleaseDate: "2026-09-19"}, // exactly 30 days before
		{ID: 2, ReleaseDate: "2026-09-18"},
		{ID: 3, ReleaseDate: "2026-11-18"}, // exactly 30 days after
		{ID: 4, ReleaseDate: "2026-11-19"},
		{ID: 5},
		{ID: 6, ReleaseDate: "2026-10-19"},
	}

	got := InWindow(movies, today, 30*24*time.Hour)
	var ids []int64
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int64{1, 3, 6}, ids)
}

func TestRefresher_Refresh(t *testing.T) {
	cat := &fakeCatalog{
		today: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		movies: []catalog.Movie{
			{ID: 1, Title: "Near", ReleaseDate: "2026-10-10"},
			{ID: 2, Title: "Broken", ReleaseDate: "2026-10-25"},
			{ID: 3, Title: "Far", ReleaseDate: "2026-01-01"},
		},
	}
	rat := &fakeRatings{fail: map[string]bool{"Broken": true}}

	r := NewRefresher(cat, rat, 0, 2, quietLogger())
	require.NoError(t, r.Refresh(context.Background()))

	assert.Equal(t, []string{"reload", "revenue", "movies"}, cat.calls)
	assert.ElementsMatch(t, []string{"Near", "Broken"}, rat.looked)
}

func TestRefresher_Refresh_ReloadFailureStops(t *testing.T) {
	cat := &fakeCatalog{
		today:     time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		reloadErr: errors.New("tmdb down"),
	}
	rat := &fakeRatings{}

	r := NewRefresher(cat, rat, 0, 0, quietLogger())
	err := r.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reload 2026")
	assert.Equal(t, []string{"reload"}, cat.calls)
	assert.Empty(t, rat.looked)
}

func TestRefresher_Prewarm_IsolatesFailures(t *testing.T) {
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	rat := &fakeRatings{fail: map[string]bool{"B": true}}
	r := NewRefresher(&fakeCatalog{today: today}, rat, 0, 2, quietLogger())

	warmed, failed := r.Prewarm(context.Background(), []catalog.Movie{
		{ID: 1, Title: "A", ReleaseDate: "2026-10-01"},
		{ID: 2, Title: "B", ReleaseDate: "2026-10-02"},
		{ID: 3, Title: "C", ReleaseDate: "2026-10-03"},
	}, today)

	assert.Equal(t, 2, warmed)
	assert.Equal(t, 1, failed)
}
