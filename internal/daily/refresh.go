package daily

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/boxoffice/internal/catalog"
	"github.com/vmunix/boxoffice/internal/metrics"
	"github.com/vmunix/boxoffice/internal/ratings"
)

// Catalog is the part of the catalog service the refresh drives.
type Catalog interface {
	Today() time.Time
	CurrentYear() int
	Reload(ctx context.Context, year int) error
	RefreshRevenue(ctx context.Context, year int) error
	Movies(ctx context.Context, year int) ([]catalog.Movie, error)
}

// RatingLookup fetches and caches one rating.
type RatingLookup interface {
	Lookup(ctx context.Context, title string, year int, externalID string) (*ratings.Rating, error)
}

var (
	_ Catalog      = (*catalog.Service)(nil)
	_ RatingLookup = (*ratings.Resolver)(nil)
)

// Refresher is the daily refresh body for the current year.
type Refresher struct {
	catalog     Catalog
	ratings     RatingLookup
	window      time.Duration
	concurrency int
	log         *slog.Logger
}

// NewRefresher creates a refresher that pre-warms ratings for records released
// within window of today, at most concurrency lookups at a time.
func NewRefresher(c Catalog, r RatingLookup, window time.Duration, concurrency int, log *slog.Logger) *Refresher {
	if window <= 0 {
		window = 30 * 24 * time.Hour
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	if log == nil {
		log = slog.Default()
	}
	return &Refresher{
		catalog:     c,
		ratings:     r,
		window:      window,
		concurrency: concurrency,
		log:         log,
	}
}

// Refresh reloads the current year, refreshes its revenue and pre-warms
// ratings around today. Only the reload and revenue steps can fail it.
func (r *Refresher) Refresh(ctx context.Context) error {
	year := r.catalog.CurrentYear()

	if err := r.catalog.Reload(ctx, year); err != nil {
		return fmt.Errorf("reload %d: %w", year, err)
	}
	if err := r.catalog.RefreshRevenue(ctx, year); err != nil {
		return fmt.Errorf("refresh revenue %d: %w", year, err)
	}

	movies, err := r.catalog.Movies(ctx, year)
	if err != nil {
		return fmt.Errorf("list %d: %w", year, err)
	}
	warmed, failed := r.Prewarm(ctx, movies, r.catalog.Today())
	r.log.Info("ratings pre-warmed", "year", year, "warmed", warmed, "failed", failed)
	return nil
}

// Prewarm looks up ratings for the records in the window around today.
// Failures are logged and skipped.
func (r *Refresher) Prewarm(ctx context.Context, movies []catalog.Movie, today time.Time) (warmed, failed int) {
	candidates := InWindow(movies, today, r.window)
	if len(candidates) == 0 {
		return 0, 0
	}

	var g errgroup.Group
	g.SetLimit(r.concurrency)

	var ok, bad atomic.Int64
	for _, m := range candidates {
		g.Go(func() error {
			d, _ := m.Released()
			if _, err := r.ratings.Lookup(ctx, m.Title, d.Year(), ""); err != nil {
				bad.Add(1)
				metrics.RatingPrewarm.WithLabelValues("error").Inc()
				r.log.Warn("rating pre-warm failed", "tmdb_id", m.ID, "title", m.Title, "error", err)
				return nil
			}
			ok.Add(1)
			metrics.RatingPrewarm.WithLabelValues("success").Inc()
			return nil
		})
	}
	_ = g.Wait()
	return int(ok.Load()), int(bad.Load())
}

// InWindow returns the dated records released within window before or after today.
func InWindow(movies []catalog.Movie, today time.Time, window time.Duration) []catalog.Movie {
	today = catalog.DateOf(today)
	var out []catalog.Movie
	for _, m := range movies {
		d, ok := m.Released()
		if !ok {
			continue
		}
		diff := d.Sub(today)
		if diff < 0 {
			diff = -diff
		}
		if diff <= window {
			out = append(out, m)
		}
	}
	return out
}
