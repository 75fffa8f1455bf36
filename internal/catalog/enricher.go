package catalog

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/boxoffice/internal/metrics"
)

// Enricher attaches revenue to records with bounded concurrent lookups.
type Enricher struct {
	provider    Provider
	concurrency int
	topN        int
	log         *slog.Logger
}

// NewEnricher creates an enricher issuing at most concurrency lookups at once
// and ranking the top topN records.
func NewEnricher(provider Provider, concurrency, topN int, log *slog.Logger) *Enricher {
	if concurrency <= 0 {
		concurrency = 8
	}
	if topN <= 0 {
		topN = 15
	}
	if log == nil {
		log = slog.Default()
	}
	return &Enricher{
		provider:    provider,
		concurrency: concurrency,
		topN:        topN,
		log:         log,
	}
}

// Enrich looks up revenue for every record and returns the top grossing ones.
func (e *Enricher) Enrich(ctx context.Context, movies []Movie) []Movie {
	return TopGrossing(e.Attach(ctx, movies), e.topN)
}

// Attach returns a copy of movies, in the same order, with Revenue set on
// every record. A failed lookup sets that record's revenue to zero and does
// not affect the others.
func (e *Enricher) Attach(ctx context.Context, movies []Movie) []Movie {
	out := slices.Clone(movies)
	if len(out) == 0 {
		return out
	}
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	var failed atomic.Int64
	for i := range out {
		g.Go(func() error {
			revenue, err := e.revenue(ctx, out[i])
			if err != nil {
				failed.Add(1)
			}
			out[i] = out[i].WithRevenue(revenue)
			return nil
		})
	}
	_ = g.Wait()

	e.log.Debug("revenue attached", "records", len(out), "failed", failed.Load(),
		"duration_ms", time.Since(start).Milliseconds())
	return out
}

func (e *Enricher) revenue(ctx context.Context, m Movie) (int64, error) {
	details, err := e.provider.GetMovie(ctx, m.ID)
	if err != nil {
		metrics.EnrichFailures.Inc()
		e.log.Warn("revenue lookup failed", "tmdb_id", m.ID, "title", m.Title, "error", err)
		return 0, err
	}
	return details.Revenue, nil
}

// TopN returns the ranking limit.
func (e *Enricher) TopN() int {
	return e.topN
}
