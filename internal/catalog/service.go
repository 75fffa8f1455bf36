package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vmunix/boxoffice/internal/cache"
	"github.com/vmunix/boxoffice/internal/tmdb"
)

// Supported year range for queries.
const (
	MinYear = 1874
	MaxYear = 2200
)

// YearData is the cached value for one year: deduplicated records in fetch
// order, with revenue attached where enriched. It is never mutated after
// being stored; updates store a new YearData.
type YearData struct {
	Year   int
	Movies []Movie
}

// YearStatus describes one cached year.
type YearStatus struct {
	Year        int       `json:"year"`
	Movies      int       `json:"movies"`
	LastUpdated time.Time `json:"last_updated"`
	Fresh       bool      `json:"fresh"`
}

// Config configures a Service.
type Config struct {
	CurrentYearPages int
	PastYearPages    int
	TopN             int
	Concurrency      int
	TTL              time.Duration
	Today            func() time.Time // current date; defaults to the local date
	Now              func() time.Time // cache clock; defaults to time.Now
}

// Service is the read-through year cache over the catalog provider.
type Service struct {
	provider   Provider
	aggregator *Aggregator
	enricher   *Enricher
	store      *cache.Store[int, *YearData]
	sf         singleflight.Group
	today      func() time.Time
	log        *slog.Logger
}

// NewService creates a catalog service.
func NewService(provider Provider, cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	today := cfg.Today
	if today == nil {
		today = Today(time.Local)
	}
	storeOpts := []cache.Option{cache.WithName("years")}
	if cfg.Now != nil {
		storeOpts = append(storeOpts, cache.WithClock(cfg.Now))
	}
	return &Service{
		provider:   provider,
		aggregator: NewAggregator(provider, cfg.CurrentYearPages, cfg.PastYearPages, log),
		enricher:   NewEnricher(provider, cfg.Concurrency, cfg.TopN, log),
		store:      cache.New[int, *YearData](cfg.TTL, storeOpts...),
		today:      today,
		log:        log,
	}
}

// Today returns the service's notion of the current date.
func (s *Service) Today() time.Time {
	return s.today()
}

// CurrentYear returns the year of Today.
func (s *Service) CurrentYear() int {
	return s.today().Year()
}

// Year returns the classified view of year, fetching it on a miss or when stale.
func (s *Service) Year(ctx context.Context, year int) (*YearView, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	data, updated, err := s.load(ctx, year)
	if err != nil {
		return nil, err
	}
	view := Classify(data.Movies, year, s.today(), s.enricher.TopN())
	view.UpdatedAt = updated
	return &view, nil
}

// Movies returns all cached records for year, fetching on a miss or when stale.
// The returned slice is a copy.
func (s *Service) Movies(ctx context.Context, year int) ([]Movie, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	data, _, err := s.load(ctx, year)
	if err != nil {
		return nil, err
	}
	return slices.Clone(data.Movies), nil
}

// Genres passes through the provider's genre catalog.
func (s *Service) Genres(ctx context.Context) ([]tmdb.Genre, error) {
	genres, err := s.provider.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("genres: %w", err)
	}
	return genres, nil
}

// Reload refetches year and replaces its entry. Revenue already known for
// records that are still listed is carried over until RefreshRevenue runs.
func (s *Service) Reload(ctx context.Context, year int) error {
	_, err, _ := s.sf.Do("reload:"+strconv.Itoa(year), func() (any, error) {
		movies, err := s.aggregator.FetchYear(ctx, year, s.CurrentYear())
		if err != nil {
			return nil, err
		}

		if entry, ok := s.store.Get(year); ok {
			known := make(map[int64]int64, len(entry.Data.Movies))
			for _, m := range entry.Data.Movies {
				if m.Revenue != nil {
					known[m.ID] = *m.Revenue
				}
			}
			for i, m := range movies {
				if r, ok := known[m.ID]; ok {
					movies[i] = m.WithRevenue(r)
				}
			}
		}

		s.store.Put(year, &YearData{Year: year, Movies: movies})
		s.log.Info("year reloaded", "year", year, "movies", len(movies))
		return nil, nil
	})
	return err
}

// RefreshRevenue re-runs the revenue lookup for the enrichment candidates of
// year and stores the updated copy. Readers see either the old or the new
// collection, never a partially updated one.
func (s *Service) RefreshRevenue(ctx context.Context, year int) error {
	entry, ok := s.store.Get(year)
	if !ok {
		_, _, err := s.load(ctx, year)
		return err
	}

	movies, n, err := s.attachRevenue(ctx, slices.Clone(entry.Data.Movies), year)
	if err != nil {
		return err
	}
	s.store.Put(year, &YearData{Year: year, Movies: movies})
	s.log.Info("revenue refreshed", "year", year, "candidates", n)
	return nil
}

// attachRevenue enriches the candidates of year in place and reports how
// many there were. A cancelled ctx turns every lookup into a zero, so the
// result is discarded with an error instead.
func (s *Service) attachRevenue(ctx context.Context, movies []Movie, year int) ([]Movie, int, error) {
	idx := EnrichmentCandidates(movies, year, s.today())
	if len(idx) == 0 {
		return movies, 0, nil
	}
	candidates := make([]Movie, len(idx))
	for i, j := range idx {
		candidates[i] = movies[j]
	}
	for i, m := range s.enricher.Attach(ctx, candidates) {
		movies[idx[i]] = m
	}
	if err := ctx.Err(); err != nil {
		return nil, len(idx), fmt.Errorf("revenue for %d: %w", year, err)
	}
	return movies, len(idx), nil
}

// CachedYears reports the cached years in ascending order.
func (s *Service) CachedYears() []YearStatus {
	entries := s.store.Entries()
	out := make([]YearStatus, 0, len(entries))
	for _, e := range entries {
		out = append(out, YearStatus{
			Year:        e.Key,
			Movies:      len(e.Data.Movies),
			LastUpdated: e.LastUpdated,
			Fresh:       s.store.IsFresh(e),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

type loadResult struct {
	data    *YearData
	updated time.Time
}

// load returns the fresh entry for year or fetches, enriches and stores it.
// Concurrent misses for one year share a single fetch. The fetch runs
// detached from the caller, so a caller that gives up neither aborts it for
// the others nor leaves a half-enriched entry behind.
func (s *Service) load(ctx context.Context, year int) (*YearData, time.Time, error) {
	if entry, ok := s.store.Get(year); ok && s.store.IsFresh(entry) {
		s.log.Debug("cache hit", "year", year)
		return entry.Data, entry.LastUpdated, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(strconv.Itoa(year), func() (any, error) {
		s.log.Debug("cache miss, fetching", "year", year)
		start := time.Now()

		movies, err := s.aggregator.FetchYear(fetchCtx, year, s.CurrentYear())
		if err != nil {
			return nil, err
		}

		movies, _, err = s.attachRevenue(fetchCtx, movies, year)
		if err != nil {
			return nil, err
		}

		data := &YearData{Year: year, Movies: movies}
		s.store.Put(year, data)
		entry, _ := s.store.Get(year)

		s.log.Info("year loaded", "year", year, "movies", len(movies),
			"duration_ms", time.Since(start).Milliseconds())
		return loadResult{data: data, updated: entry.LastUpdated}, nil
	})

	select {
	case <-ctx.Done():
		return nil, time.Time{}, fmt.Errorf("year %d: %w", year, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, time.Time{}, res.Err
		}
		if res.Shared {
			s.log.Debug("joined in-flight fetch", "year", year)
		}
		lr := res.Val.(loadResult)
		return lr.data, lr.updated, nil
	}
}

func validateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	return nil
}
