package ratings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/vmunix/boxoffice/internal/omdb"
	"github.com/vmunix/boxoffice/pkg/title"
)

//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks github.com/vmunix/boxoffice/internal/ratings Provider

// ErrNotFound means the provider has no record for the title.
var ErrNotFound = errors.New("rating not found")

// Provider is the upstream ratings source (OMDb).
type Provider interface {
	GetByID(ctx context.Context, imdbID string) (*omdb.Movie, error)
	GetByTitle(ctx context.Context, title string, year int) (*omdb.Movie, error)
	Search(ctx context.Context, query string, year int) ([]omdb.SearchResult, error)
}

var _ Provider = (*omdb.Client)(nil)

// Resolver looks up ratings through the cache.
type Resolver struct {
	provider  Provider
	store     *Store
	overrides title.Overrides
	sf        singleflight.Group
	log       *slog.Logger
}

// NewResolver creates a resolver. overrides maps catalog titles to the
// titles the provider knows them by.
func NewResolver(provider Provider, store *Store, overrides map[string]string, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		provider:  provider,
		store:     store,
		overrides: title.Overrides(overrides),
		log:       log,
	}
}

// Key returns the cache key for a lookup. An external id takes precedence
// over the normalized title and year.
func (r *Resolver) Key(t string, year int, externalID string) string {
	if id := strings.TrimSpace(externalID); id != "" {
		return id
	}
	return title.Clean(r.overrides.Apply(t)) + ":" + strconv.Itoa(year)
}

// Resolve returns the rating for a title. It never fails: when the lookup
// fails it returns an uncached Unavailable record so a later call can retry.
func (r *Resolver) Resolve(ctx context.Context, t string, year int, externalID string) *Rating {
	rating, err := r.Lookup(ctx, t, year, externalID)
	if err != nil {
		r.log.Warn("rating unavailable", "title", t, "year", year, "imdb_id", externalID, "error", err)
		return Unavailable(t, year)
	}
	return rating
}

// Lookup returns the cached rating or fetches and caches it.
func (r *Resolver) Lookup(ctx context.Context, t string, year int, externalID string) (*Rating, error) {
	key := r.Key(t, year, externalID)
	if rating, ok := r.store.Get(ctx, key); ok {
		r.log.Debug("rating cache hit", "key", key)
		return rating, nil
	}

	v, err, _ := r.sf.Do(key, func() (any, error) {
		m, err := r.fetch(ctx, r.overrides.Apply(t), year, strings.TrimSpace(externalID))
		if err != nil {
			return nil, err
		}
		rating := FromOMDb(m)
		if err := r.store.Put(ctx, key, rating); err != nil {
			r.log.Error("rating cache write failed", "key", key, "error", err)
		}
		r.log.Debug("rating fetched", "key", key, "imdb_id", rating.IMDBID)
		return rating, nil
	})
	if err != nil {
		return nil, fmt.Errorf("rating %q (%d): %w", t, year, err)
	}
	return v.(*Rating), nil
}

func (r *Resolver) fetch(ctx context.Context, t string, year int, externalID string) (*omdb.Movie, error) {
	if externalID != "" {
		m, err := r.provider.GetByID(ctx, externalID)
		if errors.Is(err, omdb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return m, err
	}

	m, err := r.provider.GetByTitle(ctx, t, year)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, omdb.ErrNotFound) {
		return nil, err
	}
	return r.searchFallback(ctx, t, year)
}

// searchFallback picks the closest search hit when the exact title query
// finds nothing.
func (r *Resolver) searchFallback(ctx context.Context, t string, year int) (*omdb.Movie, error) {
	results, err := r.provider.Search(ctx, t, year)
	if errors.Is(err, omdb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	candidates := make([]string, len(results))
	for i, res := range results {
		candidates[i] = res.Title
	}
	match := title.Match(t, candidates)
	if match.Index < 0 || match.Confidence < title.ConfidenceMedium {
		return nil, ErrNotFound
	}

	r.log.Debug("rating search fallback matched", "title", t, "match", match.Title,
		"score", match.Score, "confidence", match.Confidence)
	return r.provider.GetByID(ctx, results[match.Index].IMDBID)
}
