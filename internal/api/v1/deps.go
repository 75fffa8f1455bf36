package v1

import (
	"context"
	"errors"
	"time"

	"github.com/vmunix/boxoffice/internal/calendar"
	"github.com/vmunix/boxoffice/internal/catalog"
	"github.com/vmunix/boxoffice/internal/daily"
	"github.com/vmunix/boxoffice/internal/ratings"
	"github.com/vmunix/boxoffice/internal/tmdb"
)

//go:generate mockgen -destination=mocks/mock_deps.go -package=mocks github.com/vmunix/boxoffice/internal/api/v1 Catalog,RatingResolver

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Catalog serves year listings from the cache.
type Catalog interface {
	Today() time.Time
	CurrentYear() int
	Year(ctx context.Context, year int) (*catalog.YearView, error)
	Movies(ctx context.Context, year int) ([]catalog.Movie, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
	CachedYears() []catalog.YearStatus
}

// RatingResolver returns a rating or the unavailable placeholder.
type RatingResolver interface {
	Resolve(ctx context.Context, title string, year int, externalID string) *ratings.Rating
}

// DailyScheduler guards the once-per-day refresh.
type DailyScheduler interface {
	Trigger(ctx context.Context, reason string) bool
	Status() daily.Status
}

var (
	_ Catalog        = (*catalog.Service)(nil)
	_ RatingResolver = (*ratings.Resolver)(nil)
	_ DailyScheduler = (*daily.Scheduler)(nil)
)

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Catalog  Catalog
	Calendar *calendar.Computer

	// Optional dependencies (nil if not configured)
	Ratings   RatingResolver
	Scheduler DailyScheduler
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Catalog == nil {
		return errors.New("catalog is required")
	}
	if d.Calendar == nil {
		return errors.New("calendar is required")
	}
	return nil
}
