package catalog

import (
	"context"

	"github.com/vmunix/boxoffice/internal/tmdb"
)

//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks github.com/vmunix/boxoffice/internal/catalog Provider

// Provider is the upstream catalog (TMDB).
type Provider interface {
	DiscoverByYear(ctx context.Context, year, page int) (*tmdb.DiscoverPage, error)
	GetMovie(ctx context.Context, tmdbID int64) (*tmdb.Movie, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
}

var _ Provider = (*tmdb.Client)(nil)
