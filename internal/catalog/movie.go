// Package catalog aggregates, enriches and caches movie listings per release year.
package catalog

import (
	"time"

	"github.com/vmunix/boxoffice/internal/tmdb"
)

const dateLayout = "2006-01-02"

// Movie is one catalog record. Revenue is nil until enriched; zero means
// known zero or unknown.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date,omitempty"` // "2024-03-01"
	Popularity  float64 `json:"popularity"`
	PosterPath  string  `json:"poster_path,omitempty"`
	Overview    string  `json:"overview,omitempty"`
	GenreIDs    []int   `json:"genre_ids"`
	Revenue     *int64  `json:"revenue,omitempty"`
}

// FromDiscover converts a discover result into a Movie.
func FromDiscover(r tmdb.DiscoverResult) Movie {
	return Movie{
		ID:          r.ID,
		Title:       r.Title,
		ReleaseDate: r.ReleaseDate,
		Popularity:  r.Popularity,
		PosterPath:  r.PosterPath,
		Overview:    r.Overview,
		GenreIDs:    r.GenreIDs,
	}
}

// Released returns the release date at UTC midnight.
// ok is false when the record has no parseable date.
func (m Movie) Released() (time.Time, bool) {
	if m.ReleaseDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, m.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RevenueValue returns the revenue, treating "not enriched" as zero.
func (m Movie) RevenueValue() int64 {
	if m.Revenue == nil {
		return 0
	}
	return *m.Revenue
}

// WithRevenue returns a copy of m carrying revenue.
func (m Movie) WithRevenue(revenue int64) Movie {
	m.Revenue = &revenue
	return m
}

// PosterURL returns the full poster image URL.
// Size can be: w92, w154, w185, w342, w500, w780, original
func (m Movie) PosterURL(size string) string {
	if m.PosterPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/" + size + m.PosterPath
}

// Dedup drops records whose ID was already seen, keeping first occurrences
// in their original order.
func Dedup(movies []Movie) []Movie {
	seen := make(map[int64]struct{}, len(movies))
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

// DateOf truncates t to its calendar date (in t's location) and returns it at UTC midnight,
// so it compares directly with Released.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns a function reporting the current date in loc.
func Today(loc *time.Location) func() time.Time {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time {
		return DateOf(time.Now().In(loc))
	}
}
