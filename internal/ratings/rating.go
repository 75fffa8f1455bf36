// Package ratings resolves audience ratings for catalog titles and caches them
// for the life of the process.
package ratings

import (
	"strconv"

	"github.com/vmunix/boxoffice/internal/omdb"
)

const (
	notAvailable = "Not available"
	fallbackPlot = "Plot information is not available for this title."
)

// Rating is a resolved ratings payload. Field names follow the ratings
// provider so clients can consume either source unchanged.
type Rating struct {
	Title      string        `json:"Title"`
	Year       string        `json:"Year"`
	Rated      string        `json:"Rated,omitempty"`
	Released   string        `json:"Released,omitempty"`
	Runtime    string        `json:"Runtime"`
	Genre      string        `json:"Genre"`
	Director   string        `json:"Director"`
	Writer     string        `json:"Writer"`
	Actors     string        `json:"Actors"`
	Plot       string        `json:"Plot"`
	Awards     string        `json:"Awards"`
	Poster     string        `json:"Poster,omitempty"`
	IMDBRating *string       `json:"imdbRating"`
	IMDBID     string        `json:"imdbID,omitempty"`
	Ratings    []omdb.Source `json:"Ratings,omitempty"`

	// Unavailable marks a synthetic record returned when the lookup failed.
	Unavailable bool `json:"unavailable,omitempty"`
}

// FromOMDb converts a provider record. An "N/A" rating becomes nil.
func FromOMDb(m *omdb.Movie) *Rating {
	r := &Rating{
		Title:    m.Title,
		Year:     m.Year,
		Rated:    m.Rated,
		Released: m.Released,
		Runtime:  m.Runtime,
		Genre:    m.Genre,
		Director: m.Director,
		Writer:   m.Writer,
		Actors:   m.Actors,
		Plot:     m.Plot,
		Awards:   m.Awards,
		Poster:   m.Poster,
		IMDBID:   m.IMDBID,
		Ratings:  m.Ratings,
	}
	if m.IMDBRating != "" && m.IMDBRating != "N/A" {
		v := m.IMDBRating
		r.IMDBRating = &v
	}
	return r
}

// Unavailable returns the placeholder served when no rating could be found.
func Unavailable(title string, year int) *Rating {
	y := ""
	if year > 0 {
		y = strconv.Itoa(year)
	}
	return &Rating{
		Title:       title,
		Year:        y,
		Runtime:     notAvailable,
		Genre:       notAvailable,
		Director:    notAvailable,
		Writer:      notAvailable,
		Actors:      notAvailable,
		Plot:        fallbackPlot,
		Awards:      notAvailable,
		Unavailable: true,
	}
}
