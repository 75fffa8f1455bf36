package v1

import (
	"time"

	"github.com/vmunix/boxoffice/internal/catalog"
	"github.com/vmunix/boxoffice/internal/daily"
	"github.com/vmunix/boxoffice/internal/tmdb"
)

// errorResponse is the body of every error.
type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// upstreamDetails describes a failed provider call.
type upstreamDetails struct {
	Message    string `json:"message"`
	Year       int    `json:"year,omitempty"`
	Page       int    `json:"page,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Body       string `json:"body,omitempty"`
}

// yearResponse is the response for GET /movies for past and future years.
type yearResponse struct {
	Year      int             `json:"year"`
	Kind      catalog.Kind    `json:"kind"`
	Results   []catalog.Movie `json:"results"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// currentYearResponse is the response for GET /movies for the current year.
type currentYearResponse struct {
	Year      int             `json:"year"`
	Kind      catalog.Kind    `json:"kind"`
	Released  []catalog.Movie `json:"released"`
	Upcoming  []catalog.Movie `json:"upcoming"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// genresResponse is the response for GET /genres.
type genresResponse struct {
	Genres []tmdb.Genre `json:"genres"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status      string               `json:"status"`
	Version     string               `json:"version"`
	Today       string               `json:"today"`
	CurrentYear int                  `json:"current_year"`
	Years       []catalog.YearStatus `json:"years"`
	Daily       *daily.Status        `json:"daily,omitempty"`
}

// refreshResponse is the response for POST /refresh.
type refreshResponse struct {
	Ran   bool         `json:"ran"`
	Daily daily.Status `json:"daily"`
}
