// Package v1 implements the native REST API.
package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vmunix/boxoffice/internal/catalog"
	"github.com/vmunix/boxoffice/internal/daily"
	"github.com/vmunix/boxoffice/internal/tmdb"
)

// Config holds API server configuration.
type Config struct {
	Version string
	Logger  *slog.Logger
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
	log  *slog.Logger
}

// New creates a new v1 API server.
func New(deps ServerDeps, cfg Config) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingDependency, err)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{deps: deps, cfg: cfg, log: log}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Catalog
	mux.HandleFunc("GET /api/v1/movies", s.listMovies)
	mux.HandleFunc("GET /api/v1/genres", s.listGenres)
	mux.HandleFunc("GET /api/v1/calendar/{year}/{month}", s.getCalendar)

	// Ratings
	mux.HandleFunc("GET /api/v1/ratings", s.requireRatings(s.getRating))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
	mux.HandleFunc("POST /api/v1/refresh", s.requireScheduler(s.refresh))
	mux.Handle("GET /metrics", promhttp.Handler())
}

func writeError(w http.ResponseWriter, code int, errCode, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode, Details: details})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeCatalogError maps catalog failures to responses.
func (s *Server) writeCatalogError(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, catalog.ErrInvalidYear) {
		writeError(w, http.StatusBadRequest, "INVALID_YEAR", err.Error(), nil)
		return
	}

	details := upstreamDetails{Message: err.Error()}
	var fetchErr *catalog.UpstreamFetchError
	if errors.As(err, &fetchErr) {
		details.Year = fetchErr.Year
		details.Page = fetchErr.Page
		details.Message = fetchErr.Err.Error()
	}
	var apiErr *tmdb.APIError
	if errors.As(err, &apiErr) {
		details.StatusCode = apiErr.StatusCode
		details.Body = apiErr.Body
	}
	s.log.Error(strings.ToLower(message), "error", err)
	writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", message, details)
}

// pathInt extracts an integer from the URL path.
func pathInt(r *http.Request, name string) (int, error) {
	val := r.PathValue(name)
	if val == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.Atoi(val)
}

// queryYear extracts an optional year from the query string.
// ok is false when the parameter is present but not a number.
func queryYear(r *http.Request, name string, defaultVal int) (int, bool) {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		return defaultVal, true
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return i, true
}

// triggerLazy starts the daily refresh in the background on the first
// current-year request of the day.
func (s *Server) triggerLazy(r *http.Request) {
	if s.deps.Scheduler == nil {
		return
	}
	if s.deps.Scheduler.Status().State != daily.StatePending {
		return
	}
	ctx := context.WithoutCancel(r.Context())
	go s.deps.Scheduler.Trigger(ctx, daily.ReasonLazy)
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	current := s.deps.Catalog.CurrentYear()
	year, ok := queryYear(r, "year", current)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_YEAR", "year must be a number", nil)
		return
	}

	view, err := s.deps.Catalog.Year(r.Context(), year)
	if err != nil {
		s.writeCatalogError(w, "Failed to fetch movies", err)
		return
	}

	if view.Kind == catalog.KindCurrent {
		s.triggerLazy(r)
		writeJSON(w, http.StatusOK, currentYearResponse{
			Year:      view.Year,
			Kind:      view.Kind,
			Released:  nonNil(view.Released),
			Upcoming:  nonNil(view.Upcoming),
			UpdatedAt: view.UpdatedAt,
		})
		return
	}

	writeJSON(w, http.StatusOK, yearResponse{
		Year:      view.Year,
		Kind:      view.Kind,
		Results:   nonNil(view.Results),
		UpdatedAt: view.UpdatedAt,
	})
}

func (s *Server) listGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.deps.Catalog.Genres(r.Context())
	if err != nil {
		s.writeCatalogError(w, "Failed to fetch genres", err)
		return
	}
	if genres == nil {
		genres = []tmdb.Genre{}
	}
	writeJSON(w, http.StatusOK, genresResponse{Genres: genres})
}

func (s *Server) getRating(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title := strings.TrimSpace(q.Get("title"))
	imdbID := strings.TrimSpace(q.Get("imdb_id"))
	if title == "" && imdbID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_TITLE", "title or imdb_id is required", nil)
		return
	}

	year, ok := queryYear(r, "year", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_YEAR", "year must be a number", nil)
		return
	}

	writeJSON(w, http.StatusOK, s.deps.Ratings.Resolve(r.Context(), title, year, imdbID))
}

func (s *Server) getCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := pathInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_YEAR", err.Error(), nil)
		return
	}
	m, err := pathInt(r, "month")
	if err != nil || m < 1 || m > 12 {
		writeError(w, http.StatusBadRequest, "INVALID_MONTH", "month must be 1-12", nil)
		return
	}
	month := time.Month(m)

	ctx := r.Context()
	current, err := s.deps.Catalog.Movies(ctx, year)
	if err != nil {
		s.writeCatalogError(w, "Failed to fetch movies", err)
		return
	}

	previous := current
	if month == time.January && year-1 >= catalog.MinYear {
		previous, err = s.deps.Catalog.Movies(ctx, year-1)
		if err != nil {
			s.writeCatalogError(w, "Failed to fetch movies", err)
			return
		}
	}

	if year == s.deps.Catalog.CurrentYear() {
		s.triggerLazy(r)
	}
	view := s.deps.Calendar.Month(year, month, current, previous, s.deps.Catalog.Today())
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:      "ok",
		Version:     s.cfg.Version,
		Today:       s.deps.Catalog.Today().Format(time.DateOnly),
		CurrentYear: s.deps.Catalog.CurrentYear(),
		Years:       s.deps.Catalog.CachedYears(),
	}
	if s.deps.Scheduler != nil {
		st := s.deps.Scheduler.Status()
		resp.Daily = &st
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	ran := s.deps.Scheduler.Trigger(context.WithoutCancel(r.Context()), daily.ReasonManual)
	writeJSON(w, http.StatusOK, refreshResponse{Ran: ran, Daily: s.deps.Scheduler.Status()})
}

func nonNil(movies []catalog.Movie) []catalog.Movie {
	if movies == nil {
		return []catalog.Movie{}
	}
	return movies
}
