package v1

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/boxoffice/internal/api/v1/mocks"
	"github.com/vmunix/boxoffice/internal/calendar"
	"github.com/vmunix/boxoffice/internal/catalog"
	"github.com/vmunix/boxoffice/internal/daily"
	"github.com/vmunix/boxoffice/internal/ratings"
	"github.com/vmunix/boxoffice/internal/tmdb"
)

var testToday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

// fakeScheduler records triggers. It runs at most once, like the real one.
type fakeScheduler struct {
	mu        sync.Mutex
	state     daily.State
	reasons   []string
	ctxErrs   []error
	triggered chan string
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{state: daily.StatePending, triggered: make(chan string, 10)}
}

func (f *fakeScheduler) Trigger(ctx context.Context, reason string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reasons = append(f.reasons, reason)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.triggered <- reason
	if f.state != daily.StatePending {
		return false
	}
	f.state = daily.StateDone
	return true
}

func (f *fakeScheduler) Status() daily.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return daily.Status{Date: testToday.Format(time.DateOnly), State: f.state}
}

type testEnv struct {
	catalog   *mocks.MockCatalog
	ratings   *mocks.MockRatingResolver
	scheduler *fakeScheduler
	mux       *http.ServeMux
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	env := &testEnv{
		catalog:   mocks.NewMockCatalog(ctrl),
		ratings:   mocks.NewMockRatingResolver(ctrl),
		scheduler: newFakeScheduler(),
		mux:       http.NewServeMux(),
	}

	srv, err := New(ServerDeps{
		Catalog:   env.catalog,
		Calendar:  calendar.NewComputer(14, 5, []string{"red", "blue"}),
		Ratings:   env.ratings,
		Scheduler: env.scheduler,
	}, Config{Version: "test", Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	srv.RegisterRoutes(env.mux)
	return env
}

func (e *testEnv) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestNew_MissingDependency(t *testing.T) {
	_, err := New(ServerDeps{}, Config{})
	assert.True(t, errors.Is(err, ErrMissingDependency))
}

func TestListMovies_PastYear(t *testing.T) {
	env := setupTestServer(t)
	env.catalog.EXPECT().CurrentYear().Return(2026)
	env.catalog.EXPECT().Year(gomock.Any(), 2019).Return(&catalog.YearView{
		Year:    2019,
		Kind:    catalog.KindPast,
		Results: []catalog.Movie{catalog.Movie{ID: 1, Title: "Big"}.WithRevenue(100)},
	}, nil)

	w := env.do(t, http.MethodGet, "/api/v1/movies?year=2019")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[map[string]any](t, w)
	assert.Equal(t, "past", resp["kind"])
	assert.Len(t, resp["results"], 1)
	assert.NotContains(t, resp, "released")
	assert.Empty(t, env.scheduler.reasons, "past years do not trigger the daily refresh")
}

func TestListMovies_CurrentYearDefaultAndLazyTrigger(t *testing.T) {
	env := setupTestServer(t)
	env.catalog.EXPECT().CurrentYear().Return(2026)
	env.catalog.EXPECT().Year(gomock.Any(), 2026).Return(&catalog.YearView{
		Year:     2026,
		Kind:     catalog.KindCurrent,
		Upcoming: []catalog.Movie{{ID: 2, ReleaseDate: "2026-12-01"}},
	}, nil)

	w := env.do(t, http.MethodGet, "/api/v1/movies")
	require.Equal(t, http.StatusOK, w.Code)

	var resp currentYearResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2026, resp.Year)
	assert.Empty(t, resp.Released)
	assert.NotNil(t, resp.Released)
	assert.Len(t, resp.Upcoming, 1)

	select {
	case reason := <-env.scheduler.triggered:
		assert.Equal(t, daily.ReasonLazy, reason)
	case <-time.After(time.Second):
		t.Fatal("lazy trigger did not fire")
	}
}

func TestListMovies_InvalidYear(t *testing.T) {
	env := setupTestServer(t)
	env.catalog.EXPECT().CurrentYear().Return(2026).Times(2)
	env.catalog.EXPECT().Year(gomock.Any(), 99).Return(nil, catalog.ErrInvalidYear)

	w := env.do(t, http.MethodGet, "/api/v1/movies?year=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/movies?year=99")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_YEAR", decode[errorResponse](t, w).Code)
}

func TestListMovies_UpstreamFailure(t *testing.T) {
	env := setupTestServer(t)
	env.catalog.EXPECT().CurrentYear().Return(2026)
	env.catalog.EXPECT().Year(gomock.Any(), 2020).Return(nil, &catalog.UpstreamFetchError{
		Year: 2020,
		Page: 3,
		Err:  &tmdb.APIError{StatusCode: 401, Status: "401 Unauthorized", Body: `{"status_message":"Invalid API key"}`},
	})

	w := env.do(t, http.MethodGet, "/api/v1/movies?year=2020")
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp struct {
		Error   string          `json:"error"`
		Code    string          `json:"code"`
		Details upstreamDetails `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to fetch movies", resp.Error)
	assert.Equal(t, "UPSTREAM_ERROR", resp.Code)
	assert.Equal(t, 3, resp.Details.Page)
	assert.Equal(t, 401, resp.Details.StatusCode)
	assert.Contains(t, resp.Details.Body, "Invalid API key")
}

func TestListGenres(t *testing.T) {
	env := setupTestServer(t)
	env.catalog.EXPECT().Genres(gomock.Any()).Return([]tmdb.Genre{{ID: 28, Name: "Action"}}, nil)

	w := env.do(t, http.MethodGet, "/api/v1/genres")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []tmdb.Genre{{ID: 28, Name: "Action"}}, decode[genresResponse](t, w).Genres)
}

func TestGetRating(t *testing.T) {
	env := setupTestServer(t)
	score := "7.9"
	env.ratings.EXPECT().Resolve(gomock.Any(), "Arrival", 2016, "").
		Return(&ratings.Rating{Title: "Arrival", IMDBRating: &score})

	w := env.do(t, http.MethodGet, "/api/v1/ratings?title=Arrival&year=2016")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7.9", decode[map[string]any](t, w)["imdbRating"])
}

func TestGetRating_Unavailable(t *testing.T) {
	env := setupTestServer(t)
	env.ratings.EXPECT().Resolve(gomock.Any(), "", 0, "tt0000001").
		Return(ratings.Unavailable("", 0))

	w := env.do(t, http.MethodGet, "/api/v1/ratings?imdb_id=tt0000001")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[map[string]any](t, w)
	assert.Nil(t, resp["imdbRating"])
	assert.Equal(t, true, resp["unavailable"])
}

func TestGetRating_Validation(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodGet, "/api/v1/ratings")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/ratings?title=Arrival&year=soon")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRating_NotConfigured(t *testing.T) {
	srv, err := New(ServerDeps{
		Catalog:  mocks.NewMockCatalog(gomock.NewController(t)),
		Calendar: calendar.NewComputer(0, 0, nil),
	}, Config{})
	require.NoError(t, err)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/api/v1/ratings?title=x"},
		{http.MethodPost, "/api/v1/refresh"},
	} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, tc.target)
	}
}

func TestGetCalendar(t *testing.T) {
	env := setupTestServer(t)
	movies := []catalog.Movie{catalog.Movie{ID: 7, Title: "Late Release", ReleaseDate: "2026-10-20"}.WithRevenue(10)}
	env.catalog.EXPECT().Movies(gomock.Any(), 2026).Return(movies, nil)
	env.catalog.EXPECT().CurrentYear().Return(2026)
	env.catalog.EXPECT().Today().Return(testToday)

	w := env.do(t, http.MethodGet, "/api/v1/calendar/2026/11")
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case reason := <-env.scheduler.triggered:
		assert.Equal(t, daily.ReasonLazy, reason)
	case <-time.After(time.Second):
		t.Fatal("current-year calendar did not trigger the daily refresh")
	}

	view := decode[calendar.MonthView](t, w)
	assert.Equal(t, time.November, view.Month)
	require.Len(t, view.Days[1], 1)
	assert.True(t, view.Days[1][0].IsFirstDayOfRun)
	assert.False(t, view.Days[2][0].IsFirstDayOfRun)
	assert.Len(t, view.Grid, 5)
}

func TestGetCalendar_JanuaryLoadsPreviousYear(t *testing.T) {
	env := setupTestServer(t)
	env.catalog.EXPECT().Movies(gomock.Any(), 2026).Return(nil, nil)
	env.catalog.EXPECT().Movies(gomock.Any(), 2025).
		Return([]catalog.Movie{catalog.Movie{ID: 1, Title: "Holiday", ReleaseDate: "2025-12-25"}.WithRevenue(5)}, nil)
	env.catalog.EXPECT().CurrentYear().Return(2026)
	env.catalog.EXPECT().Today().Return(testToday)

	w := env.do(t, http.MethodGet, "/api/v1/calendar/2026/1")
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[calendar.MonthView](t, w)
	require.Len(t, view.Assignments, 1)
	assert.True(t, view.Assignments[0].Continued)
}

func TestGetCalendar_PastYearDoesNotTrigger(t *testing.T) {
	env := setupTestServer(t)
	env.catalog.EXPECT().Movies(gomock.Any(), 2019).Return(nil, nil)
	env.catalog.EXPECT().CurrentYear().Return(2026)
	env.catalog.EXPECT().Today().Return(testToday)

	w := env.do(t, http.MethodGet, "/api/v1/calendar/2019/6")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.scheduler.reasons)
}

func TestGetCalendar_InvalidMonth(t *testing.T) {
	env := setupTestServer(t)

	for _, target := range []string{"/api/v1/calendar/2026/13", "/api/v1/calendar/2026/0", "/api/v1/calendar/2026/may"} {
		w := env.do(t, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestGetStatus(t *testing.T) {
	env := setupTestServer(t)
	env.catalog.EXPECT().Today().Return(testToday)
	env.catalog.EXPECT().CurrentYear().Return(2026)
	env.catalog.EXPECT().CachedYears().Return([]catalog.YearStatus{{Year: 2026, Movies: 140, Fresh: true}})

	w := env.do(t, http.MethodGet, "/api/v1/status")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[statusResponse](t, w)
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, "2026-10-19", resp.Today)
	require.Len(t, resp.Years, 1)
	require.NotNil(t, resp.Daily)
	assert.Equal(t, daily.StatePending, resp.Daily.State)
}

func TestRefresh(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodPost, "/api/v1/refresh")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[refreshResponse](t, w).Ran)

	w = env.do(t, http.MethodPost, "/api/v1/refresh")
	resp := decode[refreshResponse](t, w)
	assert.False(t, resp.Ran, "at most once per date")
	assert.Equal(t, daily.StateDone, resp.Daily.State)
	assert.Equal(t, []string{daily.ReasonManual, daily.ReasonManual}, env.scheduler.reasons)
}

func TestRefresh_DetachedFromRequest(t *testing.T) {
	env := setupTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.scheduler.ctxErrs, 1)
	assert.NoError(t, env.scheduler.ctxErrs[0], "a client disconnect must not cancel the refresh body")
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "go_goroutines"))
}
