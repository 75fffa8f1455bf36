package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/vmunix/boxoffice/internal/cache"
	"github.com/vmunix/boxoffice/internal/metrics"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 64 << 10

// ErrNotFound is returned when a movie doesn't exist in TMDB.
var ErrNotFound = errors.New("movie not found")

// APIError is a non-success response from TMDB with the provider's body.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("TMDB API error: %s", e.Status)
	}
	return fmt.Sprintf("TMDB API error: %s: %s", e.Status, e.Body)
}

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	genres     *cache.Store[string, []Genre]
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets how long the genre list is cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.genres = cache.New[string, []Genre](ttl, cache.WithName("tmdb_genres"))
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit caps outgoing requests per second. A non-positive rps disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tmdb")
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(40), 20),
		genres:  cache.New[string, []Genre](defaultCacheTTL, cache.WithName("tmdb_genres")),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DiscoverByYear fetches one page of movies released in year, most popular first.
func (c *Client) DiscoverByYear(ctx context.Context, year, page int) (*DiscoverPage, error) {
	params := url.Values{}
	params.Set("primary_release_year", strconv.Itoa(year))
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))

	var result DiscoverPage
	if err := c.get(ctx, "discover", "/3/discover/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMovie fetches movie details, including revenue, by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, "movie", fmt.Sprintf("/3/movie/%d", tmdbID), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Genres returns the movie genre catalog (cached).
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	if genres, ok := c.genres.Fresh("movie"); ok {
		return genres, nil
	}

	var list genreList
	if err := c.get(ctx, "genres", "/3/genre/movie/list", nil, &list); err != nil {
		return nil, err
	}
	c.genres.Put("movie", list.Genres)
	return list.Genres, nil
}

// get performs a rate-limited GET and decodes a JSON response into out.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream("tmdb", endpoint, "error", start)
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		metrics.ObserveUpstream("tmdb", endpoint, "not_found", start)
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		metrics.ObserveUpstream("tmdb", endpoint, "error", start)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Debug("request failed", "endpoint", endpoint, "status", resp.StatusCode)
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.ObserveUpstream("tmdb", endpoint, "error", start)
		return fmt.Errorf("decode response: %w", err)
	}
	metrics.ObserveUpstream("tmdb", endpoint, "success", start)
	return nil
}
