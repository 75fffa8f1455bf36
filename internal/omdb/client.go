package omdb

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
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/vmunix/boxoffice/internal/metrics"
)

const defaultBaseURL = "https://www.omdbapi.com"

const breakerName = "omdb-api"

// Sentinel errors for OMDb responses.
var (
	ErrNotFound      = errors.New("title not found")
	ErrInvalidAPIKey = errors.New("invalid omdb api key")
)

// APIError is an unexpected OMDb response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OMDb API error (%d): %s", e.StatusCode, e.Message)
}

// Client is an OMDb API client. Calls pass through a circuit breaker so a
// failing provider is not hammered by pre-warm batches.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]byte]
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "omdb")
	}
}

// WithBreakerSettings replaces the circuit breaker configuration.
func WithBreakerSettings(st gobreaker.Settings) Option {
	return func(c *Client) {
		c.cb = c.newBreaker(st)
	}
}

// NewClient creates a new OMDb client.
// Breaker defaults: opens after 5 consecutive failures, probes again after 1 minute.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: slog.New(slog.DiscardHandler),
	}
	c.cb = c.newBreaker(gobreaker.Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newBreaker(st gobreaker.Settings) *gobreaker.CircuitBreaker[[]byte] {
	st.Name = breakerName
	// A title the provider does not know is an answer, not an outage.
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, ErrNotFound)
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		c.log.Info("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
	}
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	return gobreaker.NewCircuitBreaker[[]byte](st)
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// GetByID fetches a title by IMDb id.
func (c *Client) GetByID(ctx context.Context, imdbID string) (*Movie, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "short")
	return c.getMovie(ctx, "by_id", params)
}

// GetByTitle fetches a title by exact name and release year (0 = any year).
func (c *Client) GetByTitle(ctx context.Context, title string, year int) (*Movie, error) {
	params := url.Values{}
	params.Set("t", title)
	params.Set("type", "movie")
	params.Set("plot", "short")
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}
	return c.getMovie(ctx, "by_title", params)
}

// Search finds movies whose titles resemble query.
func (c *Client) Search(ctx context.Context, query string, year int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("type", "movie")
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}

	body, err := c.execute(ctx, "search", params)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if resp.Response == "False" {
		return nil, responseError(resp.Error)
	}
	return resp.Search, nil
}

func (c *Client) getMovie(ctx context.Context, endpoint string, params url.Values) (*Movie, error) {
	body, err := c.execute(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var movie Movie
	if err := json.Unmarshal(body, &movie); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if movie.Response == "False" {
		return nil, responseError(movie.Error)
	}
	return &movie, nil
}

// execute runs one request through the circuit breaker.
// OMDb signals lookup failures in the body, so the body is checked here too
// so that the breaker sees not-found as a success.
func (c *Client) execute(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	start := time.Now()
	body, err := c.cb.Execute(func() ([]byte, error) {
		body, err := c.do(ctx, params)
		if err != nil {
			return nil, err
		}
		var probe struct {
			Response string `json:"Response"`
			Error    string `json:"Error"`
		}
		if json.Unmarshal(body, &probe) == nil && probe.Response == "False" {
			if rerr := responseError(probe.Error); errors.Is(rerr, ErrNotFound) {
				return body, nil
			}
			return nil, responseError(probe.Error)
		}
		return body, nil
	})

	switch {
	case err == nil:
		metrics.ObserveUpstream("omdb", endpoint, "success", start)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.ObserveUpstream("omdb", endpoint, "rejected", start)
		c.log.Warn("request rejected by circuit breaker", "endpoint", endpoint)
	default:
		metrics.ObserveUpstream("omdb", endpoint, "error", start)
	}
	return body, err
}

func (c *Client) do(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidAPIKey
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// responseError maps an OMDb "Error" field to a sentinel where one exists.
func responseError(msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "not found"):
		return ErrNotFound
	case strings.Contains(lower, "api key"):
		return ErrInvalidAPIKey
	default:
		return &APIError{StatusCode: http.StatusOK, Message: msg}
	}
}
