package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vmunix/boxoffice/internal/calendar"
	"github.com/vmunix/boxoffice/internal/catalog"
	"github.com/vmunix/boxoffice/internal/daily"
	"github.com/vmunix/boxoffice/internal/ratings"
	"github.com/vmunix/boxoffice/internal/tmdb"
)

// Client wraps HTTP calls to the boxoffice server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new boxoffice API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute, // a cold year fetch enriches hundreds of titles
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, result any) error {
	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", nil)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// API response types (mirror server types)

type MoviesResponse struct {
	Year      int             `json:"year"`
	Kind      catalog.Kind    `json:"kind"`
	Results   []catalog.Movie `json:"results,omitempty"`
	Released  []catalog.Movie `json:"released,omitempty"`
	Upcoming  []catalog.Movie `json:"upcoming,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type GenresResponse struct {
	Genres []tmdb.Genre `json:"genres"`
}

type StatusResponse struct {
	Status      string               `json:"status"`
	Version     string               `json:"version"`
	Today       string               `json:"today"`
	CurrentYear int                  `json:"current_year"`
	Years       []catalog.YearStatus `json:"years"`
	Daily       *daily.Status        `json:"daily,omitempty"`
}

type RefreshResponse struct {
	Ran   bool         `json:"ran"`
	Daily daily.Status `json:"daily"`
}

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Movies fetches a year's listing. year 0 asks for the current year.
func (c *Client) Movies(year int) (*MoviesResponse, error) {
	path := "/api/v1/movies"
	if year != 0 {
		path += "?year=" + strconv.Itoa(year)
	}
	var resp MoviesResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Genres() ([]tmdb.Genre, error) {
	var resp GenresResponse
	if err := c.get("/api/v1/genres", &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

func (c *Client) Rating(title string, year int, imdbID string) (*ratings.Rating, error) {
	params := url.Values{}
	if title != "" {
		params.Set("title", title)
	}
	if year != 0 {
		params.Set("year", strconv.Itoa(year))
	}
	if imdbID != "" {
		params.Set("imdb_id", imdbID)
	}
	var resp ratings.Rating
	if err := c.get("/api/v1/ratings?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Calendar(year int, month time.Month) (*calendar.MonthView, error) {
	var resp calendar.MonthView
	if err := c.get(fmt.Sprintf("/api/v1/calendar/%d/%d", year, int(month)), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Refresh() (*RefreshResponse, error) {
	var resp RefreshResponse
	if err := c.post("/api/v1/refresh", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
