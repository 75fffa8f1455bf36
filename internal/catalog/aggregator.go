package catalog

import (
	"context"
	"log/slog"
	"time"
)

// Aggregator fetches a year's discover pages and merges them.
type Aggregator struct {
	provider         Provider
	currentYearPages int
	pastYearPages    int
	log              *slog.Logger
}

// NewAggregator creates an aggregator with the given page budgets.
func NewAggregator(provider Provider, currentYearPages, pastYearPages int, log *slog.Logger) *Aggregator {
	if currentYearPages <= 0 {
		currentYearPages = 7
	}
	if pastYearPages <= 0 {
		pastYearPages = 5
	}
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{
		provider:         provider,
		currentYearPages: currentYearPages,
		pastYearPages:    pastYearPages,
		log:              log,
	}
}

// Pages returns the page budget for year.
func (a *Aggregator) Pages(year, currentYear int) int {
	if year == currentYear {
		return a.currentYearPages
	}
	return a.pastYearPages
}

// FetchYear fetches the page budget for year sequentially and returns the
// deduplicated records in page order. Any page failure aborts the whole fetch.
func (a *Aggregator) FetchYear(ctx context.Context, year, currentYear int) ([]Movie, error) {
	pages := a.Pages(year, currentYear)
	start := time.Now()

	var all []Movie
	for page := 1; page <= pages; page++ {
		resp, err := a.provider.DiscoverByYear(ctx, year, page)
		if err != nil {
			a.log.Error("discover page failed", "year", year, "page", page, "error", err)
			return nil, &UpstreamFetchError{Year: year, Page: page, Err: err}
		}
		for _, r := range resp.Results {
			all = append(all, FromDiscover(r))
		}
		if resp.TotalPages > 0 && page >= resp.TotalPages {
			break
		}
	}

	movies := Dedup(all)
	a.log.Debug("year fetched", "year", year, "pages", pages, "records", len(all), "unique", len(movies),
		"duration_ms", time.Since(start).Milliseconds())
	return movies, nil
}
