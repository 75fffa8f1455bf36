// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
	"time"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Upstream credentials are required to serve anything
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		errs = append(errs, "tmdb.api_key: required")
	}
	if strings.TrimSpace(c.OMDB.APIKey) == "" {
		errs = append(errs, "omdb.api_key: required")
	}
	if c.TMDB.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Sprintf("tmdb.requests_per_second: must not be negative, got %v", c.TMDB.RequestsPerSecond))
	}

	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Sprintf("cache.ttl: must not be negative, got %s", c.Cache.TTL))
	}
	if c.Catalog.CurrentYearPages < 0 || c.Catalog.PastYearPages < 0 {
		errs = append(errs, "catalog: page budgets must not be negative")
	}
	if c.Enrich.TopN < 0 {
		errs = append(errs, fmt.Sprintf("enrich.top_n: must not be negative, got %d", c.Enrich.TopN))
	}
	if c.Enrich.Concurrency < 0 {
		errs = append(errs, fmt.Sprintf("enrich.concurrency: must not be negative, got %d", c.Enrich.Concurrency))
	}

	if c.Ratings.PrewarmWindow < 0 {
		errs = append(errs, fmt.Sprintf("ratings.prewarm_window: must not be negative, got %s", c.Ratings.PrewarmWindow))
	}
	for from, to := range c.Ratings.TitleOverrides {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			errs = append(errs, fmt.Sprintf("ratings.title_overrides: empty title in %q = %q", from, to))
		}
	}

	// Daily schedule
	if c.Daily.Hour < 0 || c.Daily.Hour > 23 {
		errs = append(errs, fmt.Sprintf("daily.hour: must be between 0 and 23, got %d", c.Daily.Hour))
	}
	if c.Daily.Timezone != "" {
		if _, err := time.LoadLocation(c.Daily.Timezone); err != nil {
			errs = append(errs, fmt.Sprintf("daily.timezone: %v", err))
		}
	}

	// Calendar
	if c.Calendar.RunDays < 1 || c.Calendar.RunDays > 28 {
		errs = append(errs, fmt.Sprintf("calendar.run_days: must be between 1 and 28, got %d", c.Calendar.RunDays))
	}
	if c.Calendar.TopN < 0 {
		errs = append(errs, fmt.Sprintf("calendar.top_n: must not be negative, got %d", c.Calendar.TopN))
	}
	for i, color := range c.Calendar.Palette {
		if !strings.HasPrefix(color, "#") {
			errs = append(errs, fmt.Sprintf("calendar.palette[%d]: expected a #rrggbb color, got %q", i, color))
		}
	}

	return errs
}
