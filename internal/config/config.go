// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	TMDB     TMDBConfig     `toml:"tmdb"`
	OMDB     OMDBConfig     `toml:"omdb"`
	Cache    CacheConfig    `toml:"cache"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Enrich   EnrichConfig   `toml:"enrich"`
	Ratings  RatingsConfig  `toml:"ratings"`
	Daily    DailyConfig    `toml:"daily"`
	Calendar CalendarConfig `toml:"calendar"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// TMDBConfig configures the catalog provider.
type TMDBConfig struct {
	APIKey            string        `toml:"api_key"`
	BaseURL           string        `toml:"base_url"`
	Timeout           time.Duration `toml:"timeout"`
	RequestsPerSecond float64       `toml:"requests_per_second"`
	Burst             int           `toml:"burst"`
}

// OMDBConfig configures the ratings provider.
type OMDBConfig struct {
	APIKey  string        `toml:"api_key"`
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
}

type CacheConfig struct {
	TTL time.Duration `toml:"ttl"`
}

// CatalogConfig sets the discover page budget per year.
type CatalogConfig struct {
	CurrentYearPages int `toml:"current_year_pages"`
	PastYearPages    int `toml:"past_year_pages"`
}

type EnrichConfig struct {
	TopN        int `toml:"top_n"`
	Concurrency int `toml:"concurrency"`
}

// RatingsConfig configures rating resolution and pre-warming.
// TitleOverrides maps a catalog title to the title the ratings provider uses.
type RatingsConfig struct {
	PrewarmWindow      time.Duration     `toml:"prewarm_window"`
	PrewarmConcurrency int               `toml:"prewarm_concurrency"`
	TitleOverrides     map[string]string `toml:"title_overrides"`
}

type DailyConfig struct {
	Hour     int    `toml:"hour"`
	Timezone string `toml:"timezone"`
}

type CalendarConfig struct {
	RunDays int      `toml:"run_days"`
	TopN    int      `toml:"top_n"`
	Palette []string `toml:"palette"`
}

// DefaultPalette is the ordered color cycle for calendar ranks.
var DefaultPalette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231", "#911eb4",
	"#46f0f0", "#f032e6", "#bcf60c", "#fabebe", "#008080",
}

// DefaultTitleOverrides holds known catalog/ratings title mismatches.
var DefaultTitleOverrides = map[string]string{
	"Mission: Impossible - The Final Reckoning": "Mission: Impossible - Dead Reckoning Part Two",
}

// Load reads and parses the configuration file.
// Unresolved ${VAR} references and validation failures are returned as a *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.TMDB.Timeout == 0 {
		c.TMDB.Timeout = 10 * time.Second
	}
	if c.TMDB.RequestsPerSecond == 0 {
		c.TMDB.RequestsPerSecond = 40
	}
	if c.TMDB.Burst == 0 {
		c.TMDB.Burst = 20
	}
	if c.OMDB.Timeout == 0 {
		c.OMDB.Timeout = 10 * time.Second
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 24 * time.Hour
	}
	if c.Catalog.CurrentYearPages == 0 {
		c.Catalog.CurrentYearPages = 7
	}
	if c.Catalog.PastYearPages == 0 {
		c.Catalog.PastYearPages = 5
	}
	if c.Enrich.TopN == 0 {
		c.Enrich.TopN = 15
	}
	if c.Enrich.Concurrency == 0 {
		c.Enrich.Concurrency = 8
	}
	if c.Ratings.PrewarmWindow == 0 {
		c.Ratings.PrewarmWindow = 30 * 24 * time.Hour
	}
	if c.Ratings.PrewarmConcurrency == 0 {
		c.Ratings.PrewarmConcurrency = 4
	}
	if c.Ratings.TitleOverrides == nil {
		c.Ratings.TitleOverrides = make(map[string]string, len(DefaultTitleOverrides))
		for k, v := range DefaultTitleOverrides {
			c.Ratings.TitleOverrides[k] = v
		}
	}
	if c.Daily.Timezone == "" {
		c.Daily.Timezone = "Local"
	}
	if c.Calendar.RunDays == 0 {
		c.Calendar.RunDays = 14
	}
	if c.Calendar.TopN == 0 {
		c.Calendar.TopN = 5
	}
	if len(c.Calendar.Palette) == 0 {
		c.Calendar.Palette = append([]string(nil), DefaultPalette...)
	}
}

// Location resolves the configured daily update time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Daily.Timezone)
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// ${VAR:-default} falls back to default when VAR is unset or empty.
// Unresolved names are returned in missing and left unchanged in the content.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1] // Strip ${ and }
		name, def, hasDefault := strings.Cut(expr, ":-")
		if value, ok := os.LookupEnv(name); ok && (value != "" || !hasDefault) {
			return value
		}
		if hasDefault {
			return def
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})
	return out, missing
}
