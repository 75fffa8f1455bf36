package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/boxoffice/internal/api/v1"
	"github.com/vmunix/boxoffice/internal/calendar"
	"github.com/vmunix/boxoffice/internal/catalog"
	"github.com/vmunix/boxoffice/internal/config"
	"github.com/vmunix/boxoffice/internal/daily"
	"github.com/vmunix/boxoffice/internal/metrics"
	"github.com/vmunix/boxoffice/internal/migrations"
	"github.com/vmunix/boxoffice/internal/omdb"
	"github.com/vmunix/boxoffice/internal/ratings"
	"github.com/vmunix/boxoffice/internal/server"
	"github.com/vmunix/boxoffice/internal/tmdb"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		metrics.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(wrapped.status)).Inc()
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// openRatingDB opens the in-memory rating cache. A single connection keeps
// every query on the same in-memory database.
func openRatingDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("config: daily.timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openRatingDB(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	// === Clients ===
	tmdbOpts := []tmdb.Option{
		tmdb.WithHTTPClient(&http.Client{Timeout: cfg.TMDB.Timeout}),
		tmdb.WithRateLimit(cfg.TMDB.RequestsPerSecond, cfg.TMDB.Burst),
		tmdb.WithCacheTTL(cfg.Cache.TTL),
		tmdb.WithLogger(logger.With("component", "tmdb")),
	}
	if cfg.TMDB.BaseURL != "" {
		tmdbOpts = append(tmdbOpts, tmdb.WithBaseURL(cfg.TMDB.BaseURL))
	}
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, tmdbOpts...)

	omdbOpts := []omdb.Option{
		omdb.WithHTTPClient(&http.Client{Timeout: cfg.OMDB.Timeout}),
		omdb.WithLogger(logger.With("component", "omdb")),
	}
	if cfg.OMDB.BaseURL != "" {
		omdbOpts = append(omdbOpts, omdb.WithBaseURL(cfg.OMDB.BaseURL))
	}
	omdbClient := omdb.NewClient(cfg.OMDB.APIKey, omdbOpts...)

	// === Services ===
	catalogSvc := catalog.NewService(tmdbClient, catalog.Config{
		CurrentYearPages: cfg.Catalog.CurrentYearPages,
		PastYearPages:    cfg.Catalog.PastYearPages,
		TopN:             cfg.Enrich.TopN,
		Concurrency:      cfg.Enrich.Concurrency,
		TTL:              cfg.Cache.TTL,
		Today:            catalog.Today(loc),
	}, logger.With("component", "catalog"))

	resolver := ratings.NewResolver(omdbClient, ratings.NewStore(db), cfg.Ratings.TitleOverrides,
		logger.With("component", "ratings"))

	refresher := daily.NewRefresher(catalogSvc, resolver, cfg.Ratings.PrewarmWindow,
		cfg.Ratings.PrewarmConcurrency, logger.With("component", "refresh"))
	scheduler := daily.NewScheduler(refresher.Refresh, cfg.Daily.Hour, loc, logger.With("component", "daily"))

	// === HTTP Setup ===
	mux := http.NewServeMux()

	apiV1, err := v1.New(v1.ServerDeps{
		Catalog:   catalogSvc,
		Calendar:  calendar.NewComputer(cfg.Calendar.RunDays, cfg.Calendar.TopN, cfg.Calendar.Palette),
		Ratings:   resolver,
		Scheduler: scheduler,
	}, v1.Config{Version: version, Logger: logger.With("component", "api")})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	apiV1.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"config", configPath,
		"cache_ttl", cfg.Cache.TTL,
		"daily_hour", cfg.Daily.Hour,
		"timezone", loc.String(),
		"log_level", cfg.Server.LogLevel,
	)

	runner := server.NewRunner(logRequests(mux, logger), scheduler, server.Config{Addr: addr},
		logger.With("component", "runner"))
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
