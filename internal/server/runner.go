// Package server runs the HTTP API and the background refresh together.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Scheduler is a background loop that runs until its context is canceled.
type Scheduler interface {
	Run(ctx context.Context) error
}

// Config for the runner.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Runner manages the HTTP server and the daily scheduler.
type Runner struct {
	handler   http.Handler
	scheduler Scheduler
	config    Config
	logger    *slog.Logger

	ready chan net.Addr
}

// NewRunner creates a new runner. scheduler may be nil.
func NewRunner(handler http.Handler, scheduler Scheduler, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Runner{
		handler:   handler,
		scheduler: scheduler,
		config:    cfg,
		logger:    logger,
		ready:     make(chan net.Addr, 1),
	}
}

// Ready delivers the listening address once the server accepts connections.
func (r *Runner) Ready() <-chan net.Addr {
	return r.ready
}

// Run starts all components.
// It blocks until the context is canceled or a component fails.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: r.handler, ReadHeaderTimeout: 10 * time.Second}

	// Use errgroup to manage component lifecycle
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		r.ready <- ln.Addr()
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.config.ShutdownTimeout)
		defer cancel()
		r.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if r.scheduler != nil {
		g.Go(func() error {
			if err := r.scheduler.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}
