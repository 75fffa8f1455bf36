// Package daily runs the once-per-day refresh of the current year.
package daily

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vmunix/boxoffice/internal/catalog"
	"github.com/vmunix/boxoffice/internal/metrics"
)

// Trigger reasons.
const (
	ReasonSchedule = "schedule"
	ReasonLazy     = "lazy"
	ReasonManual   = "manual"
)

// Job is the refresh body.
type Job func(ctx context.Context) error

// Status reports the scheduler state for the current date.
type Status struct {
	Date       string    `json:"date"`
	State      State     `json:"state"`
	LastRun    time.Time `json:"last_run,omitzero"`
	LastReason string    `json:"last_reason,omitempty"`
	LastError  string    `json:"last_error,omitempty"`
	NextRun    time.Time `json:"next_run"`
}

// Scheduler runs a job at most once per calendar date, whichever trigger
// (timer, first request of the day, operator) gets there first.
type Scheduler struct {
	job  Job
	hour int
	loc  *time.Location
	now  func() time.Time
	log  *slog.Logger

	mu         sync.Mutex
	date       time.Time
	state      State
	lastRun    time.Time
	lastReason string
	lastErr    error
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// NewScheduler creates a scheduler firing job daily at hour in loc.
func NewScheduler(job Job, hour int, loc *time.Location, log *slog.Logger, opts ...Option) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Scheduler{
		job:   job,
		hour:  hour,
		loc:   loc,
		now:   time.Now,
		log:   log,
		state: StatePending,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) today() time.Time {
	return catalog.DateOf(s.now().In(s.loc))
}

// rollover resets the state when the date has changed. Caller holds mu.
func (s *Scheduler) rollover(today time.Time) {
	if !s.date.Equal(today) {
		s.date = today
		s.state = StatePending
	}
}

// Trigger runs the job if it has not started today and reports whether it ran.
// Triggers while the job is running or after it finished today are no-ops.
// A failed run still counts as today's run.
func (s *Scheduler) Trigger(ctx context.Context, reason string) bool {
	today := s.today()

	s.mu.Lock()
	s.rollover(today)
	if !s.state.CanTransitionTo(StateRunning) {
		state := s.state
		s.mu.Unlock()
		s.log.Debug("daily refresh skipped", "reason", reason, "state", state)
		return false
	}
	s.state = StateRunning
	s.mu.Unlock()

	s.log.Info("daily refresh started", "reason", reason, "date", today.Format(time.DateOnly))
	start := time.Now()
	err := s.job(ctx)

	outcome := "success"
	if err != nil {
		outcome = "error"
		s.log.Error("daily refresh failed", "reason", reason, "error", err)
	} else {
		s.log.Info("daily refresh completed", "reason", reason,
			"duration_ms", time.Since(start).Milliseconds())
	}
	metrics.DailyRefreshRuns.WithLabelValues(reason, outcome).Inc()

	s.mu.Lock()
	if s.date.Equal(today) {
		s.state = StateDone
	}
	s.lastRun = s.now()
	s.lastReason = reason
	s.lastErr = err
	s.mu.Unlock()
	return true
}

// Status returns the state for the current date.
func (s *Scheduler) Status() Status {
	now := s.now()
	today := catalog.DateOf(now.In(s.loc))

	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Date:       today.Format(time.DateOnly),
		State:      s.state,
		LastRun:    s.lastRun,
		LastReason: s.lastReason,
		NextRun:    s.NextRun(now),
	}
	if !s.date.Equal(today) {
		st.State = StatePending
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

// NextRun returns the first scheduled time strictly after now.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	local := now.In(s.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.hour, 0, 0, 0, s.loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, s.hour, 0, 0, 0, s.loc)
	}
	return next
}

// Run triggers the job at the configured hour every day until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		now := s.now()
		next := s.NextRun(now)
		s.log.Debug("next daily refresh scheduled", "at", next)

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			s.Trigger(ctx, ReasonSchedule)
		}
	}
}
