package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"telepace/telepace/pkg/limits"
	"telepace/telepace/pkg/limits/storage"
	"telepace/telepace/pkg/telemetry/logging"
)

// Scheduler runs periodic usage reports on a cron schedule. Each run
// logs a summary of the limiter's counters and persists the current
// snapshot to storage when a backend is configured.
type Scheduler struct {
	limiter  *limits.Limiter
	backend  storage.Backend
	schedule string
	cron     *cron.Cron
	logger   *logging.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a report scheduler. The backend may be nil, in
// which case runs only log the summary.
func NewScheduler(limiter *limits.Limiter, backend storage.Backend, schedule string, logger *logging.Logger) *Scheduler {
	return &Scheduler{
		limiter:  limiter,
		backend:  backend,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start begins scheduled reporting based on the cron expression.
//
// Common cron expressions:
//   - "0 * * * *"  - Hourly on the hour
//   - "0 3 * * *"  - Daily at 3 AM
//
// If the schedule is empty, the scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("report schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runReport(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule report: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("report scheduler started", "schedule", s.schedule)

	// Stop when the context is cancelled
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runReport executes a single reporting cycle.
func (s *Scheduler) runReport(ctx context.Context) {
	s.limiter.LogSummary()

	if s.backend == nil {
		return
	}

	snap := s.limiter.Stats()
	if err := s.backend.SaveSnapshot(ctx, snap); err != nil {
		s.logger.Error("failed to persist usage snapshot", "error", err)
		return
	}

	s.logger.Debug("usage snapshot persisted",
		"total_requests", snap.TotalRequests,
		"resolve_requests_today", snap.ResolveRequestsToday,
	)
}

// Stop stops the scheduler and waits for any running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("report scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled report time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
