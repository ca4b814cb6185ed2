package usecase

import (
	"context"
	"log/slog"
	"time"

	"PageWatcher/internal/ports"
)

// Scheduler wires the cron driver with the watcher use case.
type Scheduler struct {
	driver  ports.Scheduler
	watcher *Watcher
	logger  *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring watch runs.
func NewScheduler(driver ports.Scheduler, watcher *Watcher, logger *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, watcher: watcher, logger: logger}
}

// Start registers the watch run with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.watcher == nil {
		return nil
	}

	job := func(trigger time.Time) {
		report, err := s.watcher.Run(ctx)
		if err != nil {
			if s.logger != nil {
				s.logger.Error("scheduled run aborted", "error", err)
			}
			return
		}
		if s.logger != nil {
			s.logger.Info("scheduled run finished",
				"trigger", trigger.Format(time.RFC3339),
				"checked", report.Checked,
				"changes", len(report.Changes),
				"fetch_errors", len(report.Errors))
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
