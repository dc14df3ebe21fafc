// Package scheduler re-runs the batch pipeline on a fixed interval for
// long-running dashboard deployments.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/sydneypulse/schi-pipeline/internal/pipeline"
)

// Runner executes one full pipeline cycle.
type Runner interface {
	Run(ctx context.Context) (pipeline.Report, error)
}

// Scheduler triggers pipeline runs on an interval. Runs are serialized, so a
// slow rebuild can never overlap the next tick and race on the artifacts.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a Scheduler that reruns the pipeline every interval.
func New(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		runner:    runner,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the refresh job and begins ticking. The first run fires
// immediately so readiness does not wait a full interval after deploy. A
// failed run is logged and the schedule keeps going; the previous artifacts
// stay in place until a later run succeeds.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", s.interval)
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().StartImmediately().Do(func() {
		report, err := s.runner.Run(ctx)
		if err != nil {
			s.logger.Error("scheduled refresh failed", "error", err)
			return
		}
		s.logger.Info("scheduled refresh complete",
			"run_id", report.RunID,
			"index_rows", report.IndexRows,
			"duration", report.Duration,
		)
	})
	if err != nil {
		return fmt.Errorf("schedule refresh job: %w", err)
	}

	s.logger.Info("refresh scheduled", "interval", s.interval)
	s.scheduler.StartAsync()
	return nil
}

// Stop halts the ticker. A run already in flight finishes on its own.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
