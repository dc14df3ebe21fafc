package scheduler_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sydneypulse/schi-pipeline/internal/pipeline"
	"github.com/sydneypulse/schi-pipeline/internal/scheduler"
)

type countingRunner struct {
	runs atomic.Int64
	err  error
}

func (r *countingRunner) Run(_ context.Context) (pipeline.Report, error) {
	r.runs.Add(1)
	return pipeline.Report{IndexRows: 1}, r.err
}

func TestScheduler_RunsImmediatelyAndOnInterval(t *testing.T) {
	runner := &countingRunner{}
	s := scheduler.New(runner, 20*time.Millisecond, slog.Default())

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)

	require.Eventually(t, func() bool {
		return runner.runs.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond, "expected an immediate run plus at least one tick")
}

func TestScheduler_KeepsTickingAfterFailedRun(t *testing.T) {
	runner := &countingRunner{err: errors.New("input dir vanished")}
	s := scheduler.New(runner, 20*time.Millisecond, slog.Default())

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)

	require.Eventually(t, func() bool {
		return runner.runs.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond, "failures must not unschedule the job")
}

func TestScheduler_RejectsNonPositiveInterval(t *testing.T) {
	s := scheduler.New(&countingRunner{}, 0, slog.Default())

	err := s.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestScheduler_StopHaltsTicks(t *testing.T) {
	runner := &countingRunner{}
	s := scheduler.New(runner, 10*time.Millisecond, slog.Default())

	require.NoError(t, s.Start(context.Background()))
	require.Eventually(t, func() bool {
		return runner.runs.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)

	s.Stop()
	after := runner.runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, runner.runs.Load(), after+1, "at most one in-flight run may finish after Stop")
}
