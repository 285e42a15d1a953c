// Package scheduler runs a task once immediately and then on a fixed
// interval, one invocation at a time.
package scheduler

import (
	"context"
	"time"
)

// Task is one presence-update cycle. The context carries the per-cycle
// deadline.
type Task func(ctx context.Context)

// Scheduler fires a task at a fixed interval. Cycles run synchronously on
// the scheduler's goroutine, so they never overlap: the session behind the
// task mutates cached state in place and must not be entered concurrently.
// A cycle that overruns its slot delays the next one; intermediate ticks are
// dropped by the ticker.
type Scheduler struct {
	interval time.Duration
	// taskTimeout bounds one cycle. Device-code sign-in waits on the user,
	// so the bound is generous.
	taskTimeout time.Duration
}

// New creates a scheduler with the given interval.
func New(interval time.Duration) *Scheduler {
	return &Scheduler{
		interval:    interval,
		taskTimeout: 15 * time.Minute,
	}
}

// Run invokes task immediately and then every interval until ctx is
// cancelled.
func (s *Scheduler) Run(ctx context.Context, task Task) {
	s.runOnce(ctx, task)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, task)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, task Task) {
	cycleCtx, cancel := context.WithTimeout(ctx, s.taskTimeout)
	defer cancel()
	task(cycleCtx)
}
