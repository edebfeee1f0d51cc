package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Job is a named unit of recurring work fired on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error

	inFlight atomic.Bool
}

// Scheduler fires registered jobs on independent fixed intervals. At most one
// execution per job is in flight at any time: a tick that would overlap a
// still-running execution of the same job is skipped, not queued. Distinct
// jobs run concurrently with each other.
type Scheduler struct {
	jobs   []*Job
	logger *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewScheduler constructs an empty scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(job *Job) {
	if job.Interval <= 0 {
		job.Interval = time.Minute
	}
	s.jobs = append(s.jobs, job)
}

// Start launches one ticker loop per registered job.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(runCtx, job)
	}
}

// Stop cancels all loops and waits for in-flight executions to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job *Job) {
	defer s.wg.Done()
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx, job)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, job *Job) {
	if !job.inFlight.CompareAndSwap(false, true) {
		s.logger.Warn("job still running, tick skipped", slog.String("job", job.Name))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer job.inFlight.Store(false)

		started := time.Now()
		if err := job.Run(ctx); err != nil {
			s.logger.Error("job run failed",
				slog.String("job", job.Name),
				slog.String("error", err.Error()))
			return
		}
		s.logger.Info("job run finished",
			slog.String("job", job.Name),
			slog.Duration("took", time.Since(started)))
	}()
}
