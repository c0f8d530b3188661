package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
)

var ErrUnknownJob = errors.New("unknown cron job")

// Job runs on a fixed interval and once at start-up. Jobs must be idempotent:
// a redeploy can overlap two processes.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs each registered job on its own ticker goroutine.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []Job
	byName map[string]int
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	return &Scheduler{byName: make(map[string]int)}
}

// AddJob registers fn under name. A second registration under the same name replaces the first.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := Job{Name: name, Interval: interval, Fn: fn}
	if i, ok := s.byName[name]; ok {
		s.jobs[i] = job
	} else {
		s.byName[name] = len(s.jobs)
		s.jobs = append(s.jobs, job)
	}
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Start launches every job. They stop when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}
	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels the scheduler and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		_ = execute(ctx, job)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func execute(ctx context.Context, job Job) error {
	start := time.Now()
	err := job.Fn(ctx)
	metrics.RecordJobRun(job.Name, err)
	if err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return err
	}
	slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	return nil
}

// RunJob runs one registered job synchronously.
func (s *Scheduler) RunJob(ctx context.Context, name string) error {
	s.mu.Lock()
	i, ok := s.byName[name]
	var job Job
	if ok {
		job = s.jobs[i]
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownJob, name)
	}
	return execute(ctx, job)
}

// Names lists the registered jobs in registration order.
func (s *Scheduler) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.Name
	}
	return names
}
