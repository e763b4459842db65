package jobs

import (
	"context"
	"log/slog"
)

// Service is a small in-process queue for best-effort side effects. Jobs run
// detached from the request that enqueued them; failures are logged and
// never retried.
type Service struct {
	queue chan job
}

type job struct {
	Name string
	Run  func(context.Context) error
}

func New(size int) *Service {
	if size <= 0 {
		size = 128
	}
	return &Service{queue: make(chan job, size)}
}

// Start launches the worker. ctx bounds the lifetime of all queued jobs.
func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
}

// Enqueue schedules a job. A full queue drops the job with a warning rather
// than blocking the caller.
func (s *Service) Enqueue(name string, run func(context.Context) error) {
	select {
	case s.queue <- job{Name: name, Run: run}:
	default:
		slog.Warn("job queue full, dropping job", "job", name)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if err := j.Run(ctx); err != nil {
				slog.Warn("job failed", "job", j.Name, "err", err)
			}
		}
	}
}
