// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"advisor-workers/internal/common/metrics"
)

// JobHandlerFunc is the signature every worker's Handle method satisfies.
type JobHandlerFunc func(client worker.JobClient, job entities.Job)

// JobRecorder receives one observation per handled job.
type JobRecorder interface {
	RecordJob(ctx context.Context, taskType, status string, duration time.Duration)
}

// WorkerSet tracks the job workers opened against a single broker connection
// so they can be closed together on shutdown.
type WorkerSet struct {
	client   zbc.Client
	recorder JobRecorder
	logger   *zap.Logger
	workers  []worker.JobWorker
}

func NewWorkerSet(client zbc.Client, recorder JobRecorder, logger *zap.Logger) *WorkerSet {
	return &WorkerSet{client: client, recorder: recorder, logger: logger}
}

// instrument wraps a handler with the shared job gauges and timers: the
// active gauge tracks in-flight jobs, the histogram and the optional recorder
// both see the wall-clock duration.
func (s *WorkerSet) instrument(taskType string, handler JobHandlerFunc) JobHandlerFunc {
	return func(client worker.JobClient, job entities.Job) {
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		start := time.Now()
		handler(client, job)
		duration := time.Since(start)
		metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(duration.Seconds())
		if s.recorder != nil {
			s.recorder.RecordJob(context.Background(), taskType, "processed", duration)
		}
	}
}

// Start opens a polling job worker for the task type and registers it for
// shutdown.
func (s *WorkerSet) Start(taskType string, maxJobsActive int, timeout time.Duration, handler JobHandlerFunc) {
	wrapped := s.instrument(taskType, handler)

	jobWorker := s.client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(wrapped)).
		MaxJobsActive(maxJobsActive).
		Timeout(timeout).
		Open()

	s.workers = append(s.workers, jobWorker)

	s.logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", maxJobsActive),
		zap.Duration("timeout", timeout),
	)
}

// Close drains and stops every registered worker.
func (s *WorkerSet) Close() {
	for _, w := range s.workers {
		w.Close()
	}
	s.logger.Info("all workers stopped", zap.Int("count", len(s.workers)))
}

// Count reports how many workers were started.
func (s *WorkerSet) Count() int {
	return len(s.workers)
}
