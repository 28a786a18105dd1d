package jobs

import (
	"fmt"
	"log/slog"

	"orders/internal/core/application/usecases/commands"
)

// JobManager starts and stops the background jobs of the service.
type JobManager struct {
	orderCompletionJob *OrderCompletionJob
}

// Config holds the scheduling settings of the jobs.
type Config struct {
	CompletionSchedule  string
	CompletionBatchSize int
}

func NewJobManager(
	finalizeHandler commands.FinalizeDueCompletionsCommandHandler,
	cfg Config,
	logger *slog.Logger,
) (*JobManager, error) {
	completionJob, err := NewOrderCompletionJob(finalizeHandler, cfg.CompletionSchedule, cfg.CompletionBatchSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create order completion job: %w", err)
	}

	return &JobManager{orderCompletionJob: completionJob}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderCompletionJob.Start(); err != nil {
		return fmt.Errorf("failed to start order completion job: %w", err)
	}

	return nil
}

// StopAll stops all jobs, waiting for running ones.
func (jm *JobManager) StopAll() {
	jm.orderCompletionJob.Stop()
}
