package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"orders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EverySecond is the default schedule of the completion job.
const EverySecond = "* * * * * *"

// OrderCompletionJob finalizes orders whose completion delay has elapsed.
type OrderCompletionJob struct {
	handler  commands.FinalizeDueCompletionsCommandHandler
	cmd      commands.FinalizeDueCompletionsCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderCompletionJob creates the job. schedule is a six-field cron
// expression (seconds first); batchSize caps the orders finalized per run.
func NewOrderCompletionJob(
	handler commands.FinalizeDueCompletionsCommandHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) (*OrderCompletionJob, error) {
	cmd, err := commands.NewFinalizeDueCompletionsCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = EverySecond
	}

	return &OrderCompletionJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "order_completion_job"),
	}, nil
}

// Start schedules the job. Runs that overlap a still running one are skipped.
func (j *OrderCompletionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order completion job started", "schedule", j.schedule)
	return nil
}

// RunOnce finalizes one batch of due orders and returns how many were completed.
// Failures are logged; the batch is retried on the next run.
func (j *OrderCompletionJob) RunOnce(ctx context.Context) int {
	finalized, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order completion job failed", "error", err)
		return 0
	}

	if finalized > 0 {
		j.logger.InfoContext(ctx, "Orders completed", "count", finalized)
	}
	return finalized
}

// Stop unschedules the job and waits for a running batch to finish.
func (j *OrderCompletionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order completion job stopped")
}
