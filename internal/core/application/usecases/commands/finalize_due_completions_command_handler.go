package commands

import (
	"context"
	"errors"

	"orders/internal/pkg/errs"
)

// FinalizeDueCompletionsCommandHandler applies scheduled completions. Orders are
// locked while they are finalized and each one re-checks its lifecycle guard, so
// a cancel or delete that committed first is never overwritten.
type FinalizeDueCompletionsCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewFinalizeDueCompletionsCommandHandler(
	uowFactory OrderUoWFactory,
	clock Clock,
) FinalizeDueCompletionsCommandHandler {
	return FinalizeDueCompletionsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the number of orders moved to Completed. Orders whose guard no
// longer holds are skipped; any other failure rolls back the whole batch, which
// is picked up again on the next run.
func (h *FinalizeDueCompletionsCommandHandler) Handle(
	ctx context.Context,
	cmd FinalizeDueCompletionsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock()
	orderRepo := uow.OrderRepository()
	due, err := orderRepo.GetAllDueForCompletion(ctx, now, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	finalized := 0
	for _, o := range due {
		if err = o.FinalizeCompletion(now); err != nil {
			if errors.Is(err, errs.ErrStateConflict) {
				continue
			}
			return 0, err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
		finalized++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return finalized, nil
}
