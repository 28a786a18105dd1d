package commands

import (
	"context"
	"time"
)

// CompleteOrderCommandHandler schedules completion of an order after a fixed
// delay. The schedule is stored with the order so it survives restarts.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
	delay      time.Duration
}

func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock Clock,
	delay time.Duration,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		delay:      delay,
	}
}

// Handle moves the order to Completing with a due time of now+delay.
// Guard failures are reported as *errs.StateConflictError.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.RequestCompletion(h.clock(), h.delay); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
