package commands

import (
	"context"
)

// CancelOrderCommandHandler cancels an order under a row lock, so it serializes
// with a concurrent completion finalizer: whichever commits first wins.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns *errs.ObjectNotFoundError for an unknown order and
// *errs.StateConflictError when the order is already completed or canceled.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = o.Cancel(h.clock()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
