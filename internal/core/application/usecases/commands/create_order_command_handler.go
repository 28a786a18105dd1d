package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists new orders in Pending status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, SystemClock)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle stamps the order with the current time and stores it in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var opts []order.Option
	if id := cmd.CustomerID(); id != nil {
		opts = append(opts, order.WithCustomerID(*id))
	}
	if id := cmd.SupplierID(); id != nil {
		opts = append(opts, order.WithSupplierID(*id))
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ProductName(),
		cmd.ProductPrice(),
		cmd.ProductQuantity(),
		h.clock(),
		opts...,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
