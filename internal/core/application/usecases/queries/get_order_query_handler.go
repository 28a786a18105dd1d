package queries

import (
	"context"
)

type GetOrderQueryHandler struct {
	reader OrderReader
}

func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle returns *errs.ObjectNotFoundError when no order has the requested id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderReadModel, error) {
	if err := query.Validate(); err != nil {
		return OrderReadModel{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return OrderReadModel{}, err
	}

	return newOrderReadModel(o), nil
}
