package queries

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderReader is the read side of the order repository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}

// OrderReadModel is the flat view of an order returned by every query.
type OrderReadModel struct {
	ID              kernel.UUID
	ProductName     string
	ProductPrice    decimal.Decimal
	ProductQuantity int
	CustomerID      *string
	SupplierID      *string
	Status          order.Status
	Canceled        bool
	Completed       bool
	CreationDate    time.Time
	CompletionDate  *time.Time
	CompletionDueAt *time.Time
}

func newOrderReadModel(o *order.Order) OrderReadModel {
	return OrderReadModel{
		ID:              o.ID(),
		ProductName:     o.ProductName(),
		ProductPrice:    o.ProductPrice(),
		ProductQuantity: o.ProductQuantity(),
		CustomerID:      o.CustomerID(),
		SupplierID:      o.SupplierID(),
		Status:          o.Status(),
		Canceled:        o.Canceled(),
		Completed:       o.Completed(),
		CreationDate:    o.CreationDate(),
		CompletionDate:  o.CompletionDate(),
		CompletionDueAt: o.CompletionDueAt(),
	}
}
