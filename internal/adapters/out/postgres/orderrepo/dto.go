// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row layout of the orders table. The lifecycle status is not
// stored; it is derived from canceled, completed and completion_due_at.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductName     string          `gorm:"type:varchar(60);not null"`
	ProductPrice    decimal.Decimal `gorm:"type:numeric;not null"`
	ProductQuantity int             `gorm:"not null"`
	CustomerID      *string
	SupplierID      *string
	Canceled        bool       `gorm:"not null"`
	Completed       bool       `gorm:"not null"`
	CreationDate    time.Time  `gorm:"type:timestamptz;not null;index"`
	CompletionDate  *time.Time `gorm:"type:timestamptz"`
	CompletionDueAt *time.Time `gorm:"type:timestamptz;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	return OrderDTO{
		ID:              s.ID.Bytes(),
		ProductName:     s.ProductName,
		ProductPrice:    s.ProductPrice,
		ProductQuantity: s.ProductQuantity,
		CustomerID:      s.CustomerID,
		SupplierID:      s.SupplierID,
		Canceled:        s.Status == order.Canceled,
		Completed:       s.Status == order.Completed,
		CreationDate:    s.CreationDate,
		CompletionDate:  s.CompletionDate,
		CompletionDueAt: s.CompletionDueAt,
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, so inconsistent rows
// surface as errors instead of invalid orders.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		ProductName:     dto.ProductName,
		ProductPrice:    dto.ProductPrice,
		ProductQuantity: dto.ProductQuantity,
		CustomerID:      dto.CustomerID,
		SupplierID:      dto.SupplierID,
		Status:          order.DeriveStatus(dto.Canceled, dto.Completed, dto.CompletionDueAt != nil),
		CreationDate:    dto.CreationDate,
		CompletionDate:  dto.CompletionDate,
		CompletionDueAt: dto.CompletionDueAt,
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
