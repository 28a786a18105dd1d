// Package ports defines the persistence contracts the application layer depends on.
// Adapters under internal/adapters/out implement them.
package ports

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Methods that miss return *errs.ObjectNotFoundError.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks it until the surrounding
	// transaction ends, so that concurrent lifecycle changes serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order regardless of its status.
	// Returns *errs.ObjectNotFoundError when nothing was removed.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetAllActive retrieves Pending and Completing orders, oldest first.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetAllDueForCompletion retrieves at most limit Completing orders whose due
	// time is not after now, locking them for the surrounding transaction. Rows
	// already locked by another transaction are skipped.
	GetAllDueForCompletion(ctx context.Context, now time.Time, limit int) ([]*order.Order, error)
}
