package memory

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository implements ports.OrderRepository over a Store. Without staged
// changes it works on committed state directly.
type OrderRepository struct {
	store  *Store
	staged map[kernel.UUID]*order.Snapshot
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.write(ctx, aggregate.ID(), func(exists bool) (*order.Snapshot, error) {
		if exists {
			return nil, ErrDuplicateKey
		}
		snap := aggregate.Snapshot()
		return &snap, nil
	})
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.write(ctx, aggregate.ID(), func(exists bool) (*order.Snapshot, error) {
		if !exists {
			return nil, errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		snap := aggregate.Snapshot()
		return &snap, nil
	})
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	snap, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return order.RestoreOrder(snap)
}

// GetForUpdate is Get: an open unit of work already excludes other writers.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r *OrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.write(ctx, id, func(exists bool) (*order.Snapshot, error) {
		if !exists {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, nil
	})
}

func (r *OrderRepository) GetAllActive(_ context.Context) ([]*order.Order, error) {
	active := r.filter(func(s order.Snapshot) bool {
		return !s.Status.IsTerminal()
	})
	sortByTime(active, func(s order.Snapshot) time.Time { return s.CreationDate })

	return restoreAll(active)
}

func (r *OrderRepository) GetAllDueForCompletion(
	_ context.Context,
	now time.Time,
	limit int,
) ([]*order.Order, error) {
	due := r.filter(func(s order.Snapshot) bool {
		return s.Status == order.Completing && s.CompletionDueAt != nil && !s.CompletionDueAt.After(now)
	})
	sortByTime(due, func(s order.Snapshot) time.Time { return *s.CompletionDueAt })
	if limit >= 0 && len(due) > limit {
		due = due[:limit]
	}

	return restoreAll(due)
}

func (r *OrderRepository) lookup(id kernel.UUID) (order.Snapshot, bool) {
	if snap, ok := r.staged[id]; ok {
		if snap == nil {
			return order.Snapshot{}, false
		}
		return *snap, true
	}
	return r.store.get(id)
}

// write computes the new value of one order from whether it currently exists.
// Outside a unit of work the change is committed immediately under the writer slot.
func (r *OrderRepository) write(
	ctx context.Context,
	id kernel.UUID,
	next func(exists bool) (*order.Snapshot, error),
) error {
	if r.staged != nil {
		_, exists := r.lookup(id)
		snap, err := next(exists)
		if err != nil {
			return err
		}
		r.staged[id] = snap
		return nil
	}

	if err := r.store.acquire(ctx); err != nil {
		return err
	}
	defer r.store.release()

	_, exists := r.store.get(id)
	snap, err := next(exists)
	if err != nil {
		return err
	}
	r.store.apply(map[kernel.UUID]*order.Snapshot{id: snap})
	return nil
}

func (r *OrderRepository) filter(keep func(order.Snapshot) bool) []order.Snapshot {
	var list []order.Snapshot
	for _, snap := range r.store.committed() {
		if _, overridden := r.staged[snap.ID]; overridden {
			continue
		}
		if keep(snap) {
			list = append(list, snap)
		}
	}
	for _, snap := range r.staged {
		if snap != nil && keep(*snap) {
			list = append(list, *snap)
		}
	}
	return list
}

func restoreAll(list []order.Snapshot) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(list))
	for _, snap := range list {
		o, err := order.RestoreOrder(snap)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
