package memory_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/memory"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, at time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "Paper notebook", decimal.RequireFromString("3.75"), 4, at,
		order.WithCustomerID("c-1"))
	require.NoError(t, err)
	return o
}

func TestOrderRepository_Autocommit(t *testing.T) {
	t.Run("should round-trip an order", func(t *testing.T) {
		ctx := t.Context()
		repo := memory.NewOrderRepository(memory.NewStore())
		o := newOrder(t, createdAt)

		require.NoError(t, repo.Add(ctx, o))
		stored, err := repo.Get(ctx, o.ID())

		require.NoError(t, err)
		assert.Equal(t, o.Snapshot(), stored.Snapshot())
		assert.NotSame(t, o, stored)
	})

	t.Run("should reject a duplicate id", func(t *testing.T) {
		ctx := t.Context()
		repo := memory.NewOrderRepository(memory.NewStore())
		o := newOrder(t, createdAt)
		require.NoError(t, repo.Add(ctx, o))

		require.ErrorIs(t, repo.Add(ctx, o), memory.ErrDuplicateKey)
	})

	t.Run("should report missing orders", func(t *testing.T) {
		ctx := t.Context()
		repo := memory.NewOrderRepository(memory.NewStore())
		o := newOrder(t, createdAt)

		_, err := repo.Get(ctx, o.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		require.ErrorIs(t, repo.Update(ctx, o), errs.ErrObjectNotFound)
		require.ErrorIs(t, repo.Delete(ctx, o.ID()), errs.ErrObjectNotFound)
	})

	t.Run("should delete once", func(t *testing.T) {
		ctx := t.Context()
		store := memory.NewStore()
		repo := memory.NewOrderRepository(store)
		o := newOrder(t, createdAt)
		require.NoError(t, repo.Add(ctx, o))

		require.NoError(t, repo.Delete(ctx, o.ID()))
		require.ErrorIs(t, repo.Delete(ctx, o.ID()), errs.ErrObjectNotFound)
		assert.Zero(t, store.Len())
	})

	t.Run("should not leak later changes to stored orders", func(t *testing.T) {
		ctx := t.Context()
		repo := memory.NewOrderRepository(memory.NewStore())
		o := newOrder(t, createdAt)
		require.NoError(t, repo.Add(ctx, o))

		require.NoError(t, o.Cancel(createdAt))
		stored, err := repo.Get(ctx, o.ID())

		require.NoError(t, err)
		assert.Equal(t, order.Pending, stored.Status())
	})
}

func TestOrderRepository_Listing(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository(memory.NewStore())

	late := newOrder(t, createdAt.Add(time.Hour))
	early := newOrder(t, createdAt)
	dueSoon := newOrder(t, createdAt.Add(30*time.Minute))
	require.NoError(t, dueSoon.RequestCompletion(createdAt, time.Minute))
	dueLater := newOrder(t, createdAt.Add(10*time.Minute))
	require.NoError(t, dueLater.RequestCompletion(createdAt, 10*time.Minute))
	canceled := newOrder(t, createdAt)
	require.NoError(t, canceled.Cancel(createdAt))

	for _, o := range []*order.Order{late, early, dueSoon, dueLater, canceled} {
		require.NoError(t, repo.Add(ctx, o))
	}

	t.Run("should list active orders oldest first", func(t *testing.T) {
		active, err := repo.GetAllActive(ctx)

		require.NoError(t, err)
		require.Len(t, active, 4)
		assert.True(t, early.IsEqual(active[0]))
		assert.True(t, dueLater.IsEqual(active[1]))
		assert.True(t, dueSoon.IsEqual(active[2]))
		assert.True(t, late.IsEqual(active[3]))
	})

	t.Run("should list due orders by due time up to the limit", func(t *testing.T) {
		due, err := repo.GetAllDueForCompletion(ctx, createdAt.Add(10*time.Minute), 10)
		require.NoError(t, err)
		require.Len(t, due, 2)
		assert.True(t, dueSoon.IsEqual(due[0]))
		assert.True(t, dueLater.IsEqual(due[1]))

		limited, err := repo.GetAllDueForCompletion(ctx, createdAt.Add(10*time.Minute), 1)
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.True(t, dueSoon.IsEqual(limited[0]))

		none, err := repo.GetAllDueForCompletion(ctx, createdAt, 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestUnitOfWork(t *testing.T) {
	t.Run("should expose changes only after commit", func(t *testing.T) {
		ctx := t.Context()
		store := memory.NewStore()
		factory := memory.NewUnitOfWorkFactory(store)
		o := newOrder(t, createdAt)

		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.OrderRepository().Add(ctx, o))

		_, err := uow.OrderRepository().Get(ctx, o.ID())
		require.NoError(t, err, "own writes are visible inside the transaction")
		_, err = memory.NewOrderRepository(store).Get(ctx, o.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		require.NoError(t, uow.Commit(ctx))

		_, err = memory.NewOrderRepository(store).Get(ctx, o.ID())
		require.NoError(t, err)
	})

	t.Run("should discard changes on rollback", func(t *testing.T) {
		ctx := t.Context()
		store := memory.NewStore()
		repo := memory.NewOrderRepository(store)
		o := newOrder(t, createdAt)
		require.NoError(t, repo.Add(ctx, o))

		uow := memory.NewUnitOfWorkFactory(store).Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.OrderRepository().Delete(ctx, o.ID()))
		_, err := uow.OrderRepository().Get(ctx, o.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		active, err := uow.OrderRepository().GetAllActive(ctx)
		require.NoError(t, err)
		assert.Empty(t, active)

		require.NoError(t, uow.Rollback(ctx))

		_, err = repo.Get(ctx, o.ID())
		require.NoError(t, err)
	})

	t.Run("should list staged orders inside the transaction", func(t *testing.T) {
		ctx := t.Context()
		store := memory.NewStore()
		committed := newOrder(t, createdAt)
		require.NoError(t, memory.NewOrderRepository(store).Add(ctx, committed))

		uow := memory.NewUnitOfWorkFactory(store).Create()
		require.NoError(t, uow.Begin(ctx))
		defer func() { _ = uow.Rollback(ctx) }()

		staged := newOrder(t, createdAt.Add(time.Minute))
		require.NoError(t, uow.OrderRepository().Add(ctx, staged))
		require.NoError(t, committed.Cancel(createdAt))
		require.NoError(t, uow.OrderRepository().Update(ctx, committed))

		active, err := uow.OrderRepository().GetAllActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.True(t, staged.IsEqual(active[0]))
	})

	t.Run("should fail to close without a transaction", func(t *testing.T) {
		ctx := t.Context()
		uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()

		require.ErrorIs(t, uow.Commit(ctx), memory.ErrNoTransaction)
		require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoTransaction)

		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.Commit(ctx))
		require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoTransaction)
	})

	t.Run("should serialize units of work", func(t *testing.T) {
		ctx := t.Context()
		factory := memory.NewUnitOfWorkFactory(memory.NewStore())

		first := factory.Create()
		require.NoError(t, first.Begin(ctx))

		waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		second := factory.Create()
		require.ErrorIs(t, second.Begin(waitCtx), context.DeadlineExceeded)

		require.NoError(t, first.Rollback(ctx))
		require.NoError(t, second.Begin(ctx))
		require.NoError(t, second.Commit(ctx))
	})

	t.Run("should block autocommit writes while a transaction is open", func(t *testing.T) {
		ctx := t.Context()
		store := memory.NewStore()
		uow := memory.NewUnitOfWorkFactory(store).Create()
		require.NoError(t, uow.Begin(ctx))

		waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		err := memory.NewOrderRepository(store).Add(waitCtx, newOrder(t, createdAt))

		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.NoError(t, uow.Rollback(ctx))
	})
}
