package order_test

import (
	"strings"
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "Widget Pro", decimal.RequireFromString("9.99"), 2, createdAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create a pending order", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, "Widget Pro", decimal.RequireFromString("9.99"), 2, createdAt,
			order.WithCustomerID("c-1"), order.WithSupplierID("s-1"))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "Widget Pro", o.ProductName())
		assert.True(t, decimal.RequireFromString("9.99").Equal(o.ProductPrice()))
		assert.Equal(t, 2, o.ProductQuantity())
		assert.Equal(t, order.Pending, o.Status())
		assert.False(t, o.Canceled())
		assert.False(t, o.Completed())
		assert.Equal(t, createdAt, o.CreationDate())
		assert.Nil(t, o.CompletionDate())
		assert.Nil(t, o.CompletionDueAt())
		assert.Equal(t, "c-1", *o.CustomerID())
		assert.Equal(t, "s-1", *o.SupplierID())
	})

	t.Run("should leave optional parties empty", func(t *testing.T) {
		o := newPendingOrder(t)

		assert.Nil(t, o.CustomerID())
		assert.Nil(t, o.SupplierID())
	})

	t.Run("should accept a zero price", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "Free sample", decimal.Zero, 1, createdAt)

		require.NoError(t, err)
	})

	t.Run("should stamp each order with its own creation date", func(t *testing.T) {
		later := createdAt.Add(time.Minute)

		first, err := order.NewOrder(kernel.NewUUID(), "Widget Pro", decimal.NewFromInt(1), 1, createdAt)
		require.NoError(t, err)
		second, err := order.NewOrder(kernel.NewUUID(), "Widget Pro", decimal.NewFromInt(1), 1, later)
		require.NoError(t, err)

		assert.NotEqual(t, first.CreationDate(), second.CreationDate())
	})

	t.Run("should collect every violated field in order", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "ab", decimal.NewFromInt(-1), 0, createdAt)

		require.Error(t, err)
		assert.Nil(t, o)

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t,
			[]string{order.FieldProductName, order.FieldProductPrice, order.FieldProductQuantity},
			validationErr.FieldNames())
		assert.Len(t, strings.Split(err.Error(), "\n"), 3)
	})

	t.Run("should report a single violated field", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "Widget Pro", decimal.NewFromInt(-5), 1, createdAt)

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{order.FieldProductPrice}, validationErr.FieldNames())
	})

	t.Run("should reject a zero id and a missing creation date", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "Widget Pro", decimal.NewFromInt(1), 1, time.Time{})

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"id", "creationDate"}, validationErr.FieldNames())
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail for nil order", func(t *testing.T) {
		var o *order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should fail for zero value order", func(t *testing.T) {
		var o order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_Cancel(t *testing.T) {
	now := createdAt.Add(time.Hour)

	t.Run("should cancel a pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Cancel(now))

		assert.Equal(t, order.Canceled, o.Status())
		assert.True(t, o.Canceled())
		assert.False(t, o.Completed())
		require.NotNil(t, o.CompletionDate())
		assert.Equal(t, now, *o.CompletionDate())
	})

	t.Run("should cancel an order waiting for completion", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.RequestCompletion(now, 5*time.Second))

		require.NoError(t, o.Cancel(now.Add(time.Second)))

		assert.True(t, o.Canceled())
		assert.Nil(t, o.CompletionDueAt())
	})

	t.Run("should reject canceling twice", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Cancel(now))
		firstDate := *o.CompletionDate()

		err := o.Cancel(now.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrStateConflict)
		require.ErrorIs(t, err, order.ErrAlreadyCanceled)
		assert.Equal(t, firstDate, *o.CompletionDate())
	})

	t.Run("should reject canceling a completed order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.RequestCompletion(now, 0))
		require.NoError(t, o.FinalizeCompletion(now))

		err := o.Cancel(now)

		require.ErrorIs(t, err, order.ErrAlreadyCompleted)
		assert.False(t, o.Canceled())
		assert.True(t, o.Completed())
	})
}

func TestOrder_Completion(t *testing.T) {
	now := createdAt.Add(time.Hour)
	delay := 5 * time.Second

	t.Run("should schedule completion without completing", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.RequestCompletion(now, delay))

		assert.Equal(t, order.Completing, o.Status())
		assert.False(t, o.Completed())
		assert.Nil(t, o.CompletionDate())
		require.NotNil(t, o.CompletionDueAt())
		assert.Equal(t, now.Add(delay), *o.CompletionDueAt())
	})

	t.Run("should reject a second completion request", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.RequestCompletion(now, delay))

		err := o.RequestCompletion(now, delay)

		require.ErrorIs(t, err, order.ErrCompletionInProgress)
	})

	t.Run("should reject completing a canceled order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Cancel(now))

		err := o.RequestCompletion(now, delay)

		require.ErrorIs(t, err, order.ErrAlreadyCanceled)
		assert.False(t, o.Completed())
	})

	t.Run("should reject a negative delay", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.RequestCompletion(now, -time.Second)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should not finalize before the due time", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.RequestCompletion(now, delay))

		assert.False(t, o.IsCompletionDue(now.Add(delay-time.Millisecond)))
		err := o.FinalizeCompletion(now.Add(delay - time.Millisecond))

		require.ErrorIs(t, err, order.ErrCompletionNotDue)
		assert.Equal(t, order.Completing, o.Status())
	})

	t.Run("should finalize once due", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.RequestCompletion(now, delay))
		finishedAt := now.Add(delay)

		require.True(t, o.IsCompletionDue(finishedAt))
		require.NoError(t, o.FinalizeCompletion(finishedAt))

		assert.True(t, o.Completed())
		assert.False(t, o.Canceled())
		assert.Equal(t, finishedAt, *o.CompletionDate())
		assert.Nil(t, o.CompletionDueAt())
	})

	t.Run("should not finalize an order canceled during the delay", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.RequestCompletion(now, delay))
		require.NoError(t, o.Cancel(now.Add(time.Second)))

		err := o.FinalizeCompletion(now.Add(delay))

		require.ErrorIs(t, err, order.ErrAlreadyCanceled)
		assert.True(t, o.Canceled())
		assert.False(t, o.Completed())
	})

	t.Run("should not finalize without a request", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.FinalizeCompletion(now)

		require.ErrorIs(t, err, order.ErrCompletionNotRequested)
	})
}

func TestRestoreOrder(t *testing.T) {
	completedAt := createdAt.Add(time.Hour)
	base := order.Snapshot{
		ID:              kernel.NewUUID(),
		ProductName:     "Widget Pro",
		ProductPrice:    decimal.RequireFromString("10.50"),
		ProductQuantity: 3,
		CreationDate:    createdAt,
	}

	t.Run("should restore every lifecycle state", func(t *testing.T) {
		pending := base
		pending.Status = order.Pending

		completing := base
		completing.Status = order.Completing
		completing.CompletionDueAt = &completedAt

		completed := base
		completed.Status = order.Completed
		completed.CompletionDate = &completedAt

		for _, s := range []order.Snapshot{pending, completing, completed} {
			o, err := order.RestoreOrder(s)

			require.NoError(t, err, s.Status.String())
			assert.Equal(t, s.Status, o.Status())
			require.NoError(t, o.Validate())
		}
	})

	t.Run("should reject a terminal status without completion date", func(t *testing.T) {
		s := base
		s.Status = order.Canceled

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a completing status without due time", func(t *testing.T) {
		s := base
		s.Status = order.Completing

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject invalid fields", func(t *testing.T) {
		s := base
		s.Status = order.Pending
		s.ProductQuantity = -1

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestOrder_Snapshot(t *testing.T) {
	t.Run("should restore an equivalent order from its snapshot", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "Widget Pro", decimal.RequireFromString("3.30"), 4, createdAt,
			order.WithSupplierID("s-9"))
		require.NoError(t, err)
		require.NoError(t, o.RequestCompletion(createdAt, time.Second))

		restored, err := order.RestoreOrder(o.Snapshot())

		require.NoError(t, err)
		assert.Equal(t, o.Snapshot(), restored.Snapshot())
	})
}

func TestOrder_IsEqual(t *testing.T) {
	o1 := newPendingOrder(t)
	o2 := newPendingOrder(t)

	assert.True(t, o1.IsEqual(o1))
	assert.False(t, o1.IsEqual(o2))
	assert.False(t, o1.IsEqual(nil))
}
