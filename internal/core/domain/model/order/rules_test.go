package order_test

import (
	"math"
	"strings"
	"testing"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProductName(t *testing.T) {
	t.Run("should accept names at both length bounds", func(t *testing.T) {
		require.NoError(t, order.ValidateProductName("abcde"))
		require.NoError(t, order.ValidateProductName(strings.Repeat("x", 60)))
	})

	t.Run("should count characters rather than bytes", func(t *testing.T) {
		require.NoError(t, order.ValidateProductName("çàèìò"))
	})

	t.Run("should reject names outside the bounds", func(t *testing.T) {
		for _, name := range []string{"abcd", strings.Repeat("x", 61)} {
			err := order.ValidateProductName(name)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Contains(t, err.Error(), "productName")
		}
	})

	t.Run("should require a name", func(t *testing.T) {
		require.ErrorIs(t, order.ValidateProductName(""), errs.ErrValueIsRequired)
	})
}

func TestValidateProductPrice(t *testing.T) {
	require.NoError(t, order.ValidateProductPrice(decimal.Zero))
	require.NoError(t, order.ValidateProductPrice(decimal.RequireFromString("19.99")))

	err := order.ValidateProductPrice(decimal.RequireFromString("-0.01"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "greater than or equal to 0")
}

func TestQuantityFromNumber(t *testing.T) {
	t.Run("should accept positive integers", func(t *testing.T) {
		q, err := order.QuantityFromNumber(3)

		require.NoError(t, err)
		assert.Equal(t, 3, q)
	})

	t.Run("should reject fractions zero and negatives", func(t *testing.T) {
		for _, n := range []float64{2.5, 0, -1, 0.5, -1e20, math.Inf(-1), math.NaN()} {
			_, err := order.QuantityFromNumber(n)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, n)
			assert.Contains(t, err.Error(), "productQuantity")
		}
	})

	t.Run("should reject quantities beyond the int32 range", func(t *testing.T) {
		_, err := order.QuantityFromNumber(1e12)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
