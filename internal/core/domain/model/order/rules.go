package order

import (
	"fmt"
	"math"
	"unicode/utf8"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Field names reported in validation errors. They match the JSON names of the API.
const (
	FieldProductName     = "productName"
	FieldProductPrice    = "productPrice"
	FieldProductQuantity = "productQuantity"
)

const (
	ProductNameMinLength = 5
	ProductNameMaxLength = 60

	// ProductQuantityMax bounds quantities accepted from untyped numeric input.
	ProductQuantityMax = math.MaxInt32
)

// ValidateProductName checks the length in characters, not bytes.
func ValidateProductName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError(FieldProductName)
	}
	length := utf8.RuneCountInString(name)
	if length < ProductNameMinLength || length > ProductNameMaxLength {
		return errs.NewValueIsOutOfRangeError(FieldProductName+" length", length, ProductNameMinLength, ProductNameMaxLength)
	}
	return nil
}

func ValidateProductPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			FieldProductPrice,
			fmt.Errorf("%s needs to be greater than or equal to 0", price.String()),
		)
	}
	return nil
}

func ValidateProductQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			FieldProductQuantity,
			fmt.Errorf("%d needs to be an integer greater than 0", quantity),
		)
	}
	return nil
}

// QuantityFromNumber converts a JSON number into a quantity. Fractions, values
// below 1 and values beyond the int32 range are rejected before conversion.
func QuantityFromNumber(n float64) (int, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || n < 1 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			FieldProductQuantity,
			fmt.Errorf("%v needs to be an integer greater than 0", n),
		)
	}
	if n > ProductQuantityMax {
		return 0, errs.NewValueIsOutOfRangeError(FieldProductQuantity, n, 1, ProductQuantityMax)
	}
	return int(n), nil
}
