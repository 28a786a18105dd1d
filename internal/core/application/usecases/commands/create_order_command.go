package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Field names of the optional references, as reported in validation errors.
const (
	FieldCustomerID = "customerID"
	FieldSupplierID = "supplierID"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderInput carries the request values as decoded from JSON: nil for
// absent or null fields, string, float64 or json.Number otherwise. Values of the
// wrong type are reported as violations of their field, like any other rule.
type CreateOrderInput struct {
	ProductName     any
	ProductPrice    any
	ProductQuantity any
	CustomerID      any
	SupplierID      any
}

// CreateOrderCommand represents a request to register a new order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, CreateOrderInput{
//	    ProductName:     "Mechanical keyboard",
//	    ProductPrice:    89.9,
//	    ProductQuantity: 2.0,
//	})
//	if err != nil {
//	    return err // *errs.ValidationError listing every bad field
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	productName     string
	productPrice    decimal.Decimal
	productQuantity int
	customerID      *string
	supplierID      *string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field of input and reports all
// violations together, in productName, productPrice, productQuantity,
// customerID, supplierID order.
func NewCreateOrderCommand(orderID kernel.UUID, input CreateOrderInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	var violations errs.FieldErrors
	violations.Check("id", cmd.setOrderID(orderID))
	violations.Check(order.FieldProductName, cmd.setProductName(input.ProductName))
	violations.Check(order.FieldProductPrice, cmd.setProductPrice(input.ProductPrice))
	violations.Check(order.FieldProductQuantity, cmd.setProductQuantity(input.ProductQuantity))
	violations.Check(FieldCustomerID, setReference(&cmd.customerID, FieldCustomerID, input.CustomerID))
	violations.Check(FieldSupplierID, setReference(&cmd.supplierID, FieldSupplierID, input.SupplierID))
	if err := violations.Err(); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) ProductName() string {
	return c.productName
}

func (c CreateOrderCommand) ProductPrice() decimal.Decimal {
	return c.productPrice
}

func (c CreateOrderCommand) ProductQuantity() int {
	return c.productQuantity
}

func (c CreateOrderCommand) CustomerID() *string {
	return c.customerID
}

func (c CreateOrderCommand) SupplierID() *string {
	return c.supplierID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setProductName(raw any) error {
	if raw == nil {
		return errs.NewValueIsRequiredError(order.FieldProductName)
	}
	name, ok := raw.(string)
	if !ok {
		return typeMismatch(order.FieldProductName, raw, "a string")
	}
	if err := order.ValidateProductName(name); err != nil {
		return err
	}

	c.productName = name
	return nil
}

func (c *CreateOrderCommand) setProductPrice(raw any) error {
	if raw == nil {
		return errs.NewValueIsRequiredError(order.FieldProductPrice)
	}
	price, ok := decimalFrom(raw)
	if !ok {
		return typeMismatch(order.FieldProductPrice, raw, "a number")
	}
	if err := order.ValidateProductPrice(price); err != nil {
		return err
	}

	c.productPrice = price
	return nil
}

func (c *CreateOrderCommand) setProductQuantity(raw any) error {
	if raw == nil {
		return errs.NewValueIsRequiredError(order.FieldProductQuantity)
	}
	n, ok := floatFrom(raw)
	if !ok {
		return typeMismatch(order.FieldProductQuantity, raw, "a number")
	}
	quantity, err := order.QuantityFromNumber(n)
	if err != nil {
		return err
	}

	c.productQuantity = quantity
	return nil
}

// setReference stores an optional opaque id. Absent and null leave it unset.
func setReference(dst **string, field string, raw any) error {
	if raw == nil {
		return nil
	}
	id, ok := raw.(string)
	if !ok {
		return typeMismatch(field, raw, "a string")
	}

	*dst = &id
	return nil
}

// decimalFrom casts JSON numbers and numeric strings, so "9.99" is a price.
func decimalFrom(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

func floatFrom(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func typeMismatch(field string, raw any, want string) error {
	return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%s needs to be %s, got %s", field, want, jsonKind(raw)))
}

func jsonKind(raw any) string {
	switch raw.(type) {
	case bool:
		return "a boolean"
	case string:
		return "a string"
	case float64, int, json.Number:
		return "a number"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
