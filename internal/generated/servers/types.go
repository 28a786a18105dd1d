// Package servers holds the HTTP contract of the orders API: wire types, the
// server interface with its echo bindings, and the OpenAPI document they follow.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for OrderStatus.
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusCompleting OrderStatus = "completing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// DeletedOrder defines model for DeletedOrder.
type DeletedOrder struct {
	Id      string `json:"id"`
	Message string `json:"message"`
}

// Error defines model for Error.
type Error struct {
	Code    int          `json:"code"`
	Errors  []FieldError `json:"errors,omitempty"`
	Message string       `json:"message"`
}

// FieldError defines model for FieldError.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewOrder defines model for NewOrder. Fields are decoded untyped so that a
// value of the wrong JSON type becomes a violation of its own field instead of
// failing the whole body; absent and null fields stay nil.
type NewOrder struct {
	CustomerID      any `json:"customerID,omitempty"`
	ProductName     any `json:"productName,omitempty"`
	ProductPrice    any `json:"productPrice,omitempty"`
	ProductQuantity any `json:"productQuantity,omitempty"`
	SupplierID      any `json:"supplierID,omitempty"`
}

// Order defines model for Order.
type Order struct {
	Canceled        bool               `json:"canceled"`
	Completed       bool               `json:"completed"`
	CompletionDate  *time.Time         `json:"completionDate"`
	CompletionDueAt *time.Time         `json:"completionDueAt,omitempty"`
	CreationDate    time.Time          `json:"creationDate"`
	CustomerID      *string            `json:"customerID,omitempty"`
	Id              openapi_types.UUID `json:"id"`
	ProductName     string             `json:"productName"`
	ProductPrice    float64            `json:"productPrice"`
	ProductQuantity int                `json:"productQuantity"`
	Status          OrderStatus        `json:"status"`
	SupplierID      *string            `json:"supplierID,omitempty"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder
