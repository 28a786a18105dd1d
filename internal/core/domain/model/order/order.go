package order

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCompletionNotDue is returned when finalizing before the scheduled due time.
	ErrCompletionNotDue = errors.New("order completion is not due yet")
)

// Order is the aggregate root of the orders domain. All fields are private and
// change only through lifecycle methods, which keep these invariants:
//   - canceled and completed are never both true
//   - a terminal order never changes again
//   - completionDate is set if and only if the order is terminal
//   - completionDueAt is set if and only if the order is Completing
type Order struct {
	id kernel.UUID

	productName     string
	productPrice    decimal.Decimal
	productQuantity int

	// customerID and supplierID are opaque references to other systems.
	customerID *string
	supplierID *string

	status Status

	creationDate    time.Time
	completionDate  *time.Time
	completionDueAt *time.Time

	isConstructed bool
}

// Option sets an optional attribute of a new order.
type Option func(*Order)

func WithCustomerID(customerID string) Option {
	return func(o *Order) {
		o.customerID = &customerID
	}
}

func WithSupplierID(supplierID string) Option {
	return func(o *Order) {
		o.supplierID = &supplierID
	}
}

// NewOrder creates a Pending order stamped with createdAt. Every violated field is
// reported in the returned *errs.ValidationError, in field order.
//
//	o, err := order.NewOrder(kernel.NewUUID(), "Mechanical keyboard", decimal.RequireFromString("89.90"), 2, time.Now(),
//	    order.WithCustomerID("c-17"))
func NewOrder(
	id kernel.UUID,
	productName string,
	productPrice decimal.Decimal,
	productQuantity int,
	createdAt time.Time,
	opts ...Option,
) (*Order, error) {
	var violations errs.FieldErrors
	violations.Check("id", id.Validate())
	violations.Check(FieldProductName, ValidateProductName(productName))
	violations.Check(FieldProductPrice, ValidateProductPrice(productPrice))
	violations.Check(FieldProductQuantity, ValidateProductQuantity(productQuantity))
	if createdAt.IsZero() {
		violations.Check("creationDate", errs.NewValueIsRequiredError("creationDate"))
	}
	if err := violations.Err(); err != nil {
		return nil, err
	}

	o := &Order{
		id:              id,
		productName:     productName,
		productPrice:    productPrice,
		productQuantity: productQuantity,
		status:          Pending,
		creationDate:    createdAt,
		isConstructed:   true,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// Snapshot is the persisted form of an order, used to rebuild the aggregate.
type Snapshot struct {
	ID              kernel.UUID
	ProductName     string
	ProductPrice    decimal.Decimal
	ProductQuantity int
	CustomerID      *string
	SupplierID      *string
	Status          Status
	CreationDate    time.Time
	CompletionDate  *time.Time
	CompletionDueAt *time.Time
}

// RestoreOrder rebuilds an order from storage, re-checking field rules and the
// consistency between status and timestamps.
func RestoreOrder(s Snapshot) (*Order, error) {
	var opts []Option
	if s.CustomerID != nil {
		opts = append(opts, WithCustomerID(*s.CustomerID))
	}
	if s.SupplierID != nil {
		opts = append(opts, WithSupplierID(*s.SupplierID))
	}

	o, err := NewOrder(s.ID, s.ProductName, s.ProductPrice, s.ProductQuantity, s.CreationDate, opts...)
	if err != nil {
		return nil, err
	}

	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	if s.Status.IsTerminal() != (s.CompletionDate != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"completionDate",
			fmt.Errorf("completion date does not match status %s", s.Status),
		)
	}
	if (s.Status == Completing) != (s.CompletionDueAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"completionDueAt",
			fmt.Errorf("completion due time does not match status %s", s.Status),
		)
	}

	o.status = s.Status
	o.completionDate = copyTime(s.CompletionDate)
	o.completionDueAt = copyTime(s.CompletionDueAt)
	return o, nil
}

// Snapshot captures the current state for persistence adapters.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:              o.id,
		ProductName:     o.productName,
		ProductPrice:    o.productPrice,
		ProductQuantity: o.productQuantity,
		CustomerID:      copyString(o.customerID),
		SupplierID:      copyString(o.supplierID),
		Status:          o.status,
		CreationDate:    o.creationDate,
		CompletionDate:  copyTime(o.completionDate),
		CompletionDueAt: copyTime(o.completionDueAt),
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) ProductName() string {
	return o.productName
}

func (o *Order) ProductPrice() decimal.Decimal {
	return o.productPrice
}

func (o *Order) ProductQuantity() int {
	return o.productQuantity
}

func (o *Order) CustomerID() *string {
	return copyString(o.customerID)
}

func (o *Order) SupplierID() *string {
	return copyString(o.supplierID)
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Canceled() bool {
	return o.status == Canceled
}

func (o *Order) Completed() bool {
	return o.status == Completed
}

func (o *Order) CreationDate() time.Time {
	return o.creationDate
}

// CompletionDate is nil until the order is completed or canceled.
func (o *Order) CompletionDate() *time.Time {
	return copyTime(o.completionDate)
}

// CompletionDueAt is non-nil only while the order is Completing.
func (o *Order) CompletionDueAt() *time.Time {
	return copyTime(o.completionDueAt)
}

// IsCompletionDue reports whether a scheduled completion may be finalized at now.
func (o *Order) IsCompletionDue(now time.Time) bool {
	return o.status == Completing && o.completionDueAt != nil && !now.Before(*o.completionDueAt)
}

// Cancel moves a Pending or Completing order to Canceled and drops any scheduled completion.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return o.conflict("cannot be canceled", err)
	}

	o.status = newStatus
	o.completionDate = &now
	o.completionDueAt = nil
	return nil
}

// RequestCompletion schedules completion at now+delay. The order stays non-terminal
// until FinalizeCompletion runs.
func (o *Order) RequestCompletion(now time.Time, delay time.Duration) error {
	if delay < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delay", fmt.Errorf("%s is negative", delay))
	}

	newStatus, err := o.status.RequestCompletion()
	if err != nil {
		return o.conflict("cannot be completed", err)
	}

	due := now.Add(delay)
	o.status = newStatus
	o.completionDueAt = &due
	return nil
}

// FinalizeCompletion applies a scheduled completion. It re-checks the lifecycle
// guards so that a cancel committed in the meantime wins.
func (o *Order) FinalizeCompletion(now time.Time) error {
	newStatus, err := o.status.FinalizeCompletion()
	if err != nil {
		return o.conflict("cannot be completed", err)
	}
	if !o.IsCompletionDue(now) {
		return o.conflict("cannot be completed", ErrCompletionNotDue)
	}

	o.status = newStatus
	o.completionDate = &now
	o.completionDueAt = nil
	return nil
}

func (o *Order) conflict(reason string, cause error) error {
	return errs.NewStateConflictErrorWithCause("order", o.id.String(), reason, cause)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
