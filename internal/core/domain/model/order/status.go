package order

import (
	"errors"
	"fmt"

	"orders/internal/pkg/errs"
)

var (
	ErrAlreadyCompleted       = errors.New("order already completed")
	ErrAlreadyCanceled        = errors.New("order is canceled")
	ErrCompletionInProgress   = errors.New("order completion already in progress")
	ErrCompletionNotRequested = errors.New("order completion was not requested")
)

// Status is the position of an order in its lifecycle.
//
//	Pending ──RequestCompletion──▶ Completing ──FinalizeCompletion──▶ Completed
//	   │                              │
//	   └────────────Cancel────────────┴──────────▶ Canceled
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Pending is the initial status of every new order.
	Pending

	// Completing means completion was requested and is waiting for its due time.
	Completing

	// Completed is terminal.
	Completed

	// Canceled is terminal.
	Canceled
)

var statusNames = map[Status]string{
	Unknown:    "unknown",
	Pending:    "pending",
	Completing: "completing",
	Completed:  "completed",
	Canceled:   "canceled",
}

// DeriveStatus rebuilds a status from the persisted flags of an order.
func DeriveStatus(canceled, completed, completionScheduled bool) Status {
	switch {
	case canceled && completed:
		return Unknown
	case canceled:
		return Canceled
	case completed:
		return Completed
	case completionScheduled:
		return Completing
	default:
		return Pending
	}
}

func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return statusNames[Unknown]
}

func (s Status) Validate() error {
	switch s {
	case Pending, Completing, Completed, Canceled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// Cancel is allowed from Pending and Completing.
func (s Status) Cancel() (Status, error) {
	if err := s.terminalGuard(); err != nil {
		return Unknown, err
	}
	return Canceled, nil
}

// RequestCompletion is allowed from Pending only.
func (s Status) RequestCompletion() (Status, error) {
	if err := s.terminalGuard(); err != nil {
		return Unknown, err
	}
	if s == Completing {
		return Unknown, ErrCompletionInProgress
	}
	return Completing, nil
}

// FinalizeCompletion is allowed from Completing only.
func (s Status) FinalizeCompletion() (Status, error) {
	if err := s.terminalGuard(); err != nil {
		return Unknown, err
	}
	if s != Completing {
		return Unknown, ErrCompletionNotRequested
	}
	return Completed, nil
}

func (s Status) terminalGuard() error {
	switch s {
	case Completed:
		return ErrAlreadyCompleted
	case Canceled:
		return ErrAlreadyCanceled
	case Pending, Completing:
		return nil
	default:
		return s.Validate()
	}
}
