package errs

import (
	"errors"
	"fmt"
)

var ErrStateConflict = errors.New("state conflict")

// StateConflictError reports an operation rejected because of the current
// lifecycle state of an object, e.g. canceling an order that is already completed.
type StateConflictError struct {
	ParamName string
	ID        any
	Reason    string
	Cause     error
}

func NewStateConflictError(paramName string, id any, reason string) *StateConflictError {
	return &StateConflictError{
		ParamName: paramName,
		ID:        id,
		Reason:    reason,
	}
}

func NewStateConflictErrorWithCause(paramName string, id any, reason string, cause error) *StateConflictError {
	return &StateConflictError{
		ParamName: paramName,
		ID:        id,
		Reason:    reason,
		Cause:     cause,
	}
}

func (e *StateConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %v: %s", ErrStateConflict, e.ParamName, e.ID, e.Reason)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap exposes ErrStateConflict and, when present, the cause.
func (e *StateConflictError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrStateConflict, e.Cause}
	}
	return []error{ErrStateConflict}
}
