package errs

import (
	"errors"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// FieldError ties a single violation to the input field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e FieldError) Error() string {
	return e.Err.Error()
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// FieldErrors collects violations in the order they were checked.
//
//	var violations errs.FieldErrors
//	violations.Check("productName", validateName(name))
//	violations.Check("productPrice", validatePrice(price))
//	if err := violations.Err(); err != nil {
//	    return err
//	}
type FieldErrors []FieldError

// Check records err against field when err is not nil.
func (f *FieldErrors) Check(field string, err error) {
	if err == nil {
		return
	}
	*f = append(*f, FieldError{Field: field, Err: err})
}

// Err returns a *ValidationError holding every recorded violation, or nil when there are none.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	fields := make([]FieldError, len(f))
	copy(fields, f)
	return &ValidationError{Fields: fields}
}

// ValidationError is the aggregate of all field violations found while validating one input.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Error joins the field messages with newlines, one violation per line.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return strings.Join(msgs, "\n")
}

// FieldNames lists the violated fields in check order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

// Unwrap exposes ErrValidation and every field cause to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields)+1)
	errs = append(errs, ErrValidation)
	for _, f := range e.Fields {
		errs = append(errs, f.Err)
	}
	return errs
}
