package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks input that failed declared field constraints.
	// The concrete error is a ValidationErrors value.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a lookup by key matches zero rows.
	ErrNotFound = errors.New("record not found")

	// ErrQuery marks any persistence-layer failure. The concrete error is a *QueryError.
	ErrQuery = errors.New("query failed")

	// ErrUnknownEntity is returned for an entity name that is not registered.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrUnknownOptionList is returned for an option list name that is not registered.
	ErrUnknownOptionList = errors.New("unknown option list")
)

// FieldError is a single per-field validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the list of field errors for one request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is reports ValidationErrors as ErrValidation.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// QueryError wraps a gateway error with the operation that failed.
type QueryError struct {
	Op  string // "count", "select", "insert", "update", "delete"
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is reports a QueryError as ErrQuery.
func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}

// queryErr wraps err as a QueryError unless it is nil or already one.
func queryErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	return &QueryError{Op: op, Err: err}
}

// invalid builds a single-field ValidationErrors.
func invalid(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}
