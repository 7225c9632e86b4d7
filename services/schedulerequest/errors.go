package schedulerequest

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden = errors.New("not allowed to perform this action")
	// ErrTerminal is wrapped by the ValidationError returned for approve/reject
	// of a request that is already approved or rejected.
	ErrTerminal = errors.New("schedule request is already final")
)

// ValidationError is a local check that failed before any network call.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}
