package errs

import (
	"errors"
	"fmt"
)

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrInvalid  = errors.New("invalid")
)

// ValidationError reports one rejected request field. The boundary surfaces
// these as structured per-field descriptors; the core never produces them,
// its coercions are not errors.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// NewValidation builds a ValidationError with the standard code.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Code: "validation_error", Message: message}
}

// NotFoundError identifies a missing resource. A malformed identifier is
// reported the same way as an unknown one.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound builds a NotFoundError for the named resource.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}
