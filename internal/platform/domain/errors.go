package domain

import "fmt"

// ValidationError is returned when input fails a domain rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// NotFoundError is returned when an entity does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// InvalidStateError is returned for a disallowed state transition.
type InvalidStateError struct {
	From string
	To   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewInvalidStateError creates an InvalidStateError.
func NewInvalidStateError(from, to string) *InvalidStateError {
	return &InvalidStateError{From: from, To: to}
}
