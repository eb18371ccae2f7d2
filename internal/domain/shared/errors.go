package shared

import "fmt"

// ErrorKind classifies application errors for transport-level mapping.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
)

// AppError is the common error type returned by domain and application code.
type AppError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError creates an error for invalid caller input.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(entity, identifier string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", entity, identifier),
	}
}

// NewConflictError creates an error for a concurrent-modification conflict.
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}
