package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used to classify domain failures. Handlers map these to
// HTTP status codes; everything else is treated as an internal error.
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidState        = errors.New("invalid state")
	ErrUnsupportedProvider = errors.New("unsupported provider")
)

// DomainError wraps a sentinel error with a human-readable message.
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports that an entity could not be located.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s %s not found", entity, id),
	}
}

// NewConflictError reports a concurrent-modification or uniqueness conflict.
func NewConflictError(message string) *DomainError {
	return &DomainError{Err: ErrConflict, Message: message}
}

// NewValidationError reports invalid input data.
func NewValidationError(message string) *DomainError {
	return &DomainError{Err: ErrValidation, Message: message}
}

// NewInvalidStateError reports a status value that is not part of the closed
// status set. This is a configuration defect, not a domain condition.
func NewInvalidStateError(status string) *DomainError {
	return &DomainError{
		Err:     ErrInvalidState,
		Message: fmt.Sprintf("status %q is not registered", status),
	}
}

// NewUnsupportedProviderError reports a payment provider name that matches no
// configured processor.
func NewUnsupportedProviderError(provider string) *DomainError {
	return &DomainError{
		Err:     ErrUnsupportedProvider,
		Message: fmt.Sprintf("payment provider %q is not supported", provider),
	}
}
