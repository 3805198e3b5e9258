package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert would violate a unique key.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or violates a database constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction cannot commit.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrWordNotFound     = fmt.Errorf("%w: word", ErrNotFound)
	ErrSessionNotFound  = fmt.Errorf("%w: study session", ErrNotFound)
	ErrProgressNotFound = fmt.Errorf("%w: user progress", ErrNotFound)

	ErrSessionExists  = fmt.Errorf("%w: study session", ErrDuplicate)
	ErrProgressExists = fmt.Errorf("%w: user progress", ErrDuplicate)
)

// StoreError adds entity and operation context to a backend failure.
type StoreError struct {
	Entity    string // e.g. "word", "study_session"
	Operation string // e.g. "save", "find_recent"
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
