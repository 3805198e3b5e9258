package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/lexis/internal/domain"
)

var (
	// ErrWordNotFound is returned when an operation names a headword that is
	// not in the word store. API layer should map this to 404.
	ErrWordNotFound = errors.New("word not found")

	// ErrNoCurrentWord is returned when a question is requested but no
	// session is positioned on a word.
	ErrNoCurrentWord = fmt.Errorf("%w: no current word", domain.ErrData)

	// ErrWordInSession is returned when deleting a word the running session
	// still presents.
	ErrWordInSession = fmt.Errorf("%w: word is part of the running session", domain.ErrData)
)

// ServiceError wraps a failure with the operation that produced it.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("learning service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("learning service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
