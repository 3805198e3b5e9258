package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the scheduler core wraps exactly one of
// these, so callers can branch with errors.Is without knowing the specifics.
var (
	// ErrValidation is returned when input or configuration is invalid,
	// for example an empty word list or a malformed word.
	ErrValidation = errors.New("validation failed")

	// ErrData is returned when an operation is attempted against a session
	// that is not in a state to accept it.
	ErrData = errors.New("invalid session state")

	// ErrEmptySelection is returned when no candidate words are available.
	ErrEmptySelection = errors.New("no words available for selection")

	// ErrRepository marks failures surfaced from a persistence collaborator.
	ErrRepository = errors.New("repository failure")
)

// Specific errors, each wrapping one of the kinds above.
var (
	ErrEmptyHeadword       = fmt.Errorf("%w: headword cannot be empty", ErrValidation)
	ErrEmptyTranslation    = fmt.Errorf("%w: translation cannot be empty", ErrValidation)
	ErrInvalidDifficulty   = fmt.Errorf("%w: difficulty must be between 1 and 5", ErrValidation)
	ErrNegativeCount       = fmt.Errorf("%w: learning statistics cannot be negative", ErrValidation)
	ErrCorrectExceedsTotal = fmt.Errorf("%w: correct count exceeds learning count", ErrValidation)
	ErrDuplicateWord       = fmt.Errorf("%w: word already exists", ErrValidation)
	ErrUnknownWord         = fmt.Errorf("%w: word not found", ErrValidation)
	ErrEmptyWordList       = fmt.Errorf("%w: session requires at least one word", ErrValidation)
	ErrInvalidSessionKind  = fmt.Errorf("%w: invalid session kind", ErrValidation)
	ErrInvalidSession      = fmt.Errorf("%w: invalid session", ErrValidation)
	ErrInvalidProgress     = fmt.Errorf("%w: invalid progress", ErrValidation)

	ErrNoActiveSession = fmt.Errorf("%w: no active session", ErrData)
	ErrSessionPaused   = fmt.Errorf("%w: session is paused", ErrData)
)

// RepositoryError wraps a failure returned by a persistence collaborator.
// The wrapped error is opaque to the core; it is only surfaced.
type RepositoryError struct {
	Operation string
	Err       error
}

// NewRepositoryError wraps err, returning nil when err is nil.
func NewRepositoryError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &RepositoryError{Operation: operation, Err: err}
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s failed: %v", e.Operation, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrRepository so the kind survives wrapping.
func (e *RepositoryError) Is(target error) bool {
	return target == ErrRepository
}
