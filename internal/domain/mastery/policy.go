// Package mastery holds the pure rules deciding whether a word is learned,
// due for review or difficult. Nothing here performs I/O or keeps state
// beyond its Params.
package mastery

import (
	"errors"
	"time"

	"github.com/phrazzld/lexis/internal/domain"
)

// ErrNilWord is returned when a nil word is passed to RecordAnswer.
var ErrNilWord = errors.New("mastery: word cannot be nil")

// Policy defines the mastery decisions used by the selector and the runner.
type Policy interface {
	// RecordAnswer returns an updated copy of w reflecting one answer.
	RecordAnswer(w *domain.Word, correct bool, now time.Time) (*domain.Word, error)

	// IsDueForReview reports whether a learned word should reappear.
	IsDueForReview(w *domain.Word, now time.Time) bool

	// IsDifficult reports whether a studied word has low accuracy.
	IsDifficult(w *domain.Word) bool

	// Params exposes the thresholds in use.
	Params() Params
}

type defaultPolicy struct {
	params *Params
}

// NewDefaultPolicy creates a policy with NewDefaultParams.
func NewDefaultPolicy() Policy {
	return &defaultPolicy{params: NewDefaultParams()}
}

// NewPolicyWithParams creates a policy with custom thresholds.
func NewPolicyWithParams(params *Params) Policy {
	return &defaultPolicy{params: params}
}

func (p *defaultPolicy) RecordAnswer(w *domain.Word, correct bool, now time.Time) (*domain.Word, error) {
	if w == nil {
		return nil, ErrNilWord
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return recordAnswer(w, correct, now, p.params), nil
}

func (p *defaultPolicy) IsDueForReview(w *domain.Word, now time.Time) bool {
	if w == nil {
		return false
	}
	return isDueForReview(w, now, p.params)
}

func (p *defaultPolicy) IsDifficult(w *domain.Word) bool {
	if w == nil {
		return false
	}
	return isDifficult(w, p.params)
}

func (p *defaultPolicy) Params() Params {
	return *p.params
}
