package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionKind distinguishes the three kinds of study session.
type SessionKind string

const (
	SessionKindLearning SessionKind = "learning"
	SessionKindQuiz     SessionKind = "quiz"
	SessionKindReview   SessionKind = "review"
)

// IsValid reports whether k is a known session kind.
func (k SessionKind) IsValid() bool {
	switch k {
	case SessionKindLearning, SessionKindQuiz, SessionKindReview:
		return true
	}
	return false
}

// StudySession records one bounded sequence of word presentations.
// Once IsCompleted is set the session is sealed and must not be mutated.
type StudySession struct {
	ID             uuid.UUID   `json:"id"`
	Kind           SessionKind `json:"kind"`
	StartTime      time.Time   `json:"start_time"`
	EndTime        *time.Time  `json:"end_time,omitempty"`
	Words          []string    `json:"words"`
	WordsStudied   int         `json:"words_studied"`
	CorrectAnswers int         `json:"correct_answers"`
	TotalQuestions int         `json:"total_questions"`
	IsCompleted    bool        `json:"is_completed"`
}

// NewStudySession creates an open session over the given headwords.
func NewStudySession(kind SessionKind, words []string, now time.Time) (*StudySession, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidSessionKind
	}
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}

	list := make([]string, len(words))
	copy(list, words)

	return &StudySession{
		ID:             uuid.New(),
		Kind:           kind,
		StartTime:      now,
		Words:          list,
		TotalQuestions: len(list),
	}, nil
}

// Validate checks the session counters and the completion invariant.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil || !s.Kind.IsValid() {
		return ErrInvalidSession
	}
	if s.WordsStudied < 0 || s.CorrectAnswers < 0 || s.TotalQuestions < 0 {
		return ErrInvalidSession
	}
	if s.WordsStudied > s.TotalQuestions || s.CorrectAnswers > s.WordsStudied {
		return ErrInvalidSession
	}
	if (s.EndTime != nil) != s.IsCompleted {
		return ErrInvalidSession
	}
	return nil
}

// Complete seals the session at now. Completing twice keeps the first end time.
func (s *StudySession) Complete(now time.Time) {
	if s.IsCompleted {
		return
	}
	end := now
	s.EndTime = &end
	s.IsCompleted = true
}

// Accuracy is the share of planned questions answered correctly.
func (s *StudySession) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalQuestions)
}

// Duration is EndTime - StartTime, or zero for an open session.
func (s *StudySession) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Clone returns a deep copy of the session.
func (s *StudySession) Clone() *StudySession {
	c := *s
	c.Words = append([]string(nil), s.Words...)
	if s.EndTime != nil {
		t := *s.EndTime
		c.EndTime = &t
	}
	return &c
}
