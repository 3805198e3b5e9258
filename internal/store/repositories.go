package store

import (
	"context"

	"github.com/phrazzld/lexis/internal/domain"
)

// WordStore persists words and their learning statistics.
type WordStore interface {
	// LoadAll returns every stored word ordered by headword.
	LoadAll(ctx context.Context) ([]*domain.Word, error)

	// Save inserts the word or replaces the stored row with the same headword.
	Save(ctx context.Context, word *domain.Word) error

	// SaveBatch saves every word atomically where the backend supports it.
	SaveBatch(ctx context.Context, words []*domain.Word) error

	// Delete removes a single word. Returns ErrWordNotFound if absent.
	Delete(ctx context.Context, headword string) error

	// DeleteAll removes every word.
	DeleteAll(ctx context.Context) error

	Count(ctx context.Context) (int, error)

	// Search matches query case-insensitively against headword,
	// translation and part of speech.
	Search(ctx context.Context, query string) ([]*domain.Word, error)
}

// SessionStore persists study sessions.
type SessionStore interface {
	// Save inserts a new session. Returns ErrSessionExists on a duplicate ID.
	Save(ctx context.Context, session *domain.StudySession) error

	// Update replaces a stored session. Returns ErrSessionNotFound if absent.
	Update(ctx context.Context, session *domain.StudySession) error

	// FindRecent returns up to limit sessions, most recent start time first.
	FindRecent(ctx context.Context, limit int) ([]*domain.StudySession, error)
}

// ProgressStore persists the singleton progress record.
type ProgressStore interface {
	// LoadCurrent returns the progress record or ErrProgressNotFound.
	LoadCurrent(ctx context.Context) (*domain.UserProgress, error)

	// Save inserts the progress record. Returns ErrProgressExists on a duplicate ID.
	Save(ctx context.Context, progress *domain.UserProgress) error

	// Update replaces the stored record. Returns ErrProgressNotFound if absent.
	Update(ctx context.Context, progress *domain.UserProgress) error
}
