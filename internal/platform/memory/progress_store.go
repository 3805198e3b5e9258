package memory

import (
	"context"
	"sync"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/store"
)

// ProgressStore implements store.ProgressStore holding a single record.
type ProgressStore struct {
	mu       sync.RWMutex
	progress *domain.UserProgress
}

var _ store.ProgressStore = (*ProgressStore)(nil)

// NewProgressStore creates an empty ProgressStore.
func NewProgressStore() *ProgressStore {
	return &ProgressStore{}
}

func (s *ProgressStore) LoadCurrent(_ context.Context) (*domain.UserProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.progress == nil {
		return nil, store.ErrProgressNotFound
	}
	return s.progress.Clone(), nil
}

func (s *ProgressStore) Save(_ context.Context, progress *domain.UserProgress) error {
	if err := progress.Validate(); err != nil {
		return store.NewStoreError("user_progress", "save", "invalid progress", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress != nil {
		return store.ErrProgressExists
	}
	s.progress = progress.Clone()
	return nil
}

func (s *ProgressStore) Update(_ context.Context, progress *domain.UserProgress) error {
	if err := progress.Validate(); err != nil {
		return store.NewStoreError("user_progress", "update", "invalid progress", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress == nil || s.progress.ID != progress.ID {
		return store.ErrProgressNotFound
	}
	s.progress = progress.Clone()
	return nil
}
