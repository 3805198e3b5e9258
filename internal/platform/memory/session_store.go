package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/store"
)

// SessionStore implements store.SessionStore over a map.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.StudySession
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uuid.UUID]*domain.StudySession)}
}

func (s *SessionStore) Save(_ context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return store.NewStoreError("study_session", "save", "invalid session", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return store.ErrSessionExists
	}
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *SessionStore) Update(_ context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return store.NewStoreError("study_session", "update", "invalid session", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return store.ErrSessionNotFound
	}
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *SessionStore) FindRecent(_ context.Context, limit int) ([]*domain.StudySession, error) {
	s.mu.RLock()
	out := make([]*domain.StudySession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
