package testutils

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/store"
)

// ErrInjected is returned by the failing stores while failure is enabled.
var ErrInjected = errors.New("injected repository failure")

// FailingWordStore wraps a store.WordStore and fails writes on demand.
type FailingWordStore struct {
	store.WordStore
	fail atomic.Bool
}

// NewFailingWordStore wraps inner.
func NewFailingWordStore(inner store.WordStore) *FailingWordStore {
	return &FailingWordStore{WordStore: inner}
}

// SetFailing toggles failure of every write.
func (s *FailingWordStore) SetFailing(fail bool) { s.fail.Store(fail) }

func (s *FailingWordStore) Save(ctx context.Context, w *domain.Word) error {
	if s.fail.Load() {
		return ErrInjected
	}
	return s.WordStore.Save(ctx, w)
}

func (s *FailingWordStore) SaveBatch(ctx context.Context, ws []*domain.Word) error {
	if s.fail.Load() {
		return ErrInjected
	}
	return s.WordStore.SaveBatch(ctx, ws)
}

func (s *FailingWordStore) Delete(ctx context.Context, headword string) error {
	if s.fail.Load() {
		return ErrInjected
	}
	return s.WordStore.Delete(ctx, headword)
}

func (s *FailingWordStore) DeleteAll(ctx context.Context) error {
	if s.fail.Load() {
		return ErrInjected
	}
	return s.WordStore.DeleteAll(ctx)
}

// FailingSessionStore wraps a store.SessionStore and fails writes on demand.
type FailingSessionStore struct {
	store.SessionStore
	fail atomic.Bool
}

// NewFailingSessionStore wraps inner.
func NewFailingSessionStore(inner store.SessionStore) *FailingSessionStore {
	return &FailingSessionStore{SessionStore: inner}
}

// SetFailing toggles failure of every write.
func (s *FailingSessionStore) SetFailing(fail bool) { s.fail.Store(fail) }

func (s *FailingSessionStore) Save(ctx context.Context, sess *domain.StudySession) error {
	if s.fail.Load() {
		return ErrInjected
	}
	return s.SessionStore.Save(ctx, sess)
}

func (s *FailingSessionStore) Update(ctx context.Context, sess *domain.StudySession) error {
	if s.fail.Load() {
		return ErrInjected
	}
	return s.SessionStore.Update(ctx, sess)
}
