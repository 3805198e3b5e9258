package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []*Event
	err    error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T) *Event {
		t.Helper()
		event, err := NewEvent(SessionStarted, uuid.New(), map[string]int{"total": 3})
		require.NoError(t, err)
		return event
	}

	t.Run("no handlers", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		assert.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t)))
	})

	t.Run("fans out to every handler", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		h1, h2 := &recordingHandler{}, &recordingHandler{}
		emitter.RegisterHandler(h1)
		emitter.RegisterHandler(h2)

		event := newEvent(t)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		require.Len(t, h1.events, 1)
		require.Len(t, h2.events, 1)
		assert.Same(t, event, h1.events[0])
	})

	t.Run("failing handler does not stop delivery", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(logger)
		first := errors.New("first")
		failing := &recordingHandler{err: first}
		other := &recordingHandler{err: errors.New("second")}
		ok := &recordingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(other)
		emitter.RegisterHandler(ok)

		err := emitter.EmitEvent(context.Background(), newEvent(t))
		assert.ErrorIs(t, err, first)
		assert.Len(t, ok.events, 1)
	})

	t.Run("handler func", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(nil)
		var got Type
		emitter.RegisterHandler(HandlerFunc(func(_ context.Context, e *Event) error {
			got = e.Type
			return nil
		}))
		require.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t)))
		assert.Equal(t, SessionStarted, got)
	})
}

func TestNewEvent(t *testing.T) {
	t.Parallel()

	sessionID := uuid.New()
	event, err := NewEvent(SessionCompleted, sessionID, map[string]any{"words_studied": 4})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, sessionID, event.SessionID)
	assert.False(t, event.CreatedAt.IsZero())

	var payload struct {
		WordsStudied int `json:"words_studied"`
	}
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, 4, payload.WordsStudied)

	_, err = NewEvent(SessionCompleted, sessionID, make(chan int))
	assert.Error(t, err)

	assert.NoError(t, NopEmitter{}.EmitEvent(context.Background(), event))
}
