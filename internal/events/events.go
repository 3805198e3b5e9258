package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type identifies what happened.
type Type string

const (
	SessionStarted        Type = "session.started"
	SessionAnswerRecorded Type = "session.answer_recorded"
	SessionWordSkipped    Type = "session.word_skipped"
	SessionPaused         Type = "session.paused"
	SessionResumed        Type = "session.resumed"
	SessionCompleted      Type = "session.completed"
	ProgressUpdated       Type = "progress.updated"
)

// Event is a single lifecycle notification.
type Event struct {
	ID uuid.UUID `json:"id"`

	Type Type `json:"type"`

	// SessionID is uuid.Nil for events not tied to a session.
	SessionID uuid.UUID `json:"session_id"`

	Payload json.RawMessage `json:"payload"`

	CreatedAt time.Time `json:"created_at"`
}

// NewEvent serializes payload and stamps the event with a fresh ID.
func NewEvent(eventType Type, sessionID uuid.UUID, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		SessionID: sessionID,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// UnmarshalPayload decodes the event payload into v.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// EventHandler is implemented by components reacting to events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a plain function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter publishes events to registered handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *Event) error
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent does nothing.
func (NopEmitter) EmitEvent(context.Context, *Event) error { return nil }
