package testutils

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry is a flattened log record.
type LogEntry map[string]any

// SlogCapture is a memory-backed slog.Handler.
type SlogCapture struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewSlogCapture returns a handler and a logger writing to it.
func NewSlogCapture() (*SlogCapture, *slog.Logger) {
	h := &SlogCapture{}
	return h, slog.New(h)
}

func (h *SlogCapture) Enabled(context.Context, slog.Level) bool { return true }

func (h *SlogCapture) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := LogEntry{"level": r.Level.String(), "message": r.Message}
	r.Attrs(func(attr slog.Attr) bool {
		entry[attr.Key] = attr.Value.Any()
		return true
	})
	h.entries = append(h.entries, entry)
	return nil
}

// Attributes added with With are dropped; only record attributes are kept.
func (h *SlogCapture) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *SlogCapture) WithGroup(string) slog.Handler { return h }

// Entries returns a copy of the captured entries.
func (h *SlogCapture) Entries() []LogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// HasMessage reports whether any entry at level has the given message.
func (h *SlogCapture) HasMessage(level slog.Level, message string) bool {
	for _, e := range h.Entries() {
		if e["level"] == level.String() && e["message"] == message {
			return true
		}
	}
	return false
}
