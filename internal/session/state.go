package session

import (
	"encoding"
	"fmt"
)

// State is the lifecycle position of a Runner.
type State int

const (
	Idle      State = iota // No session has been started.
	Active                 // Accepting answers and skips.
	Paused                 // Suspended; bookkeeping preserved.
	Completed              // Last session sealed.
)

var (
	stateNames  = [...]string{Idle: "idle", Active: "active", Paused: "paused", Completed: "completed"}
	stateByName = map[string]State{
		"idle":      Idle,
		"active":    Active,
		"paused":    Paused,
		"completed": Completed,
	}
)

var (
	_ fmt.Stringer             = State(0)
	_ encoding.TextMarshaler   = State(0)
	_ encoding.TextUnmarshaler = (*State)(nil)
)

func (s State) isValid() bool {
	return s >= Idle && s <= Completed
}

// String returns the lower-case state name, or "State(n)" for invalid values.
func (s State) String() string {
	if s.isValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.isValid() {
		return nil, fmt.Errorf("session: invalid state: %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, ok := stateByName[string(text)]
	if !ok {
		return fmt.Errorf("session: invalid state: %q", text)
	}
	*s = v
	return nil
}
