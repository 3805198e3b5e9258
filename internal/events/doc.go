// Package events carries session lifecycle notifications from the session
// runner to interested components, such as the progress aggregator, without
// either side importing the other.
//
// An Event names what happened (Type), which session it concerns and a JSON
// payload describing the new state. Emitters dispatch synchronously on the
// caller's goroutine.
package events
