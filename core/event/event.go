// Package event defines all events published by the application layer.
// Events describe committed state changes and are consumed by subscribers.
package event

// Event is the base interface for all events.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// HerdEvent is an event concerning a specific herd. Events that touch
// two herds report the one whose membership grew (the target or keep
// side) as the subject.
type HerdEvent interface {
	Event
	// HerdName returns the subject herd name
	HerdName() string
}

// baseHerdEvent provides common implementation for herd events.
type baseHerdEvent struct {
	herdName string
}

func (e *baseHerdEvent) HerdName() string {
	return e.herdName
}
