package events

import (
	"time"
)

// Event is one entry in a run's solve trail.
type Event interface {
	Type() string
	RunID() string
	Data() interface{}
	Timestamp() time.Time
}

// EventStore collects solve events. The wave service records its lifecycle
// through a store when one is attached.
type EventStore interface {
	Append(event Event) error
	ReadAll() []Event
}

// BaseEvent is the standard Event implementation.
type BaseEvent struct {
	EventType string
	Run       string
	EventData interface{}
	EventTime time.Time
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) RunID() string        { return e.Run }
func (e BaseEvent) Data() interface{}    { return e.EventData }
func (e BaseEvent) Timestamp() time.Time { return e.EventTime }

// NewEvent creates a timestamped event.
func NewEvent(eventType, runID string, data interface{}) Event {
	return BaseEvent{
		EventType: eventType,
		Run:       runID,
		EventData: data,
		EventTime: time.Now(),
	}
}
