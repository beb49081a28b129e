package events

import (
	"sync"
)

// InMemoryEventStore keeps the solve trail in memory for the duration of a
// run.
type InMemoryEventStore struct {
	mutex  sync.RWMutex
	events []Event
}

// NewInMemoryEventStore creates an empty store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{events: make([]Event, 0)}
}

// Append implements EventStore.
func (s *InMemoryEventStore) Append(event Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ReadAll implements EventStore; events come back in append order.
func (s *InMemoryEventStore) ReadAll() []Event {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
