package audit

import (
	"context"
	"sync"
)

// maxMemoryEvents bounds the in-memory trail; older events are dropped.
const maxMemoryEvents = 1000

// InMemoryStore keeps recent events in a bounded slice. Used in tests and as
// a stand-in when no database is configured but auditing is still wanted.
type InMemoryStore struct {
	mu     sync.Mutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) > maxMemoryEvents {
		s.events = s.events[len(s.events)-maxMemoryEvents:]
	}
	return nil
}

// Events returns a copy of the recorded events, oldest first.
func (s *InMemoryStore) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
