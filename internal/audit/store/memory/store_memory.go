package memory

import (
	"context"
	"sync"

	"privacyguard/internal/audit"
)

// InMemoryStore keeps events in append order, indexed by subject. Used in
// tests and in deployments without Postgres.
type InMemoryStore struct {
	mu        sync.RWMutex
	log       []audit.Event
	bySubject map[string][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{bySubject: make(map[string][]audit.Event)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = nil
	s.bySubject = make(map[string][]audit.Event)
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, event)
	s.bySubject[event.SubjectID] = append(s.bySubject[event.SubjectID], event)
	return nil
}

func (s *InMemoryStore) ListBySubject(_ context.Context, subjectID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.bySubject[subjectID]...), nil
}

// ListAll returns all audit events across all subjects in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.log...), nil
}

// ListRecent returns the most recent N events, newest last.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.log) - limit
	if start < 0 {
		start = 0
	}
	return append([]audit.Event{}, s.log[start:]...), nil
}
