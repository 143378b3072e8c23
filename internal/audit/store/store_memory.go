package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"contacthub/internal/audit"
)

// InMemoryStore keeps audit events in memory for tests/dev.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

// NewMemory constructs an empty in-memory audit store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, event := range s.events {
		if event.UserID == userID {
			out = append(out, event)
		}
	}
	return out, nil
}
