package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"contacthub/internal/contacts/models"
	"contacthub/pkg/platform/sentinel"
)

// InMemoryStore keeps contacts in memory for tests/dev.
type InMemoryStore struct {
	mu       sync.RWMutex
	contacts map[uuid.UUID]*models.Contact
}

// NewMemory constructs an empty in-memory contact store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{contacts: make(map[uuid.UUID]*models.Contact)}
}

func (s *InMemoryStore) Create(_ context.Context, contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *contact
	s.contacts[contact.ID] = &copied
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contact, ok := s.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact not found: %w", sentinel.ErrNotFound)
	}
	copied := *contact
	return &copied, nil
}

func (s *InMemoryStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Contact, 0)
	for _, contact := range s.contacts {
		if contact.OwnerID == ownerID {
			copied := *contact
			out = append(out, &copied)
		}
	}
	// Deterministic output for tests; ordering is not a contract.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[contact.ID]; !ok {
		return fmt.Errorf("contact not found: %w", sentinel.ErrNotFound)
	}
	copied := *contact
	s.contacts[contact.ID] = &copied
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		return fmt.Errorf("contact not found: %w", sentinel.ErrNotFound)
	}
	delete(s.contacts, id)
	return nil
}
