package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"contacthub/internal/users/models"
	"contacthub/pkg/platform/sentinel"
)

// Error Contract:
// All store methods follow this pattern:
// - Return sentinel.ErrNotFound (wrapped) when the user does not exist
// - Return sentinel.ErrConflict (wrapped) when the email unique key is taken
// - Return nil for successful operations

// InMemoryStore keeps users in memory for tests/dev.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*models.User
	byEmail map[string]uuid.UUID
}

// NewMemory constructs an empty in-memory user store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[user.Email]; exists {
		return fmt.Errorf("email already registered: %w", sentinel.ErrConflict)
	}
	copied := *user
	s.byID[user.ID] = &copied
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	copied := *s.byID[id]
	return &copied, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}
