package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryTRL keeps revoked jtis in process memory. Suitable for single-node
// deployments and tests; entries vanish on restart, which is acceptable
// because tokens are short-lived.
type MemoryTRL struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	clock   Clock
}

// MemoryTRLOption configures a MemoryTRL instance.
type MemoryTRLOption func(*MemoryTRL)

// WithMemoryClock sets the clock function for testability.
func WithMemoryClock(clock Clock) MemoryTRLOption {
	return func(trl *MemoryTRL) {
		if clock != nil {
			trl.clock = clock
		}
	}
}

// NewMemoryTRL constructs an in-memory token revocation list.
func NewMemoryTRL(opts ...MemoryTRLOption) *MemoryTRL {
	trl := &MemoryTRL{
		entries: make(map[string]time.Time),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(trl)
		}
	}
	return trl
}

// Revoke adds a jti to the revocation list with TTL.
func (t *MemoryTRL) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[jti] = t.clock().Add(ttl)
	return nil
}

// IsRevoked checks if a jti is in the revocation list. Expired entries are
// pruned lazily.
func (t *MemoryTRL) IsRevoked(_ context.Context, jti string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	expiresAt, ok := t.entries[jti]
	if !ok {
		return false, nil
	}
	if t.clock().After(expiresAt) {
		delete(t.entries, jti)
		return false, nil
	}
	return true, nil
}
