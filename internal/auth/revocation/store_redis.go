package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces revocation entries in a shared Redis.
const keyPrefix = "trl:"

// RedisTRL persists revoked jtis in Redis with native key expiry, so the list
// never needs explicit cleanup and is shared across nodes.
type RedisTRL struct {
	client redis.Cmdable
}

// NewRedisTRL constructs a Redis-backed token revocation list.
func NewRedisTRL(client redis.Cmdable) *RedisTRL {
	return &RedisTRL{client: client}
}

// Revoke adds a jti with TTL; Redis expires the key when the token would have
// expired anyway.
func (t *RedisTRL) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}
	if err := t.client.Set(ctx, keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks if a jti is in the revocation list.
func (t *RedisTRL) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := t.client.Get(ctx, keyPrefix+jti).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return true, nil
}
