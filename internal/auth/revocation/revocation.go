// Package revocation implements the token revocation list consulted on every
// authenticated request. Logout adds the token's jti with a TTL equal to its
// remaining lifetime; entries expire on their own once the token would have
// expired anyway.
package revocation

import (
	"fmt"
	"time"
)

// Clock abstracts time.Now for testability.
type Clock func() time.Time

// maxTTL guards against callers passing an unbounded lifetime; no token lives
// longer than a day, so neither should its revocation entry.
const maxTTL = 24 * time.Hour

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	if ttl > maxTTL {
		return fmt.Errorf("ttl exceeds maximum of %s, got %s", maxTTL, ttl)
	}
	return nil
}
