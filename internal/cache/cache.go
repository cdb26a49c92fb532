// Package cache provides the refresh-token revocation store. A revoked
// token id stays listed until the token would have expired anyway, so the
// store never grows beyond the live token population.
package cache

import (
	"context"
	"time"
)

// Store is the interface for a revocation store.
type Store interface {
	// Revoke records a token id as revoked for the given retention period.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	// IsRevoked reports whether a token id has been revoked.
	IsRevoked(ctx context.Context, tokenID string) bool
}
