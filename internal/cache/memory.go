package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps revoked token ids in process memory. Entries expire on
// their own, so a restart simply forgets revocations that would have aged
// out anyway.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an in-memory revocation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (m *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.cache.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (m *MemoryStore) IsRevoked(_ context.Context, tokenID string) bool {
	_, found := m.cache.Get(tokenID)
	return found
}
