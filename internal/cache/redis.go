package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/moshiurmishuk/claim-polygraph-server/internal/logger"
)

const revokedPrefix = "revoked:"

// RedisStore is a Redis-backed revocation store. It survives restarts,
// which matters when refresh tokens live for days.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed revocation store.
func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: rdb}
}

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) bool {
	_, err := s.client.Get(ctx, revokedPrefix+tokenID).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		// Treat a backend failure as "not revoked" rather than locking
		// every session out.
		logger.LogError("redis revocation lookup failed: %v", err)
		return false
	}
	return true
}
