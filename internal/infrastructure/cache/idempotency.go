package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 48 * time.Hour

// RedisIdempotencyStore tracks processed webhook events in Redis. SetNX
// makes the first-writer decision atomic across instances.
type RedisIdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewRedisIdempotencyStore creates a store on the given client
func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client, prefix: "webhook:event:"}
}

// MarkProcessed records the event key, reporting whether this call won
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, key string) (bool, error) {
	return s.client.SetNX(ctx, s.prefix+key, 1, idempotencyTTL).Result()
}

// Release forgets the event key so a redelivery can claim it again
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// MemoryIdempotencyStore is the single-instance fallback when Redis is not
// configured. Entries are never evicted; acceptable for development.
type MemoryIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryIdempotencyStore creates an empty in-process store
func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{seen: make(map[string]struct{})}
}

// MarkProcessed records the event key, reporting whether this call won
func (s *MemoryIdempotencyStore) MarkProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	s.seen[key] = struct{}{}
	return true, nil
}

// Release forgets the event key so a redelivery can claim it again
func (s *MemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seen, key)
	return nil
}
