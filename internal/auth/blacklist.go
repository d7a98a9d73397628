package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records revoked refresh token ids until they would have expired anyway.
type TokenBlacklist interface {
	// Revoke returns false when the id was already revoked.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisBlacklist stores revoked ids as expiring keys.
type RedisBlacklist struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisBlacklist builds a Redis-backed blacklist.
func NewRedisBlacklist(client *redis.Client, prefix string) *RedisBlacklist {
	return &RedisBlacklist{client: client, prefix: prefix, now: time.Now}
}

func (b *RedisBlacklist) key(jti string) string {
	return b.prefix + ":blacklist:" + jti
}

func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	ttl := expiresAt.Sub(b.now())
	if ttl <= 0 {
		ttl = time.Second
	}
	return b.client.SetNX(ctx, b.key(jti), 1, ttl).Result()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryBlacklist is a process-local blacklist.
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryBlacklist builds an empty blacklist.
func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: make(map[string]time.Time), now: time.Now}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, jti string, expiresAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	for id, exp := range b.entries {
		if !exp.After(now) {
			delete(b.entries, id)
		}
	}
	if _, exists := b.entries[jti]; exists {
		return false, nil
	}
	b.entries[jti] = expiresAt
	return true, nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.entries[jti]
	return ok && exp.After(b.now()), nil
}
