package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custompos/backend/internal/application/pos"
	"github.com/custompos/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisLoadCache implements pos.LoadCache using Redis.
// This is suitable for distributed deployments where multiple instances
// need to share the assembled load payload.
type RedisLoadCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisLoadCache creates a new Redis-backed load cache
func NewRedisLoadCache(cfg *config.RedisConfig) (*RedisLoadCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLoadCache{client: client}, nil
}

// NewRedisLoadCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisLoadCacheWithClient(client *redis.Client, keyPrefix string) *RedisLoadCache {
	return &RedisLoadCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached payload for key, reporting whether it was present
func (c *RedisLoadCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read load cache: %w", err)
	}
	return data, true, nil
}

// Set stores the payload under key with a TTL
func (c *RedisLoadCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write load cache: %w", err)
	}
	return nil
}

// Delete removes the payload stored under key
func (c *RedisLoadCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate load cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisLoadCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisLoadCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisLoadCache implements LoadCache
var _ pos.LoadCache = (*RedisLoadCache)(nil)
