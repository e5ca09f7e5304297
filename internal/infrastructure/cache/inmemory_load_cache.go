package cache

import (
	"context"
	"sync"
	"time"

	"github.com/custompos/backend/internal/application/pos"
)

// entry represents a cached payload with expiration
type entry struct {
	value     []byte
	expiresAt time.Time
}

// InMemoryLoadCache implements pos.LoadCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryLoadCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryLoadCache creates a new in-memory load cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryLoadCache() *InMemoryLoadCache {
	cache := &InMemoryLoadCache{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	cache.wg.Add(1)
	go cache.cleanupLoop()

	return cache
}

// Get returns the cached payload for key, reporting whether it was present
func (c *InMemoryLoadCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}

	// Copy so callers cannot mutate the cached bytes
	value := make([]byte, len(e.value))
	copy(value, e.value)
	return value, true, nil
}

// Set stores the payload under key with a TTL
func (c *InMemoryLoadCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     stored,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes the payload stored under key
func (c *InMemoryLoadCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryLoadCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
	})
	c.wg.Wait()
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryLoadCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopChan:
			return
		}
	}
}

// removeExpired removes all expired entries from the cache
func (c *InMemoryLoadCache) removeExpired() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Ensure InMemoryLoadCache implements LoadCache
var _ pos.LoadCache = (*InMemoryLoadCache)(nil)
