// Package cache provides the cache repository implementations: an
// in-memory TTL map for local use and a redis-backed variant.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nourishly/v1/internal/ports/outbound"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache implements an in-memory cache repository with TTL expiry.
type MemoryCache struct {
	data  map[string]memoryItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache repository.
func NewMemoryCache() outbound.CacheRepository {
	repo := &MemoryCache{data: make(map[string]memoryItem)}
	go repo.cleanup()
	return repo
}

// Get retrieves a value from cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists || time.Now().After(item.expiresAt) {
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

// Set stores a value in cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = memoryItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a value from cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// cleanup periodically drops expired entries.
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mutex.Lock()
		for key, item := range c.data {
			if now.After(item.expiresAt) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}
