package services

import (
	"fmt"
	"sync"
	"time"
)

// Cache TTLs per key category. The core stays cache-agnostic; only the
// handler layer reads through this.
const (
	ProfileTTL = 5 * time.Minute
)

// ProfileCacheKey names the cached weakness profile of one user.
func ProfileCacheKey(userID uint) string {
	return fmt.Sprintf("profile:%d", userID)
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is a small TTL cache for hot handler-layer reads such as
// weakness profiles. Zero eviction pressure is expected at this scale, so
// expired entries are simply dropped on access.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
