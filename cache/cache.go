package cache

import (
	"sync"
	"time"
)

// Cache is a small in-memory TTL cache. The registry uses it for descriptor
// snapshots; plugins may use it to memoize external reads.
type Cache struct {
	items map[string]*item
	mu    sync.RWMutex
}

type item struct {
	value     any
	expiresAt time.Time
}

func New() *Cache {
	return &Cache{items: make(map[string]*item)}
}

// Get returns the cached value, or false when absent or expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !it.expiresAt.IsZero() && time.Now().After(it.expiresAt) {
		return nil, false
	}
	return it.value, true
}

// Set stores a value. A zero ttl means the entry never expires and lives
// until invalidated.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := &item{value: value}
	if ttl > 0 {
		it.expiresAt = time.Now().Add(ttl)
	}
	c.items[key] = it
}

// Delete removes one entry.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Flush removes every entry.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*item)
}

// Prune drops expired entries. Safe to call from a background ticker.
func (c *Cache) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, it := range c.items {
		if !it.expiresAt.IsZero() && now.After(it.expiresAt) {
			delete(c.items, key)
		}
	}
}
