// Package cache provides a small TTL cache used to absorb bursts of reloads
// against the upstream row source. It holds a handful of range keys, so
// eviction is by insertion time rather than a full LRU structure.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	data      T
	expiresAt time.Time
}

type TTLCache[T any] struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	entries    map[string]entry[T]
}

func New[T any](maxEntries int, ttl time.Duration) *TTLCache[T] {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &TTLCache[T]{
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[string]entry[T]),
	}
}

// Get returns the cached value for key if present and not expired. Expired
// entries are dropped on access.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return zero, false
	}
	return e.data, true
}

// Set stores a value under key with the cache's TTL. When the cache is at
// capacity the entry closest to expiry makes room.
func (c *TTLCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = entry[T]{
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *TTLCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *TTLCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTLCache[T]) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for key, e := range c.entries {
		if first || e.expiresAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.expiresAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
