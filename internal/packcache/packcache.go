// Package packcache memoizes generated pack artifacts within one
// process, keyed by level and exercise type. Generation is
// deterministic for a fixed seed, so a cached entry is always
// equivalent to a regeneration.
package packcache

import "sync"

// Key identifies one generated artifact.
type Key struct {
	Level string
	Type  string
	Seed  string
}

// Cache is a concurrency-safe artifact store.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[Key]T
}

// New creates an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[Key]T)}
}

// Get returns the cached artifact for the key, if present.
func (c *Cache[T]) Get(key Key) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores an artifact, replacing any previous entry for the key.
func (c *Cache[T]) Put(key Key, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// GetOrFill returns the cached artifact, computing and storing it on a
// miss. The fill function may run more than once under contention; the
// first stored value wins.
func (c *Cache[T]) GetOrFill(key Key, fill func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := fill()
	if err != nil {
		var zero T
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.entries[key]; ok {
		return prev, nil
	}
	c.entries[key] = v
	return v, nil
}

// Len returns the number of cached artifacts.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
