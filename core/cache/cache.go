// Package cache provides a small LRU used to keep recently decompressed
// SWORD text blocks in memory. Compression blocks are immutable for a
// module's lifetime, so caching never changes observable results; it only
// avoids re-inflating the same block for consecutive verses.
package cache

import (
	"container/list"
	"sync"
)

// Cache is a generic LRU cache.
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache.
	Get(key K) (V, bool)

	// Put stores a value in the cache.
	Put(key K, value V)

	// Clear removes all entries from the cache.
	Clear()

	// Len returns the number of entries in the cache.
	Len() int

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

// entry represents a cache entry.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// lruCache is a mutex-guarded LRU cache.
type lruCache[K comparable, V any] struct {
	mu        sync.RWMutex
	maxSize   int
	entries   map[K]*list.Element
	evictList *list.List
	stats     Stats
}

// NewLRU creates an LRU cache holding at most maxSize entries. A maxSize
// of 0 or less means unbounded.
func NewLRU[K comparable, V any](maxSize int) Cache[K, V] {
	if maxSize < 0 {
		maxSize = 0
	}
	return &lruCache[K, V]{
		maxSize:   maxSize,
		entries:   make(map[K]*list.Element),
		evictList: list.New(),
	}
}

// Get retrieves a value from the cache.
func (c *lruCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.evictList.MoveToFront(ent)
	c.stats.Hits++
	return ent.Value.(*entry[K, V]).value, true
}

// Put stores a value in the cache.
func (c *lruCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*entry[K, V]).value = value
		return
	}

	c.entries[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value})

	if c.maxSize > 0 && c.evictList.Len() > c.maxSize {
		c.removeOldest()
	}
}

// Clear removes all entries from the cache.
func (c *lruCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.evictList.Init()
}

// Len returns the number of entries in the cache.
func (c *lruCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.evictList.Len()
}

// Stats returns cache statistics.
func (c *lruCache[K, V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.maxSize
	return s
}

// removeOldest removes the least recently used entry.
func (c *lruCache[K, V]) removeOldest() {
	if ent := c.evictList.Back(); ent != nil {
		e := ent.Value.(*entry[K, V])
		c.evictList.Remove(ent)
		delete(c.entries, e.key)
		c.stats.Evictions++
	}
}
