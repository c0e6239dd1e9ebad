// Package lruk implements the LRU-K admission policy: a plain LRU main
// cache guarded by an LRU history of visit counts. Both Get and Set
// count a reference, but only a Set admits: a key becomes resident on
// the first Set that brings its count to K or more. Until then its
// references are counted in the history but hold no value.
package lruk

import (
	"sync"

	"github.com/vmarkelov/policycache/policy"
	"github.com/vmarkelov/policycache/policy/lru"
)

// Cache is a bounded LRU-K cache. Safe for concurrent use.
//
// The outer mutex makes the count-then-admit sequence of each public
// operation atomic; the embedded LRUs are only ever driven from inside
// that critical section.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	k       int
	main    *lru.Cache[K, V]
	history *lru.Cache[K, int] // key -> visit count, bounded on its own
}

// New returns an LRU-K cache with the given main capacity, history
// capacity and admission threshold k (clamped to >= 1; k == 1 degrades
// to plain LRU admission).
func New[K comparable, V any](capacity, historyCapacity, k int) *Cache[K, V] {
	if k < 1 {
		k = 1
	}
	return &Cache[K, V]{
		k:       k,
		main:    lru.New[K, V](capacity),
		history: lru.New[K, int](historyCapacity),
	}
}

// Constructor binds the history capacity and threshold and adapts New to
// the sharded wrapper's factory shape.
func Constructor[K comparable, V any](historyCapacity, k int) policy.Constructor[K, V] {
	return func(capacity int) policy.Cache[K, V] {
		return New[K, V](capacity, historyCapacity, k)
	}
}

// Set overwrites k if it is already resident, then records the reference
// and admits the key into the main cache once its count reaches the
// threshold. Admission removes the key from the history; the main
// cache's own capacity governs any eviction it causes.
func (c *Cache[K, V]) Set(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.main.Contains(k) {
		c.main.Set(k, v)
	}

	cnt := c.history.GetValue(k) + 1
	c.history.Set(k, cnt)
	if cnt >= c.k {
		c.history.Remove(k)
		c.main.Set(k, v)
	}
}

// Get records the reference in the history unconditionally (it counts
// the attempt), then delegates to the main cache.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cnt := c.history.GetValue(k) + 1
	c.history.Set(k, cnt)
	return c.main.Get(k)
}

// GetValue returns the value for k, or the zero value on a miss.
func (c *Cache[K, V]) GetValue(k K) V {
	v, _ := c.Get(k)
	return v
}

// Contains reports residency in the main cache. History-only keys are
// not resident.
func (c *Cache[K, V]) Contains(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.main.Contains(k)
}

// Remove forgets k entirely: the resident entry and any pending visit
// count. It returns true if a resident entry was deleted.
func (c *Cache[K, V]) Remove(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history.Remove(k)
	return c.main.Remove(k)
}

// Purge drops the resident entries and the whole visit history.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.main.Purge()
	c.history.Purge()
}

// Len returns the number of resident entries (history keys excluded).
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.main.Len()
}

var _ policy.Cache[string, int] = (*Cache[string, int])(nil)
