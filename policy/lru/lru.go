// Package lru implements the Least-Recently-Used eviction policy.
package lru

import (
	"sync"

	"github.com/vmarkelov/policycache/internal/list"
	"github.com/vmarkelov/policycache/policy"
)

// Cache is a bounded LRU cache. One list orders the resident entries
// (front = coldest, back = hottest); a map indexes them by key.
// Safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu  sync.Mutex
	cap int
	ll  *list.List[K, V]
	idx map[K]*list.Node[K, V]
}

// New returns an LRU cache holding at most capacity entries.
// With capacity <= 0 every Set is a no-op and every Get misses.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		cap: capacity,
		ll:  list.New[K, V](),
		idx: make(map[K]*list.Node[K, V], max(capacity, 0)),
	}
}

// Constructor adapts New to the factory shape the sharded wrapper expects.
func Constructor[K comparable, V any]() policy.Constructor[K, V] {
	return func(capacity int) policy.Cache[K, V] { return New[K, V](capacity) }
}

// Set inserts or updates k→v and marks it most recently used.
// When the cache is full the least recently used entry is evicted first.
func (c *Cache[K, V]) Set(k K, v V) {
	if c.cap <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.idx[k]; ok {
		n.Val = v
		c.ll.MoveToBack(n)
		return
	}
	if len(c.idx) >= c.cap {
		cold := c.ll.PopFront()
		delete(c.idx, cold.Key)
	}
	n := &list.Node[K, V]{Key: k, Val: v}
	c.ll.PushBack(n)
	c.idx[k] = n
}

// Get returns the value for k and promotes the entry on a hit.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.idx[k]
	if !ok {
		var zero V
		return zero, false
	}
	c.ll.MoveToBack(n)
	return n.Val, true
}

// GetValue returns the value for k, or the zero value on a miss.
func (c *Cache[K, V]) GetValue(k K) V {
	v, _ := c.Get(k)
	return v
}

// Contains reports residency without promoting the entry.
func (c *Cache[K, V]) Contains(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.idx[k]
	return ok
}

// Remove deletes k if present.
func (c *Cache[K, V]) Remove(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.idx[k]
	if !ok {
		return false
	}
	c.ll.Unlink(n)
	delete(c.idx, k)
	return true
}

// Purge drops all entries. Capacity is preserved.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll = list.New[K, V]()
	c.idx = make(map[K]*list.Node[K, V], max(c.cap, 0))
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.idx)
}

var _ policy.Cache[string, int] = (*Cache[string, int])(nil)
