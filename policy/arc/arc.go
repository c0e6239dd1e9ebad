// Package arc implements the Adaptive Replacement Cache.
//
// Resident entries live in two halves: T1 holds keys seen once recently,
// T2 holds keys seen at least twice. Each half keeps a ghost list (B1,
// B2) of recently evicted keys, values dropped. A hit on a ghost is
// evidence the corresponding half is sized too small, so the target size
// p of T1 is moved toward that half; the cache thereby tunes itself
// between recency and frequency under the live workload.
package arc

import (
	"sync"

	"github.com/vmarkelov/policycache/internal/list"
	"github.com/vmarkelov/policycache/policy"
)

// side is one quarter of the ARC state: an ordered list plus its index.
// Front is the eviction end, back is the insertion end.
type side[K comparable, V any] struct {
	ll  *list.List[K, V]
	idx map[K]*list.Node[K, V]
}

func newSide[K comparable, V any]() side[K, V] {
	return side[K, V]{ll: list.New[K, V](), idx: make(map[K]*list.Node[K, V])}
}

func (s *side[K, V]) push(n *list.Node[K, V]) {
	s.ll.PushBack(n)
	s.idx[n.Key] = n
}

func (s *side[K, V]) remove(n *list.Node[K, V]) {
	s.ll.Unlink(n)
	delete(s.idx, n.Key)
}

// popFront evicts the coldest node and returns it (nil when empty).
func (s *side[K, V]) popFront() *list.Node[K, V] {
	n := s.ll.PopFront()
	if n != nil {
		delete(s.idx, n.Key)
	}
	return n
}

// Cache is a bounded ARC cache. Safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu  sync.Mutex
	cap int

	// p is the target size of t1; t2's target is cap-p.
	p int

	t1 side[K, V] // resident, seen once
	t2 side[K, V] // resident, seen twice or more
	b1 side[K, V] // ghost keys evicted from t1
	b2 side[K, V] // ghost keys evicted from t2
}

// New returns an ARC cache holding at most capacity resident entries.
// With capacity <= 0 every Set is a no-op and every Get misses.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		cap: capacity,
		t1:  newSide[K, V](),
		t2:  newSide[K, V](),
		b1:  newSide[K, V](),
		b2:  newSide[K, V](),
	}
}

// Constructor adapts New to the sharded wrapper's factory shape.
func Constructor[K comparable, V any]() policy.Constructor[K, V] {
	return func(capacity int) policy.Cache[K, V] { return New[K, V](capacity) }
}

// Set inserts or updates k→v. Resident keys are promoted to the
// frequent half; keys found in a ghost list re-enter through T2 after
// the partition target has been adapted in that ghost's favor.
func (c *Cache[K, V]) Set(k K, v V) {
	if c.cap <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.t1.idx[k]; ok {
		n.Val = v
		c.t1.remove(n)
		c.t2.push(n)
		return
	}
	if n, ok := c.t2.idx[k]; ok {
		n.Val = v
		c.t2.ll.MoveToBack(n)
		return
	}

	if g, ok := c.b1.idx[k]; ok {
		// Recency half was undersized: grow p.
		c.p = min(c.cap, c.p+ratio(c.b2.ll.Len(), c.b1.ll.Len()))
		if c.t1.ll.Len()+c.t2.ll.Len() >= c.cap {
			c.replace(false)
		}
		c.b1.remove(g)
		c.t2.push(&list.Node[K, V]{Key: k, Val: v})
		return
	}
	if g, ok := c.b2.idx[k]; ok {
		// Frequency half was undersized: shrink p.
		c.p = max(0, c.p-ratio(c.b1.ll.Len(), c.b2.ll.Len()))
		if c.t1.ll.Len()+c.t2.ll.Len() >= c.cap {
			c.replace(true)
		}
		c.b2.remove(g)
		c.t2.push(&list.Node[K, V]{Key: k, Val: v})
		return
	}

	// Cold miss: make room, keep the ghosts within their targets,
	// admit through t1.
	if c.t1.ll.Len()+c.t2.ll.Len() >= c.cap {
		c.replace(false)
	}
	for c.b1.ll.Len() > c.cap-c.p {
		c.b1.popFront()
	}
	for c.b2.ll.Len() > c.p {
		c.b2.popFront()
	}
	c.t1.push(&list.Node[K, V]{Key: k, Val: v})
}

// Get returns the value for k. A hit promotes the entry to the back of
// T2. A miss that lands in a ghost list still adapts p (the reference is
// evidence about the partition) but inserts nothing; the ghost entry
// stays until a Set re-admits the key.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.t1.idx[k]; ok {
		c.t1.remove(n)
		c.t2.push(n)
		return n.Val, true
	}
	if n, ok := c.t2.idx[k]; ok {
		c.t2.ll.MoveToBack(n)
		return n.Val, true
	}

	if _, ok := c.b1.idx[k]; ok {
		c.p = min(c.cap, c.p+ratio(c.b2.ll.Len(), c.b1.ll.Len()))
	} else if _, ok := c.b2.idx[k]; ok {
		c.p = max(0, c.p-ratio(c.b1.ll.Len(), c.b2.ll.Len()))
	}
	var zero V
	return zero, false
}

// GetValue returns the value for k, or the zero value on a miss.
func (c *Cache[K, V]) GetValue(k K) V {
	v, _ := c.Get(k)
	return v
}

// Contains reports residency (T1 or T2); ghost keys are not resident.
func (c *Cache[K, V]) Contains(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, in1 := c.t1.idx[k]
	_, in2 := c.t2.idx[k]
	return in1 || in2
}

// Remove deletes a resident entry. Explicit removal is not an eviction,
// so the key is not ghosted; ghost bookkeeping is left untouched.
func (c *Cache[K, V]) Remove(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.t1.idx[k]; ok {
		c.t1.remove(n)
		return true
	}
	if n, ok := c.t2.idx[k]; ok {
		c.t2.remove(n)
		return true
	}
	return false
}

// Purge drops resident entries, ghosts and the learned partition.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t1 = newSide[K, V]()
	c.t2 = newSide[K, V]()
	c.b1 = newSide[K, V]()
	c.b2 = newSide[K, V]()
	c.p = 0
}

// Len returns the number of resident entries (ghosts excluded).
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t1.ll.Len() + c.t2.ll.Len()
}

// replace evicts one resident entry to its ghost list. T1 gives up its
// coldest entry while it exceeds the target p (or meets it exactly on a
// B2 hit, which is about to shrink the target); otherwise T2 does. T2
// may be empty while T1 holds the whole partition — the victim then
// comes from T1 regardless of p.
func (c *Cache[K, V]) replace(inB2 bool) {
	t1Len := c.t1.ll.Len()
	if t1Len > 0 && (t1Len > c.p || (inB2 && t1Len == c.p) || c.t2.ll.Empty()) {
		n := c.t1.popFront()
		c.b1.push(&list.Node[K, V]{Key: n.Key}) // ghost keeps only the key
		return
	}
	if n := c.t2.popFront(); n != nil {
		c.b2.push(&list.Node[K, V]{Key: n.Key})
	}
}

// ratio is the adaptation step: how many ghost entries of the opposite
// list each hit is worth, never less than one.
func ratio(opposite, hit int) int {
	if d := opposite / hit; d > 1 {
		return d
	}
	return 1
}

var _ policy.Cache[string, int] = (*Cache[string, int])(nil)
