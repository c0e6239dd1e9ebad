// Package lfu implements the Least-Frequently-Used eviction policy with
// frequency aging.
//
// Entries are grouped into per-frequency lists; within a frequency the
// front of the list is the oldest entry, so eviction takes the coldest
// entry of the lowest occupied frequency. A running total of access
// events drives an aging step that lowers every frequency by half the
// aging threshold, keeping long-dead hot entries evictable.
package lfu

import (
	"sync"

	"github.com/vmarkelov/policycache/internal/list"
	"github.com/vmarkelov/policycache/policy"
)

// DefaultMaxAverage is the aging threshold used when none is supplied.
const DefaultMaxAverage = 10

// Cache is a bounded LFU cache. Safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu     sync.Mutex
	cap    int
	maxAvg int

	idx   map[K]*list.Node[K, V]
	freqs map[int]*list.List[K, V] // frequency -> entries at that frequency

	// minFreq is the smallest frequency with a non-empty list whenever
	// any entry is resident; every insertion resets it to 1.
	minFreq int

	// curTotal counts one per access event, minus the frequency of each
	// evicted entry. curTotal/len(idx) exceeding maxAvg triggers decay.
	curTotal int
}

// New returns an LFU cache holding at most capacity entries.
// maxAverage is the aging threshold; values <= 0 select DefaultMaxAverage.
// With capacity <= 0 every Set is a no-op and every Get misses.
func New[K comparable, V any](capacity, maxAverage int) *Cache[K, V] {
	if maxAverage <= 0 {
		maxAverage = DefaultMaxAverage
	}
	return &Cache[K, V]{
		cap:    capacity,
		maxAvg: maxAverage,
		idx:    make(map[K]*list.Node[K, V], max(capacity, 0)),
		freqs:  make(map[int]*list.List[K, V]),
	}
}

// Constructor binds maxAverage and adapts New to the sharded wrapper's
// factory shape.
func Constructor[K comparable, V any](maxAverage int) policy.Constructor[K, V] {
	return func(capacity int) policy.Cache[K, V] { return New[K, V](capacity, maxAverage) }
}

// Set inserts or updates k→v. An update counts as an access and bumps the
// entry's frequency; an insert may first evict the coldest entry of the
// lowest occupied frequency.
func (c *Cache[K, V]) Set(k K, v V) {
	if c.cap <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.idx[k]; ok {
		n.Val = v
		c.touch(n)
		return
	}

	if len(c.idx) >= c.cap {
		c.evict()
	}
	n := &list.Node[K, V]{Key: k, Val: v, Count: 1}
	c.idx[k] = n
	c.appendToFreq(n)
	c.minFreq = 1
	c.recordAccess()
}

// Get returns the value for k; a hit bumps the entry's frequency.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.idx[k]
	if !ok {
		var zero V
		return zero, false
	}
	v := n.Val
	c.touch(n)
	return v, true
}

// GetValue returns the value for k, or the zero value on a miss.
func (c *Cache[K, V]) GetValue(k K) V {
	v, _ := c.Get(k)
	return v
}

// Contains reports residency without counting an access.
func (c *Cache[K, V]) Contains(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.idx[k]
	return ok
}

// Remove deletes k if present. Removal is not an access and, like
// eviction, discharges the entry's contribution to the aging total.
func (c *Cache[K, V]) Remove(k K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.idx[k]
	if !ok {
		return false
	}
	c.unlinkFromFreq(n)
	delete(c.idx, k)
	c.curTotal -= n.Count

	// Unlike eviction, removal can empty the minFreq list with no
	// insertion following; rehome minFreq on the remaining lists.
	if n.Count == c.minFreq && c.freqs[c.minFreq] == nil {
		c.minFreq = 0
		for f := range c.freqs {
			if c.minFreq == 0 || f < c.minFreq {
				c.minFreq = f
			}
		}
	}
	return true
}

// Purge drops all entries and resets the aging counters.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx = make(map[K]*list.Node[K, V], max(c.cap, 0))
	c.freqs = make(map[int]*list.List[K, V])
	c.minFreq = 0
	c.curTotal = 0
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.idx)
}

// touch migrates n from its current frequency list to the next one and
// records the access event.
func (c *Cache[K, V]) touch(n *list.Node[K, V]) {
	old := n.Count
	c.unlinkFromFreq(n)
	n.Count++
	c.appendToFreq(n)
	if old == c.minFreq && c.freqs[old] == nil {
		c.minFreq++
	}
	c.recordAccess()
}

// evict removes the front (oldest) entry of the minFreq list.
func (c *Cache[K, V]) evict() {
	l := c.freqs[c.minFreq]
	if l == nil || l.Empty() {
		panic("lfu: minFreq points at no entries")
	}
	n := l.Front()
	c.unlinkFromFreq(n)
	delete(c.idx, n.Key)
	c.curTotal -= n.Count
}

// unlinkFromFreq detaches n from the list for its current frequency,
// dropping the list once it empties.
func (c *Cache[K, V]) unlinkFromFreq(n *list.Node[K, V]) {
	l := c.freqs[n.Count]
	l.Unlink(n)
	if l.Empty() {
		delete(c.freqs, n.Count)
	}
}

// appendToFreq appends n to the list for its current frequency, creating
// the list on first use.
func (c *Cache[K, V]) appendToFreq(n *list.Node[K, V]) {
	l := c.freqs[n.Count]
	if l == nil {
		l = list.New[K, V]()
		c.freqs[n.Count] = l
	}
	l.PushBack(n)
}

// recordAccess accounts one access event and fires decay once the mean
// frequency passes maxAvg.
func (c *Cache[K, V]) recordAccess() {
	c.curTotal++
	if len(c.idx) == 0 {
		return
	}
	if c.curTotal/len(c.idx) > c.maxAvg {
		c.decay()
	}
}

// decay subtracts maxAvg/2 from every resident frequency (clamped to 1),
// rebuilds the frequency table and recomputes minFreq and the aging
// total. O(n), amortised by how rarely the threshold is crossed.
func (c *Cache[K, V]) decay() {
	nodes := make([]*list.Node[K, V], 0, len(c.idx))
	for _, l := range c.freqs {
		for n := l.PopFront(); n != nil; n = l.PopFront() {
			nodes = append(nodes, n)
		}
	}
	c.freqs = make(map[int]*list.List[K, V])

	half := c.maxAvg / 2
	total := 0
	minF := 0
	for _, n := range nodes {
		n.Count -= half
		if n.Count < 1 {
			n.Count = 1
		}
		c.appendToFreq(n)
		total += n.Count
		if minF == 0 || n.Count < minF {
			minF = n.Count
		}
	}
	c.curTotal = total
	c.minFreq = minF
}

var _ policy.Cache[string, int] = (*Cache[string, int])(nil)
