// Package policy defines the uniform contract implemented by every
// eviction policy in this module (LRU, LRU-K, LFU, ARC) and by the
// sharded wrapper built on top of them.
package policy

// Cache is a bounded, thread-safe key/value store with a fixed eviction
// policy. Every policy implementation guards its mutable state with a
// single non-reentrant mutex; each method is one critical section with
// no suspension points, so operations on one instance are totally
// ordered. The sharded wrapper holds no lock of its own: it delegates
// each call to one shard, and Len and Purge visit the shards in turn.
//
// All operations are expected O(1): a map access plus a constant number
// of pointer fixes. Misses are not errors.
type Cache[K comparable, V any] interface {
	// Set inserts or updates k→v and promotes the entry according to
	// the policy. With capacity 0 it is a silent no-op.
	Set(k K, v V)

	// Get returns the value for k and a presence flag. A hit promotes
	// the entry according to the policy; a miss returns the zero value.
	Get(k K) (V, bool)

	// GetValue is the convenience form of Get: it returns the zero
	// value of V on a miss.
	GetValue(k K) V

	// Contains reports whether k is resident. It never promotes,
	// admits or evicts.
	Contains(k K) bool

	// Remove deletes k if present and returns true on success.
	Remove(k K) bool

	// Purge drops all entries and resets internal counters.
	// Capacity is preserved.
	Purge()

	// Len returns the number of resident entries.
	Len() int
}

// Constructor builds a policy instance of the given capacity. The
// sharded wrapper calls it once per shard; policy packages export a
// Constructor helper that binds their extra parameters (history size,
// admission threshold, aging ceiling) so the wrapper stays oblivious
// to them.
type Constructor[K comparable, V any] func(capacity int) Cache[K, V]
