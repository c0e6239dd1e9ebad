package cache

import (
	"context"
	"sync/atomic"

	"github.com/vmarkelov/policycache/internal/singleflight"
	"github.com/vmarkelov/policycache/internal/util"
	"github.com/vmarkelov/policycache/policy"
	"github.com/vmarkelov/policycache/policy/lru"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
var ErrNoLoader = errorsNew("cache: no Loader provided")

// lightweight local errors.New to avoid importing std 'errors' for one value
func errorsNew(s string) error { return &strErr{s} }

type strErr struct{ s string }

func (e *strErr) Error() string { return e.s }

// cache partitions the keyspace over independent policy instances.
// The wrapper holds no lock of its own: every shard is a self-locking
// policy.Cache, and the wrapper never touches a shard's internals.
type cache[K comparable, V any] struct {
	shards []policy.Cache[K, V]
	hash   func(K) uint64
	closed atomic.Bool

	opt Options[K, V]

	// singleflight group coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]
}

// New constructs a sharded cache with the provided Options. Shard count
// is rounded up to a power of two; each shard gets ceil(Capacity/Shards)
// entries of the total budget. Panics if Capacity <= 0.
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.Capacity <= 0 {
		panic("cache: Capacity must be > 0")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = lru.Constructor[K, V]()
	}

	sh := opt.Shards
	if sh <= 0 {
		sh = util.ReasonableShardCount()
	} else {
		sh = int(util.NextPow2(uint64(sh)))
	}

	perShard := (opt.Capacity + sh - 1) / sh
	shards := make([]policy.Cache[K, V], sh)
	for i := range shards {
		shards[i] = opt.Policy(perShard)
	}

	return &cache[K, V]{
		shards: shards,
		hash:   util.Hash64[K],
		opt:    opt,
	}
}

// ---- Cache[K,V] implementation ----

// Set inserts or updates k→v in k's shard.
func (c *cache[K, V]) Set(k K, v V) {
	if c.closed.Load() {
		return
	}
	c.shard(k).Set(k, v)
}

// Get returns the value for k and a presence flag, counting the outcome
// toward the configured Metrics.
func (c *cache[K, V]) Get(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	v, ok := c.shard(k).Get(k)
	if ok {
		c.opt.Metrics.Hit()
	} else {
		c.opt.Metrics.Miss()
	}
	return v, ok
}

// GetValue returns the value for k, or the zero value on a miss.
func (c *cache[K, V]) GetValue(k K) V {
	v, _ := c.Get(k)
	return v
}

// Contains reports residency without promoting the entry.
func (c *cache[K, V]) Contains(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.shard(k).Contains(k)
}

// Remove deletes k if present and returns true on success.
func (c *cache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.shard(k).Remove(k)
}

// Purge drops all entries in every shard. Capacity is preserved.
func (c *cache[K, V]) Purge() {
	if c.closed.Load() {
		return
	}
	for _, s := range c.shards {
		s.Purge()
	}
}

// Len returns the total number of resident entries across all shards.
func (c *cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

// Close marks the cache as closed. Afterwards Set, Purge and Remove are
// no-ops and Get/Contains miss; Len still reports the shards' contents.
func (c *cache[K, V]) Close() error {
	c.closed.Store(true)
	return nil
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key.
func (c *cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return c.sf.Do(ctx, k, func() (V, error) {
		// Double-check after joining the flight: the leader may have
		// populated the entry while this caller was queued.
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err == nil {
			c.Set(k, v)
		}
		return v, err
	})
}

// shard routes k to its policy instance. len(c.shards) is a power of
// two, so ShardIndex takes the mask path.
func (c *cache[K, V]) shard(k K) policy.Cache[K, V] {
	return c.shards[util.ShardIndex(c.hash(k), len(c.shards))]
}
