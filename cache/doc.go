// Package cache provides a generic, sharded in-memory cache with
// interchangeable eviction policies: LRU (default), LRU-K, LFU and ARC.
//
// # Design
//
//   - Concurrency: the keyspace is split across shards, each an
//     independent policy instance guarded by its own mutex. The wrapper
//     itself is lock-free: it hashes the key (xxHash), masks the shard
//     index and delegates. The default shard count is a power of two
//     derived from GOMAXPROCS.
//
//   - Policies: every shard satisfies policy.Cache. The policy packages
//     (policy/lru, policy/lruk, policy/lfu, policy/arc) each keep a
//     map[K]*node index over intrusive doubly linked lists, so all
//     operations are O(1) expected; only LFU's rare aging step is O(n).
//
//   - GetOrLoad: coalesces concurrent loads for the same key through an
//     internal singleflight group. A nil Loader yields ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss signals; NoopMetrics is
//     the default and metrics/prom exports them to Prometheus.
//
// # Basic usage
//
//	c := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 10_000})
//	c.Set("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//	c.Remove("a")
//
// # Choosing a policy
//
//	// LFU with the default aging threshold:
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 50_000,
//	    Policy:   lfu.Constructor[string, string](0),
//	})
//
//	// LRU-K admission (admit on the 2nd reference, history of 4x capacity):
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 50_000,
//	    Shards:   64,
//	    Policy:   lruk.Constructor[string, string](50_000/64*4, 2),
//	})
//
// Policy extras (history size, admission threshold, aging ceiling) are
// per shard: the Constructor helpers bind them once and the wrapper
// passes only the per-shard capacity.
//
// # Exporting metrics
//
//	m := prom.New(nil, "app", "cache", nil)
//	c := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Capacity: 10_000,
//	    Metrics:  m,
//	})
//	m.TrackLen(c.Len)
//
// All methods on Cache are safe for concurrent use.
package cache
