package cache

import (
	"context"

	"github.com/vmarkelov/policycache/policy"
)

// Cache is the sharded wrapper's surface: the uniform policy contract
// plus lifecycle and loading helpers. All methods are safe for
// concurrent use by multiple goroutines.
//
// Typical operation cost is expected O(1): one hash, one shard pick and
// one delegated policy operation under that shard's lock.
type Cache[K comparable, V any] interface {
	policy.Cache[K, V]

	// Close marks the cache closed; subsequent operations are ignored
	// (Set/Purge become no-ops, Get/Contains miss). Idempotent.
	Close() error

	// GetOrLoad returns the value for k, loading it via Options.Loader
	// on a miss. Concurrent loads for the same key are coalesced.
	// Without a configured Loader it returns ErrNoLoader.
	GetOrLoad(ctx context.Context, k K) (V, error)
}
