package cache

import (
	"context"

	"github.com/vmarkelov/policycache/policy"
)

// Metrics exposes cache-level observability hooks, invoked once per Get.
// NoopMetrics is used when nothing is configured.
type Metrics interface {
	Hit()
	Miss()
}

// Options configures the sharded cache. Zero values get sane defaults in
// New():
//   - nil Policy   => LRU
//   - Shards <= 0  => auto (≈ 2*GOMAXPROCS, power of two)
//   - nil Metrics  => NoopMetrics
type Options[K comparable, V any] struct {
	// Capacity is the total entry limit across all shards. Must be > 0;
	// New panics otherwise.
	Capacity int

	// Shards is the number of independent policy instances the keyspace
	// is split over. Rounded up to a power of two so routing can mask
	// instead of divide. <= 0 selects an automatic value.
	Shards int

	// Policy constructs one shard. Each shard receives a capacity of
	// ceil(Capacity/Shards). Nil selects LRU.
	Policy policy.Constructor[K, V]

	// Loader fetches a value on cache miss; used only by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// Metrics receives Hit/Miss signals from Get.
	Metrics Metrics
}
