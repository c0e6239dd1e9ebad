package util

import (
	"math/bits"
	"runtime"
)

// NextPow2 returns the smallest power of two >= x (1 for x <= 1, clamped
// to 1<<63 when the exact next power would overflow).
func NextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	n := bits.Len64(x - 1)
	if n >= 64 {
		return 1 << 63
	}
	return 1 << n
}

// ReasonableShardCount picks a default shard count from available
// parallelism: nextPow2(2*GOMAXPROCS), clamped to [1..256]. Beyond a few
// hundred shards the extra memory buys no further contention relief.
func ReasonableShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(NextPow2(uint64(2 * p)))
	if n > 256 {
		n = 256
	}
	return n
}

// ShardIndex maps a 64-bit hash onto [0, shards). Power-of-two counts
// take the mask path; anything else falls back to modulo.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	if s := uint64(shards); s&(s-1) == 0 {
		return int(hash & (s - 1))
	}
	return int(hash % uint64(shards))
}
