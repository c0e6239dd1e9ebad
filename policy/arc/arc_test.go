package arc

import (
	"math/rand"
	"testing"
)

// Evicting a once-seen key ghosts it in B1; re-inserting it is a B1 hit
// that grows the recency target p and admits the key through T2.
func TestARC_B1RehitGrowsP(t *testing.T) {
	t.Parallel()

	c := New[int, string](2)
	c.Set(1, "A")
	c.Set(2, "B")
	c.Set(3, "C") // evicts 1 into B1

	if c.Contains(1) {
		t.Fatal("1 must not be resident after eviction")
	}
	if _, ok := c.b1.idx[1]; !ok {
		t.Fatal("1 must be ghosted in B1")
	}

	p0 := c.p
	c.Set(1, "A'") // B1 hit
	if c.p <= p0 {
		t.Fatalf("p=%d after B1 hit, want > %d", c.p, p0)
	}
	if v, ok := c.Get(1); !ok || v != "A'" {
		t.Fatalf("Get 1 = %q ok=%v, want A'", v, ok)
	}
	if _, ok := c.b1.idx[1]; ok {
		t.Fatal("1 must leave B1 on re-admission")
	}
}

// A second reference moves a key from the recent half to the frequent
// half, where a scan of cold keys cannot evict it.
func TestARC_HotKeySurvivesScan(t *testing.T) {
	t.Parallel()

	c := New[int, int](2)
	c.Set(1, 10)
	c.Get(1) // 1 now in T2
	if _, ok := c.t2.idx[1]; !ok {
		t.Fatal("second reference must promote 1 to T2")
	}

	for k := 100; k < 110; k++ { // scan traffic flows through T1
		c.Set(k, k)
	}
	if !c.Contains(1) {
		t.Fatal("hot key must survive the scan")
	}
}

// A Get miss on a ghost adapts p but inserts nothing and keeps the ghost.
func TestARC_GetMissAdaptsWithoutInsert(t *testing.T) {
	t.Parallel()

	c := New[int, string](2)
	c.Set(1, "A")
	c.Set(2, "B")
	c.Set(3, "C") // 1 ghosted in B1

	p0 := c.p
	if _, ok := c.Get(1); ok {
		t.Fatal("ghost key must miss")
	}
	if c.p <= p0 {
		t.Fatalf("p=%d after B1 ghost read, want > %d", c.p, p0)
	}
	if c.Contains(1) {
		t.Fatal("a Get miss must not insert")
	}
	if _, ok := c.b1.idx[1]; !ok {
		t.Fatal("the ghost entry must remain until a Set re-admits it")
	}
}

// B2 hits pull p back down; p never leaves [0, capacity].
func TestARC_PStaysInRange(t *testing.T) {
	t.Parallel()

	const capacity = 8
	c := New[int, int](capacity)
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		k := r.Intn(64)
		if r.Intn(2) == 0 {
			c.Set(k, k)
		} else {
			c.Get(k)
		}
		if c.p < 0 || c.p > capacity {
			t.Fatalf("p=%d out of [0,%d] at step %d", c.p, capacity, i)
		}
	}
}

// Every key lives in at most one of T1, T2, B1, B2, residency never
// exceeds capacity and each ghost list stays within capacity.
func TestARC_ListsDisjointAndBounded(t *testing.T) {
	t.Parallel()

	const capacity = 4
	c := New[int, int](capacity)
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		k := r.Intn(32)
		switch r.Intn(10) {
		case 0:
			c.Remove(k)
		case 1, 2, 3:
			c.Get(k)
		default:
			c.Set(k, i)
		}

		if n := c.t1.ll.Len() + c.t2.ll.Len(); n > capacity {
			t.Fatalf("resident=%d exceeds capacity at step %d", n, i)
		}
		if c.b1.ll.Len() > capacity || c.b2.ll.Len() > capacity {
			t.Fatalf("ghosts %d/%d exceed capacity at step %d",
				c.b1.ll.Len(), c.b2.ll.Len(), i)
		}
		for k := range c.t1.idx {
			if _, ok := c.t2.idx[k]; ok {
				t.Fatalf("%d in both T1 and T2", k)
			}
			if _, ok := c.b1.idx[k]; ok {
				t.Fatalf("%d in both T1 and B1", k)
			}
			if _, ok := c.b2.idx[k]; ok {
				t.Fatalf("%d in both T1 and B2", k)
			}
		}
		for k := range c.t2.idx {
			if _, ok := c.b1.idx[k]; ok {
				t.Fatalf("%d in both T2 and B1", k)
			}
			if _, ok := c.b2.idx[k]; ok {
				t.Fatalf("%d in both T2 and B2", k)
			}
		}
		for k := range c.b1.idx {
			if _, ok := c.b2.idx[k]; ok {
				t.Fatalf("%d in both B1 and B2", k)
			}
		}
	}
}

// Overwriting a resident key keeps exactly one copy, in the frequent half.
func TestARC_SetOverwrites(t *testing.T) {
	t.Parallel()

	c := New[int, string](4)
	c.Set(1, "A")
	c.Set(1, "A2") // T1 -> T2 with the new value
	if v, ok := c.Get(1); !ok || v != "A2" {
		t.Fatalf("Get 1 = %q ok=%v, want A2", v, ok)
	}
	if c.Len() != 1 {
		t.Fatalf("Len=%d, want 1", c.Len())
	}
	c.Set(1, "A3") // T2 overwrite in place
	if v := c.GetValue(1); v != "A3" {
		t.Fatalf("GetValue 1 = %q, want A3", v)
	}
}

// Remove deletes residents without ghosting them.
func TestARC_RemoveDoesNotGhost(t *testing.T) {
	t.Parallel()

	c := New[int, string](2)
	c.Set(1, "A")
	if !c.Remove(1) {
		t.Fatal("Remove must return true for a resident key")
	}
	if c.Remove(1) {
		t.Fatal("second Remove must return false")
	}
	if _, ok := c.b1.idx[1]; ok {
		t.Fatal("an explicitly removed key must not be ghosted")
	}
	if c.Len() != 0 {
		t.Fatalf("Len=%d, want 0", c.Len())
	}
}

// Purge clears residents, ghosts and the learned partition.
func TestARC_Purge(t *testing.T) {
	t.Parallel()

	c := New[int, int](2)
	for i := 0; i < 10; i++ {
		c.Set(i, i)
	}
	c.Set(8, 8) // some T2 traffic
	c.Purge()

	if c.Len() != 0 || c.p != 0 {
		t.Fatalf("Len=%d p=%d after Purge, want 0/0", c.Len(), c.p)
	}
	if c.b1.ll.Len() != 0 || c.b2.ll.Len() != 0 {
		t.Fatal("ghost lists must be empty after Purge")
	}
	for i := 0; i < 10; i++ {
		if _, ok := c.Get(i); ok {
			t.Fatalf("%d must miss after Purge", i)
		}
	}

	c.Set(1, 1)
	if v, ok := c.Get(1); !ok || v != 1 {
		t.Fatal("cache must be usable after Purge")
	}
}

// Capacity 0: Set is a no-op and Get always misses.
func TestARC_ZeroCapacity(t *testing.T) {
	t.Parallel()

	c := New[string, int](0)
	c.Set("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Fatal("capacity 0 must never store")
	}
	if c.Len() != 0 {
		t.Fatalf("Len=%d, want 0", c.Len())
	}
}
