package cache

import (
	"strings"
	"testing"
)

// Fuzz basic Set/Get/Remove semantics under arbitrary string inputs.
// Guards against panics and checks the core read-your-write invariants.
// Key/value lengths are capped to keep memory bounded during fuzzing;
// this does not weaken the invariants being checked.
func FuzzCache_SetGetRemove(f *testing.F) {
	// Seed corpus: empty, ASCII, Unicode, long strings.
	f.Add("", "")
	f.Add("a", "1")
	f.Add("b", "2")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12 // 4096
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c := New[string, string](Options[string, string]{Capacity: 16})
		t.Cleanup(func() { _ = c.Close() })

		// Set -> Get must return the same value.
		c.Set(k, v)
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("after Set/Get: want %q, got %q ok=%v", v, got, ok)
		}

		// Overwrite is idempotent.
		c.Set(k, v)
		if got2, ok := c.Get(k); !ok || got2 != v {
			t.Fatalf("after overwrite: want %q, got %q ok=%v", v, got2, ok)
		}

		// Remove must delete and return true exactly once.
		if !c.Remove(k) {
			t.Fatalf("Remove must return true")
		}
		if c.Remove(k) {
			t.Fatalf("second Remove must return false")
		}
		if _, ok := c.Get(k); ok {
			t.Fatalf("key must be absent after Remove")
		}

		// The slot is reusable.
		c.Set(k, v+"!")
		if got3, ok := c.Get(k); !ok || got3 != v+"!" {
			t.Fatalf("after re-Set: want %q, got %q ok=%v", v+"!", got3, ok)
		}
	})
}
