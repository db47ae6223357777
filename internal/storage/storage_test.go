package storage

import "testing"

func TestStreamIDStable(t *testing.T) {
	a := StreamID("hello")
	b := StreamID("hello")
	if a != b {
		t.Fatalf("stream id not stable: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("stream id length = %d, want 16", len(a))
	}
}

func TestStreamIDDistinguishesSeeds(t *testing.T) {
	seen := map[string]string{}
	for _, seed := range []string{"", "a", "b", "hello", "héllo", "🎲"} {
		id := StreamID(seed)
		if prev, ok := seen[id]; ok {
			t.Fatalf("seeds %q and %q share id %s", prev, seed, id)
		}
		seen[id] = seed
	}
}
