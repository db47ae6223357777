package random

import "testing"

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	if len(a) != 2*freshSeedBytes {
		t.Fatalf("seed length = %d, want %d", len(a), 2*freshSeedBytes)
	}
	if a == b {
		t.Fatalf("two fresh seeds collided: %s", a)
	}
}
