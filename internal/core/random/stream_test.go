package random

import "testing"

func TestStreamMatchesGenerator(t *testing.T) {
	s := NewStream("hello")
	g := New("hello")
	for i := 0; i < 20; i++ {
		if got, want := s.Next(), g.Next(); got != want {
			t.Fatalf("draw %d = %v, want %v", i, got, want)
		}
	}
	if s.Position() != 20 {
		t.Fatalf("position = %d, want 20", s.Position())
	}
	if s.Seed() != "hello" {
		t.Fatalf("seed = %q, want hello", s.Seed())
	}
}

func TestStreamUint64CountsTwoWords(t *testing.T) {
	s := NewStream("wide")
	s.Uint64()
	if s.Position() != 2 {
		t.Fatalf("position = %d, want 2", s.Position())
	}
}

func TestRestoreStreamContinuesSequence(t *testing.T) {
	original := NewStream("checkpoint")
	for i := 0; i < 37; i++ {
		original.Next()
	}

	restored := RestoreStream("checkpoint", original.Position())
	if restored.Position() != 37 {
		t.Fatalf("restored position = %d, want 37", restored.Position())
	}
	for i := 0; i < 10; i++ {
		if got, want := restored.Next(), original.Next(); got != want {
			t.Fatalf("draw %d after restore = %v, want %v", i, got, want)
		}
	}
}

func TestRestoreStreamAtZero(t *testing.T) {
	s := RestoreStream("", 0)
	if got, want := s.Next(), 0.9614051915705204; got != want {
		t.Fatalf("first draw = %v, want %v", got, want)
	}
}
