package random

import "testing"

func TestExpanderGoldenVectors(t *testing.T) {
	tests := []struct {
		seed string
		want [4]uint32
	}{
		{seed: "", want: [4]uint32{167010153, 2610615433, 1495386444, 1351578270}},
		{seed: "hello", want: [4]uint32{3588693721, 2540863134, 1947501763, 816861027}},
		{seed: "a", want: [4]uint32{519299066, 3840329591, 1163017567, 3909796798}},
		{seed: "héllo", want: [4]uint32{3960454150, 3698224093, 4275517834, 2124770583}},
		{seed: "🎲", want: [4]uint32{1290845121, 1591088170, 326557295, 1118673693}},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			e := NewExpander(tt.seed)
			for i, want := range tt.want {
				if got := e.Next(); got != want {
					t.Fatalf("word %d = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestExpanderEmptySeedInitialState(t *testing.T) {
	e := NewExpander("")
	if e.h != xmur3Basis {
		t.Fatalf("initial h = %d, want %d", e.h, uint32(xmur3Basis))
	}
}

func TestExpanderWordsAdvance(t *testing.T) {
	e := NewExpander("advance")
	prev := e.Next()
	for i := 0; i < 16; i++ {
		next := e.Next()
		if next == prev {
			t.Fatalf("word %d repeated %d", i+1, next)
		}
		prev = next
	}
}
