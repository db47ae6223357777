package random

import (
	"testing"
	"unicode/utf8"
)

func TestNewGoldenFloats(t *testing.T) {
	tests := []struct {
		seed string
		want []float64
	}{
		{
			seed: "",
			want: []float64{0.9614051915705204, 0.05698586581274867, 0.5611667237244546, 0.07454015337862074, 0.09251819760538638},
		},
		{
			seed: "hello",
			want: []float64{0.6173389465548098, 0.8618584796786308, 0.18602279876358807, 0.2039393805898726, 0.007914518704637885},
		},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			g := New(tt.seed)
			for i, want := range tt.want {
				if got := g.Next(); got != want {
					t.Fatalf("draw %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestNewGoldenWordsNonASCII(t *testing.T) {
	tests := []struct {
		seed string
		want []uint32
	}{
		{seed: "héllo", want: []uint32{1193514234, 1345769434, 2972723546, 1790636343, 3109026799}},
		{seed: "🎲", want: []uint32{4000606984, 1356131365, 2436205353, 3651139663, 905604263}},
		{seed: "tails", want: []uint32{1620880431, 1835787282, 1144634758, 1282456583, 2246531705}},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			g := New(tt.seed)
			for i, want := range tt.want {
				if got := g.Uint32(); got != want {
					t.Fatalf("word %d = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestNewDeterministic(t *testing.T) {
	a := New("same seed")
	b := New("same seed")
	for i := 0; i < 1000; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("draw %d diverged: %v != %v", i, x, y)
		}
	}
}

func TestNewSeedSensitivity(t *testing.T) {
	a := New("a")
	b := New("b")
	same := 0
	for i := 0; i < 8; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	if same == 8 {
		t.Fatal("seeds a and b produced identical draws")
	}
}

func TestNewRangeBound(t *testing.T) {
	g := New("range")
	for i := 0; i < 10000; i++ {
		v := g.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d = %v, want [0, 1)", i, v)
		}
	}
}

func TestNewNonInterference(t *testing.T) {
	a := New("shared")
	b := New("shared")
	for i := 0; i < 50; i++ {
		a.Next()
	}
	ref := New("shared")
	for i := 0; i < 10; i++ {
		if got, want := b.Next(), ref.Next(); got != want {
			t.Fatalf("draw %d = %v, want %v", i, got, want)
		}
	}
}

func TestNewRandIsDeterministic(t *testing.T) {
	a := NewRand("perm")
	b := NewRand("perm")
	pa := a.Perm(20)
	pb := b.Perm(20)
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("perm[%d] = %d, want %d", i, pb[i], pa[i])
		}
	}
}

func TestCanonicalSeed(t *testing.T) {
	composed := "h\u00e9llo"
	decomposed := "he\u0301llo"
	if composed == decomposed {
		t.Fatal("fixtures must differ before normalization")
	}
	if New(composed).Next() == New(decomposed).Next() {
		t.Fatal("raw seeds should not share a stream")
	}
	got := CanonicalSeed(decomposed)
	if got != composed {
		t.Fatalf("canonical = %q, want %q", got, composed)
	}
	if !utf8.ValidString(got) {
		t.Fatal("canonical seed is not valid UTF-8")
	}
}
