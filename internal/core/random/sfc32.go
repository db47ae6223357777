package random

import "math/bits"

// twoTo32 converts a 32-bit word into a float in [0, 1).
const twoTo32 = 1 << 32

// SFC32 is a small fast chaotic generator over four 32-bit words.
//
// The zero value is a valid generator seeded with all-zero state; its first
// few outputs are strongly correlated.
type SFC32 struct {
	a, b, c, d uint32
}

// NewSFC32 returns a generator holding the given state words verbatim.
func NewSFC32(a, b, c, d uint32) *SFC32 {
	return &SFC32{a: a, b: b, c: c, d: d}
}

// Uint32 advances the generator and returns the raw output word.
func (g *SFC32) Uint32() uint32 {
	t := g.a + g.b + g.d
	g.d++
	g.a = g.b ^ g.b>>9
	g.b = g.c + g.c<<3
	g.c = bits.RotateLeft32(g.c, 21) + t
	return t
}

// Next advances the generator and returns a float64 in [0, 1).
func (g *SFC32) Next() float64 {
	return float64(g.Uint32()) / twoTo32
}

// Uint64 joins two consecutive words, high word first. It lets SFC32 serve
// as a math/rand/v2 Source.
func (g *SFC32) Uint64() uint64 {
	hi := g.Uint32()
	lo := g.Uint32()
	return uint64(hi)<<32 | uint64(lo)
}
