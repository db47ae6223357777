package random

import (
	"math/bits"
	"unicode/utf16"
)

const (
	xmur3Basis     = 1779033703
	xmur3Mix       = 3432918353
	xmur3Finalize  = 2246822507
	xmur3Avalanche = 3266489909
)

// Expander hashes a seed string into a stream of 32-bit words.
type Expander struct {
	h uint32
}

// NewExpander walks seed once and returns an expander positioned before its
// first word.
func NewExpander(seed string) *Expander {
	units := utf16.Encode([]rune(seed))
	h := uint32(xmur3Basis) ^ uint32(len(units))
	for _, cu := range units {
		h = (h ^ uint32(cu)) * xmur3Mix
		h = bits.RotateLeft32(h, 13)
	}
	return &Expander{h: h}
}

// Next advances the expander and returns the next seed word.
func (e *Expander) Next() uint32 {
	h := e.h
	h = (h ^ h>>16) * xmur3Finalize
	h = (h ^ h>>13) * xmur3Avalanche
	h ^= h >> 16
	e.h = h
	return h
}
