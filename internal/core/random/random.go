package random

import (
	"math/rand/v2"

	"golang.org/x/text/unicode/norm"
)

// seedWords is how many expander outputs initialize a generator.
const seedWords = 4

// New returns a generator derived from seed. The expander used to derive the
// state is discarded.
func New(seed string) *SFC32 {
	e := NewExpander(seed)
	var w [seedWords]uint32
	for i := range w {
		w[i] = e.Next()
	}
	return NewSFC32(w[0], w[1], w[2], w[3])
}

// NewRand returns a math/rand/v2 generator backed by New(seed).
func NewRand(seed string) *rand.Rand {
	return rand.New(New(seed))
}

// CanonicalSeed returns seed in Unicode normalization form C, so visually
// identical seeds typed with composed or decomposed accents share a stream.
func CanonicalSeed(seed string) string {
	return norm.NFC.String(seed)
}

var (
	_ rand.Source = (*SFC32)(nil)
	_ rand.Source = (*Stream)(nil)
)
