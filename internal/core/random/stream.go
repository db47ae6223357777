package random

// Stream is a seeded generator that remembers its seed and how many words it
// has produced, so it can be checkpointed and restored without exposing its
// state words.
type Stream struct {
	seed string
	gen  *SFC32
	pos  uint64
}

// NewStream returns a stream at position zero.
func NewStream(seed string) *Stream {
	return &Stream{seed: seed, gen: New(seed)}
}

// RestoreStream rebuilds the stream for seed and replays position words.
func RestoreStream(seed string, position uint64) *Stream {
	s := NewStream(seed)
	for s.pos < position {
		s.Uint32()
	}
	return s
}

// Seed returns the seed the stream was built from.
func (s *Stream) Seed() string {
	return s.seed
}

// Position returns the number of 32-bit words drawn so far.
func (s *Stream) Position() uint64 {
	return s.pos
}

// Uint32 draws one raw word.
func (s *Stream) Uint32() uint32 {
	s.pos++
	return s.gen.Uint32()
}

// Next draws one float64 in [0, 1).
func (s *Stream) Next() float64 {
	return float64(s.Uint32()) / twoTo32
}

// Uint64 draws two words, high word first.
func (s *Stream) Uint64() uint64 {
	hi := s.Uint32()
	lo := s.Uint32()
	return uint64(hi)<<32 | uint64(lo)
}
