// Package random provides the deterministic, string-seeded generator used for
// every reproducible draw in seedrand.
//
// A seed string is hashed by an xmur3 expander into four 32-bit words, which
// become the state of an sfc32 generator. All arithmetic wraps at 32 bits, so
// a given seed always yields the same sequence on every platform.
//
// # Seeds
//
// Seed characters are read as UTF-16 code units, matching JavaScript's
// charCodeAt. A rune outside the Basic Multilingual Plane contributes two
// units (its surrogate pair) both to the length and to the hash.
//
// # Ownership
//
// Generators are small private state machines. They are not safe for
// concurrent use; give each goroutine its own instance.
//
// The generator is not cryptographically secure.
package random
