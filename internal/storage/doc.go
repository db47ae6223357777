// Package storage defines the persistence contracts for stream checkpoints.
//
// A checkpoint records the seed of a stream and how many words have been drawn
// from it, which is all that is needed to rebuild the stream with
// random.RestoreStream. Generator state words are never stored.
//
// Implementations live in subpackages (see storage/sqlite).
//
// # Error Types
//
//   - ErrNotFound: a requested checkpoint is missing.
//   - ErrSeedMismatch: a checkpoint id is already bound to a different seed.
package storage
