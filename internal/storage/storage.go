package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	farm "github.com/dgryski/go-farm"
)

var (
	// ErrNotFound indicates a requested checkpoint is missing.
	ErrNotFound = errors.New("record not found")
	// ErrSeedMismatch indicates a checkpoint id already belongs to another seed.
	ErrSeedMismatch = errors.New("stream id is bound to a different seed")
)

// Checkpoint stores the replay position of one seeded stream.
type Checkpoint struct {
	ID        string
	Seed      string
	Position  uint64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckpointPage stores one page of checkpoints.
type CheckpointPage struct {
	Checkpoints   []Checkpoint
	NextPageToken string
}

// CheckpointStore persists stream checkpoints.
type CheckpointStore interface {
	PutCheckpoint(ctx context.Context, checkpoint Checkpoint) error
	GetCheckpoint(ctx context.Context, id string) (Checkpoint, error)
	ListCheckpoints(ctx context.Context, pageSize int, pageToken string) (CheckpointPage, error)
}

// StreamID derives the default checkpoint id for seed: the hex farmhash
// fingerprint of its bytes. Seeds are otherwise unbounded text, so they make
// poor keys.
func StreamID(seed string) string {
	return fmt.Sprintf("%016x", farm.Fingerprint64([]byte(seed)))
}
