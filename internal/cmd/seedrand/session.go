package seedrand

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/louisbranch/seedrand/internal/core/random"
	"github.com/louisbranch/seedrand/internal/storage"
	"github.com/louisbranch/seedrand/internal/storage/sqlite"
)

// streamsPageSize is how many checkpoints listStreams reads per query.
const streamsPageSize = 100

type checkpointStore interface {
	storage.CheckpointStore
	io.Closer
}

// session is the stream a run draws from, plus the journal that resumes and
// checkpoints it when one is configured.
type session struct {
	id     string
	stream *random.Stream
	store  checkpointStore
	logger zerolog.Logger
}

func openSession(ctx context.Context, cfg Config, seed string, logger zerolog.Logger) (*session, error) {
	id := strings.TrimSpace(cfg.Stream)
	if id == "" {
		id = storage.StreamID(seed)
	}
	if strings.TrimSpace(cfg.JournalPath) == "" {
		return &session{id: id, stream: random.NewStream(seed), logger: logger}, nil
	}

	store, err := sqlite.Open(cfg.JournalPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	s, err := resumeSession(ctx, store, id, seed, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return s, nil
}

func resumeSession(ctx context.Context, store checkpointStore, id, seed string, logger zerolog.Logger) (*session, error) {
	s := &session{id: id, store: store, logger: logger}
	checkpoint, err := store.GetCheckpoint(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.stream = random.NewStream(seed)
		logger.Debug().Str("stream", id).Msg("starting new stream")
	case err != nil:
		return nil, fmt.Errorf("load checkpoint: %w", err)
	case checkpoint.Seed != seed:
		return nil, fmt.Errorf("stream %q: %w", id, storage.ErrSeedMismatch)
	default:
		s.stream = random.RestoreStream(seed, checkpoint.Position)
		logger.Debug().Str("stream", id).Uint64("position", checkpoint.Position).Msg("resumed stream")
	}
	return s, nil
}

func (s *session) save(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	err := s.store.PutCheckpoint(ctx, storage.Checkpoint{
		ID:       s.id,
		Seed:     s.stream.Seed(),
		Position: s.stream.Position(),
	})
	if err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	s.logger.Info().Str("stream", s.id).Uint64("position", s.stream.Position()).Msg("checkpoint saved")
	return nil
}

func (s *session) close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("close journal")
	}
}

// listStreams prints every checkpoint in the journal at path, in id order.
func listStreams(ctx context.Context, path string, p *printer, logger zerolog.Logger) error {
	store, err := sqlite.Open(path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("close journal")
		}
	}()

	pageToken := ""
	for {
		page, err := store.ListCheckpoints(ctx, streamsPageSize, pageToken)
		if err != nil {
			return err
		}
		for _, checkpoint := range page.Checkpoints {
			if err := p.checkpoint(checkpoint); err != nil {
				return err
			}
		}
		if page.NextPageToken == "" {
			return nil
		}
		pageToken = page.NextPageToken
	}
}
