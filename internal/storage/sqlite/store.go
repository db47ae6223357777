// Package sqlite provides a SQLite-backed checkpoint storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/seedrand/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/seedrand/internal/storage"
	"github.com/louisbranch/seedrand/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists stream checkpoints in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite checkpoint store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutCheckpoint inserts a checkpoint or moves an existing one to a new
// position. CreatedAt is kept from the first write.
func (s *Store) PutCheckpoint(ctx context.Context, checkpoint storage.Checkpoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(checkpoint.ID)
	if id == "" {
		return fmt.Errorf("stream id is required")
	}
	if checkpoint.Position > math.MaxInt64 {
		return fmt.Errorf("position %d exceeds storage range", checkpoint.Position)
	}
	updatedAt := checkpoint.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	createdAt := checkpoint.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = updatedAt
	}

	res, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO streams (stream_id, seed, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (stream_id) DO UPDATE SET
		   position = excluded.position,
		   updated_at = excluded.updated_at
		 WHERE streams.seed = excluded.seed`,
		id,
		checkpoint.Seed,
		int64(checkpoint.Position),
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("put checkpoint: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("put checkpoint: %w", err)
	}
	if affected == 0 {
		return storage.ErrSeedMismatch
	}
	return nil
}

// GetCheckpoint returns one checkpoint by stream id.
func (s *Store) GetCheckpoint(ctx context.Context, id string) (storage.Checkpoint, error) {
	if err := ctx.Err(); err != nil {
		return storage.Checkpoint{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Checkpoint{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Checkpoint{}, fmt.Errorf("stream id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT stream_id, seed, position, created_at, updated_at
		   FROM streams
		  WHERE stream_id = ?`,
		id,
	)
	checkpoint, err := scanCheckpoint(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Checkpoint{}, storage.ErrNotFound
		}
		return storage.Checkpoint{}, fmt.Errorf("get checkpoint: %w", err)
	}
	return checkpoint, nil
}

// ListCheckpoints returns one page of checkpoints ordered by stream id.
func (s *Store) ListCheckpoints(ctx context.Context, pageSize int, pageToken string) (storage.CheckpointPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.CheckpointPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.CheckpointPage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.CheckpointPage{}, fmt.Errorf("page size must be greater than zero")
	}
	pageToken = strings.TrimSpace(pageToken)

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT stream_id, seed, position, created_at, updated_at
		   FROM streams
		  WHERE stream_id > ?
		  ORDER BY stream_id ASC
		  LIMIT ?`,
		pageToken,
		pageSize+1,
	)
	if err != nil {
		return storage.CheckpointPage{}, fmt.Errorf("list checkpoints: %w", err)
	}
	defer rows.Close()

	page := storage.CheckpointPage{
		Checkpoints: make([]storage.Checkpoint, 0, pageSize),
	}
	for rows.Next() {
		checkpoint, err := scanCheckpoint(rows)
		if err != nil {
			return storage.CheckpointPage{}, fmt.Errorf("list checkpoints: %w", err)
		}
		page.Checkpoints = append(page.Checkpoints, checkpoint)
	}
	if err := rows.Err(); err != nil {
		return storage.CheckpointPage{}, fmt.Errorf("list checkpoints: %w", err)
	}
	if len(page.Checkpoints) > pageSize {
		page.NextPageToken = page.Checkpoints[pageSize-1].ID
		page.Checkpoints = page.Checkpoints[:pageSize]
	}
	return page, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckpoint(row rowScanner) (storage.Checkpoint, error) {
	var checkpoint storage.Checkpoint
	var position int64
	var createdAt int64
	var updatedAt int64
	if err := row.Scan(
		&checkpoint.ID,
		&checkpoint.Seed,
		&position,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Checkpoint{}, err
	}
	checkpoint.Position = uint64(position)
	checkpoint.CreatedAt = fromMillis(createdAt)
	checkpoint.UpdatedAt = fromMillis(updatedAt)
	return checkpoint, nil
}

var _ storage.CheckpointStore = (*Store)(nil)
