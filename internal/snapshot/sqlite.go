package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// blobSchema creates the single blob table. The (namespace, key) primary
// key gives overwrite-by-key semantics via upsert.
const blobSchema = `
CREATE TABLE IF NOT EXISTS blobs (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	data       BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	PRIMARY KEY (namespace, key)
)`

// SQLiteStore persists blobs in a single-file SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store %s: %w", path, err)
	}

	if _, err := db.Exec(blobSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create blob schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put upserts the blob for (namespace, key).
func (s *SQLiteStore) Put(ctx context.Context, namespace, key string, data []byte) error {
	const query = `
		INSERT INTO blobs (namespace, key, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, namespace, key, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("put blob %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Get reads the blob for (namespace, key). A missing row maps to
// ErrNotFound so callers can distinguish it from a real read error.
func (s *SQLiteStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	const query = `SELECT data FROM blobs WHERE namespace = ? AND key = ?`

	var data []byte
	err := s.db.GetContext(ctx, &data, query, namespace, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, namespace, key)
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %s/%s: %w", namespace, key, err)
	}
	return data, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
