// Package sqlite stores snapshots as rows of a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Store is a key/value store backed by a SQLite database file.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens, creating if needed, the database at 'dbPath' and migrates its schema.
func Open(dbPath string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Debug().Str("path", dbPath).Msg("sqlite store initialized")
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value at 'key', or an error matching fs.ErrNotExist.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(context.Background(),
		`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("key %q: %w", key, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", key, err)
	}
	return value, nil
}

// Put inserts or replaces the value at 'key'.
func (s *Store) Put(key string, value []byte) error {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("write snapshot %q: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Int("bytes", len(value)).Msg("snapshot written")
	return nil
}
