// Package file stores each key as a json file in a directory.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Store maps keys to files: "accounts" -> "{dir}/accounts.json".
type Store struct {
	dir    string
	logger zerolog.Logger
}

// New creates the directory 'dir' if needed and returns a store writing into it.
func New(dir string, logger zerolog.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("file store directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	logger.Debug().Str("path", dir).Msg("file store initialized")
	return &Store{dir: dir, logger: logger}, nil
}

// path returns the file of 'key'. Keys are flat: separators and ".." are neutralized.
func (s *Store) path(key string) string {
	key = strings.ReplaceAll(key, "..", "__")
	key = strings.NewReplacer("/", "_", `\`, "_").Replace(key)
	return filepath.Join(s.dir, key+".json")
}

// Get reads the file of 'key'. A missing file returns an error matching fs.ErrNotExist.
func (s *Store) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("key %q: %w", key, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Put writes the file of 'key' atomically using temp file + rename.
func (s *Store) Put(key string, value []byte) error {
	path := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	s.logger.Debug().Str("key", key).Int("bytes", len(value)).Msg("snapshot written")
	return nil
}
