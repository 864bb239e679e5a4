package balances

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

// Store is a key/value byte store where a [Book] snapshots its accounts and balances after every
// change.
//
// Get must return an error matching fs.ErrNotExist for a key never written. Put may be called
// concurrently for distinct keys.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// loadSnapshot decodes the json array stored at 'key' into 'v'. A missing key leaves 'v' untouched.
func loadSnapshot(s Store, key string, v any) error {
	data, err := s.Get(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read %q snapshot: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cannot decode %q snapshot: %w", key, err)
	}
	return nil
}

// saveSnapshot encodes 'v' as json and writes it at 'key'.
func saveSnapshot(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot encode %q snapshot: %w", key, err)
	}
	if err := s.Put(key, data); err != nil {
		return fmt.Errorf("cannot write %q snapshot: %w", key, err)
	}
	return nil
}
