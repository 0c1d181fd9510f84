// Package localstore is the offline record-store backend: each collection is
// a JSON array in a file under the data directory, mirroring the fixed-key
// local storage layout the branch used before the hosted backend existed.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	clientsFile      = "clients.json"
	transactionsFile = "transactions.json"
	cashbookFile     = "cashbook.json"
	ownerCapitalFile = "owner_capital.json"
)

// Store owns the data directory and serializes access to it. One lock
// covers all collections; the workflows are strictly sequential anyway.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates the data directory if needed and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("local store directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// load reads a whole collection. A missing file is an empty collection.
// Callers must hold the store lock.
func load[T any](s *Store, name string) ([]T, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return records, nil
}

// save replaces a whole collection, writing through a temp file so a crash
// never leaves a half-written collection behind. Callers must hold the
// store lock.
func save[T any](s *Store, name string, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
