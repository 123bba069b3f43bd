package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/artprint-il/artprint/pkg/errors"
)

// FileStore persists entries as JSON files in a directory, one file per key.
// Entries carry a written-at timestamp so operators can inspect state age
// with standard tools.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// fileEntry wraps stored data with metadata.
type fileEntry struct {
	Data      json.RawMessage `json:"data"`
	WrittenAt time.Time       `json:"written_at"`
}

// NewFileStore creates a file-backed store rooted at dir.
// If dir is empty, defaults to ~/.local/share/artprint/ (or
// $XDG_DATA_HOME/artprint/ when set). The directory is created if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		var err error
		dir, err = defaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// defaultDataDir returns the XDG data directory for the application.
func defaultDataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "artprint"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "artprint"), nil
}

// Save writes the value for a key, replacing any previous value.
func (s *FileStore) Save(ctx context.Context, key string, data []byte) error {
	if err := errors.ValidateStorageKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := fileEntry{Data: data, WrittenAt: time.Now()}
	raw, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "marshal entry %q", key)
	}

	if err := os.WriteFile(s.path(key), raw, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write entry %q", key)
	}
	return nil
}

// Load reads the value for a key. A file that exists but cannot be parsed is
// reported as corrupt; the caller decides whether to discard it.
func (s *FileStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := errors.ValidateStorageKey(key); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStorage, err, "read entry %q", key)
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStorageCorrupt, err, "parse entry %q", key)
	}
	return entry.Data, true, nil
}

// Remove deletes the entry for a key. Removing an absent key is a no-op.
func (s *FileStore) Remove(ctx context.Context, key string) error {
	if err := errors.ValidateStorageKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "remove entry %q", key)
	}
	return nil
}

// Close does nothing for a file store.
func (s *FileStore) Close() error { return nil }

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

var _ Store = (*FileStore)(nil)
