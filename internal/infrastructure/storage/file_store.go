package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"PageWatcher/internal/ports"
)

// FileStore keeps one snapshot file per cache key under a single directory.
// Each file is owned by exactly one target, so no locking is needed.
type FileStore struct {
	dir string
}

var _ ports.SnapshotStore = (*FileStore)(nil)

// NewFileStore points the store at a directory; it is created on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load returns the stored text for the key, or an empty string when no
// snapshot exists yet.
func (s *FileStore) Load(ctx context.Context, key string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return string(data), nil
}

// Save overwrites the snapshot for the key unconditionally.
func (s *FileStore) Save(ctx context.Context, key, text string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, key), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	return nil
}
