// Package keyvalue provides the injected persistence capability the scene
// service saves snapshots through. The core and codec stay ignorant of
// where bytes are stored; callers choose an implementation.
package keyvalue

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	apperrors "sceneflow/pkg/errors"
)

// Store persists strings under opaque keys. Get reports absence
// distinctly from failure.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// MemoryStore is an in-process Store, used in tests and for ephemeral
// sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get retrieves a value by key.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Set stores a value under a key.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Remove deletes a key. Removing an absent key is not an error.
func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// FileStore persists each key as a JSON file inside a directory, the local
// stand-in for browser storage.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Get retrieves a value by key.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.NewStorageError("get", err)
	}
	return string(data), true, nil
}

// Set stores a value under a key.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return apperrors.NewStorageError("set", err)
	}
	if err := os.WriteFile(s.path(key), []byte(value), 0o644); err != nil {
		return apperrors.NewStorageError("set", err)
	}
	return nil
}

// Remove deletes a key. Removing an absent key is not an error.
func (s *FileStore) Remove(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return apperrors.NewStorageError("remove", err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	// Path separators in a key would escape the store directory.
	return filepath.Join(s.dir, filepath.Base(key)+".json")
}
