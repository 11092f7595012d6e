package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/vibegen/internal/domain"
	"github.com/doeshing/vibegen/internal/pkg/filesystem"
	"github.com/doeshing/vibegen/internal/ports"
)

// FileStore keeps one file per key under a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the state directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get implements ports.StateStore.
func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	path, err := f.keyPath(key)
	if err != nil {
		return "", false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set implements ports.StateStore.
func (f *FileStore) Set(_ context.Context, key, value string) error {
	path, err := f.keyPath(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return filesystem.WriteFileAtomic(path, []byte(value), domain.SecureFilePermissions)
}

// Delete implements ports.StateStore.
func (f *FileStore) Delete(_ context.Context, key string) error {
	path, err := f.keyPath(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Location returns the backing directory.
func (f *FileStore) Location() string {
	return f.dir
}

// Close is a no-op.
func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) keyPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid state key %q", key)
	}
	return filepath.Join(f.dir, key), nil
}

var _ ports.StateStore = (*FileStore)(nil)
