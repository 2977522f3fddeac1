package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileStore persists blobs as JSON files under a root directory, one file
// per (namespace, key). The directory layout mirrors the namespace path.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

// Put writes the blob, creating namespace directories as needed. The
// write replaces any existing file for the key.
func (f *FileStore) Put(ctx context.Context, namespace, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(f.root, filepath.FromSlash(namespace))
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create namespace dir %s: %w", namespace, err)
	}

	path := filepath.Join(dir, key+".json")
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("write blob %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Get reads the blob. A missing file maps to ErrNotFound; any other
// failure is a read error and propagates as-is.
func (f *FileStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(f.root, filepath.FromSlash(namespace), key+".json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, namespace, key)
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s/%s: %w", namespace, key, err)
	}
	return data, nil
}
