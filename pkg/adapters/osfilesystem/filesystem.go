// Package osfilesystem implements the filesystem port on the local disk.
package osfilesystem

import (
	"os"
	"path/filepath"

	"github.com/user/stillmotion/pkg/ports"
)

// FileSystem reads and writes the local disk.
type FileSystem struct{}

// New creates a local filesystem.
func New() *FileSystem {
	return &FileSystem{}
}

var _ ports.FileSystem = (*FileSystem)(nil)

// ReadFile returns the entire contents of the file at path.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path, creating missing parent directories first.
func (fs *FileSystem) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// MkdirAll creates the directory at path along with any missing parents.
func (fs *FileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Exists reports whether path names an existing file or directory.
func (fs *FileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Remove deletes the file or empty directory at path.
func (fs *FileSystem) Remove(path string) error {
	return os.Remove(path)
}

// ListDir returns the entry names of the directory at path. os.ReadDir
// already sorts by name.
func (fs *FileSystem) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names, nil
}

// FileSize returns the size in bytes of the file at path.
func (fs *FileSystem) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
