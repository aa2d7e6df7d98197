package mocks

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/user/stillmotion/pkg/ports"
)

// FileSystem is a mock implementation of ports.FileSystem backed by maps.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	ReadFileFunc  func(path string) ([]byte, error)
	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
	ExistsFunc    func(path string) (bool, error)
	RemoveFunc    func(path string) error
	ListDirFunc   func(path string) ([]string, error)
	FileSizeFunc  func(path string) (int64, error)

	// Recorded calls for verification
	Removed []string
}

// NewFileSystem creates a new mock FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *FileSystem) ReadFile(p string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(p)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[p]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("file not found: %s", p)
}

func (m *FileSystem) WriteFile(p string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(p, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[p] = data
	return nil
}

func (m *FileSystem) MkdirAll(p string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[p] = true
	return nil
}

func (m *FileSystem) Exists(p string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(p)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.files[p]; ok {
		return true, nil
	}
	if _, ok := m.dirs[p]; ok {
		return true, nil
	}
	return false, nil
}

func (m *FileSystem) Remove(p string) error {
	m.mu.Lock()
	m.Removed = append(m.Removed, p)
	m.mu.Unlock()
	if m.RemoveFunc != nil {
		return m.RemoveFunc(p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, p)
	delete(m.dirs, p)
	return nil
}

func (m *FileSystem) ListDir(p string) ([]string, error) {
	if m.ListDirFunc != nil {
		return m.ListDirFunc(p)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefix := strings.TrimSuffix(p, "/") + "/"
	var names []string
	for f := range m.files {
		if strings.HasPrefix(f, prefix) && !strings.Contains(strings.TrimPrefix(f, prefix), "/") {
			names = append(names, path.Base(f))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *FileSystem) FileSize(p string) (int64, error) {
	if m.FileSizeFunc != nil {
		return m.FileSizeFunc(p)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[p]; ok {
		return int64(len(data)), nil
	}
	return 0, fmt.Errorf("file not found: %s", p)
}

// GetFile returns the contents of a file (for test verification).
func (m *FileSystem) GetFile(p string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[p]
	return data, ok
}

// GetAllFiles returns all files (for test verification).
func (m *FileSystem) GetAllFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string][]byte)
	for k, v := range m.files {
		result[k] = v
	}
	return result
}

var _ ports.FileSystem = (*FileSystem)(nil)
