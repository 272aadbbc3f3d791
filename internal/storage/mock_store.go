package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// MockStore provides an in-memory Store for testing.
type MockStore struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	readErrs  map[string]error
	writeErrs map[string]error
	copyErrs  map[string]error

	reads  int
	writes int
}

// NewMockStore creates a mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		files:     make(map[string][]byte),
		dirs:      make(map[string]bool),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
		copyErrs:  make(map[string]error),
	}
}

// Exists checks if a file or directory exists.
func (m *MockStore) Exists(path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path = filepath.Clean(path)
	_, isFile := m.files[path]
	return isFile || m.dirs[path], nil
}

// Read retrieves file contents.
func (m *MockStore) Read(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	m.reads++

	if err := m.readErrs[path]; err != nil {
		return nil, err
	}

	if data, ok := m.files[path]; ok {
		result := make([]byte, len(data))
		copy(result, data)
		return result, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Write saves data to a file.
func (m *MockStore) Write(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.writeErrs[path]; err != nil {
		return err
	}

	m.writes++
	m.files[path] = make([]byte, len(data))
	copy(m.files[path], data)
	m.dirs[filepath.Dir(path)] = true
	return nil
}

// EnsureDir creates a directory.
func (m *MockStore) EnsureDir(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dirs[filepath.Clean(path)] = true
	return nil
}

// CopyDir copies every file under src to dst.
func (m *MockStore) CopyDir(src, dst string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, dst = filepath.Clean(src), filepath.Clean(dst)
	if err := m.copyErrs[src]; err != nil {
		return 0, err
	}

	m.dirs[dst] = true
	copied := 0
	prefix := src + string(filepath.Separator)
	for path, data := range m.files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		target := filepath.Join(dst, strings.TrimPrefix(path, prefix))
		m.files[target] = append([]byte(nil), data...)
		copied++
	}

	return copied, nil
}

// Helper methods for testing

// Put stores a file without counting it as a write.
func (m *MockStore) Put(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	m.files[path] = append([]byte(nil), data...)
	m.dirs[filepath.Dir(path)] = true
}

// FailRead makes Read of path return err.
func (m *MockStore) FailRead(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErrs[filepath.Clean(path)] = err
}

// FailWrite makes Write of path return err.
func (m *MockStore) FailWrite(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErrs[filepath.Clean(path)] = err
}

// FailCopy makes CopyDir from src return err.
func (m *MockStore) FailCopy(src string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.copyErrs[filepath.Clean(src)] = err
}

// FileExists checks if a file exists (helper for tests).
func (m *MockStore) FileExists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.files[filepath.Clean(path)]
	return exists
}

// DirExists checks if a directory was created (helper for tests).
func (m *MockStore) DirExists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.dirs[filepath.Clean(path)]
}

// Reads returns the number of Read calls.
func (m *MockStore) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}

// Writes returns the number of successful Write calls.
func (m *MockStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
