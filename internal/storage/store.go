package storage

import (
	"errors"
)

// Store is the file-system surface the sync services need. Paths are
// absolute. Implementations never delete files.
type Store interface {
	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Read retrieves file contents.
	Read(path string) ([]byte, error)

	// Write replaces a file atomically, creating parent directories.
	Write(path string, data []byte) error

	// EnsureDir creates a directory if it doesn't exist.
	EnsureDir(path string) error

	// CopyDir copies the regular files under src into dst, keeping their
	// relative layout, and returns the number of files copied.
	CopyDir(src, dst string) (int, error)
}

// ErrNotFound is returned by Read for a missing file.
var ErrNotFound = errors.New("file not found")
