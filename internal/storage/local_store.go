package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/TheMichaelB/quihex/internal/events"
)

// LocalStore implements Store on the local file system.
type LocalStore struct {
	logger *events.Logger

	fileMode    os.FileMode
	dirMode     os.FileMode
	maxFileSize int64
}

// NewLocalStore creates a local file store.
func NewLocalStore(logger *events.Logger) *LocalStore {
	return &LocalStore{
		logger:      logger.WithField("component", "local_store"),
		fileMode:    0644,
		dirMode:     0755,
		maxFileSize: 100 * 1024 * 1024, // 100MB
	}
}

// SetMaxFileSize sets the maximum file size limit.
func (s *LocalStore) SetMaxFileSize(size int64) {
	s.maxFileSize = size
}

// Exists checks if a file exists.
func (s *LocalStore) Exists(path string) (bool, error) {
	safePath, err := s.sanitizePath(path)
	if err != nil {
		return false, fmt.Errorf("sanitize path: %w", err)
	}

	_, err = os.Stat(safePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Read retrieves file contents.
func (s *LocalStore) Read(path string) ([]byte, error) {
	safePath, err := s.sanitizePath(path)
	if err != nil {
		return nil, fmt.Errorf("sanitize path: %w", err)
	}

	data, err := os.ReadFile(safePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// Write saves data to a file atomically.
func (s *LocalStore) Write(path string, data []byte) error {
	safePath, err := s.sanitizePath(path)
	if err != nil {
		return fmt.Errorf("sanitize path: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"path": path,
		"size": len(data),
	}).Debug("Writing file")

	// Check size limit
	if int64(len(data)) > s.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d)", len(data), s.maxFileSize)
	}

	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(safePath), s.dirMode); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	return s.writeAtomic(safePath, data)
}

// EnsureDir creates a directory if it doesn't exist.
func (s *LocalStore) EnsureDir(path string) error {
	safePath, err := s.sanitizePath(path)
	if err != nil {
		return fmt.Errorf("sanitize path: %w", err)
	}

	return os.MkdirAll(safePath, s.dirMode)
}

// CopyDir copies the regular files under src into dst. Existing files in
// dst are overwritten; nothing in dst is removed.
func (s *LocalStore) CopyDir(src, dst string) (int, error) {
	srcPath, err := s.sanitizePath(src)
	if err != nil {
		return 0, fmt.Errorf("sanitize source: %w", err)
	}
	dstPath, err := s.sanitizePath(dst)
	if err != nil {
		return 0, fmt.Errorf("sanitize destination: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"src": src,
		"dst": dst,
	}).Debug("Copying directory")

	if err := os.MkdirAll(dstPath, s.dirMode); err != nil {
		return 0, fmt.Errorf("create destination: %w", err)
	}

	copied := 0
	err = filepath.WalkDir(srcPath, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(srcPath, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dstPath, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(target, s.dirMode)
		case !d.Type().IsRegular():
			// Symlinks and devices are not assets.
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		if err := s.writeAtomic(target, data); err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}

		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copy directory: %w", err)
	}

	return copied, nil
}

// Helper methods

func (s *LocalStore) writeAtomic(path string, data []byte) error {
	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	// atomic.WriteFile leaves new files with the temp file's 0600 mode
	if isNew {
		if err := os.Chmod(path, s.fileMode); err != nil {
			return fmt.Errorf("chmod file: %w", err)
		}
	}

	return nil
}

// sanitizePath validates and normalizes a file path.
func (s *LocalStore) sanitizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	// Check for null bytes
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("path contains null bytes")
	}

	return filepath.Clean(filepath.FromSlash(path)), nil
}
