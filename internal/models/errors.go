package models

import (
	"errors"
	"fmt"
)

// Error codes for structured error handling.
const (
	ErrCodeConfig   = "CONFIG_ERROR"
	ErrCodeLibrary  = "LIBRARY_ERROR"
	ErrCodeNote     = "NOTE_ERROR"
	ErrCodeStorage  = "STORAGE_ERROR"
	ErrCodeResource = "RESOURCE_ERROR"
)

// Sentinel errors
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrConfigNotFound   = errors.New("config file not found")
	ErrNotebookNotFound = errors.New("notebook not found")
	ErrNoteNotFound     = errors.New("note not found")
	ErrInvalidLibrary   = errors.New("invalid note library")
	ErrInvalidBlogRoot  = errors.New("invalid blog root")
	ErrNoNotebooks      = errors.New("library has no notebooks")
	ErrSyncInProgress   = errors.New("sync already in progress")
	ErrPostOutsideBlog  = errors.New("post path outside posts directory")
)

// ConfigError reports a configuration problem that is fatal for a whole pass.
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config %s: field %s: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SyncError provides detailed sync failure information.
type SyncError struct {
	Code     string
	Phase    string
	Notebook string
	Path     string
	Err      error
}

func (e *SyncError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("sync %s [%s]: notebook %s: %s: %v", e.Phase, e.Code, e.Notebook, e.Path, e.Err)
	}
	return fmt.Sprintf("sync %s [%s]: notebook %s: %v", e.Phase, e.Code, e.Notebook, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err carries a configuration failure.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr) || errors.Is(err, ErrInvalidConfig)
}
