package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TheMichaelB/quihex/internal/models"
)

// Config holds all application configuration.
type Config struct {
	// Hexo blog root directory
	Hexo string `json:"hexo" mapstructure:"hexo"`

	// Quiver library root directory
	Quiver string `json:"quiver" mapstructure:"quiver"`

	// Notebook whose notes are published
	SyncNotebook models.Notebook `json:"syncNotebook" mapstructure:"syncNotebook"`

	// Notes carrying any of these tags are never synced
	TagsForNotSync []string `json:"tagsForNotSync" mapstructure:"tagsForNotSync"`

	// Sync behavior
	Sync SyncConfig `json:"sync" mapstructure:"sync"`

	// Logging
	Log LogConfig `json:"log" mapstructure:"log"`
}

// SyncConfig for synchronization behavior.
type SyncConfig struct {
	MaxConcurrent int `json:"max_concurrent" mapstructure:"max_concurrent"` // Concurrent note resolutions
}

// LogConfig for logging behavior.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // text, json
	File   string `json:"file" mapstructure:"file"`     // Log file path (empty = stderr)
	Color  bool   `json:"color" mapstructure:"color"`   // Enable colored output
}

// DefaultTagsForNotSync are written by the init wizard.
var DefaultTagsForNotSync = []string{"hide", "wip", "secret"}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() *Config {
	tags := make([]string, len(DefaultTagsForNotSync))
	copy(tags, DefaultTagsForNotSync)

	return &Config{
		TagsForNotSync: tags,
		Sync: SyncConfig{
			MaxConcurrent: 8,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Color:  true,
		},
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Hexo) == "" {
		return errors.New("hexo is required")
	}

	if strings.TrimSpace(c.Quiver) == "" {
		return errors.New("quiver is required")
	}

	if err := c.SyncNotebook.Validate(); err != nil {
		return fmt.Errorf("syncNotebook: %w", err)
	}

	if c.Sync.MaxConcurrent <= 0 {
		return errors.New("sync.max_concurrent must be positive")
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	if c.Log.File == "" {
		return nil
	}

	dir := filepath.Dir(c.Log.File)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
