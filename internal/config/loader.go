package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/viper"

	"github.com/TheMichaelB/quihex/internal/models"
)

// FileName is the rc file created by the init wizard in the home directory.
const FileName = ".quihexrc"

// Loader handles configuration loading from multiple sources.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a config loader. An empty path selects DefaultPath.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
		envPrefix:  "QUIHEX_",
	}
}

// Path returns the config file the loader reads.
func (l *Loader) Path() string {
	if l.configPath != "" {
		return ExpandHome(l.configPath)
	}
	if v := os.Getenv(l.envPrefix + "CONFIG"); v != "" {
		return ExpandHome(v)
	}
	return DefaultPath()
}

// DefaultPath returns ~/.quihexrc.
func DefaultPath() string {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, FileName)
	}
	return FileName
}

// Load reads configuration from file and environment.
func (l *Loader) Load() (*Config, error) {
	cfg, exists, err := l.Fetch()
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, &models.ConfigError{Path: l.Path(), Err: models.ErrConfigNotFound}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &models.ConfigError{
			Path: l.Path(),
			Err:  fmt.Errorf("%w: %v", models.ErrInvalidConfig, err),
		}
	}

	return cfg, nil
}

// Fetch reads the config file if present without validating it. The
// returned config always holds defaults for absent fields.
func (l *Loader) Fetch() (*Config, bool, error) {
	// Start with defaults
	cfg := DefaultConfig()
	path := l.Path()

	exists := true
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, false, fmt.Errorf("stat config file: %w", err)
		}
		exists = false
	}

	if exists {
		if err := l.loadFile(path, cfg); err != nil {
			return nil, true, &models.ConfigError{Path: path, Err: err}
		}
	}

	// Override with environment variables
	if err := l.loadEnv(cfg); err != nil {
		return nil, exists, fmt.Errorf("load env config: %w", err)
	}

	cfg.Hexo = ExpandHome(cfg.Hexo)
	cfg.Quiver = ExpandHome(cfg.Quiver)

	return cfg, exists, nil
}

// loadFile reads config from the JSON rc file.
func (l *Loader) loadFile(path string, cfg *Config) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}

	return v.Unmarshal(cfg)
}

// loadEnv overrides config from environment variables.
func (l *Loader) loadEnv(cfg *Config) error {
	if v := os.Getenv(l.envPrefix + "HEXO"); v != "" {
		cfg.Hexo = v
	}

	if v := os.Getenv(l.envPrefix + "QUIVER"); v != "" {
		cfg.Quiver = v
	}

	if v := os.Getenv(l.envPrefix + "TAGS_FOR_NOT_SYNC"); v != "" {
		var tags []string
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		cfg.TagsForNotSync = tags
	}

	// Sync settings
	if v := os.Getenv(l.envPrefix + "SYNC_MAX_CONCURRENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse SYNC_MAX_CONCURRENT: %w", err)
		}
		cfg.Sync.MaxConcurrent = n
	}

	// Log settings
	if v := os.Getenv(l.envPrefix + "LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}

	if v := os.Getenv(l.envPrefix + "LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}

	if v := os.Getenv(l.envPrefix + "LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	return nil
}

// Save writes cfg to path as indented JSON, replacing any existing file.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	// atomic.WriteFile keeps the mode of a replaced file but not of a new one
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("chmod config: %w", err)
	}

	return nil
}
