// Package hexo reads a Hexo blog's configuration and renders notes into
// Hexo posts.
package hexo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TheMichaelB/quihex/internal/models"
)

// ConfigFileName is the blog configuration file at the blog root.
const ConfigFileName = "_config.yml"

// PostsDirName is the directory under source_dir holding published posts.
const PostsDirName = "_posts"

// Config holds the fields of _config.yml the renderer depends on.
type Config struct {
	Root            string `yaml:"-"`
	SourceDir       string `yaml:"source_dir"`
	DateFormat      string `yaml:"date_format"`
	TimeFormat      string `yaml:"time_format"`
	NewPostName     string `yaml:"new_post_name"`
	PostAssetFolder bool   `yaml:"post_asset_folder"`
}

// PostsDir returns the absolute directory new posts are written to.
func (c *Config) PostsDir() string {
	return filepath.Join(c.Root, c.SourceDir, PostsDirName)
}

// Contains reports whether path names a file inside PostsDir.
func (c *Config) Contains(path string) bool {
	rel, err := filepath.Rel(c.PostsDir(), path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Validate checks that every required field is present.
func (c *Config) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"source_dir", c.SourceDir},
		{"date_format", c.DateFormat},
		{"time_format", c.TimeFormat},
		{"new_post_name", c.NewPostName},
	}

	for _, r := range required {
		if r.value == "" {
			return &models.ConfigError{
				Path:  filepath.Join(c.Root, ConfigFileName),
				Field: r.field,
				Err:   models.ErrInvalidConfig,
			}
		}
	}

	return nil
}

// LoadConfig reads and validates <root>/_config.yml. root must already be
// expanded.
func LoadConfig(root string) (*Config, error) {
	path := filepath.Join(root, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ConfigError{
			Path: path,
			Err:  fmt.Errorf("%w: %v", models.ErrInvalidConfig, err),
		}
	}

	return ParseConfig(root, data)
}

// ParseConfig decodes and validates the contents of root's _config.yml.
func ParseConfig(root string, data []byte) (*Config, error) {
	path := filepath.Join(root, ConfigFileName)

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &models.ConfigError{
			Path: path,
			Err:  fmt.Errorf("%w: parse YAML: %v", models.ErrInvalidConfig, err),
		}
	}
	cfg.Root = root

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateRoot checks that root is a Hexo blog directory.
func ValidateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: blog root path is not found [%s]", models.ErrInvalidBlogRoot, root)
	}

	if _, err := os.Stat(filepath.Join(root, ConfigFileName)); err != nil {
		return fmt.Errorf("%w: needs %s [%s]", models.ErrInvalidBlogRoot, ConfigFileName, root)
	}

	return nil
}
