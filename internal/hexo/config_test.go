package hexo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/quihex/internal/hexo"
	"github.com/TheMichaelB/quihex/internal/models"
)

const validBlogConfig = `title: My Blog
source_dir: source
date_format: YYYY-MM-DD
time_format: HH:mm:ss
new_post_name: ":year-:month-:day-:title.md"
post_asset_folder: true
`

func writeBlog(t *testing.T, content string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, hexo.ConfigFileName), []byte(content), 0644))
	return root
}

func TestLoadConfig(t *testing.T) {
	root := writeBlog(t, validBlogConfig)

	cfg, err := hexo.LoadConfig(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, "source", cfg.SourceDir)
	assert.Equal(t, "YYYY-MM-DD", cfg.DateFormat)
	assert.Equal(t, "HH:mm:ss", cfg.TimeFormat)
	assert.Equal(t, ":year-:month-:day-:title.md", cfg.NewPostName)
	assert.True(t, cfg.PostAssetFolder)
	assert.Equal(t, filepath.Join(root, "source", "_posts"), cfg.PostsDir())
}

func TestLoadConfigMissingField(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name:    "missing source_dir",
			content: "date_format: YYYY\ntime_format: HH\nnew_post_name: \":title.md\"\n",
			field:   "source_dir",
		},
		{
			name:    "missing date_format",
			content: "source_dir: source\ntime_format: HH\nnew_post_name: \":title.md\"\n",
			field:   "date_format",
		},
		{
			name:    "missing time_format",
			content: "source_dir: source\ndate_format: YYYY\nnew_post_name: \":title.md\"\n",
			field:   "time_format",
		},
		{
			name:    "missing new_post_name",
			content: "source_dir: source\ndate_format: YYYY\ntime_format: HH\n",
			field:   "new_post_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeBlog(t, tt.content)

			_, err := hexo.LoadConfig(root)
			require.Error(t, err)

			var cfgErr *models.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.ErrorIs(t, err, models.ErrInvalidConfig)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := hexo.LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.True(t, models.IsConfigError(err))
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	root := writeBlog(t, "source_dir: [unterminated\n")

	_, err := hexo.LoadConfig(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "parse YAML")
}

func TestValidateRoot(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, hexo.ValidateRoot(writeBlog(t, validBlogConfig)))
	})

	t.Run("missing directory", func(t *testing.T) {
		err := hexo.ValidateRoot(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, models.ErrInvalidBlogRoot)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("missing config", func(t *testing.T) {
		err := hexo.ValidateRoot(t.TempDir())
		assert.ErrorIs(t, err, models.ErrInvalidBlogRoot)
		assert.Contains(t, err.Error(), hexo.ConfigFileName)
	})
}

func TestParseConfig(t *testing.T) {
	cfg, err := hexo.ParseConfig("/srv/blog", []byte(validBlogConfig))
	require.NoError(t, err)
	assert.Equal(t, "/srv/blog", cfg.Root)
	assert.Equal(t, filepath.Join("/srv/blog", "source", "_posts"), cfg.PostsDir())

	_, err = hexo.ParseConfig("/srv/blog", []byte("source_dir: [unclosed"))
	require.Error(t, err)
	assert.True(t, models.IsConfigError(err))
}

func TestConfigContains(t *testing.T) {
	cfg := &hexo.Config{Root: "/srv/blog", SourceDir: "source"}
	posts := cfg.PostsDir()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"post file", filepath.Join(posts, "hello.md"), true},
		{"nested post", filepath.Join(posts, "2016", "05", "hello.md"), true},
		{"dot-prefixed name", filepath.Join(posts, "..hello.md"), true},
		{"posts dir itself", posts, false},
		{"sibling dir", filepath.Join("/srv/blog", "source", "about.md"), false},
		{"blog root", filepath.Join("/srv/blog", "_config.yml"), false},
		{"outside blog", "/srv/escaped.md", false},
		{"traversal", filepath.Join(posts, "..", "..", "..", "escaped.md"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Contains(tt.path))
		})
	}
}
