package testutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TheMichaelB/quihex/internal/config"
	"github.com/TheMichaelB/quihex/internal/events"
	"github.com/TheMichaelB/quihex/internal/models"
)

// NewTestLogger creates a logger for testing.
func NewTestLogger() *events.Logger {
	var buf bytes.Buffer
	return events.NewTestLogger(events.DebugLevel, "json", &buf)
}

// NoteFixture describes a note written into a fixture library.
type NoteFixture struct {
	UUID      string
	Title     string
	Tags      []string
	Cells     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LibraryFixture is a Quiver library laid out under a temp directory.
type LibraryFixture struct {
	t    testing.TB
	Root string
}

// NewLibrary creates an empty Quiver.qvlibrary directory.
func NewLibrary(t testing.TB) *LibraryFixture {
	t.Helper()

	root := filepath.Join(t.TempDir(), "Quiver.qvlibrary")
	require.NoError(t, os.MkdirAll(root, 0755))

	return &LibraryFixture{t: t, Root: root}
}

// AddNotebook creates a notebook with its meta file.
func (f *LibraryFixture) AddNotebook(uuid, name string) string {
	f.t.Helper()

	dir := filepath.Join(f.Root, uuid+".qvnotebook")
	f.writeJSON(filepath.Join(dir, "meta.json"), map[string]string{
		"name": name,
		"uuid": uuid,
	})
	return dir
}

// AddNote writes a note into a notebook and returns its directory.
func (f *LibraryFixture) AddNote(notebookUUID string, note NoteFixture) string {
	f.t.Helper()

	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Date(2016, 5, 3, 9, 4, 5, 0, time.Local)
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	dir := filepath.Join(f.Root, notebookUUID+".qvnotebook", note.UUID+".qvnote")
	f.writeJSON(filepath.Join(dir, "meta.json"), map[string]interface{}{
		"created_at": note.CreatedAt.Unix(),
		"tags":       note.Tags,
		"title":      note.Title,
		"updated_at": note.UpdatedAt.Unix(),
		"uuid":       note.UUID,
	})

	cells := make([]map[string]string, 0, len(note.Cells))
	for _, c := range note.Cells {
		cells = append(cells, map[string]string{"type": "markdown", "data": c})
	}
	f.writeJSON(filepath.Join(dir, "content.json"), map[string]interface{}{
		"title": note.Title,
		"cells": cells,
	})

	return dir
}

// AddResource writes an attachment into a note's resources directory.
func (f *LibraryFixture) AddResource(notebookUUID, noteUUID, name string, data []byte) string {
	f.t.Helper()

	path := filepath.Join(f.Root, notebookUUID+".qvnotebook", noteUUID+".qvnote", "resources", name)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(f.t, os.WriteFile(path, data, 0644))
	return path
}

func (f *LibraryFixture) writeJSON(path string, v interface{}) {
	f.t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(f.t, err)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(f.t, os.WriteFile(path, data, 0644))
}

// BlogOptions are the _config.yml fields written by NewBlog. Empty
// strings are omitted from the file.
type BlogOptions struct {
	SourceDir       string
	DateFormat      string
	TimeFormat      string
	NewPostName     string
	PostAssetFolder bool
}

// DefaultBlogOptions match a freshly generated Hexo site.
func DefaultBlogOptions() BlogOptions {
	return BlogOptions{
		SourceDir:   "source",
		DateFormat:  "YYYY-MM-DD",
		TimeFormat:  "HH:mm:ss",
		NewPostName: ":title.md",
	}
}

// NewBlog creates a Hexo blog root with a _config.yml.
func NewBlog(t testing.TB, opts BlogOptions) string {
	t.Helper()

	fields := map[string]interface{}{"title": "Test Blog"}
	for key, value := range map[string]string{
		"source_dir":    opts.SourceDir,
		"date_format":   opts.DateFormat,
		"time_format":   opts.TimeFormat,
		"new_post_name": opts.NewPostName,
	} {
		if strings.TrimSpace(value) != "" {
			fields[key] = value
		}
	}
	if opts.PostAssetFolder {
		fields["post_asset_folder"] = true
	}

	data, err := yaml.Marshal(fields)
	require.NoError(t, err)

	root := filepath.Join(t.TempDir(), "blog")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "_config.yml"), data, 0644))

	return root
}

// NewConfig returns a valid sync config joining a blog and a library.
func NewConfig(blogRoot, libraryRoot, notebookUUID string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Hexo = blogRoot
	cfg.Quiver = libraryRoot
	cfg.SyncNotebook = models.Notebook{UUID: notebookUUID, Name: "Blog"}
	cfg.Sync.MaxConcurrent = 4
	return cfg
}
