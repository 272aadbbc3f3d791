// Package quiver reads notebooks and notes from a Quiver library on disk.
package quiver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/TheMichaelB/quihex/internal/events"
	"github.com/TheMichaelB/quihex/internal/models"
)

// On-disk names used by Quiver.
const (
	LibraryExt   = ".qvlibrary"
	NotebookExt  = ".qvnotebook"
	NoteExt      = ".qvnote"
	MetaFile     = "meta.json"
	ContentFile  = "content.json"
	ResourcesDir = "resources"
)

// cellSeparator joins the cells of a note into one body.
const cellSeparator = "\n\n"

// Library is a Quiver library rooted at a directory.
type Library struct {
	root   string
	logger *events.Logger
}

type notebookMeta struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

type noteMeta struct {
	UUID      string   `json:"uuid"`
	Title     string   `json:"title"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
}

type noteContent struct {
	Title string `json:"title"`
	Cells []struct {
		Type string `json:"type"`
		Data string `json:"data"`
	} `json:"cells"`
}

// NewLibrary creates a library reader.
func NewLibrary(root string, logger *events.Logger) *Library {
	return &Library{
		root:   root,
		logger: logger.WithField("component", "quiver_library"),
	}
}

// Root returns the library directory.
func (l *Library) Root() string {
	return l.root
}

// Validate checks that the root looks like a Quiver library.
func (l *Library) Validate() error {
	info, err := os.Stat(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s not found", models.ErrInvalidLibrary, l.root)
		}
		return fmt.Errorf("stat library: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", models.ErrInvalidLibrary, l.root)
	}

	if strings.EqualFold(filepath.Ext(l.root), LibraryExt) {
		return nil
	}

	entries, err := os.ReadDir(l.root)
	if err != nil {
		return fmt.Errorf("read library: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() && filepath.Ext(e.Name()) == NotebookExt {
			return nil
		}
	}

	return fmt.Errorf("%w: %s has no %s directories", models.ErrInvalidLibrary, l.root, NotebookExt)
}

// Notebooks lists every notebook with a readable meta file, sorted by name.
func (l *Library) Notebooks() ([]models.Notebook, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}

	var notebooks []models.Notebook
	for _, e := range entries {
		if !e.IsDir() || filepath.Ext(e.Name()) != NotebookExt {
			continue
		}

		var meta notebookMeta
		path := filepath.Join(l.root, e.Name(), MetaFile)
		if err := readJSON(path, &meta); err != nil {
			l.logger.WithError(err).WithField("path", path).Warn("Skipping notebook")
			continue
		}
		if meta.UUID == "" {
			meta.UUID = strings.TrimSuffix(e.Name(), NotebookExt)
		}

		notebooks = append(notebooks, models.Notebook{
			UUID: meta.UUID,
			Name: norm.NFC.String(meta.Name),
		})
	}

	sort.SliceStable(notebooks, func(i, j int) bool {
		if notebooks[i].Name != notebooks[j].Name {
			return notebooks[i].Name < notebooks[j].Name
		}
		return notebooks[i].UUID < notebooks[j].UUID
	})

	l.logger.WithField("count", len(notebooks)).Debug("Listed notebooks")

	return notebooks, nil
}

// Notebook looks up a notebook by UUID.
func (l *Library) Notebook(uuid string) (*models.Notebook, error) {
	notebooks, err := l.Notebooks()
	if err != nil {
		return nil, err
	}

	for i := range notebooks {
		if notebooks[i].UUID == uuid {
			return &notebooks[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", models.ErrNotebookNotFound, uuid)
}

// CheckNotebook verifies that the root is a library holding the notebook.
// Either failure is reported as a *models.ConfigError.
func (l *Library) CheckNotebook(uuid string) error {
	if err := l.Validate(); err != nil {
		return &models.ConfigError{Path: l.root, Field: "quiver", Err: err}
	}

	if _, err := l.Notebook(uuid); err != nil {
		return &models.ConfigError{Path: l.NotebookPath(uuid), Field: "syncNotebook", Err: err}
	}

	return nil
}

// NotebookPath returns the directory of a notebook.
func (l *Library) NotebookPath(notebookUUID string) string {
	return filepath.Join(l.root, notebookUUID+NotebookExt)
}

// NotePaths returns the note directories of a notebook in lexical order.
func (l *Library) NotePaths(notebookUUID string) ([]string, error) {
	dir := l.NotebookPath(notebookUUID)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrNotebookNotFound, notebookUUID)
		}
		return nil, fmt.Errorf("read notebook: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == NoteExt {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	return paths, nil
}

// LoadNote parses the note stored at path.
func (l *Library) LoadNote(path string) (*models.Note, error) {
	var meta noteMeta
	if err := readJSON(filepath.Join(path, MetaFile), &meta); err != nil {
		return nil, fmt.Errorf("load note meta: %w", err)
	}

	var content noteContent
	if err := readJSON(filepath.Join(path, ContentFile), &content); err != nil {
		return nil, fmt.Errorf("load note content: %w", err)
	}

	if meta.UUID == "" {
		meta.UUID = strings.TrimSuffix(filepath.Base(path), NoteExt)
	}
	if meta.Title == "" {
		meta.Title = content.Title
	}

	cells := make([]string, 0, len(content.Cells))
	for _, c := range content.Cells {
		cells = append(cells, c.Data)
	}

	tags := make([]string, 0, len(meta.Tags))
	for _, t := range meta.Tags {
		tags = append(tags, norm.NFC.String(t))
	}

	note := &models.Note{
		UUID:      meta.UUID,
		Title:     norm.NFC.String(meta.Title),
		Tags:      tags,
		Content:   strings.Join(cells, cellSeparator),
		CreatedAt: time.Unix(meta.CreatedAt, 0),
		UpdatedAt: time.Unix(meta.UpdatedAt, 0),
	}

	if meta.CreatedAt == 0 {
		note.CreatedAt = time.Time{}
	}
	if err := note.Validate(); err != nil {
		return nil, fmt.Errorf("invalid note %s: %w", path, err)
	}

	l.logger.WithFields(map[string]interface{}{
		"note_id": note.UUID,
		"cells":   len(cells),
	}).Debug("Loaded note")

	return note, nil
}

// ResourceDir returns the attachment directory of a note. It may not exist.
func (l *Library) ResourceDir(notebookUUID, noteUUID string) string {
	return filepath.Join(l.NotebookPath(notebookUUID), noteUUID+NoteExt, ResourcesDir)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", models.ErrNoteNotFound, path)
		}
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	return nil
}
