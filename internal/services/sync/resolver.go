package sync

import (
	"bytes"
	"context"
	"fmt"

	"github.com/TheMichaelB/quihex/internal/config"
	"github.com/TheMichaelB/quihex/internal/events"
	"github.com/TheMichaelB/quihex/internal/hexo"
	"github.com/TheMichaelB/quihex/internal/models"
	"github.com/TheMichaelB/quihex/internal/storage"
)

// Resolver decides whether a note's post is new, changed, unchanged or
// excluded. It only reads the file system.
type Resolver struct {
	store  storage.Store
	logger *events.Logger
}

// NewResolver creates a status resolver.
func NewResolver(store storage.Store, logger *events.Logger) *Resolver {
	return &Resolver{
		store:  store,
		logger: logger.WithField("component", "status_resolver"),
	}
}

// Resolve loads the blog config and classifies a single note.
func (r *Resolver) Resolve(ctx context.Context, cfg *config.Config, note *models.Note) (*models.SyncStatus, error) {
	blog, err := hexo.LoadConfig(cfg.Hexo)
	if err != nil {
		return nil, err
	}

	return r.Classify(ctx, blog, cfg.TagsForNotSync, note)
}

// Classify renders a note with an already loaded blog config and compares
// it with the post on disk.
func (r *Resolver) Classify(ctx context.Context, blog *hexo.Config, skipTags []string, note *models.Note) (*models.SyncStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	post := hexo.Render(note, blog)
	logger := r.logger.WithFields(map[string]interface{}{
		"note_id": note.UUID,
		"path":    post.FilePath,
	})

	// Excluded notes never touch the file system.
	if note.HasAnyTag(skipTags) {
		logger.Debug("Note excluded by tag")
		return &models.SyncStatus{Status: models.StatusSkip, Post: post}, nil
	}

	if !blog.Contains(post.FilePath) {
		return nil, renderError(events.GetNotebookID(ctx), post)
	}

	exists, err := r.store.Exists(post.FilePath)
	if err != nil {
		return nil, r.statusError(ctx, post.FilePath, err)
	}
	if !exists {
		logger.Debug("Post not found")
		return &models.SyncStatus{Status: models.StatusNew, Post: post}, nil
	}

	current, err := r.store.Read(post.FilePath)
	if err != nil {
		return nil, r.statusError(ctx, post.FilePath, err)
	}

	status := models.StatusUpdate
	if bytes.Equal(current, []byte(post.Text())) {
		status = models.StatusStable
	}

	logger.WithField("status", status).Debug("Resolved post status")

	return &models.SyncStatus{Status: status, Post: post}, nil
}

func (r *Resolver) statusError(ctx context.Context, path string, err error) error {
	return &models.SyncError{
		Code:     models.ErrCodeStorage,
		Phase:    "status",
		Notebook: events.GetNotebookID(ctx),
		Path:     path,
		Err:      err,
	}
}

// renderError reports a post whose file name resolves outside the posts
// directory, e.g. a title with "../" segments.
func renderError(notebook string, post *models.RenderedPost) error {
	return &models.SyncError{
		Code:     models.ErrCodeNote,
		Phase:    "render",
		Notebook: notebook,
		Path:     post.FilePath,
		Err:      fmt.Errorf("%w: note %s", models.ErrPostOutsideBlog, post.UUID),
	}
}
