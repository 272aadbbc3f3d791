package sync

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TheMichaelB/quihex/internal/config"
	"github.com/TheMichaelB/quihex/internal/events"
	"github.com/TheMichaelB/quihex/internal/hexo"
	"github.com/TheMichaelB/quihex/internal/models"
	"github.com/TheMichaelB/quihex/internal/storage"
)

const defaultMaxConcurrent = 8

// NoteLibrary is the part of a note library the service reads.
type NoteLibrary interface {
	CheckNotebook(notebookUUID string) error
	NotebookPath(notebookUUID string) string
	NotePaths(notebookUUID string) ([]string, error)
	LoadNote(path string) (*models.Note, error)
	ResourceDir(notebookUUID, noteUUID string) string
}

// Service resolves and writes the posts of a notebook.
type Service struct {
	library  NoteLibrary
	store    storage.Store
	resolver *Resolver
	logger   *events.Logger

	maxConcurrent int

	mu      sync.Mutex
	syncing bool
}

// Event represents a sync event.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Post      *models.RenderedPost
	Status    models.Status
	Result    *models.WriteResult
	Error     error
}

// EventType defines sync event types.
type EventType string

const (
	EventStarted     EventType = "started"
	EventPostWritten EventType = "post_written"
	EventPostSkipped EventType = "post_skipped"
	EventPostError   EventType = "post_error"
	EventCompleted   EventType = "completed"
	EventFailed      EventType = "failed"
)

// SyncOptions configures a sync operation.
type SyncOptions struct {
	// Statuses selects which posts are written. Empty means new and update.
	Statuses []models.Status

	// UUIDs restricts writes to these notes, whatever their status
	// (skipped notes are never written).
	UUIDs []string

	DryRun  bool
	OnEvent func(Event)
}

// Report summarizes a sync pass.
type Report struct {
	Notebook string                `json:"notebook"`
	Statuses []*models.SyncStatus  `json:"statuses"`
	Written  []*models.WriteResult `json:"written"`
	DryRun   bool                  `json:"dry_run"`
	Duration time.Duration         `json:"duration"`
}

// Count returns the number of posts with the given status.
func (r *Report) Count(status models.Status) int {
	n := 0
	for _, s := range r.Statuses {
		if s.Status == status {
			n++
		}
	}
	return n
}

// NewService creates a sync service.
func NewService(
	library NoteLibrary,
	store storage.Store,
	cfg *config.SyncConfig,
	logger *events.Logger,
) *Service {
	maxConcurrent := defaultMaxConcurrent
	if cfg != nil && cfg.MaxConcurrent > 0 {
		maxConcurrent = cfg.MaxConcurrent
	}

	return &Service{
		library:       library,
		store:         store,
		resolver:      NewResolver(store, logger),
		logger:        logger.WithField("component", "sync_service"),
		maxConcurrent: maxConcurrent,
	}
}

// Resolver returns the status resolver used by the service.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// GetAllStatuses resolves every note path concurrently. Results keep the
// order of notePaths. The first failure cancels the rest and no partial
// result is returned.
func (s *Service) GetAllStatuses(ctx context.Context, cfg *config.Config, notePaths []string) ([]*models.SyncStatus, error) {
	blog, err := hexo.LoadConfig(cfg.Hexo)
	if err != nil {
		return nil, err
	}

	return s.statuses(ctx, cfg, blog, notePaths)
}

func (s *Service) statuses(ctx context.Context, cfg *config.Config, blog *hexo.Config, notePaths []string) ([]*models.SyncStatus, error) {
	ctx = events.WithNotebookID(ctx, cfg.SyncNotebook.UUID)
	results := make([]*models.SyncStatus, len(notePaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, path := range notePaths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			note, err := s.library.LoadNote(path)
			if err != nil {
				return &models.SyncError{
					Code:     models.ErrCodeNote,
					Phase:    "load",
					Notebook: cfg.SyncNotebook.UUID,
					Path:     path,
					Err:      err,
				}
			}

			status, err := s.resolver.Classify(gctx, blog, cfg.TagsForNotSync, note)
			if err != nil {
				return err
			}

			results[i] = status
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).Warn("Status resolution failed")
		return nil, err
	}

	return results, nil
}

// WritePost writes a rendered post and, when the blog keeps per-post asset
// folders, copies the note's resources next to it before returning.
func (s *Service) WritePost(ctx context.Context, cfg *config.Config, post *models.RenderedPost) (*models.WriteResult, error) {
	blog, err := hexo.LoadConfig(cfg.Hexo)
	if err != nil {
		return nil, err
	}

	return s.writePost(ctx, cfg, blog, post)
}

func (s *Service) writePost(ctx context.Context, cfg *config.Config, blog *hexo.Config, post *models.RenderedPost) (*models.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notebook := cfg.SyncNotebook.UUID
	logger := s.logger.WithFields(map[string]interface{}{
		"note_id": post.UUID,
		"path":    post.FilePath,
	})

	if !blog.Contains(post.FilePath) {
		return nil, renderError(notebook, post)
	}

	if err := s.store.Write(post.FilePath, []byte(post.Text())); err != nil {
		return nil, &models.SyncError{
			Code:     models.ErrCodeStorage,
			Phase:    "write",
			Notebook: notebook,
			Path:     post.FilePath,
			Err:      err,
		}
	}

	result := &models.WriteResult{Path: post.FilePath}
	logger.Info("Post written")

	if !blog.PostAssetFolder {
		return result, nil
	}

	resources := s.library.ResourceDir(notebook, post.UUID)
	exists, err := s.store.Exists(resources)
	if err != nil {
		return result, s.resourceError(notebook, resources, err)
	}
	if !exists {
		return result, nil
	}

	assetDir := AssetDir(post.FilePath)
	if err := s.store.EnsureDir(assetDir); err != nil {
		return result, s.resourceError(notebook, assetDir, err)
	}

	copied, err := s.store.CopyDir(resources, assetDir)
	result.AssetDir = assetDir
	result.Assets = copied
	if err != nil {
		// The post text is already on disk.
		return result, s.resourceError(notebook, resources, err)
	}

	logger.WithFields(map[string]interface{}{
		"asset_dir": assetDir,
		"assets":    copied,
	}).Info("Resources copied")

	return result, nil
}

// AssetDir returns the asset folder Hexo pairs with a post file.
func AssetDir(postPath string) string {
	return strings.TrimSuffix(postPath, filepath.Ext(postPath))
}

func (s *Service) resourceError(notebook, path string, err error) error {
	return &models.SyncError{
		Code:     models.ErrCodeResource,
		Phase:    "resources",
		Notebook: notebook,
		Path:     path,
		Err:      err,
	}
}

// SyncNotebook resolves every note of the configured notebook and writes
// the selected posts. Writes run one at a time; the first failure aborts
// the pass.
func (s *Service) SyncNotebook(ctx context.Context, cfg *config.Config, opts SyncOptions) (*Report, error) {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return nil, models.ErrSyncInProgress
	}
	s.syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	start := time.Now()
	notebook := cfg.SyncNotebook.UUID
	logger := s.logger.WithFields(map[string]interface{}{
		"notebook_id": notebook,
		"dry_run":     opts.DryRun,
	})

	logger.Info("Starting sync")
	emit(opts, Event{Type: EventStarted})

	report := &Report{Notebook: notebook, DryRun: opts.DryRun}

	blog, err := hexo.LoadConfig(cfg.Hexo)
	if err != nil {
		return nil, s.fail(opts, err)
	}

	if err := s.library.CheckNotebook(notebook); err != nil {
		return nil, s.fail(opts, err)
	}

	paths, err := s.library.NotePaths(notebook)
	if err != nil {
		return nil, s.fail(opts, &models.SyncError{
			Code:     models.ErrCodeLibrary,
			Phase:    "list",
			Notebook: notebook,
			Path:     s.library.NotebookPath(notebook),
			Err:      err,
		})
	}

	statuses, err := s.statuses(ctx, cfg, blog, paths)
	if err != nil {
		return nil, s.fail(opts, err)
	}
	report.Statuses = statuses

	selected, err := selectPosts(statuses, opts)
	if err != nil {
		return nil, s.fail(opts, err)
	}

	for _, st := range statuses {
		if !selected[st.Post.UUID] {
			emit(opts, Event{Type: EventPostSkipped, Post: st.Post, Status: st.Status})
			continue
		}

		if opts.DryRun {
			logger.WithField("path", st.Post.FilePath).Info("Would write post")
			report.Written = append(report.Written, &models.WriteResult{Path: st.Post.FilePath})
			emit(opts, Event{Type: EventPostWritten, Post: st.Post, Status: st.Status})
			continue
		}

		result, err := s.writePost(ctx, cfg, blog, st.Post)
		if err != nil {
			emit(opts, Event{Type: EventPostError, Post: st.Post, Status: st.Status, Result: result, Error: err})
			return nil, s.fail(opts, err)
		}

		report.Written = append(report.Written, result)
		emit(opts, Event{Type: EventPostWritten, Post: st.Post, Status: st.Status, Result: result})
	}

	report.Duration = time.Since(start)
	emit(opts, Event{Type: EventCompleted})

	logger.WithFields(map[string]interface{}{
		"duration": report.Duration,
		"notes":    len(statuses),
		"written":  len(report.Written),
	}).Info("Sync completed")

	return report, nil
}

// selectPosts returns the UUIDs of the posts a pass writes.
func selectPosts(statuses []*models.SyncStatus, opts SyncOptions) (map[string]bool, error) {
	selected := make(map[string]bool)

	if len(opts.UUIDs) > 0 {
		byUUID := make(map[string]*models.SyncStatus, len(statuses))
		for _, st := range statuses {
			byUUID[st.Post.UUID] = st
		}

		for _, uuid := range opts.UUIDs {
			st, ok := byUUID[uuid]
			if !ok {
				return nil, fmt.Errorf("%w: %s", models.ErrNoteNotFound, uuid)
			}
			if st.Status != models.StatusSkip {
				selected[uuid] = true
			}
		}
		return selected, nil
	}

	wanted := opts.Statuses
	if len(wanted) == 0 {
		wanted = []models.Status{models.StatusNew, models.StatusUpdate}
	}

	for _, st := range statuses {
		if st.Status == models.StatusSkip {
			continue
		}
		for _, w := range wanted {
			if st.Status == w {
				selected[st.Post.UUID] = true
				break
			}
		}
	}

	return selected, nil
}

func (s *Service) fail(opts SyncOptions, err error) error {
	s.logger.WithError(err).Error("Sync failed")
	emit(opts, Event{Type: EventFailed, Error: err})
	return err
}

func emit(opts SyncOptions, event Event) {
	if opts.OnEvent == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	opts.OnEvent(event)
}
