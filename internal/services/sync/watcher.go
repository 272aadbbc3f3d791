package sync

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/TheMichaelB/quihex/internal/config"
	"github.com/TheMichaelB/quihex/internal/models"
)

const defaultDebounce = 500 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Debounce is the quiet period after the last change before a sync runs.
	Debounce time.Duration

	// Sync is passed to every triggered SyncNotebook call.
	Sync SyncOptions

	// OnReport is called after each successful triggered sync.
	OnReport func(*Report)
}

// Watch re-syncs the configured notebook whenever its files change, until
// ctx is cancelled. Sync failures are logged and watching continues.
func (s *Service) Watch(ctx context.Context, cfg *config.Config, opts WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}

	if err := s.library.CheckNotebook(cfg.SyncNotebook.UUID); err != nil {
		return err
	}

	root := s.library.NotebookPath(cfg.SyncNotebook.UUID)
	logger := s.logger.WithField("root", root)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("Watcher started")

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(opts.Debounce)
			timerCh = timer.C
		} else {
			timer.Reset(opts.Debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("Watcher stopped")
			return nil

		case <-timerCh:
			report, err := s.SyncNotebook(ctx, cfg, opts.Sync)
			switch {
			case errors.Is(err, models.ErrSyncInProgress):
				schedule()
			case err != nil:
				logger.WithError(err).Warn("Triggered sync failed")
			case opts.OnReport != nil:
				opts.OnReport(report)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			// New note directories are watched as they appear.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.WithError(addErr).WithField("path", ev.Name).Warn("Failed to watch new directory")
					}
				}
			}

			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			logger.WithFields(map[string]interface{}{
				"path": ev.Name,
				"op":   ev.Op.String(),
			}).Debug("Change detected")
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.WithError(watchErr).Error("Watcher error")
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
