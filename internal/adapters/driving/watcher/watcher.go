// Package watcher reimports documents automatically when their source
// files change on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
	"github.com/lectern-labs/lectern-cli/internal/logger"
)

// DefaultDebounce is how long a source file must stay quiet before a
// reimport is triggered. Editors often emit several events per save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher maps filesystem events on registered source paths to
// reimport calls. Each path debounces independently; a global rate
// limiter keeps a misbehaving writer from hammering the store.
type Watcher struct {
	reimport driving.ReimportService
	fs       *fsnotify.Watcher
	debounce time.Duration
	limiter  *rate.Limiter

	mu      sync.Mutex
	targets map[string]string // absolute source path -> document id
	timers  map[string]*time.Timer
}

// New creates a watcher. A non-positive debounce falls back to
// DefaultDebounce.
func New(reimport driving.ReimportService, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}
	return &Watcher{
		reimport: reimport,
		fs:       fs,
		debounce: debounce,
		// One reimport per second sustained, small burst for startup.
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		targets: make(map[string]string),
		timers:  make(map[string]*time.Timer),
	}, nil
}

// Add registers a source path for a document. The parent directory is
// watched rather than the file itself: most editors save by writing a
// temp file and renaming it over the target, which would otherwise
// drop the watch.
func (w *Watcher) Add(path, documentID string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	w.mu.Lock()
	w.targets[abs] = documentID
	w.mu.Unlock()

	if err := w.fs.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching %s for document %s", abs, documentID)
	return nil
}

// Run processes events until ctx is cancelled or the watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			w.mu.Lock()
			documentID, watched := w.targets[abs]
			w.mu.Unlock()
			if !watched {
				continue
			}
			w.schedule(ctx, abs, documentID)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// schedule restarts the debounce timer for one path.
func (w *Watcher) schedule(ctx context.Context, path, documentID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		result, err := w.reimport.Reimport(ctx, documentID)
		if err != nil {
			logger.Warn("auto-reimport of document %s failed: %v", documentID, err)
			return
		}
		if result.Changed {
			logger.Info("auto-reimported document %s: revision %d", documentID, result.RevisionNumber)
		}
	})
}

// Close stops the watcher and cancels pending debounce timers.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()
	return w.fs.Close()
}
