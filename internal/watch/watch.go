// Package watch invalidates cached classifications when project files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/reportlink/internal/linkify"
	"git.home.luguber.info/inful/reportlink/internal/logfields"
	"git.home.luguber.info/inful/reportlink/internal/metrics"
)

// Watcher monitors the project root and drops cached classifications under
// changed paths. Invalidation is deliberately coarse (per top-level prefix,
// debounced): re-resolving a few references is cheap, serving stale links is not.
type Watcher struct {
	root     string
	cache    linkify.Invalidator
	recorder metrics.Recorder
	watcher  *fsnotify.Watcher

	mu       sync.Mutex
	pending  map[string]struct{}
	stopChan chan struct{}
	debounce time.Duration
}

// New creates a watcher over root that invalidates cache on changes.
func New(root string, cache linkify.Invalidator, recorder metrics.Recorder) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	return &Watcher{
		root:     abs,
		cache:    cache,
		recorder: recorder,
		watcher:  fsw,
		pending:  map[string]struct{}{},
		stopChan: make(chan struct{}),
		debounce: 500 * time.Millisecond,
	}, nil
}

// Start begins monitoring the root and its top-level directories.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.root); err != nil {
		return fmt.Errorf("watch root %s: %w", w.root, err)
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("read root %s: %w", w.root, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := w.watcher.Add(filepath.Join(w.root, entry.Name())); err != nil {
				slog.Warn("Directory not watchable", logfields.Path(entry.Name()), logfields.Error(err))
			}
		}
	}

	slog.Info("Starting cache invalidation watcher", logfields.Root(w.root))
	go w.watchLoop(ctx)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	close(w.stopChan)
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			if prefix, ok := w.prefixFor(event.Name); ok {
				w.mu.Lock()
				w.pending[prefix] = struct{}{}
				w.mu.Unlock()
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			w.flush()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", logfields.Error(err))
		}
	}
}

// prefixFor maps an event path to the root-relative invalidation prefix.
func (w *Watcher) prefixFor(name string) (string, bool) {
	rel, err := filepath.Rel(w.root, name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		rel = rel[:i]
	}
	return rel, true
}

func (w *Watcher) flush() {
	w.mu.Lock()
	pending := w.pending
	w.pending = map[string]struct{}{}
	w.mu.Unlock()

	for prefix := range pending {
		slog.Debug("Invalidating cached classifications", logfields.Path(prefix))
		w.cache.Invalidate(prefix)
		w.recorder.IncInvalidation()
	}
}
