// ABOUTME: fsnotify-based settings watcher for hot-reload in the interactive host
// ABOUTME: Watches parent directories, filters to target files, debounces bursts of writes

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mauromedda/cognichat-go/internal/log"
)

// DefaultDebounce collapses editor save bursts into one callback.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls onChange after any watched file is written, created,
// renamed, or removed.
type Watcher struct {
	paths    map[string]struct{}
	dirs     []string
	onChange func()
	debounce time.Duration

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the given files. Files need not exist
// yet; their parent directories are watched instead.
func NewWatcher(paths []string, onChange func()) *Watcher {
	w := &Watcher{
		paths:    make(map[string]struct{}, len(paths)),
		onChange: onChange,
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	seen := make(map[string]struct{})
	for _, p := range paths {
		clean := filepath.Clean(p)
		w.paths[clean] = struct{}{}
		dir := filepath.Dir(clean)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	return w
}

// SetDebounce overrides DefaultDebounce. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Start begins watching. Directories that do not exist are skipped with a
// debug log. Calling Start twice is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	watched := 0
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			log.Debug("config watcher: skip %s: %v", dir, err)
			continue
		}
		watched++
	}
	if watched == 0 {
		_ = fw.Close()
		return fmt.Errorf("config watcher: no watchable directories among %v", w.dirs)
	}

	w.watcher = fw
	w.running = true
	go w.run(ctx, w.debounce)
	return nil
}

// Stop halts the watcher and waits for its goroutine to exit. Safe to call
// multiple times, and before Start.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.mu.Lock()
		running := w.running
		w.mu.Unlock()
		if running {
			<-w.doneCh
		}
	})
}

func (w *Watcher) run(ctx context.Context, debounce time.Duration) {
	defer close(w.doneCh)
	defer func() { _ = w.watcher.Close() }()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("config watcher: %v", err)
		case <-fire:
			fire = nil
			w.onChange()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if _, ok := w.paths[filepath.Clean(ev.Name)]; !ok {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
