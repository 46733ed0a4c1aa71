// Package watcher observes the config files on disk and reports changes
// after a debounce window, mirroring the bar's own watch_config and
// watch_stylesheet behavior.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces editor write bursts into one notification.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a fixed set of files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	targets  map[string]bool
	debounce time.Duration
}

// New creates a watcher for the given file paths. Parent directories are
// watched because editors often replace files via rename, which drops a
// watch on the file itself.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		targets:  make(map[string]bool, len(paths)),
		debounce: debounce,
	}

	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to resolve watch path %s: %w", p, err)
		}
		w.targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Run delivers debounced change notifications to onChange until the context
// is cancelled. Each notification carries the set of changed paths.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	defer func() {
		_ = w.fsw.Close()
	}()

	var timer *time.Timer
	var timerC <-chan time.Time
	changed := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.targets[abs] {
				continue
			}
			changed[abs] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watcher error", "error", err)

		case <-timerC:
			paths := make([]string, 0, len(changed))
			for p := range changed {
				paths = append(paths, p)
			}
			changed = map[string]bool{}
			timer = nil
			timerC = nil
			onChange(paths)
		}
	}
}
