// Package watch re-runs work when any of a fixed set of files changes.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// Config configures the file watcher
type Config struct {
	// Paths are the files to watch. Their parent directories are watched so
	// that editors replacing a file by rename are still seen.
	Paths []string

	// Debounce is how long to wait for more changes before firing
	Debounce time.Duration

	Logger *slog.Logger
}

// Watcher reports debounced changes to a set of files.
type Watcher struct {
	debounce time.Duration
	targets  map[string]bool
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// Debouncing: collect changes before firing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
	lastEvent time.Time
}

func New(cfg Config) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("watch: no paths")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().With("component", "watch")
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		debounce: debounce,
		targets:  make(map[string]bool, len(cfg.Paths)),
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
	}

	dirs := map[string]bool{}
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := fsw.Add(d); err != nil {
			fsw.Close()
			return nil, err
		}
		logger.Debug("Watching directory", "path", d)
	}
	return w, nil
}

// Run blocks until ctx is cancelled, calling onChange with the sorted
// changed paths once events have been quiet for the debounce delay.
// onChange runs on the watcher goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	defer w.watcher.Close()

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case now := <-ticker.C:
			if changed := w.flush(now); len(changed) > 0 {
				onChange(changed)
			}
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.targets[abs] {
		return
	}

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	w.pending[abs] |= event.Op
	w.lastEvent = time.Now()
}

// flush returns pending paths once no event has arrived for the debounce
// delay.
func (w *Watcher) flush(now time.Time) []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if len(w.pending) == 0 || now.Sub(w.lastEvent) < w.debounce {
		return nil
	}
	out := make([]string, 0, len(w.pending))
	for p, op := range w.pending {
		w.logger.Debug("Change detected", "path", p, "op", op.String())
		out = append(out, p)
	}
	w.pending = make(map[string]fsnotify.Op)
	sort.Strings(out)
	return out
}
