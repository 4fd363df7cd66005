// Package watch triggers bundle rebuilds when corpus files change.
// It wraps fsnotify with recursive directory registration and a
// debounce window so editor save bursts collapse into one rebuild.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet window after the last event before the
// rebuild callback fires.
const DefaultDebounce = 250 * time.Millisecond

// Watcher observes corpus paths and invokes a callback after changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New creates a Watcher over the given paths. Directories are
// registered recursively; files are registered via their parent
// directory so atomic-rename saves are still observed.
func New(paths []string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, p := range paths {
		if err := w.add(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// add registers a path, descending into directories.
func (w *Watcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.fsw.Add(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != path {
				return filepath.SkipDir
			}
			return w.fsw.Add(p)
		}
		return nil
	})
}

// Run blocks, invoking onChange after each debounced burst of events,
// until the context is cancelled. Callback errors are logged, not
// fatal: a broken mapping mid-edit must not kill the watch loop.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			// New directories must be registered to keep recursion live.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.add(event.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				w.logger.Warn("rebuild failed", "error", err)
			}
		}
	}
}

// relevant filters out noise events like chmod.
func relevant(e fsnotify.Event) bool {
	return e.Op.Has(fsnotify.Write) || e.Op.Has(fsnotify.Create) ||
		e.Op.Has(fsnotify.Remove) || e.Op.Has(fsnotify.Rename)
}
