// Package watcher re-runs a callback whenever a single file changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/okian/holdemdna/pkg/logger"
)

const defaultDebounce = 250 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce collapses bursts of events closer together than d.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger used for watch events.
func WithLogger(l logger.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// WithErrorHandler receives errors reported by the underlying notifier.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher watches one file through its parent directory so editors that
// replace the file on save are still observed.
type Watcher struct {
	path     string
	clean    string
	debounce time.Duration
	onChange func(ctx context.Context)
	onError  func(error)
	log      logger.Logger
}

// New builds a Watcher for path. onChange runs after each settled change.
func New(path string, onChange func(ctx context.Context), opts ...Option) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrWatch)
	}
	if onChange == nil {
		return nil, fmt.Errorf("%w: nil change handler", ErrWatch)
	}
	w := &Watcher{
		path:     path,
		clean:    filepath.Clean(path),
		debounce: defaultDebounce,
		onChange: onChange,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run blocks until ctx is done, invoking the change handler after each
// debounced write or create of the watched file.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	defer func() { _ = fw.Close() }()

	dir := filepath.Dir(w.clean)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("%w: directory %s: %w", ErrWatch, dir, err)
	}
	w.log.Info(ctx, "watching profile", logger.String("path", w.path), logger.Duration("debounce", w.debounce))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info(ctx, "watch stopped", logger.String("path", w.path))
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug(ctx, "profile changed", logger.String("op", ev.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(ctx, "watch error", logger.Error(err))
			if w.onError != nil {
				w.onError(fmt.Errorf("%w: %w", ErrWatch, err))
			}
		case <-timer.C:
			w.onChange(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.clean {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
