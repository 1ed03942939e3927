package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher calls a reload hook whenever a corpus file changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher watches the directory holding path, so editors that replace the
// file through a rename are still observed.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch corpus directory: %w", err)
	}
	return &Watcher{
		watcher:  w,
		path:     abs,
		debounce: defaultDebounce,
		logger:   logger.With("component", "corpus.watcher", "path", abs),
	}, nil
}

// Run blocks until ctx is done, invoking onChange once per burst of writes.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.logger.Info("corpus file changed")
			onChange(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("corpus watcher error", "error", err)
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
