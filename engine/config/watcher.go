package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/engine/pipeline"
	"github.com/fsnotify/fsnotify"
)

// ApplyFunc receives every successfully decoded policy. A returned error is logged and the watcher keeps running.
type ApplyFunc func(pipeline.Policy) error

type watcher struct {
	path     string
	apply    ApplyFunc
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	reloads  atomic.Int64
}

// Watcher reloads a policy file whenever it changes on disk.
type Watcher interface {
	// Run processes file events until ctx is done or Close is called.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() on cancellation, nil after Close
	Run(ctx context.Context) error

	// Reloads returns how many times the policy was decoded and applied without error.
	Reloads() int64

	// Close stops watching and releases the underlying notifier.
	Close() error
}

var _ Watcher = &watcher{}

// NewWatcher starts watching the directory of path. The directory rather than the file is watched so that editors
// replacing the file through a rename are still observed.
//
// Parameters:
//   - path: the policy file
//   - apply: receives every successfully decoded policy
//   - opts: optional configuration functions
//
// Returns:
//   - Watcher: the newly created watcher
//   - error: an error if the notifier cannot be created
func NewWatcher(path string, apply ApplyFunc, opts ...WatcherBuilderOption) (Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &watcher{
		path:     abs,
		apply:    apply,
		debounce: 100 * time.Millisecond,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("component", "config", "path", abs)

	w.fs, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.fs.Add(filepath.Dir(abs)); err != nil {
		w.fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return w, nil
}

func (w *watcher) Run(ctx context.Context) error {
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
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if w.debounce == 0 {
				w.reload()
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
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *watcher) Reloads() int64 {
	return w.reloads.Load()
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

func (w *watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *watcher) reload() {
	p, err := Load(w.path)
	if err != nil {
		w.logger.Error("policy reload failed", "error", err)
		return
	}
	if err := w.apply(p); err != nil {
		w.logger.Error("policy rejected", "policy", p.Name, "error", err)
		return
	}
	w.reloads.Add(1)
	w.logger.Info("policy reloaded", "policy", p.Name)
}
