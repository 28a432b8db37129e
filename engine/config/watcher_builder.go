package config

import (
	"log/slog"
	"time"
)

// WatcherBuilderOption is a functional option for configuring a Watcher.
type WatcherBuilderOption func(*watcher)

// WithLogger sets the logger reload results are reported through.
//
// Parameters:
//   - l: the logger, ignored if nil
//
// Returns:
//   - WatcherBuilderOption: option function to apply
func WithLogger(l *slog.Logger) WatcherBuilderOption {
	return func(w *watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDebounce sets how long the file must stay quiet before it is reloaded. Editors often write a file in several
// steps; every event inside the window restarts it. Values <= 0 reload on every event.
//
// Parameters:
//   - d: the quiet period (default 100ms)
//
// Returns:
//   - WatcherBuilderOption: option function to apply
func WithDebounce(d time.Duration) WatcherBuilderOption {
	return func(w *watcher) {
		w.debounce = max(0, d)
	}
}
