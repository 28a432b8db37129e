package window

import (
	"time"

	"github.com/Carmen-Shannon/oxy-graph/common"
)

// WindowBuilderOption is a functional option for configuring a previewWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *previewWindow)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the title bar text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *previewWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size. The first reported resolution is the framebuffer size, which differs on
// high-DPI displays.
//
// Parameters:
//   - size: initial window size in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(size common.Resolution) WindowBuilderOption {
	return func(w *previewWindow) {
		w.size = size
	}
}

// WithSizeLimits bounds the sizes the user can resize the window to.
//
// Parameters:
//   - minSize: smallest window size (default 1x1)
//   - maxSize: largest window size (default 7680x4320)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minSize, maxSize common.Resolution) WindowBuilderOption {
	return func(w *previewWindow) {
		w.minSize = minSize
		w.maxSize = maxSize
	}
}

// WithEventWait sets how long one loop iteration blocks waiting for events. Values <= 0 poll without blocking.
//
// Parameters:
//   - d: the maximum wait (default 50ms)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithEventWait(d time.Duration) WindowBuilderOption {
	return func(w *previewWindow) {
		w.wait = d
	}
}
