// Package window provides a GLFW preview window whose framebuffer size drives graph reconfiguration.
package window

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/common"
)

// Window is a resolution source backed by a platform window.
// Every framebuffer resize is reported as a new Resolution.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving the new framebuffer resolution (or nil to disable)
	SetResizeCallback(callback func(res common.Resolution))

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// Resolution returns the current framebuffer resolution in pixels.
	// On high-DPI displays this differs from the window size.
	//
	// Returns:
	//   - common.Resolution: the framebuffer resolution
	Resolution() common.Resolution

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error
}

// previewWindow is the implementation of the Window interface.
type previewWindow struct {
	title string

	// size is the requested window size; fb tracks the framebuffer
	size             common.Resolution
	minSize, maxSize common.Resolution
	fb               common.Resolution

	// wait bounds how long one loop iteration blocks waiting for events
	wait time.Duration

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate func()
	onResize func(res common.Resolution)
}

var _ Window = &previewWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Must be called from the goroutine that will run ProcessMessages; the OS thread is locked to it.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &previewWindow{
		title:   "oxygraph",
		size:    common.Resolution{Width: 1280, Height: 720},
		minSize: common.Resolution{Width: 1, Height: 1},
		maxSize: common.Resolution{Width: 7680, Height: 4320},
		wait:    50 * time.Millisecond,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *previewWindow) SetResizeCallback(callback func(res common.Resolution)) {
	w.onResize = callback
}

func (w *previewWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *previewWindow) Resolution() common.Resolution {
	return w.fb
}

func (w *previewWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *previewWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *previewWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

// resized records a framebuffer size and forwards it to the resize callback.
// Minimizing reports 0x0, which is forwarded as well; a zero screen resolution is a valid configuration.
func (w *previewWindow) resized(width, height int) {
	w.fb = common.Resolution{Width: width, Height: height}
	if w.onResize != nil {
		w.onResize(w.fb)
	}
}
