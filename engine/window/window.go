package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration,
	// after pending platform events have been dispatched.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window's framebuffer
	// is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScaleCallback sets the function called when the window's content
	// scale factor changes (e.g. the window moves to a monitor with a
	// different DPI).
	//
	// Parameters:
	//   - callback: function receiving the new x and y scale factors
	SetScaleCallback(callback func(scaleX, scaleY float32))

	// SetRefreshCallback sets the function called when the platform reports
	// the window contents are damaged and need repainting.
	//
	// Parameters:
	//   - callback: function to call on a platform repaint request
	SetRefreshCallback(callback func())

	// SetCloseCallback sets the function called when the user requests the
	// window be closed.
	//
	// Parameters:
	//   - callback: function to call on a close request
	SetCloseCallback(callback func())

	// SetPointerButtonCallback sets the callback for mouse button events.
	//
	// Parameters:
	//   - callback: function receiving the button index, pressed state, and cursor position
	SetPointerButtonCallback(callback func(button int, pressed bool, x, y int32))

	// SetPointerMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving cursor x, y position
	SetPointerMoveCallback(callback func(x, y int32))

	// RequestRedraw schedules a repaint. The request is coalesced: multiple
	// requests before the next loop iteration produce a single redraw. This is
	// the only rendering side effect input handlers are allowed to have.
	RequestRedraw()

	// ConsumeRedraw reports whether a redraw was requested since the last call
	// and clears the request.
	//
	// Returns:
	//   - bool: true if a redraw was pending
	ConsumeRedraw() bool

	// SetCursorVisible shows or hides the cursor while it is over the window.
	//
	// Parameters:
	//   - visible: true to show the cursor, false to hide it
	SetCursorVisible(visible bool)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to end without destroying platform
	// resources. Used by the controller to stop the loop from a handler.
	RequestClose()

	// Close closes the window and releases platform resources. Any surface
	// derived from this window must be released before calling Close.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// redrawPending coalesces RequestRedraw calls between loop iterations.
	redrawPending bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)

	// onScale is called when the content scale factor changes.
	onScale func(scaleX, scaleY float32)

	// onRefresh is called when the platform requests a repaint.
	onRefresh func()

	// onClose is called when the user requests the window be closed.
	onClose func()

	// onPointerButton is called for mouse button press and release.
	onPointerButton func(button int, pressed bool, x, y int32)

	// onPointerMove is called when the mouse moves within the window.
	onPointerMove func(x, y int32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:  "Prism",
		width:  800,
		height: 600,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScaleCallback(callback func(scaleX, scaleY float32)) {
	w.onScale = callback
}

func (w *engineWindow) SetRefreshCallback(callback func()) {
	w.onRefresh = callback
}

func (w *engineWindow) SetCloseCallback(callback func()) {
	w.onClose = callback
}

func (w *engineWindow) SetPointerButtonCallback(callback func(button int, pressed bool, x, y int32)) {
	w.onPointerButton = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(x, y int32)) {
	w.onPointerMove = callback
}

func (w *engineWindow) RequestRedraw() {
	w.redrawPending = true
	platformWakeLoop()
}

func (w *engineWindow) ConsumeRedraw() bool {
	pending := w.redrawPending
	w.redrawPending = false
	return pending
}

func (w *engineWindow) SetCursorVisible(visible bool) {
	platformSetCursorVisible(w, visible)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w, w.redrawPending); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
