package engine

import (
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/profiler"
	"github.com/Carmen-Shannon/prism-go/engine/surface"
)

// EventKind identifies the type of an event delivered to the controller.
type EventKind int

const (
	// EventClose is a request to close the window and end the run loop.
	EventClose EventKind = iota

	// EventResize reports a new framebuffer size in pixels.
	EventResize

	// EventScaleChanged reports a content scale factor change. The surface is
	// reconfigured at the current framebuffer size, as for a resize.
	EventScaleChanged

	// EventRedraw is a request to repaint the window surface now.
	EventRedraw

	// EventPointerButton reports a mouse button press or release.
	EventPointerButton

	// EventPointerMove reports cursor movement within the window.
	EventPointerMove

	// EventTouch reports a touch point. Touch is observed and logged only;
	// it never mutates controller state.
	EventTouch
)

// Event is a single windowing event delivered to the controller. Only the
// fields relevant to the Kind are populated.
type Event struct {
	Kind EventKind

	// Width and Height carry the new framebuffer size for EventResize.
	Width, Height int

	// ScaleX and ScaleY carry the new content scale for EventScaleChanged.
	ScaleX, ScaleY float32

	// Button and Pressed describe an EventPointerButton.
	Button  int
	Pressed bool

	// X and Y carry the cursor or touch position.
	X, Y int32
}

// controllerState is the controller's run state.
type controllerState int

const (
	// stateRunning is the initial state; events are processed normally.
	stateRunning controllerState = iota

	// stateExitRequested is terminal; the run loop ends and no further frames
	// are rendered.
	stateExitRequested
)

// surfaceService is the slice of the surface manager the controller drives.
type surfaceService interface {
	Configure(width, height int) error
	AcquireFrame() (surface.Frame, error)
}

// renderService is the slice of the frame renderer the controller drives.
type renderService interface {
	Render(frame surface.Frame, clear common.Color) error
}

// windowService is the slice of the window the controller drives.
type windowService interface {
	Width() int
	Height() int
	RequestRedraw()
	RequestClose()
	SetCursorVisible(visible bool)
}

// controller dispatches windowing events to the surface manager and frame
// renderer and owns the Running/ExitRequested state machine. It runs entirely
// on the event loop thread; one event is handled to completion before the
// next is delivered.
type controller struct {
	surfaces surfaceService
	renderer renderService
	window   windowService

	features Features
	policy   FailurePolicy
	colors   ClearColors

	logger *log.Logger
	stats  *profiler.Profiler

	state         controllerState
	cursorVisible bool
	exitCode      int
}

// handle processes a single event. Per-frame errors are absorbed here
// according to the failure policy; they never propagate past the controller.
func (c *controller) handle(ev Event) {
	if c.state == stateExitRequested {
		return
	}

	switch ev.Kind {
	case EventClose:
		// Close always wins, regardless of ephemeral flags.
		c.state = stateExitRequested
		c.window.RequestClose()

	case EventResize:
		c.reconfigure(ev.Width, ev.Height)

	case EventScaleChanged:
		// The compositor may have changed the available formats along with
		// the scale; reconfigure at the current framebuffer size.
		c.reconfigure(c.window.Width(), c.window.Height())

	case EventRedraw:
		c.redraw()

	case EventPointerButton:
		if c.features.CursorToggle && ev.Pressed {
			c.cursorVisible = !c.cursorVisible
			c.window.SetCursorVisible(c.cursorVisible)
			c.window.RequestRedraw()
		}

	case EventPointerMove:
		if c.features.CursorToggle {
			c.window.RequestRedraw()
		}

	case EventTouch:
		if c.features.TouchLogging {
			c.logger.Printf("touch at (%d, %d)", ev.X, ev.Y)
		}
	}
}

// reconfigure replaces the surface configuration for the given pixel size and
// schedules a repaint. Zero sizes (minimized window) are skipped: the stale
// configuration stays in place until a usable size arrives.
func (c *controller) reconfigure(width, height int) {
	if err := c.surfaces.Configure(width, height); err != nil {
		if errors.Is(err, surface.ErrZeroSize) {
			return
		}
		c.frameFailed(fmt.Errorf("failed to reconfigure surface: %w", err))
		return
	}
	c.window.RequestRedraw()
}

// redraw renders one frame with the current clear color. An unavailable
// surface is recovered by reconfiguring at the current window size and
// retrying the frame once; a frame that still fails is handled per the
// failure policy.
func (c *controller) redraw() {
	err := c.renderOnce()
	if errors.Is(err, surface.ErrSurfaceUnavailable) {
		if cfgErr := c.surfaces.Configure(c.window.Width(), c.window.Height()); cfgErr != nil {
			err = fmt.Errorf("failed to recover surface: %w", cfgErr)
		} else {
			err = c.renderOnce()
		}
	}
	if err != nil {
		c.frameFailed(err)
		return
	}
	if c.stats != nil {
		c.stats.Tick(true)
	}
}

// renderOnce acquires a frame and renders it. The frame handle is consumed by
// the renderer on both success and failure paths.
func (c *controller) renderOnce() error {
	frame, err := c.surfaces.AcquireFrame()
	if err != nil {
		return err
	}
	return c.renderer.Render(frame, c.clearColor())
}

// clearColor derives the frame clear color from controller state. This is a
// pure function of the cursor-visible flag: identical state always yields an
// identical color.
func (c *controller) clearColor() common.Color {
	if c.features.CursorToggle && c.cursorVisible {
		return c.colors.Alternate
	}
	return c.colors.Ambient
}

// frameFailed applies the configured failure policy to a skipped frame.
func (c *controller) frameFailed(err error) {
	c.logger.Printf("frame skipped: %v", err)
	if c.stats != nil {
		c.stats.Tick(false)
	}
	if c.policy == FailurePolicyFatal {
		c.exitCode = 1
		c.state = stateExitRequested
		c.window.RequestClose()
	}
}
