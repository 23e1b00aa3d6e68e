package engine

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/device"
	"github.com/Carmen-Shannon/prism-go/engine/profiler"
	"github.com/Carmen-Shannon/prism-go/engine/renderer"
	"github.com/Carmen-Shannon/prism-go/engine/surface"
	"github.com/Carmen-Shannon/prism-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// Features selects the optional behaviors of an App. The zero value is the
// plain clear-only skeleton.
type Features struct {
	// PlaceholderPipeline binds a degenerate pipeline during the clear pass.
	// No visible geometry is drawn; output is identical to a plain clear.
	PlaceholderPipeline bool

	// CursorToggle makes pointer button presses toggle cursor visibility and
	// switch the clear color between the ambient and alternate colors.
	CursorToggle bool

	// TouchLogging logs touch events as they arrive. Touch never mutates
	// application state.
	TouchLogging bool
}

// FailurePolicy controls how the App reacts to a frame that could not be
// rendered after recovery was attempted.
type FailurePolicy int

const (
	// FailurePolicyLogAndContinue logs the error, counts a skipped frame, and
	// keeps the window open and responsive. This is the default.
	FailurePolicyLogAndContinue FailurePolicy = iota

	// FailurePolicyFatal logs the error, requests exit, and sets the process
	// exit code to 1.
	FailurePolicyFatal
)

// ClearColors are the solid colors the window surface is cleared to.
type ClearColors struct {
	// Ambient is the clear color when the cursor-toggle feature is off or the
	// cursor is hidden.
	Ambient common.Color

	// Alternate is the clear color while the cursor is visible (cursor-toggle
	// feature only).
	Alternate common.Color
}

// DefaultClearColors returns the stock color pair: a dark ambient gray and a
// lighter alternate.
//
// Returns:
//   - ClearColors: the default color pair
func DefaultClearColors() ClearColors {
	return ClearColors{
		Ambient:   common.NewColor(0.1, 0.1, 0.1),
		Alternate: common.NewColor(0.35, 0.35, 0.4),
	}
}

// App owns the window, device context, surface manager, and frame renderer,
// and runs the event loop that ties them together. Construction either fully
// succeeds or fails with everything torn down; an App that was constructed is
// always runnable.
type App interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Run pumps the window message loop until a close is requested, then
	// tears the App down.
	//
	// Returns:
	//   - int: the process exit code (0 on clean close, 1 on a fatal frame error)
	Run() int

	// Close releases all resources. The surface is released strictly before
	// the window it was derived from is destroyed. Safe to call more than
	// once; Run calls it automatically.
	Close()
}

// app is the implementation of the App interface.
type app struct {
	window   window.Window
	instance *wgpu.Instance
	device   device.DeviceContext
	surfaces surface.Manager
	renderer renderer.Renderer

	ctrl *controller

	features Features
	policy   FailurePolicy
	colors   ClearColors

	profilingEnabled bool
	logger           *log.Logger

	deviceOptions []device.DeviceBuilderOption
}

var _ App = &app{}

// NewApp creates an App, performing the one-time graphics setup: window
// creation (unless one is supplied), surface creation, adapter and device
// negotiation, and the initial surface configuration at the window's pixel
// size. Negotiation blocks until complete; the event loop only starts after
// everything succeeded.
//
// Any error here is fatal and non-retryable: all partially acquired resources
// are released (surface before window) and the error is returned for the
// process boundary to report.
//
// Parameters:
//   - options: functional options for app configuration
//
// Returns:
//   - App: the fully initialized app
//   - error: an error if window creation or device negotiation fails
func NewApp(options ...AppBuilderOption) (App, error) {
	a := &app{
		policy: FailurePolicyLogAndContinue,
		colors: DefaultClearColors(),
		logger: log.Default(),
	}
	for _, opt := range options {
		opt(a)
	}

	if a.window == nil {
		w, err := window.NewWindow()
		if err != nil {
			return nil, err
		}
		a.window = w
	}

	a.instance = wgpu.CreateInstance(nil)

	surfaceDescriptor := a.window.SurfaceDescriptor()
	if surfaceDescriptor == nil {
		a.teardown(nil)
		return nil, fmt.Errorf("window has no surface descriptor")
	}
	surf := a.instance.CreateSurface(surfaceDescriptor)

	ctx, err := device.NewDeviceContext(a.instance, surf, a.deviceOptions...)
	if err != nil {
		surf.Release()
		a.teardown(nil)
		return nil, err
	}
	a.device = ctx

	a.surfaces = surface.NewManager(ctx, surf)
	if err := a.surfaces.Configure(a.window.Width(), a.window.Height()); err != nil {
		a.teardown(a.surfaces)
		return nil, fmt.Errorf("initial surface configure failed: %w", err)
	}

	a.renderer = renderer.NewRenderer(ctx, a.surfaces,
		renderer.WithPlaceholderPipeline(a.features.PlaceholderPipeline),
	)

	var stats *profiler.Profiler
	if a.profilingEnabled {
		stats = profiler.NewProfiler()
	}

	a.ctrl = &controller{
		surfaces: a.surfaces,
		renderer: a.renderer,
		window:   a.window,
		features: a.features,
		policy:   a.policy,
		colors:   a.colors,
		logger:   a.logger,
		stats:    stats,
	}

	a.wireCallbacks()

	return a, nil
}

// wireCallbacks routes window events into controller events. Handlers run
// synchronously during event dispatch; the redraw itself runs afterwards in
// the update callback, so a resize delivered in the same batch is always
// configured before the frame is rendered.
func (a *app) wireCallbacks() {
	a.window.SetCloseCallback(func() {
		a.ctrl.handle(Event{Kind: EventClose})
	})
	a.window.SetResizeCallback(func(width, height int) {
		a.ctrl.handle(Event{Kind: EventResize, Width: width, Height: height})
	})
	a.window.SetScaleCallback(func(scaleX, scaleY float32) {
		a.ctrl.handle(Event{Kind: EventScaleChanged, ScaleX: scaleX, ScaleY: scaleY})
	})
	a.window.SetRefreshCallback(func() {
		a.window.RequestRedraw()
	})
	a.window.SetPointerButtonCallback(func(button int, pressed bool, x, y int32) {
		a.ctrl.handle(Event{Kind: EventPointerButton, Button: button, Pressed: pressed, X: x, Y: y})
	})
	a.window.SetPointerMoveCallback(func(x, y int32) {
		a.ctrl.handle(Event{Kind: EventPointerMove, X: x, Y: y})
	})
	a.window.SetUpdateCallback(func() {
		if a.window.ConsumeRedraw() {
			a.ctrl.handle(Event{Kind: EventRedraw})
		}
	})
}

func (a *app) Window() window.Window {
	return a.window
}

func (a *app) Run() int {
	// Paint once before the first platform event arrives.
	a.window.RequestRedraw()
	a.window.ProcessMessages()

	exitCode := a.ctrl.exitCode
	a.Close()
	return exitCode
}

func (a *app) Close() {
	a.teardown(a.surfaces)
	a.surfaces = nil
}

// teardown releases resources in dependency order: the surface strictly
// before the window it was derived from, on every exit path.
func (a *app) teardown(surfaces surface.Manager) {
	if surfaces != nil {
		surfaces.Release()
	}
	if a.device != nil {
		a.device.Release()
		a.device = nil
	}
	if a.window != nil {
		if err := a.window.Close(); err != nil {
			a.logger.Printf("window close failed: %v", err)
		}
		a.window = nil
	}
}
