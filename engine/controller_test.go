package engine

import (
	"bytes"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/surface"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeFrame is a single-use frame for controller tests.
type fakeFrame struct {
	presented int
	discarded int
}

func (f *fakeFrame) View() *wgpu.TextureView { return nil }

func (f *fakeFrame) Present() error {
	if f.presented+f.discarded > 0 {
		return surface.ErrFrameConsumed
	}
	f.presented++
	return nil
}

func (f *fakeFrame) Discard() {
	if f.presented+f.discarded > 0 {
		return
	}
	f.discarded++
}

// fakeSurface records configure calls and serves a scripted sequence of
// acquire results.
type fakeSurface struct {
	configures   [][2]int
	configureErr error

	// acquireErrs is consumed one per AcquireFrame call; nil means success.
	// Once exhausted, acquires succeed.
	acquireErrs []error

	frames []*fakeFrame
}

func (s *fakeSurface) Configure(width, height int) error {
	if width <= 0 || height <= 0 {
		return surface.ErrZeroSize
	}
	s.configures = append(s.configures, [2]int{width, height})
	return s.configureErr
}

func (s *fakeSurface) AcquireFrame() (surface.Frame, error) {
	if len(s.acquireErrs) > 0 {
		err := s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	f := &fakeFrame{}
	s.frames = append(s.frames, f)
	return f, nil
}

// fakeRenderer records the clear colors it was asked to render and consumes
// the frame the way the real renderer does.
type fakeRenderer struct {
	colors []common.Color
	err    error
}

func (r *fakeRenderer) Render(frame surface.Frame, clear common.Color) error {
	r.colors = append(r.colors, clear)
	if r.err != nil {
		frame.Discard()
		return r.err
	}
	return frame.Present()
}

// fakeWindow records the controller's window-facing side effects.
type fakeWindow struct {
	width, height  int
	redraws        int
	closeRequested bool
	cursorStates   []bool
}

func (w *fakeWindow) Width() int                    { return w.width }
func (w *fakeWindow) Height() int                   { return w.height }
func (w *fakeWindow) RequestRedraw()                { w.redraws++ }
func (w *fakeWindow) RequestClose()                 { w.closeRequested = true }
func (w *fakeWindow) SetCursorVisible(visible bool) { w.cursorStates = append(w.cursorStates, visible) }

func newTestController(features Features, policy FailurePolicy) (*controller, *fakeSurface, *fakeRenderer, *fakeWindow) {
	s := &fakeSurface{}
	r := &fakeRenderer{}
	w := &fakeWindow{width: 800, height: 600}
	c := &controller{
		surfaces: s,
		renderer: r,
		window:   w,
		features: features,
		policy:   policy,
		colors:   DefaultClearColors(),
		logger:   log.New(io.Discard, "", 0),
	}
	return c, s, r, w
}

func TestCloseRequestsExit(t *testing.T) {
	c, _, _, w := newTestController(Features{}, FailurePolicyLogAndContinue)

	c.handle(Event{Kind: EventClose})

	if c.state != stateExitRequested {
		t.Error("close did not transition to exit requested")
	}
	if !w.closeRequested {
		t.Error("close did not request the window loop to end")
	}
	if c.exitCode != 0 {
		t.Errorf("exit code = %d, want 0 on clean close", c.exitCode)
	}
}

func TestCloseWinsOverEphemeralFlags(t *testing.T) {
	c, _, _, w := newTestController(Features{CursorToggle: true}, FailurePolicyLogAndContinue)
	c.cursorVisible = true

	c.handle(Event{Kind: EventClose})

	if c.state != stateExitRequested || !w.closeRequested {
		t.Error("close was blocked by cursor-visible state")
	}
}

func TestEventsIgnoredAfterExitRequested(t *testing.T) {
	c, _, r, _ := newTestController(Features{}, FailurePolicyLogAndContinue)

	c.handle(Event{Kind: EventClose})
	c.handle(Event{Kind: EventRedraw})

	if len(r.colors) != 0 {
		t.Error("redraw was processed after exit was requested")
	}
}

func TestResizeReconfiguresBeforeNextRedraw(t *testing.T) {
	c, s, r, w := newTestController(Features{}, FailurePolicyLogAndContinue)

	// Window starts at 800x600, resize arrives, then the scheduled redraw.
	c.handle(Event{Kind: EventResize, Width: 400, Height: 300})

	if len(s.configures) != 1 || s.configures[0] != [2]int{400, 300} {
		t.Fatalf("configures = %v, want one call with (400, 300)", s.configures)
	}
	if w.redraws != 1 {
		t.Fatalf("redraws scheduled = %d, want 1", w.redraws)
	}

	c.handle(Event{Kind: EventRedraw})
	if len(r.colors) != 1 {
		t.Errorf("frames rendered = %d, want 1", len(r.colors))
	}
}

func TestZeroSizeResizeSkipped(t *testing.T) {
	c, s, _, w := newTestController(Features{}, FailurePolicyFatal)

	c.handle(Event{Kind: EventResize, Width: 0, Height: 300})

	if len(s.configures) != 0 {
		t.Errorf("configures = %v, want none for a zero-size resize", s.configures)
	}
	if w.redraws != 0 {
		t.Error("a redraw was scheduled for a skipped configure")
	}
	// A skipped zero-size configure is not a frame failure even under the
	// fatal policy.
	if c.state != stateRunning || c.exitCode != 0 {
		t.Error("zero-size resize escalated to a failure")
	}
}

func TestScaleChangeReconfiguresAtCurrentSize(t *testing.T) {
	c, s, _, w := newTestController(Features{}, FailurePolicyLogAndContinue)
	w.width, w.height = 1600, 1200

	c.handle(Event{Kind: EventScaleChanged, ScaleX: 2, ScaleY: 2})

	if len(s.configures) != 1 || s.configures[0] != [2]int{1600, 1200} {
		t.Errorf("configures = %v, want one call with the current framebuffer size", s.configures)
	}
}

func TestRedrawUsesAmbientColor(t *testing.T) {
	c, _, r, _ := newTestController(Features{}, FailurePolicyLogAndContinue)

	c.handle(Event{Kind: EventRedraw})
	c.handle(Event{Kind: EventRedraw})

	if len(r.colors) != 2 {
		t.Fatalf("frames rendered = %d, want 2", len(r.colors))
	}
	ambient := DefaultClearColors().Ambient
	if r.colors[0] != ambient || r.colors[1] != ambient {
		t.Errorf("clear colors = %v, want ambient %v for both frames", r.colors, ambient)
	}
}

func TestCursorToggleAlternatesClearColor(t *testing.T) {
	c, _, r, w := newTestController(Features{CursorToggle: true}, FailurePolicyLogAndContinue)
	colors := DefaultClearColors()

	// First press: cursor becomes visible, next redraw uses the alternate color.
	c.handle(Event{Kind: EventPointerButton, Button: 0, Pressed: true})
	c.handle(Event{Kind: EventRedraw})

	// Second press: cursor hidden again, next redraw back to ambient.
	c.handle(Event{Kind: EventPointerButton, Button: 0, Pressed: true})
	c.handle(Event{Kind: EventRedraw})

	if len(r.colors) != 2 {
		t.Fatalf("frames rendered = %d, want 2", len(r.colors))
	}
	if r.colors[0] != colors.Alternate {
		t.Errorf("first redraw color = %v, want alternate %v", r.colors[0], colors.Alternate)
	}
	if r.colors[1] != colors.Ambient {
		t.Errorf("second redraw color = %v, want ambient %v", r.colors[1], colors.Ambient)
	}

	wantCursor := []bool{true, false}
	if len(w.cursorStates) != 2 || w.cursorStates[0] != wantCursor[0] || w.cursorStates[1] != wantCursor[1] {
		t.Errorf("cursor states = %v, want %v", w.cursorStates, wantCursor)
	}
	if w.redraws != 2 {
		t.Errorf("redraws scheduled by presses = %d, want 2", w.redraws)
	}
}

func TestPointerReleaseDoesNotToggle(t *testing.T) {
	c, _, _, w := newTestController(Features{CursorToggle: true}, FailurePolicyLogAndContinue)

	c.handle(Event{Kind: EventPointerButton, Button: 0, Pressed: false})

	if c.cursorVisible {
		t.Error("button release toggled the cursor")
	}
	if w.redraws != 0 {
		t.Error("button release scheduled a redraw")
	}
}

func TestPointerMoveSchedulesRedrawOnlyWithToggle(t *testing.T) {
	c, _, r, w := newTestController(Features{CursorToggle: true}, FailurePolicyLogAndContinue)

	c.handle(Event{Kind: EventPointerMove, X: 10, Y: 20})

	if w.redraws != 1 {
		t.Errorf("redraws = %d, want 1", w.redraws)
	}
	// Input handlers never render synchronously.
	if len(r.colors) != 0 {
		t.Error("pointer move rendered a frame synchronously")
	}

	plain, _, _, plainWindow := newTestController(Features{}, FailurePolicyLogAndContinue)
	plain.handle(Event{Kind: EventPointerMove, X: 10, Y: 20})
	if plainWindow.redraws != 0 {
		t.Error("pointer move scheduled a redraw without the cursor-toggle feature")
	}
}

func TestTouchIsLoggedOnly(t *testing.T) {
	c, s, r, _ := newTestController(Features{TouchLogging: true}, FailurePolicyLogAndContinue)
	var buf bytes.Buffer
	c.logger = log.New(&buf, "", 0)

	before := *c
	c.handle(Event{Kind: EventTouch, X: 5, Y: 7})

	if buf.Len() == 0 {
		t.Error("touch event was not logged")
	}
	if c.state != before.state || c.cursorVisible != before.cursorVisible {
		t.Error("touch event mutated controller state")
	}
	if len(s.configures) != 0 || len(r.colors) != 0 {
		t.Error("touch event triggered surface or renderer work")
	}
}

func TestSurfaceLossRecoversByReconfigureAndRetry(t *testing.T) {
	c, s, r, _ := newTestController(Features{}, FailurePolicyLogAndContinue)
	s.acquireErrs = []error{surface.ErrSurfaceUnavailable}

	c.handle(Event{Kind: EventRedraw})

	if len(s.configures) != 1 || s.configures[0] != [2]int{800, 600} {
		t.Fatalf("configures = %v, want recovery reconfigure at the window size", s.configures)
	}
	if len(r.colors) != 1 {
		t.Fatalf("frames rendered = %d, want 1 after retry", len(r.colors))
	}
	if c.state != stateRunning || c.exitCode != 0 {
		t.Error("recovered frame was treated as a failure")
	}
}

func TestPersistentSurfaceLossLogAndContinue(t *testing.T) {
	c, s, r, w := newTestController(Features{}, FailurePolicyLogAndContinue)
	var buf bytes.Buffer
	c.logger = log.New(&buf, "", 0)
	s.acquireErrs = []error{surface.ErrSurfaceUnavailable, surface.ErrSurfaceUnavailable}

	c.handle(Event{Kind: EventRedraw})

	if buf.Len() == 0 {
		t.Error("skipped frame was not logged")
	}
	if c.state != stateRunning || w.closeRequested {
		t.Fatal("log-and-continue policy requested exit")
	}

	// The app must still be responsive to the next event.
	c.handle(Event{Kind: EventRedraw})
	if len(r.colors) != 1 {
		t.Errorf("frames rendered after recovery = %d, want 1", len(r.colors))
	}
}

func TestPersistentSurfaceLossFatalPolicy(t *testing.T) {
	c, s, _, w := newTestController(Features{}, FailurePolicyFatal)
	s.acquireErrs = []error{surface.ErrSurfaceUnavailable, surface.ErrSurfaceUnavailable}

	c.handle(Event{Kind: EventRedraw})

	if c.state != stateExitRequested || !w.closeRequested {
		t.Error("fatal policy did not request exit")
	}
	if c.exitCode != 1 {
		t.Errorf("exit code = %d, want 1", c.exitCode)
	}
}

func TestRenderFailureDiscardsWithoutPresent(t *testing.T) {
	c, s, r, _ := newTestController(Features{}, FailurePolicyLogAndContinue)
	r.err = errors.New("encoder failed")

	c.handle(Event{Kind: EventRedraw})

	if len(s.frames) != 1 {
		t.Fatalf("frames acquired = %d, want 1", len(s.frames))
	}
	f := s.frames[0]
	if f.presented != 0 {
		t.Error("failed frame was presented")
	}
	if f.discarded != 1 {
		t.Error("failed frame was not discarded")
	}
}

func TestSuccessfulFramePresentedExactlyOnce(t *testing.T) {
	c, s, _, _ := newTestController(Features{}, FailurePolicyLogAndContinue)

	c.handle(Event{Kind: EventRedraw})

	if len(s.frames) != 1 {
		t.Fatalf("frames acquired = %d, want 1", len(s.frames))
	}
	if s.frames[0].presented != 1 || s.frames[0].discarded != 0 {
		t.Errorf("frame presented %d times, discarded %d times; want exactly one present",
			s.frames[0].presented, s.frames[0].discarded)
	}
}
