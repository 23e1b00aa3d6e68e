package surface

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrFrameConsumed indicates a Present attempt on a frame that was already
// presented or discarded. Frame handles are strictly single-use.
var ErrFrameConsumed = errors.New("frame already consumed")

// Frame is a single-use handle for the next drawable image of a surface.
// It is created by Manager.AcquireFrame and consumed exactly once by either
// Present (after rendering) or Discard (on a failed frame). A consumed frame
// must not be held across the next acquire.
type Frame interface {
	// View returns the frame's texture view, pinned to the surface's
	// configured format. Nil after the frame has been consumed.
	//
	// Returns:
	//   - *wgpu.TextureView: the render target view for this frame
	View() *wgpu.TextureView

	// Present presents the frame to the display and consumes the handle.
	//
	// Returns:
	//   - error: ErrFrameConsumed if the frame was already presented or discarded
	Present() error

	// Discard consumes the handle without presenting, releasing the backing
	// image. Used when frame recording fails partway: a partially recorded
	// frame must never be presented. Safe to call on a consumed frame.
	Discard()
}

// surfaceFrame is the implementation of the Frame interface.
type surfaceFrame struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView

	// present is bound to the owning surface's Present at acquire time.
	present func()

	consumed bool
}

var _ Frame = &surfaceFrame{}

func (f *surfaceFrame) View() *wgpu.TextureView {
	return f.view
}

func (f *surfaceFrame) Present() error {
	if f.consumed {
		return ErrFrameConsumed
	}
	f.consumed = true

	if f.present != nil {
		f.present()
	}
	f.release()

	return nil
}

func (f *surfaceFrame) Discard() {
	if f.consumed {
		return
	}
	f.consumed = true
	f.release()
}

// release drops the view and texture references held by the frame.
func (f *surfaceFrame) release() {
	if f.view != nil {
		f.view.Release()
		f.view = nil
	}
	if f.texture != nil {
		f.texture.Release()
		f.texture = nil
	}
}
