package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/device"
	"github.com/Carmen-Shannon/prism-go/engine/surface"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrFrameUnusable indicates a render attempt against a frame whose view is
// gone, typically because the frame was already consumed.
var ErrFrameUnusable = errors.New("frame has no usable view")

// Renderer records and submits the per-frame work for an acquired frame:
// a single render pass that clears the color attachment to a solid color,
// optionally binding a placeholder pipeline, followed by queue submission
// and presentation.
type Renderer interface {
	// Render records one clear-only render pass against the frame's view,
	// submits it to the device queue, and presents the frame, consuming it.
	//
	// Rendering is a deterministic function of the clear color and the frame
	// view: no time, randomness, or hidden state feeds the output.
	//
	// If any step fails before submission the frame is discarded, never
	// presented, and the error is returned; the surface manager supplies a
	// fresh frame on the next redraw.
	//
	// Parameters:
	//   - frame: the acquired frame to render into (consumed on return)
	//   - clear: the solid color the attachment is cleared to
	//
	// Returns:
	//   - error: an error if recording, submission, or presentation fails
	Render(frame surface.Frame, clear common.Color) error
}

// frameRenderer is the implementation of the Renderer interface.
type frameRenderer struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	// surfaces provides the current surface descriptor so the placeholder
	// pipeline's color target can be pinned to the configured format.
	surfaces surface.Manager

	// usePipeline enables binding the placeholder pipeline during the pass.
	// The pipeline's vertex stage emits a degenerate position, so nothing
	// visible is ever drawn; the pass still exists solely to clear.
	usePipeline bool

	pipeline       *wgpu.RenderPipeline
	pipelineFormat wgpu.TextureFormat
}

var _ Renderer = &frameRenderer{}

// NewRenderer creates a Renderer bound to the given device context and
// surface manager.
//
// Parameters:
//   - ctx: the device context providing the device and queue
//   - surfaces: the surface manager whose descriptor pins pipeline formats
//   - options: functional options for renderer configuration
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(ctx device.DeviceContext, surfaces surface.Manager, options ...RendererBuilderOption) Renderer {
	r := &frameRenderer{
		device:   ctx.Device(),
		queue:    ctx.Queue(),
		surfaces: surfaces,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *frameRenderer) Render(frame surface.Frame, clear common.Color) error {
	view := frame.View()
	if view == nil {
		frame.Discard()
		return ErrFrameUnusable
	}

	// Resolve the pipeline before opening the command scope so a pipeline
	// failure never leaves a half-recorded pass behind.
	var pipeline *wgpu.RenderPipeline
	if r.usePipeline {
		p, err := r.ensurePipeline(r.surfaces.Descriptor().Format)
		if err != nil {
			frame.Discard()
			return fmt.Errorf("failed to create placeholder pipeline: %w", err)
		}
		pipeline = p
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		frame.Discard()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	// One pass, cleared on load and stored on end: the cleared content must
	// persist in the attachment to be presented.
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear.ToWGPU(),
			},
		},
	})
	if pipeline != nil {
		pass.SetPipeline(pipeline)
		pass.Draw(3, 1, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		frame.Discard()
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}

	r.queue.Submit(commandBuffer)
	commandBuffer.Release()
	encoder.Release()

	return frame.Present()
}
