package surface

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/prism-go/engine/device"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrZeroSize indicates a configure attempt with a zero or negative dimension.
	// Configuring a surface at zero size is undefined at the platform boundary,
	// so the request is rejected before any GPU call is made.
	ErrZeroSize = errors.New("surface size must be greater than zero")

	// ErrNotConfigured indicates a frame was requested before the first successful Configure.
	ErrNotConfigured = errors.New("surface is not configured")

	// ErrSurfaceUnavailable indicates the surface is lost, outdated, or timed out.
	// This is recoverable: the caller should reconfigure at the current window
	// size and retry the frame once.
	ErrSurfaceUnavailable = errors.New("surface unavailable")

	// ErrNoFormats indicates the adapter reported no supported formats for the surface.
	ErrNoFormats = errors.New("adapter reports no supported surface formats")
)

// Descriptor is a snapshot of the surface's current configuration. It is
// replaced wholesale by every successful Configure call.
type Descriptor struct {
	// Width and Height are the configured surface dimensions in pixels.
	Width, Height uint32

	// Format is the texture format the surface was configured with. This is
	// always the first format the adapter reported as supported at configure
	// time — not necessarily optimal, but deterministic.
	Format wgpu.TextureFormat

	// PresentMode is the frame delivery mode the surface was configured with.
	PresentMode wgpu.PresentMode

	// AlphaMode is the composite alpha mode the surface was configured with.
	AlphaMode wgpu.CompositeAlphaMode
}

// Manager owns the platform drawable surface bound to the window and its
// configuration lifecycle. It must be released strictly before the window it
// was derived from is destroyed.
type Manager interface {
	// Configure (re)configures the surface for the given pixel dimensions.
	// Adapter capabilities are re-queried on every call because the platform
	// compositor may change available formats independently of application
	// state; nothing from a prior configuration is reused. Rejects zero-size
	// requests with ErrZeroSize before touching the GPU surface.
	//
	// Parameters:
	//   - width: surface width in pixels, must be > 0
	//   - height: surface height in pixels, must be > 0
	//
	// Returns:
	//   - error: ErrZeroSize or ErrNoFormats on failure
	Configure(width, height int) error

	// AcquireFrame requests the next drawable image from the surface. The
	// returned Frame is single-use: it must be consumed exactly once by
	// Present or Discard before the next acquire.
	//
	// Returns:
	//   - Frame: the acquired frame handle
	//   - error: ErrNotConfigured before the first Configure, or
	//     ErrSurfaceUnavailable (wrapped) if the surface is lost, outdated,
	//     or timed out
	AcquireFrame() (Frame, error)

	// Descriptor returns a snapshot of the current surface configuration.
	// The zero Descriptor is returned before the first successful Configure.
	//
	// Returns:
	//   - Descriptor: the current configuration snapshot
	Descriptor() Descriptor

	// Configured reports whether the surface has been configured at least once.
	//
	// Returns:
	//   - bool: true after the first successful Configure
	Configured() bool

	// Release drops the underlying wgpu surface. Must be called before the
	// window the surface was created from is destroyed.
	Release()
}

// manager is the implementation of the Manager interface.
type manager struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device

	presentMode wgpu.PresentMode

	descriptor Descriptor
	configured bool
}

var _ Manager = &manager{}

// NewManager creates a surface Manager over an existing wgpu surface, bound to
// the adapter and device of the given context.
//
// Parameters:
//   - ctx: the device context whose adapter and device configure the surface
//   - surf: the wgpu surface created from the target window
//   - options: functional options for surface configuration
//
// Returns:
//   - Manager: the surface manager (not yet configured)
func NewManager(ctx device.DeviceContext, surf *wgpu.Surface, options ...ManagerBuilderOption) Manager {
	m := &manager{
		surface:     surf,
		adapter:     ctx.Adapter(),
		device:      ctx.Device(),
		presentMode: wgpu.PresentModeFifo,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *manager) Configure(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrZeroSize, width, height)
	}

	capabilities := m.surface.GetCapabilities(m.adapter)
	format, ok := preferredFormat(capabilities)
	if !ok {
		return ErrNoFormats
	}
	alphaMode := preferredAlphaMode(capabilities)

	m.surface.Configure(m.adapter, m.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: m.presentMode,
		AlphaMode:   alphaMode,
	})

	m.descriptor = Descriptor{
		Width:       uint32(width),
		Height:      uint32(height),
		Format:      format,
		PresentMode: m.presentMode,
		AlphaMode:   alphaMode,
	}
	m.configured = true

	return nil
}

func (m *manager) AcquireFrame() (Frame, error) {
	if !m.configured {
		return nil, ErrNotConfigured
	}

	texture, err := m.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}

	// Pin the view to the configured format rather than inferring it from the
	// texture. Some backends silently accept a mismatched inferred format and
	// produce incorrect output.
	view, err := texture.CreateView(&wgpu.TextureViewDescriptor{
		Format:          m.descriptor.Format,
		Dimension:       wgpu.TextureViewDimension2D,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspectAll,
	})
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("failed to create frame view: %w", err)
	}

	return &surfaceFrame{
		texture: texture,
		view:    view,
		present: m.surface.Present,
	}, nil
}

func (m *manager) Descriptor() Descriptor {
	return m.descriptor
}

func (m *manager) Configured() bool {
	return m.configured
}

func (m *manager) Release() {
	if m.surface != nil {
		m.surface.Release()
		m.surface = nil
	}
	m.configured = false
}

// preferredFormat selects the surface format from the adapter's reported
// capabilities. The first reported format is taken as preferred — a deliberate
// simplification that keeps the choice deterministic.
func preferredFormat(capabilities wgpu.SurfaceCapabilities) (wgpu.TextureFormat, bool) {
	if len(capabilities.Formats) == 0 {
		return 0, false
	}
	return capabilities.Formats[0], true
}

// preferredAlphaMode selects the composite alpha mode from the adapter's
// reported capabilities. The first reported mode is the platform's automatic
// choice; when the adapter reports none, auto is requested explicitly.
func preferredAlphaMode(capabilities wgpu.SurfaceCapabilities) wgpu.CompositeAlphaMode {
	if len(capabilities.AlphaModes) == 0 {
		return wgpu.CompositeAlphaModeAuto
	}
	return capabilities.AlphaModes[0]
}
