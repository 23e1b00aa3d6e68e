package device

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoAdapter indicates that no GPU adapter compatible with the presentation surface was found.
	ErrNoAdapter = errors.New("no compatible adapter found")

	// ErrNoDevice indicates that device negotiation failed for the chosen adapter.
	ErrNoDevice = errors.New("no suitable device found")
)

// DeviceContext holds the negotiated GPU adapter, logical device, and submission queue.
// It is created once at startup and is read-only afterwards; all fields remain valid
// for the lifetime of the process. Construction either fully succeeds or fails —
// no partially initialized context is ever returned.
type DeviceContext interface {
	// Instance returns the wgpu instance the context was created from.
	//
	// Returns:
	//   - *wgpu.Instance: the wgpu instance
	Instance() *wgpu.Instance

	// Adapter returns the negotiated GPU adapter.
	//
	// Returns:
	//   - *wgpu.Adapter: the adapter
	Adapter() *wgpu.Adapter

	// Device returns the negotiated logical device.
	//
	// Returns:
	//   - *wgpu.Device: the device
	Device() *wgpu.Device

	// Queue returns the device's command submission queue.
	//
	// Returns:
	//   - *wgpu.Queue: the queue
	Queue() *wgpu.Queue

	// Release drops the context's GPU resources. Must only be called once,
	// during application teardown, after all surfaces derived from the
	// instance have been released.
	Release()
}

// deviceContext is the implementation of the DeviceContext interface.
type deviceContext struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
}

var _ DeviceContext = &deviceContext{}

// NewDeviceContext negotiates a GPU adapter and device compatible with the given
// presentation surface. The adapter request prefers low-power adapters and never
// falls back to a software adapter unless overridden via options. The device is
// requested with no optional features and the default (most conservative) limits.
//
// This is a one-time, non-retryable setup step: any failure here is fatal to the
// caller and should terminate the process.
//
// Parameters:
//   - instance: the wgpu instance to negotiate against
//   - surfaceHint: the presentation surface the adapter must be compatible with
//   - options: functional options for adapter selection
//
// Returns:
//   - DeviceContext: the fully initialized context
//   - error: ErrNoAdapter or ErrNoDevice (wrapped) on negotiation failure
func NewDeviceContext(instance *wgpu.Instance, surfaceHint *wgpu.Surface, options ...DeviceBuilderOption) (DeviceContext, error) {
	d := &deviceContext{instance: instance}

	cfg := &deviceConfig{
		powerPreference:      wgpu.PowerPreferenceLowPower,
		forceFallbackAdapter: false,
	}
	for _, opt := range options {
		opt(cfg)
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      cfg.powerPreference,
		ForceFallbackAdapter: cfg.forceFallbackAdapter,
		CompatibleSurface:    surfaceHint,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	d.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Prism Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	d.device = device
	d.queue = device.GetQueue()

	return d, nil
}

func (d *deviceContext) Instance() *wgpu.Instance {
	return d.instance
}

func (d *deviceContext) Adapter() *wgpu.Adapter {
	return d.adapter
}

func (d *deviceContext) Device() *wgpu.Device {
	return d.device
}

func (d *deviceContext) Queue() *wgpu.Queue {
	return d.queue
}

func (d *deviceContext) Release() {
	if d.device != nil {
		d.device.Release()
		d.device = nil
		d.queue = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
}
