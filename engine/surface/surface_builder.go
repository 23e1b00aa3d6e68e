package surface

import "github.com/cogentcore/webgpu/wgpu"

// ManagerBuilderOption is a functional option for configuring a surface Manager.
// Use the With* functions to create options.
type ManagerBuilderOption func(*manager)

// WithPresentMode overrides the surface present mode. The default is FIFO
// (v-sync): no tearing, bounded latency, frame pacing tied to the display
// refresh. Takes effect on the next Configure call.
//
// Parameters:
//   - mode: the wgpu present mode to configure the surface with
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithPresentMode(mode wgpu.PresentMode) ManagerBuilderOption {
	return func(m *manager) {
		m.presentMode = mode
	}
}
