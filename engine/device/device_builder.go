package device

import "github.com/cogentcore/webgpu/wgpu"

// deviceConfig collects adapter selection settings before negotiation.
type deviceConfig struct {
	powerPreference      wgpu.PowerPreference
	forceFallbackAdapter bool
}

// DeviceBuilderOption is a functional option for configuring adapter negotiation.
// Use the With* functions to create options.
type DeviceBuilderOption func(*deviceConfig)

// WithPowerPreference overrides the adapter power preference. The default is
// low-power, which favors integrated GPUs and battery life over throughput.
//
// Parameters:
//   - pref: the wgpu power preference to request
//
// Returns:
//   - DeviceBuilderOption: option function to apply
func WithPowerPreference(pref wgpu.PowerPreference) DeviceBuilderOption {
	return func(c *deviceConfig) {
		c.powerPreference = pref
	}
}

// WithForceFallbackAdapter forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the
// system (e.g. SwiftShader or lavapipe). Off by default.
//
// Parameters:
//   - force: true to force the software fallback adapter
//
// Returns:
//   - DeviceBuilderOption: option function to apply
func WithForceFallbackAdapter(force bool) DeviceBuilderOption {
	return func(c *deviceConfig) {
		c.forceFallbackAdapter = force
	}
}
