package engine

import (
	"log"

	"github.com/Carmen-Shannon/prism-go/engine/device"
	"github.com/Carmen-Shannon/prism-go/engine/window"
)

// AppBuilderOption is a functional option for configuring an App.
// Use the With* functions to create options that are applied during NewApp.
type AppBuilderOption func(*app)

// WithWindow sets a custom configured window for the app to use rather than
// allowing the app to create one internally. The app takes ownership: the
// window is destroyed during teardown, after the surface derived from it.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithWindow(w window.Window) AppBuilderOption {
	return func(a *app) {
		a.window = w
	}
}

// WithFeatures selects the app's optional behaviors. The zero Features value
// is the plain clear-only skeleton.
//
// Parameters:
//   - features: the feature set to enable
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithFeatures(features Features) AppBuilderOption {
	return func(a *app) {
		a.features = features
	}
}

// WithFailurePolicy sets how the app reacts to a frame that could not be
// rendered. The default is FailurePolicyLogAndContinue.
//
// Parameters:
//   - policy: the failure policy to apply to skipped frames
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithFailurePolicy(policy FailurePolicy) AppBuilderOption {
	return func(a *app) {
		a.policy = policy
	}
}

// WithClearColors sets the ambient and alternate surface clear colors.
//
// Parameters:
//   - colors: the color pair to clear with
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithClearColors(colors ClearColors) AppBuilderOption {
	return func(a *app) {
		a.colors = colors
	}
}

// WithProfiling enables per-frame performance statistics output to the log.
//
// Parameters:
//   - enabled: if true, enables the frame profiler
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithProfiling(enabled bool) AppBuilderOption {
	return func(a *app) {
		a.profilingEnabled = enabled
	}
}

// WithLogger sets the logger used for frame errors and touch logging.
// Defaults to the standard logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithLogger(logger *log.Logger) AppBuilderOption {
	return func(a *app) {
		a.logger = logger
	}
}

// WithDeviceOptions forwards options to adapter and device negotiation.
//
// Parameters:
//   - options: device builder options to apply during negotiation
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithDeviceOptions(options ...device.DeviceBuilderOption) AppBuilderOption {
	return func(a *app) {
		a.deviceOptions = append(a.deviceOptions, options...)
	}
}
