//go:build !js

package opengl

import "log/slog"

// DeviceBuilderOption is a functional option for configuring the OpenGL device.
type DeviceBuilderOption func(d *glDevice)

// WithSwap sets the function Present calls, normally the window's SwapBuffers.
//
// Parameters:
//   - swap: presents the back buffer
//
// Returns:
//   - DeviceBuilderOption: option function to apply
func WithSwap(swap func()) DeviceBuilderOption {
	return func(d *glDevice) {
		d.swap = swap
	}
}

// WithLogger sets the logger for device setup messages.
//
// Parameters:
//   - logger: the structured logger to use (nil keeps slog.Default)
//
// Returns:
//   - DeviceBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) DeviceBuilderOption {
	return func(d *glDevice) {
		if logger != nil {
			d.logger = logger
		}
	}
}
