//go:build js && wasm

package webgl

import "log/slog"

// DeviceBuilderOption is a functional option for configuring the WebGL device.
type DeviceBuilderOption func(d *webglDevice)

// WithLogger sets the logger for device setup messages.
//
// Parameters:
//   - logger: the structured logger to use (nil keeps slog.Default)
//
// Returns:
//   - DeviceBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) DeviceBuilderOption {
	return func(d *webglDevice) {
		if logger != nil {
			d.logger = logger
		}
	}
}
