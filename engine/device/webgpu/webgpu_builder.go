//go:build !js

package webgpu

import (
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// DeviceBuilderOption is a functional option for configuring the WebGPU device.
type DeviceBuilderOption func(d *gpuDevice)

// WithLogger sets the logger for device setup and draw diagnostics.
//
// Parameters:
//   - logger: the structured logger to use (nil keeps slog.Default)
//
// Returns:
//   - DeviceBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) DeviceBuilderOption {
	return func(d *gpuDevice) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithLabel sets the prefix of every GPU object label.
//
// Parameters:
//   - label: the label prefix (empty keeps "oxy-triangle")
//
// Returns:
//   - DeviceBuilderOption: option function to apply
func WithLabel(label string) DeviceBuilderOption {
	return func(d *gpuDevice) {
		d.label = label
	}
}

// WithPresentMode sets the surface present mode. The default is wgpu.PresentModeFifo.
//
// Parameters:
//   - mode: the present mode used when configuring the surface
//
// Returns:
//   - DeviceBuilderOption: option function to apply
func WithPresentMode(mode wgpu.PresentMode) DeviceBuilderOption {
	return func(d *gpuDevice) {
		d.presentMode = mode
	}
}
