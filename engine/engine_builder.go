package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
	"github.com/Carmen-Shannon/oxy-triangle/engine/frame"
	"github.com/Carmen-Shannon/oxy-triangle/engine/input"
	"github.com/Carmen-Shannon/oxy-triangle/engine/profiler"
	"github.com/Carmen-Shannon/oxy-triangle/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler ticked once per frame while profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithHost sets the event loop the engine runs inside, such as a Window or a ManualHost.
//
// Parameters:
//   - h: the host driving the frame callback
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithHost(h window.Host) EngineBuilderOption {
	return func(e *engine) {
		e.host = h
	}
}

// WithDevice sets the device frames are presented on. Devices implementing device.Presenter are
// presented after every tick, and devices implementing device.Resizer follow host resizes.
//
// Parameters:
//   - dev: the device the driver draws on
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDevice(dev device.Device) EngineBuilderOption {
	return func(e *engine) {
		e.dev = dev
	}
}

// WithDriver sets the frame driver ticked once per host frame.
//
// Parameters:
//   - d: the frame driver
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDriver(d frame.Driver) EngineBuilderOption {
	return func(e *engine) {
		e.driver = d
	}
}

// WithNotifier sets the notifier that receives host key events.
//
// Parameters:
//   - n: the input notifier
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithNotifier(n input.Notifier) EngineBuilderOption {
	return func(e *engine) {
		e.notifier = n
	}
}

// WithKeySink adds a sink that receives every host key event after the notifier.
// Unlike WithNotifier it keeps the notifier, so the configured input sinks still run.
//
// Parameters:
//   - s: the extra sink
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithKeySink(s input.Sink) EngineBuilderOption {
	return func(e *engine) {
		if s != nil {
			e.keySinks = append(e.keySinks, s)
		}
	}
}

// WithFrameCallback registers the function called after each frame.
//
// Parameters:
//   - callback: receives a copy of the render context for the frame just drawn
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(callback func(ctx frame.RenderContext)) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}

// WithShutdown adds a hook run once after the host loop ends. Hooks run in the order added.
//
// Parameters:
//   - fn: the hook to run
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithShutdown(fn func()) EngineBuilderOption {
	return func(e *engine) {
		if fn != nil {
			e.shutdown = append(e.shutdown, fn)
		}
	}
}

// WithLogger sets the logger for engine lifecycle messages and the default profiler.
//
// Parameters:
//   - logger: the structured logger to use (nil keeps slog.Default)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
