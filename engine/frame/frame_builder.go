package frame

import "log/slog"

// DriverBuilderOption is a functional option for configuring a Driver.
type DriverBuilderOption func(d *driver)

// WithUnlinkedDraw lets the driver issue draws even when it holds no linked program.
// Off by default, so a failed link leaves a cleared screen.
//
// Parameters:
//   - allow: true to draw regardless of link status
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithUnlinkedDraw(allow bool) DriverBuilderOption {
	return func(d *driver) {
		d.allowUnlinkedDraw = allow
	}
}

// WithClearColor sets the color every frame is cleared to.
//
// Parameters:
//   - r, g, b, a: color components in [0, 1]
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithClearColor(r, g, b, a float32) DriverBuilderOption {
	return func(d *driver) {
		d.clearColor = [4]float32{r, g, b, a}
	}
}

// WithLogger sets the logger for lifecycle messages.
//
// Parameters:
//   - logger: the structured logger to use (nil keeps slog.Default)
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) DriverBuilderOption {
	return func(d *driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}
