package shader

import "log/slog"

// BuilderOption is a functional option for configuring a Builder.
type BuilderOption func(b *builder)

// WithLabel sets the name used for the program in log output.
//
// Parameters:
//   - label: a human readable program name
//
// Returns:
//   - BuilderOption: option function to apply
func WithLabel(label string) BuilderOption {
	return func(b *builder) {
		b.label = label
	}
}

// WithLogger sets the logger compile and link diagnostics are written to.
//
// Parameters:
//   - logger: the structured logger to use (nil keeps slog.Default)
//
// Returns:
//   - BuilderOption: option function to apply
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}
