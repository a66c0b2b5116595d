package texture

import "github.com/Carmen-Shannon/oxy-triangle/engine/device"

// GeneratorBuilderOption is a functional option for configuring a Generator.
type GeneratorBuilderOption func(g *generator)

// WithAnimation turns per-frame regeneration on or off. A static generator uploads only in Init.
//
// Parameters:
//   - animated: true to regenerate every frame
//
// Returns:
//   - GeneratorBuilderOption: option function to apply
func WithAnimation(animated bool) GeneratorBuilderOption {
	return func(g *generator) {
		g.animated = animated
	}
}

// WithFilter sets the magnification filter applied in Init.
//
// Parameters:
//   - filter: device.FilterNearest or device.FilterLinear
//
// Returns:
//   - GeneratorBuilderOption: option function to apply
func WithFilter(filter device.Filter) GeneratorBuilderOption {
	return func(g *generator) {
		g.filter = filter
	}
}
