package geometry

import (
	"fmt"
	"strings"
)

// LocationStrategy selects how vertex input locations are determined.
type LocationStrategy int

const (
	// LocationsFixed uses the locations declared in the layout (0 and 1 by default).
	LocationsFixed LocationStrategy = iota

	// LocationsByName queries the linked program for each input by name.
	LocationsByName
)

func (s LocationStrategy) String() string {
	switch s {
	case LocationsFixed:
		return "fixed"
	case LocationsByName:
		return "byName"
	default:
		return fmt.Sprintf("LocationStrategy(%d)", int(s))
	}
}

// ParseLocationStrategy parses "fixed" or "byName" (case-insensitive). An empty string is "fixed".
func ParseLocationStrategy(s string) (LocationStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed":
		return LocationsFixed, nil
	case "byname", "by_name", "name":
		return LocationsByName, nil
	default:
		return LocationsFixed, fmt.Errorf("unknown attribute location strategy %q", s)
	}
}

// BufferBuilderOption is a functional option for configuring a Buffer.
type BufferBuilderOption func(b *buffer)

// WithVertices replaces the default triangle.
//
// Parameters:
//   - vertices: the three vertices to upload
//
// Returns:
//   - BufferBuilderOption: option function to apply
func WithVertices(vertices [VertexCount]Vertex) BufferBuilderOption {
	return func(b *buffer) {
		b.vertices = vertices
	}
}

// WithTextureWidth rebuilds the default triangle so its texture coordinates address a texture of the given width.
//
// Parameters:
//   - width: texture width in texels
//
// Returns:
//   - BufferBuilderOption: option function to apply
func WithTextureWidth(width int) BufferBuilderOption {
	return func(b *buffer) {
		b.vertices = Triangle(width)
	}
}

// WithLocationStrategy sets how vertex input locations are chosen.
//
// Parameters:
//   - strategy: LocationsFixed or LocationsByName
//
// Returns:
//   - BufferBuilderOption: option function to apply
func WithLocationStrategy(strategy LocationStrategy) BufferBuilderOption {
	return func(b *buffer) {
		b.strategy = strategy
	}
}

// WithAttributeNames overrides the input names used by LocationsByName.
//
// Parameters:
//   - position: name of the position input
//   - texCoord: name of the texture coordinate input
//
// Returns:
//   - BufferBuilderOption: option function to apply
func WithAttributeNames(position, texCoord string) BufferBuilderOption {
	return func(b *buffer) {
		b.layout.Position.Name = position
		b.layout.TexCoord.Name = texCoord
	}
}
