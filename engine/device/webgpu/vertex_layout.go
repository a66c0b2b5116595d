//go:build !js

package webgpu

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// attribState mirrors one GL vertex attribute array: the pointer set by VertexAttribPointer
// and whether EnableVertexAttribArray was called.
type attribState struct {
	size    int
	stride  int
	offset  int
	enabled bool
}

var errNoAttributes = errors.New("no enabled vertex attributes")

// floatVertexFormats maps a component count to the float vertex format.
var floatVertexFormats = map[int]wgpu.VertexFormat{
	1: wgpu.VertexFormatFloat32,
	2: wgpu.VertexFormatFloat32x2,
	3: wgpu.VertexFormatFloat32x3,
	4: wgpu.VertexFormatFloat32x4,
}

// vertexLayout turns the enabled attribute arrays into a single interleaved buffer layout.
// All attributes come from the one bound buffer, so they must share a stride.
//
// Parameters:
//   - attribs: attribute arrays keyed by location
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for vertex buffer slot 0
//   - string: a key identifying the layout, used to cache pipelines
//   - error: error if nothing is enabled, strides differ, or a size has no vertex format
func vertexLayout(attribs map[uint32]attribState) (wgpu.VertexBufferLayout, string, error) {
	locations := make([]uint32, 0, len(attribs))
	for loc, a := range attribs {
		if a.enabled {
			locations = append(locations, loc)
		}
	}
	if len(locations) == 0 {
		return wgpu.VertexBufferLayout{}, "", errNoAttributes
	}
	slices.Sort(locations)

	stride := attribs[locations[0]].stride
	var key strings.Builder
	fmt.Fprintf(&key, "stride=%d", stride)

	attrs := make([]wgpu.VertexAttribute, 0, len(locations))
	for _, loc := range locations {
		a := attribs[loc]
		if a.stride != stride {
			return wgpu.VertexBufferLayout{}, "", fmt.Errorf("attribute %d stride %d differs from %d", loc, a.stride, stride)
		}
		format, ok := floatVertexFormats[a.size]
		if !ok {
			return wgpu.VertexBufferLayout{}, "", fmt.Errorf("attribute %d has unsupported size %d", loc, a.size)
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         format,
			Offset:         uint64(a.offset),
			ShaderLocation: loc,
		})
		fmt.Fprintf(&key, ";%d:%d@%d", loc, a.size, a.offset)
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(stride),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, key.String(), nil
}
