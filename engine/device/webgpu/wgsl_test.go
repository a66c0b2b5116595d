//go:build !js

package webgpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-triangle/assets"
	"github.com/Carmen-Shannon/oxy-triangle/config"
	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

func triangleSources(t *testing.T) assets.ShaderPair {
	t.Helper()
	pair, err := assets.Sources(config.BackendWebGPU)
	require.NoError(t, err)
	return pair
}

func TestReflectTriangleVertexStage(t *testing.T) {
	r := reflectStage(triangleSources(t).Vertex, device.StageVertex)

	assert.Equal(t, "vs_main", r.entryPoint)
	assert.Equal(t, map[string]vertexInput{
		"position":       {location: 0, typeName: "vec2f"},
		"inTextureIndex": {location: 1, typeName: "f32"},
	}, r.inputs)
	assert.Empty(t, r.groups)
}

func TestReflectTriangleFragmentStage(t *testing.T) {
	r := reflectStage(triangleSources(t).Fragment, device.StageFragment)

	assert.Equal(t, "fs_main", r.entryPoint)
	assert.Empty(t, r.inputs)
	require.Contains(t, r.groups, 0)

	entries := r.groups[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(0), entries[0].Binding)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.ShaderStageFragment, entries[0].Visibility)
	assert.Equal(t, uint32(1), entries[1].Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, entries[1].Sampler.Type)
}

func TestEntryPointParameters(t *testing.T) {
	src := `
@vertex
fn main(@location(0) pos: vec2f, @location(3) idx: f32) -> @builtin(position) vec4f {
    return vec4f(pos, idx, 1.0);
}`
	r := reflectStage(src, device.StageVertex)

	assert.Equal(t, "main", r.entryPoint)
	assert.Equal(t, map[string]vertexInput{
		"pos": {location: 0, typeName: "vec2f"},
		"idx": {location: 3, typeName: "f32"},
	}, r.inputs)
}

func TestMissingEntryPoint(t *testing.T) {
	r := reflectStage(triangleSources(t).Fragment, device.StageVertex)
	assert.Empty(t, r.entryPoint)
}

func TestCommentsAreIgnored(t *testing.T) {
	src := `
// @vertex fn commented() {}
/* @vertex fn blocked() { /* nested */ } */
@vertex fn real() -> @builtin(position) vec4f { return vec4f(0.0); }`

	assert.Equal(t, "real", reflectStage(src, device.StageVertex).entryPoint)
}

func TestClassifyResource(t *testing.T) {
	tex := classifyResource(2, wgpu.ShaderStageFragment, "", "texture_2d< f32 >")
	assert.Equal(t, wgpu.TextureSampleTypeFloat, tex.Texture.SampleType)

	ubo := classifyResource(0, wgpu.ShaderStageVertex, "uniform", "Globals")
	assert.Equal(t, wgpu.BufferBindingTypeUniform, ubo.Buffer.Type)

	other := classifyResource(0, wgpu.ShaderStageVertex, "", "texture_3d<f32>")
	assert.Equal(t, wgpu.TextureSampleTypeUndefined, other.Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeUndefined, other.Sampler.Type)
}

func TestMergeBindGroupLayoutsUnionsVisibility(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{
			classifyResource(0, wgpu.ShaderStageVertex, "uniform", "Globals"),
		}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{
			classifyResource(1, wgpu.ShaderStageFragment, "", "sampler"),
			classifyResource(0, wgpu.ShaderStageFragment, "uniform", "Globals"),
		}},
		1: {Entries: []wgpu.BindGroupLayoutEntry{
			classifyResource(0, wgpu.ShaderStageFragment, "", "texture_2d<f32>"),
		}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)

	require.Len(t, merged, 2)
	require.Len(t, merged[0].Entries, 2)
	assert.Equal(t, uint32(0), merged[0].Entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, merged[0].Entries[0].Visibility)
	assert.Equal(t, uint32(1), merged[0].Entries[1].Binding)
	assert.Equal(t, wgpu.ShaderStageFragment, merged[0].Entries[1].Visibility)
	assert.Len(t, merged[1].Entries, 1)
}

func TestSplitAtTopLevelCommas(t *testing.T) {
	parts := splitAtTopLevelCommas("a: array<f32, 4>, b: f32")
	assert.Equal(t, []string{"a: array<f32, 4>", " b: f32"}, parts)
}

func TestCheckBindings(t *testing.T) {
	fragment := reflectStage(triangleSources(t).Fragment, device.StageFragment)
	assert.NoError(t, checkBindings(fragment.groups))

	withUniform := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Entries: []wgpu.BindGroupLayoutEntry{
			classifyResource(0, wgpu.ShaderStageVertex, "uniform", "Globals"),
		}},
	}
	assert.ErrorContains(t, checkBindings(withUniform), "group 1 binding 0: buffer bindings are not supported")

	withVolume := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{
			classifyResource(3, wgpu.ShaderStageFragment, "", "texture_3d<f32>"),
		}},
	}
	assert.ErrorContains(t, checkBindings(withVolume), "unsupported resource type")
}
