package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-triangle/config"
)

func TestSourcesPerBackend(t *testing.T) {
	gl, err := Sources(config.BackendWebGL)
	require.NoError(t, err)
	assert.Contains(t, gl.Vertex, "#version 300 es")
	assert.Contains(t, gl.Vertex, "layout (location = 1) in float inTextureIndex;")
	assert.Contains(t, gl.Fragment, "uniform sampler2D ourTexture;")

	core, err := Sources(config.BackendOpenGL)
	require.NoError(t, err)
	assert.Contains(t, core.Vertex, "#version 410 core")
	assert.Contains(t, core.Fragment, "#version 410 core")

	wgsl, err := Sources(config.BackendWebGPU)
	require.NoError(t, err)
	assert.Contains(t, wgsl.Vertex, "@vertex")
	assert.Contains(t, wgsl.Vertex, "@location(1) inTextureIndex: f32")
	assert.Contains(t, wgsl.Fragment, "@fragment")
	assert.Contains(t, wgsl.Fragment, "texture_2d<f32>")
}

func TestSourcesUnknownBackend(t *testing.T) {
	_, err := Sources(config.Backend("metal"))
	assert.ErrorContains(t, err, "metal")
}
