package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "oxy-triangle", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, BackendOpenGL, cfg.Backend)
	assert.Equal(t, device.DebugDefault, cfg.Debug.CheckErrors)
	assert.True(t, cfg.Texture.Animate)
	assert.Equal(t, "fixed", cfg.Geometry.Locations)
	assert.False(t, cfg.Program.AllowUnlinkedDraw)
	assert.NoError(t, cfg.Validate())
}

func TestParseYAMLKeepsDefaults(t *testing.T) {
	data := []byte(`
backend: WebGPU
window:
  title: demo
program:
  abortOnFailure: true
`)
	cfg, err := Parse(data, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, BackendWebGPU, cfg.Backend)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.True(t, cfg.Program.AbortOnFailure)
	assert.True(t, cfg.Texture.Animate, "unset keys keep their defaults")
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
backend = "webgl"
profiling = true

[window]
width = 640
height = 480

[geometry]
locations = "byName"

[input]
async = true
`)
	cfg, err := Parse(data, FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, BackendWebGL, cfg.Backend)
	assert.True(t, cfg.Profiling)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, "oxy-triangle", cfg.Window.Title)
	assert.Equal(t, "byName", cfg.Geometry.Locations)
	assert.True(t, cfg.Input.Async)
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := Parse([]byte("backend: vulkan\n"), FormatYAML)
	assert.ErrorContains(t, err, "unsupported backend")

	_, err = Parse([]byte("geometry:\n  locations: random\n"), FormatYAML)
	assert.ErrorContains(t, err, "location strategy")

	_, err = Parse([]byte("window = ["), FormatTOML)
	assert.ErrorContains(t, err, "parse toml config")

	_, err = Parse(nil, Format("ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("engine.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFor("dir/engine.toml")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	_, err = FormatFor("engine.json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteThenLoad(t *testing.T) {
	for _, name := range []string{"engine.yaml", "engine.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := Default()
			want.Backend = BackendWebGPU
			want.Shaders.Vertex = "shaders/tri.vert.wgsl"
			want.Debug.CheckErrors = true

			require.NoError(t, Write(path, want))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
