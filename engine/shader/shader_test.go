package shader_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
	"github.com/Carmen-Shannon/oxy-triangle/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-triangle/engine/shader"
)

const (
	vertexSource   = "#version 300 es\nvoid main() {}\n"
	fragmentSource = "#version 300 es\nvoid main() {}\n"
)

func quietBuilder(dev device.Device) shader.Builder {
	return shader.NewBuilder(dev,
		shader.WithLabel("test"),
		shader.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestBuildValidSources(t *testing.T) {
	rec := devicetest.NewRecorder()

	p, err := quietBuilder(rec).Build(vertexSource, fragmentSource)

	require.NoError(t, err)
	assert.NotEqual(t, device.NoProgram, p)
	assert.Equal(t, 2, rec.Count("CompileShader"))
	assert.Equal(t, 2, rec.Count("AttachShader"))
	assert.Equal(t, 1, rec.Count("LinkProgram"))
}

func TestBuildVertexCompileFailure(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.CompileFailures[device.StageVertex] = "ERROR: 0:1: 'foo' : syntax error"

	p, err := quietBuilder(rec).Build("foo", fragmentSource)

	assert.Equal(t, device.NoProgram, p)
	var ce *shader.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "vertex", ce.Stage.String())
	assert.Contains(t, ce.Log, "syntax error")
	assert.Zero(t, rec.Count("LinkProgram"), "link must not run after a compile failure")
}

func TestBuildCompilesBothStagesBeforeFailing(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.CompileFailures[device.StageVertex] = "bad vertex"
	rec.CompileFailures[device.StageFragment] = "bad fragment"

	_, err := quietBuilder(rec).Build("x", "y")

	require.Error(t, err)
	assert.Equal(t, 2, rec.Count("CompileShader"))
	assert.Contains(t, err.Error(), "bad vertex")
	assert.Contains(t, err.Error(), "bad fragment")
}

func TestBuildFragmentCompileFailure(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.CompileFailures[device.StageFragment] = "bad fragment"

	_, err := quietBuilder(rec).Build(vertexSource, "y")

	var ce *shader.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, device.StageFragment, ce.Stage)
}

func TestBuildLinkFailure(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.LinkFailure = "varying textureIndex not written by vertex shader"

	p, err := quietBuilder(rec).Build(vertexSource, fragmentSource)

	assert.Equal(t, device.NoProgram, p)
	var le *shader.LinkError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, rec.LinkFailure, le.Log)

	var ce *shader.CompileError
	assert.False(t, errors.As(err, &ce))
}

func TestLogsAreBounded(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.CompileFailures[device.StageVertex] = strings.Repeat("e", shader.MaxInfoLogLength*2) + "\x00"

	_, err := quietBuilder(rec).Build("x", fragmentSource)

	var ce *shader.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Len(t, ce.Log, shader.MaxInfoLogLength)
}

func TestLoadSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.vert")
	require.NoError(t, os.WriteFile(path, []byte(vertexSource), 0o644))

	src, err := shader.LoadSource(path)
	require.NoError(t, err)
	assert.Equal(t, vertexSource, src)

	_, err = shader.LoadSource(filepath.Join(dir, "missing.vert"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildValidSourcesLogsNoWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := devicetest.NewRecorder()

	_, err := shader.NewBuilder(rec, shader.WithLogger(logger)).Build(vertexSource, fragmentSource)

	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "level=WARN")
	assert.NotContains(t, buf.String(), "level=ERROR")
}
