package frame_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
	"github.com/Carmen-Shannon/oxy-triangle/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-triangle/engine/frame"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/shader"
	"github.com/Carmen-Shannon/oxy-triangle/engine/texture"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newDriver(t *testing.T, rec *devicetest.Recorder, options ...frame.DriverBuilderOption) (frame.Driver, geometry.Buffer, texture.Generator) {
	t.Helper()
	p, err := shader.NewBuilder(rec, shader.WithLogger(quiet)).Build("v", "f")
	if rec.LinkFailure == "" && len(rec.CompileFailures) == 0 {
		require.NoError(t, err)
	}
	geom := geometry.NewBuffer()
	tex := texture.NewGenerator()
	options = append([]frame.DriverBuilderOption{frame.WithLogger(quiet)}, options...)
	return frame.NewDriver(rec, p, geom, tex, options...), geom, tex
}

func TestFirstTickInitializes(t *testing.T) {
	rec := devicetest.NewRecorder()
	d, geom, tex := newDriver(t, rec)
	assert.Equal(t, frame.StateUninitialized, d.State())

	d.Tick(5 * time.Second)

	assert.Equal(t, frame.StateRunning, d.State())
	ctx := d.Context()
	assert.Equal(t, 5*time.Second, ctx.Last)
	assert.Zero(t, ctx.Elapsed, "first frame has zero delta")
	assert.Equal(t, geom.Handle(), ctx.Buffer)
	assert.Equal(t, tex.Handle(), ctx.Texture)
	assert.Equal(t, 1, rec.Count("DrawArrays"))
}

func TestSingleTickElapsed(t *testing.T) {
	rec := devicetest.NewRecorder()
	d, _, _ := newDriver(t, rec)
	d.Tick(0)
	rec.ResetCalls()

	d.Tick(16 * time.Millisecond)

	assert.InDelta(t, 0.016, d.Context().Elapsed.Seconds(), 1e-9)
	assert.Equal(t, 1, rec.Count("DrawArrays"))
	call, ok := rec.Last("DrawArrays")
	require.True(t, ok)
	assert.Equal(t, []any{device.PrimitiveTriangles, 0, 3}, call.Args)
}

func TestTickOrder(t *testing.T) {
	rec := devicetest.NewRecorder()
	d, _, _ := newDriver(t, rec)
	d.Tick(0)
	rec.ResetCalls()

	d.Tick(time.Second)

	assert.Equal(t, []string{
		"Clear",
		"UseProgram",
		"BindBuffer",
		"VertexAttribPointer", "EnableVertexAttribArray",
		"VertexAttribPointer", "EnableVertexAttribArray",
		"BindTexture",
		"TexImage2D", "GenerateMipmap",
		"DrawArrays",
	}, rec.Names())
	_, _, px := rec.TextureImage(d.Context().Texture)
	assert.Equal(t, texture.Pixels(1), px)
}

func TestElapsedMonotonic(t *testing.T) {
	rec := devicetest.NewRecorder()
	d, _, _ := newDriver(t, rec)

	stamps := []time.Duration{
		100 * time.Millisecond,
		116 * time.Millisecond,
		110 * time.Millisecond, // host clock stepped backwards
		150 * time.Millisecond,
		150 * time.Millisecond,
	}
	var prev time.Duration
	for _, now := range stamps {
		d.Tick(now)
		s := d.Stats()
		assert.GreaterOrEqual(t, s.LastDelta, time.Duration(0))
		assert.GreaterOrEqual(t, s.Elapsed, prev)
		prev = s.Elapsed
	}
	assert.Equal(t, 56*time.Millisecond, d.Context().Elapsed)
	assert.Equal(t, uint64(len(stamps)), d.Stats().Frames)
	assert.Equal(t, uint64(len(stamps)), d.Stats().Draws)
}

func TestGeometryUploadedOnce(t *testing.T) {
	rec := devicetest.NewRecorder()
	d, _, _ := newDriver(t, rec)

	for i := range 10 {
		d.Tick(time.Duration(i) * 16 * time.Millisecond)
	}

	assert.Equal(t, 1, rec.Count("BufferData"))
	assert.Equal(t, 1, rec.Count("CreateBuffer"))
	assert.Equal(t, 1, rec.Count("CreateTexture"))
	assert.Equal(t, 10, rec.Count("DrawArrays"))
}

func TestPreUploadedGeometryIsKept(t *testing.T) {
	rec := devicetest.NewRecorder()
	p, err := shader.Build(rec, "v", "f")
	require.NoError(t, err)
	geom := geometry.NewBuffer()
	require.NoError(t, geom.Upload(rec))

	d := frame.NewDriver(rec, p, geom, texture.NewGenerator(), frame.WithLogger(quiet))
	d.Tick(0)

	assert.Equal(t, 1, rec.Count("BufferData"))
	assert.Equal(t, 1, rec.Count("DrawArrays"))
}

func TestLinkFailureBlocksDraw(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.LinkFailure = "link failed"
	d, _, _ := newDriver(t, rec)

	d.Tick(0)
	d.Tick(16 * time.Millisecond)

	assert.Equal(t, device.NoProgram, d.Context().Program)
	assert.Equal(t, 2, rec.Count("Clear"))
	assert.Zero(t, rec.Count("DrawArrays"))
	assert.Zero(t, rec.Count("UseProgram"))
	assert.Equal(t, 16*time.Millisecond, d.Context().Elapsed, "time still advances while degraded")
}

func TestUnlinkedDrawWhenAllowed(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.LinkFailure = "link failed"
	d, _, _ := newDriver(t, rec, frame.WithUnlinkedDraw(true))

	d.Tick(0)

	assert.Equal(t, 1, rec.Count("DrawArrays"))
	assert.Equal(t, device.NoProgram, rec.CurrentProgram())
}

func TestBindFailureDegrades(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.Attributes = map[string]int{}
	p, err := shader.Build(rec, "v", "f")
	require.NoError(t, err)
	geom := geometry.NewBuffer(geometry.WithLocationStrategy(geometry.LocationsByName))
	d := frame.NewDriver(rec, p, geom, texture.NewGenerator(), frame.WithLogger(quiet))

	d.Tick(0)
	d.Tick(time.Millisecond)

	assert.Zero(t, rec.Count("DrawArrays"))
	assert.Equal(t, 2, rec.Count("Clear"))
	assert.Equal(t, uint64(2), d.Stats().Frames)
}

func TestStaticTexture(t *testing.T) {
	rec := devicetest.NewRecorder()
	p, err := shader.Build(rec, "v", "f")
	require.NoError(t, err)
	d := frame.NewDriver(rec, p, geometry.NewBuffer(), texture.NewGenerator(texture.WithAnimation(false)), frame.WithLogger(quiet))

	d.Tick(0)
	d.Tick(3 * time.Second)

	assert.Equal(t, 1, rec.Count("TexImage2D"), "static texture is only uploaded during init")
	_, _, px := rec.TextureImage(d.Context().Texture)
	assert.Equal(t, texture.Pixels(0), px)
}

func TestClearColorApplied(t *testing.T) {
	rec := devicetest.NewRecorder()
	d, _, _ := newDriver(t, rec, frame.WithClearColor(0.1, 0.2, 0.3, 1))

	d.Tick(0)

	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, rec.ClearColorValue())
}

func TestClocks(t *testing.T) {
	c := frame.NewMonotonicClock()
	a := c.Now()
	b := c.Now()
	assert.GreaterOrEqual(t, b, a)

	fixed := frame.ClockFunc(func() time.Duration { return 42 * time.Millisecond })
	assert.Equal(t, 42*time.Millisecond, fixed.Now())
}
