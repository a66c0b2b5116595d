package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
	"github.com/Carmen-Shannon/oxy-triangle/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/shader"
)

func TestDefaultLayout(t *testing.T) {
	l := geometry.DefaultLayout
	assert.Equal(t, 12, l.Stride)
	assert.Equal(t, 0, l.Position.Offset)
	assert.Equal(t, 2, l.Position.Size)
	assert.Equal(t, 8, l.TexCoord.Offset)
	assert.Equal(t, 1, l.TexCoord.Size)
}

func TestTriangleTexCoords(t *testing.T) {
	tri := geometry.Triangle(2)
	assert.Equal(t, [2]float32{0, 0.5}, tri[0].Position)
	assert.Equal(t, [2]float32{-0.5, -0.5}, tri[1].Position)
	assert.Equal(t, [2]float32{0.5, -0.5}, tri[2].Position)
	assert.Equal(t, []float32{0, 0.5, 1}, []float32{tri[0].TexCoord, tri[1].TexCoord, tri[2].TexCoord})

	for _, v := range tri {
		assert.GreaterOrEqual(t, v.TexCoord, float32(0))
		assert.LessOrEqual(t, v.TexCoord, float32(1))
	}
}

func TestUploadOnce(t *testing.T) {
	rec := devicetest.NewRecorder()
	buf := geometry.NewBuffer()

	require.NoError(t, buf.Upload(rec))
	assert.ErrorIs(t, buf.Upload(rec), geometry.ErrAlreadyUploaded)

	assert.Equal(t, 1, rec.Count("CreateBuffer"))
	assert.Equal(t, 1, rec.Count("BufferData"))
	assert.Equal(t, geometry.Interleave(geometry.Triangle(2)), rec.BufferContents(buf.Handle()))
	assert.Len(t, rec.BufferContents(buf.Handle()), geometry.VertexCount*geometry.FloatsPerVertex)
}

func TestBindBeforeUpload(t *testing.T) {
	rec := devicetest.NewRecorder()
	assert.ErrorIs(t, geometry.NewBuffer().Bind(rec, device.Program(1)), geometry.ErrNotUploaded)
}

func TestBindFixedLocations(t *testing.T) {
	rec := devicetest.NewRecorder()
	buf := geometry.NewBuffer()
	require.NoError(t, buf.Upload(rec))

	require.NoError(t, buf.Bind(rec, device.Program(7)))

	pos, ok := rec.Attrib(0)
	require.True(t, ok)
	assert.Equal(t, devicetest.AttribPointer{Size: 2, Stride: 12, Offset: 0, Enabled: true}, pos)
	tex, ok := rec.Attrib(1)
	require.True(t, ok)
	assert.Equal(t, devicetest.AttribPointer{Size: 1, Stride: 12, Offset: 8, Enabled: true}, tex)
	assert.Zero(t, rec.Count("AttribLocation"))
	assert.Equal(t, buf.Handle(), rec.BoundBuffer())
}

func TestBindByName(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.Attributes = map[string]int{"position": 3, "inTextureIndex": 5}
	p, err := shader.Build(rec, "v", "f")
	require.NoError(t, err)

	buf := geometry.NewBuffer(geometry.WithLocationStrategy(geometry.LocationsByName))
	require.NoError(t, buf.Upload(rec))
	require.NoError(t, buf.Bind(rec, p))
	require.NoError(t, buf.Bind(rec, p))

	assert.Equal(t, 2, rec.Count("AttribLocation"), "locations are resolved once per program")
	assert.Equal(t, uint32(3), buf.Layout().Position.Location)
	assert.Equal(t, uint32(5), buf.Layout().TexCoord.Location)
	a, ok := rec.Attrib(5)
	require.True(t, ok)
	assert.Equal(t, 8, a.Offset)
}

func TestBindByNameMissingInput(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.Attributes = map[string]int{"position": 0}
	p, err := shader.Build(rec, "v", "f")
	require.NoError(t, err)

	buf := geometry.NewBuffer(geometry.WithLocationStrategy(geometry.LocationsByName))
	require.NoError(t, buf.Upload(rec))

	err = buf.Bind(rec, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inTextureIndex")
	assert.Zero(t, rec.Count("VertexAttribPointer"))
}

func TestParseLocationStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want geometry.LocationStrategy
		err  bool
	}{
		{"", geometry.LocationsFixed, false},
		{"fixed", geometry.LocationsFixed, false},
		{"byName", geometry.LocationsByName, false},
		{"BYNAME", geometry.LocationsByName, false},
		{"random", geometry.LocationsFixed, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := geometry.ParseLocationStrategy(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
