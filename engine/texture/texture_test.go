package texture_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
	"github.com/Carmen-Shannon/oxy-triangle/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-triangle/engine/texture"
)

func TestPixelsAtZero(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 255, 255, 0, 0}, texture.Pixels(0))
}

func TestPixelsDeterministic(t *testing.T) {
	for _, e := range []float64{0, 0.016, 1.3, 2.55, 7.77, 1234.5} {
		assert.Equal(t, texture.Pixels(e), texture.Pixels(e), "elapsed %v", e)
	}
}

func TestLevelSweep(t *testing.T) {
	assert.Equal(t, uint8(0), texture.Level(0))
	assert.Equal(t, uint8(128), texture.Level(1.28))
	assert.Equal(t, uint8(255), texture.Level(2.55))
	assert.Equal(t, uint8(0), texture.Level(5.1))
	assert.Equal(t, texture.Level(1), texture.Level(1+5.1))
}

func TestChannelsInRange(t *testing.T) {
	inputs := []float64{
		-1, 1e-9, 0.5, 3.3, 1e6, 1e12, 1e300, math.MaxFloat64,
		math.Inf(1), math.Inf(-1), math.NaN(),
	}
	for _, e := range inputs {
		row := texture.Pixels(e)
		require.Len(t, row, texture.RowBytes)
		// Every texel pair sums to 255 per animated channel and green stays off.
		assert.Equal(t, 255, int(row[0])+int(row[2]), "elapsed %v", e)
		assert.Equal(t, 255, int(row[3])+int(row[5]), "elapsed %v", e)
		assert.Zero(t, row[1])
		assert.Zero(t, row[4])
	}
	assert.Equal(t, texture.Pixels(0), texture.Pixels(math.NaN()))
	assert.Equal(t, texture.Pixels(0), texture.Pixels(-3))
}

func TestFillShortBufferPanics(t *testing.T) {
	assert.Panics(t, func() { texture.Fill(make([]byte, 5), 0) })
}

func TestGeneratorInit(t *testing.T) {
	rec := devicetest.NewRecorder()
	g := texture.NewGenerator()

	g.Init(rec)

	require.NotEqual(t, device.NoTexture, g.Handle())
	assert.Equal(t, g.Handle(), rec.BoundTexture())
	assert.Equal(t, device.FilterNearest, rec.TextureFilter(g.Handle()))
	w, h, px := rec.TextureImage(g.Handle())
	assert.Equal(t, texture.Width, w)
	assert.Equal(t, texture.Height, h)
	assert.Equal(t, []byte{0, 0, 255, 255, 0, 0}, px)
	assert.Equal(t, 1, rec.Count("GenerateMipmap"))
	assert.True(t, g.Animated())
}

func TestGeneratorUpload(t *testing.T) {
	rec := devicetest.NewRecorder()
	g := texture.NewGenerator(texture.WithFilter(device.FilterLinear), texture.WithAnimation(false))
	g.Init(rec)
	rec.ResetCalls()

	g.Upload(rec, 2.55)

	assert.Equal(t, []string{"TexImage2D", "GenerateMipmap"}, rec.Names())
	_, _, px := rec.TextureImage(g.Handle())
	assert.Equal(t, []byte{255, 0, 0, 0, 0, 255}, px)
	assert.Equal(t, px, g.Row())
	assert.Equal(t, device.FilterLinear, rec.TextureFilter(g.Handle()))
	assert.False(t, g.Animated())
}
