//go:build !js

package webgpu

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMipLevelCount(t *testing.T) {
	assert.Equal(t, uint32(2), mipLevelCount(2, 1))
	assert.Equal(t, uint32(1), mipLevelCount(1, 1))
	assert.Equal(t, uint32(9), mipLevelCount(256, 64))
	assert.Equal(t, uint32(1), mipLevelCount(0, 0))
}

func TestRGBToRGBA(t *testing.T) {
	img := rgbToRGBA(2, 1, []byte{1, 2, 3, 4, 5, 6})
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	assert.Equal(t, []byte{1, 2, 3, 0xFF, 4, 5, 6, 0xFF}, img.Pix)
}

func TestRGBToRGBAShortInput(t *testing.T) {
	img := rgbToRGBA(2, 1, []byte{9, 9, 9})
	assert.Equal(t, []byte{9, 9, 9, 0xFF, 0, 0, 0, 0xFF}, img.Pix)
}

func TestMipChainHalvesEachLevel(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 8, 2))
	chain := mipChain(base, mipLevelCount(8, 2))

	require.Len(t, chain, 4)
	assert.Same(t, base, chain[0])
	for i, want := range []image.Rectangle{
		image.Rect(0, 0, 8, 2),
		image.Rect(0, 0, 4, 1),
		image.Rect(0, 0, 2, 1),
		image.Rect(0, 0, 1, 1),
	} {
		assert.Equal(t, want, chain[i].Bounds(), "level %d", i)
	}
}

func TestMipChainOfUniformImageStaysUniform(t *testing.T) {
	base := rgbToRGBA(2, 1, []byte{0, 0, 255, 0, 0, 255})
	chain := mipChain(base, 2)

	require.Len(t, chain, 2)
	assert.Equal(t, []byte{0, 0, 255, 0xFF}, chain[1].Pix)
}
