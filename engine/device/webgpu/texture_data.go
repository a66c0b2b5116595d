//go:build !js

package webgpu

import (
	"image"
	"math/bits"

	"golang.org/x/image/draw"
)

// mipLevelCount returns the length of the full mip chain for a width x height texture.
func mipLevelCount(width, height int) uint32 {
	largest := max(width, height, 1)
	return uint32(bits.Len(uint(largest)))
}

// rgbToRGBA expands tightly packed RGB8 pixels into an opaque RGBA image, since WebGPU has no
// three-channel 8-bit format. Missing trailing pixels stay black.
func rgbToRGBA(width, height int, pixels []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	n := width * height
	for i := 0; i < n; i++ {
		dst := img.Pix[i*4 : i*4+4]
		if src := i * 3; src+2 < len(pixels) {
			dst[0], dst[1], dst[2] = pixels[src], pixels[src+1], pixels[src+2]
		}
		dst[3] = 0xFF
	}
	return img
}

// mipChain downsamples base into levels-1 successively halved images with bilinear filtering.
// The returned slice starts with base itself.
func mipChain(base *image.RGBA, levels uint32) []*image.RGBA {
	chain := make([]*image.RGBA, 0, levels)
	chain = append(chain, base)
	for level := uint32(1); level < levels; level++ {
		prev := chain[level-1]
		w := max(base.Bounds().Dx()>>level, 1)
		h := max(base.Bounds().Dy()>>level, 1)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(next, next.Bounds(), prev, prev.Bounds(), draw.Src, nil)
		chain = append(chain, next)
	}
	return chain
}
