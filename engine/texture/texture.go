package texture

import (
	"math"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

const (
	// Width and Height are the texture dimensions in texels.
	Width  = 2
	Height = 1

	// Channels is the number of 8-bit channels per texel (RGB).
	Channels = 3

	// RowBytes is the size of one tightly packed row.
	RowBytes = Width * Channels

	// Speed is how many channel steps the level advances per second of elapsed time.
	Speed = 100.0

	// period is the length of one full up-and-down sweep of the level, in channel steps.
	period = 2 * 255.0
)

// Level returns the oscillating channel level for elapsed seconds. It rises from 0 to 255 and falls
// back to 0 every period/Speed seconds. Negative or non-finite inputs give 0.
func Level(elapsed float64) uint8 {
	t := elapsed * Speed
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return 0
	}
	m := math.Mod(t, period)
	level := 255 - math.Abs(m-255)
	return uint8(math.Round(min(max(level, 0), 255)))
}

// Fill writes the row for elapsed seconds into dst[:RowBytes]. Texel 0 goes from blue to red and
// texel 1 mirrors it, so at elapsed 0 the row is blue then red.
//
// Parameters:
//   - dst: destination with at least RowBytes bytes
//   - elapsed: accumulated elapsed time in seconds
func Fill(dst []byte, elapsed float64) {
	_ = dst[RowBytes-1]
	l := Level(elapsed)
	dst[0], dst[1], dst[2] = l, 0, 255-l
	dst[3], dst[4], dst[5] = 255-l, 0, l
}

// Pixels returns a new row for elapsed seconds.
func Pixels(elapsed float64) []byte {
	row := make([]byte, RowBytes)
	Fill(row, elapsed)
	return row
}

// Generator owns the animated texture object and regenerates its contents each frame.
type Generator interface {
	// Init creates the texture, sets its filter and uploads the row for elapsed 0.
	// The texture is left bound.
	//
	// Parameters:
	//   - dev: the device to create the texture on
	Init(dev device.Device)

	// Upload regenerates the row for elapsed seconds into the bound texture and rebuilds its mipmaps.
	//
	// Parameters:
	//   - dev: the device the texture is bound on
	//   - elapsed: accumulated elapsed time in seconds
	Upload(dev device.Device, elapsed float64)

	// Handle returns the texture object, or device.NoTexture before Init.
	Handle() device.Texture

	// Animated reports whether Upload should run every frame.
	Animated() bool

	// Row returns the last uploaded row.
	Row() []byte
}

type generator struct {
	handle   device.Texture
	filter   device.Filter
	animated bool
	row      [RowBytes]byte
}

var _ Generator = &generator{}

// NewGenerator creates an animated Generator with nearest magnification.
//
// Parameters:
//   - options: functional options applied in order
//
// Returns:
//   - Generator: the new generator
func NewGenerator(options ...GeneratorBuilderOption) Generator {
	g := &generator{
		filter:   device.FilterNearest,
		animated: true,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *generator) Init(dev device.Device) {
	g.handle = dev.CreateTexture()
	dev.BindTexture(g.handle)
	dev.TexFilter(g.filter)
	g.Upload(dev, 0)
}

func (g *generator) Upload(dev device.Device, elapsed float64) {
	Fill(g.row[:], elapsed)
	dev.TexImage2D(Width, Height, g.row[:])
	dev.GenerateMipmap()
}

func (g *generator) Handle() device.Texture {
	return g.handle
}

func (g *generator) Animated() bool {
	return g.animated
}

func (g *generator) Row() []byte {
	out := g.row
	return out[:]
}
