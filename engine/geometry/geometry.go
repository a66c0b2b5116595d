package geometry

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

const (
	// VertexCount is the number of vertices in the triangle.
	VertexCount = 3

	// FloatsPerVertex is the interleaved float count per vertex: x, y, texture coordinate.
	FloatsPerVertex = 3
)

var (
	// ErrAlreadyUploaded is returned by a second Upload on the same buffer.
	ErrAlreadyUploaded = errors.New("geometry already uploaded")

	// ErrNotUploaded is returned by Bind before Upload succeeded.
	ErrNotUploaded = errors.New("geometry not uploaded")
)

// Vertex is one interleaved vertex: a position in normalized device coordinates followed by a
// one-dimensional texture coordinate.
type Vertex struct {
	Position [2]float32
	TexCoord float32
}

// Attribute describes where one vertex input lives inside the interleaved buffer.
type Attribute struct {
	Name     string
	Location uint32
	Size     int
	Offset   int
}

// Layout is the vertex format metadata shared by every backend.
type Layout struct {
	Stride   int
	Position Attribute
	TexCoord Attribute
}

// DefaultLayout matches Vertex: 12 byte stride, position at offset 0, texture coordinate at offset 8.
var DefaultLayout = Layout{
	Stride:   int(unsafe.Sizeof(Vertex{})),
	Position: Attribute{Name: "position", Location: 0, Size: 2, Offset: int(unsafe.Offsetof(Vertex{}.Position))},
	TexCoord: Attribute{Name: "inTextureIndex", Location: 1, Size: 1, Offset: int(unsafe.Offsetof(Vertex{}.TexCoord))},
}

// Triangle returns the default triangle. Vertex i samples texel i of a texture textureWidth texels
// wide, so the coordinates are 0, 1/width and 2/width.
//
// Parameters:
//   - textureWidth: width of the sampled texture in texels (values below 1 are treated as 1)
//
// Returns:
//   - [VertexCount]Vertex: the three vertices in counter-clockwise order
func Triangle(textureWidth int) [VertexCount]Vertex {
	w := float32(max(textureWidth, 1))
	return [VertexCount]Vertex{
		{Position: [2]float32{0.0, 0.5}, TexCoord: 0 / w},
		{Position: [2]float32{-0.5, -0.5}, TexCoord: 1 / w},
		{Position: [2]float32{0.5, -0.5}, TexCoord: 2 / w},
	}
}

// Interleave flattens vertices into the float layout uploaded to the device.
func Interleave(vertices [VertexCount]Vertex) []float32 {
	out := make([]float32, 0, VertexCount*FloatsPerVertex)
	for _, v := range vertices {
		out = append(out, v.Position[0], v.Position[1], v.TexCoord)
	}
	return out
}

// Buffer owns the static triangle vertex data and its device buffer.
type Buffer interface {
	// Upload creates the device buffer and writes the vertex data once.
	//
	// Parameters:
	//   - dev: the device to upload to
	//
	// Returns:
	//   - error: ErrAlreadyUploaded if called again, nil otherwise
	Upload(dev device.Device) error

	// Bind binds the buffer and configures and enables both vertex inputs for program.
	// With LocationsByName the input locations are resolved on the first call and cached.
	//
	// Parameters:
	//   - dev: the device to bind on
	//   - program: the program the inputs are resolved against
	//
	// Returns:
	//   - error: ErrNotUploaded, or an error naming an input the program does not declare
	Bind(dev device.Device, program device.Program) error

	// Handle returns the device buffer, or device.NoBuffer before Upload.
	Handle() device.Buffer

	// Uploaded reports whether Upload has succeeded.
	Uploaded() bool

	// Vertices returns the vertex data.
	Vertices() [VertexCount]Vertex

	// Layout returns the attribute layout, including resolved locations once bound.
	Layout() Layout
}

type buffer struct {
	vertices [VertexCount]Vertex
	layout   Layout
	strategy LocationStrategy

	handle   device.Buffer
	uploaded bool

	resolved   bool
	resolveErr error
	resolvedIn device.Program
}

var _ Buffer = &buffer{}

// NewBuffer creates a Buffer holding the default triangle with fixed locations.
//
// Parameters:
//   - options: functional options applied in order
//
// Returns:
//   - Buffer: the new, not yet uploaded buffer
func NewBuffer(options ...BufferBuilderOption) Buffer {
	b := &buffer{
		vertices: Triangle(2),
		layout:   DefaultLayout,
		strategy: LocationsFixed,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *buffer) Upload(dev device.Device) error {
	if b.uploaded {
		return ErrAlreadyUploaded
	}
	b.handle = dev.CreateBuffer()
	dev.BindBuffer(b.handle)
	dev.BufferData(Interleave(b.vertices))
	b.uploaded = true
	return nil
}

func (b *buffer) Bind(dev device.Device, program device.Program) error {
	if !b.uploaded {
		return ErrNotUploaded
	}
	if err := b.resolve(dev, program); err != nil {
		return err
	}

	dev.BindBuffer(b.handle)
	for _, a := range []Attribute{b.layout.Position, b.layout.TexCoord} {
		dev.VertexAttribPointer(a.Location, a.Size, b.layout.Stride, a.Offset)
		dev.EnableVertexAttribArray(a.Location)
	}
	return nil
}

// resolve looks the attribute locations up once per program when the strategy asks for it.
func (b *buffer) resolve(dev device.Device, program device.Program) error {
	if b.strategy != LocationsByName {
		return nil
	}
	if b.resolved && b.resolvedIn == program {
		return b.resolveErr
	}
	b.resolved, b.resolvedIn, b.resolveErr = true, program, nil

	for _, a := range []*Attribute{&b.layout.Position, &b.layout.TexCoord} {
		loc := dev.AttribLocation(program, a.Name)
		if loc < 0 {
			b.resolveErr = fmt.Errorf("vertex input %q not found in program %d", a.Name, program)
			return b.resolveErr
		}
		a.Location = uint32(loc)
	}
	return nil
}

func (b *buffer) Handle() device.Buffer {
	return b.handle
}

func (b *buffer) Uploaded() bool {
	return b.uploaded
}

func (b *buffer) Vertices() [VertexCount]Vertex {
	return b.vertices
}

func (b *buffer) Layout() Layout {
	return b.layout
}
