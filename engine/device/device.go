package device

import "fmt"

// Shader is an opaque handle to a single compiled shader stage. The zero value is never a valid shader.
type Shader uint32

// Program is an opaque handle to a linked shader program. The zero value is never a valid program.
type Program uint32

// Buffer is an opaque handle to a vertex buffer. The zero value is never a valid buffer.
type Buffer uint32

// Texture is an opaque handle to a 2D texture. The zero value is never a valid texture.
type Texture uint32

const (
	NoShader  Shader  = 0
	NoProgram Program = 0
	NoBuffer  Buffer  = 0
	NoTexture Texture = 0
)

// ShaderStage identifies which pipeline stage a shader belongs to.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// String returns the lowercase stage name used in diagnostics ("vertex" or "fragment").
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Primitive is the topology used by DrawArrays.
type Primitive int

const (
	PrimitiveTriangles Primitive = iota
)

// Filter is a texture sampling filter.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// ErrorCode is a device error flag as reported by Device.Error. The values mirror the GL error enums.
type ErrorCode uint32

const (
	NoError                     ErrorCode = 0
	InvalidEnum                 ErrorCode = 0x0500
	InvalidValue                ErrorCode = 0x0501
	InvalidOperation            ErrorCode = 0x0502
	OutOfMemory                 ErrorCode = 0x0505
	InvalidFramebufferOperation ErrorCode = 0x0506
)

func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "NO_ERROR"
	case InvalidEnum:
		return "INVALID_ENUM"
	case InvalidValue:
		return "INVALID_VALUE"
	case InvalidOperation:
		return "INVALID_OPERATION"
	case OutOfMemory:
		return "OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("0x%04X", uint32(c))
	}
}

// Device is the graphics capability surface the render core is written against.
// It follows the shape of a GL-style state machine: objects are created and bound, and later calls
// operate on whatever is currently bound. Implementations exist for WebGL2, desktop OpenGL and WebGPU,
// and an in-memory recorder is used by tests.
//
// None of the methods return errors. Failures are surfaced the way the underlying API surfaces them:
// compile and link status through ShaderCompiled/ProgramLinked and their info logs, and everything else
// through the sticky flag returned by Error.
type Device interface {
	// CreateShader allocates a shader object for the given stage.
	//
	// Parameters:
	//   - stage: the pipeline stage the shader will be compiled for
	//
	// Returns:
	//   - Shader: the new shader handle, or NoShader if allocation failed
	CreateShader(stage ShaderStage) Shader

	// ShaderSource replaces the source text of a shader object.
	ShaderSource(s Shader, source string)

	// CompileShader compiles the source previously attached with ShaderSource.
	CompileShader(s Shader)

	// ShaderCompiled reports whether the last CompileShader call on s succeeded.
	ShaderCompiled(s Shader) bool

	// ShaderInfoLog returns the compiler diagnostics for s. The length is backend-defined.
	ShaderInfoLog(s Shader) string

	// CreateProgram allocates an empty program object.
	CreateProgram() Program

	// AttachShader attaches a compiled stage to a program prior to linking.
	AttachShader(p Program, s Shader)

	// LinkProgram links all attached stages of p.
	LinkProgram(p Program)

	// ProgramLinked reports whether the last LinkProgram call on p succeeded.
	ProgramLinked(p Program) bool

	// ProgramInfoLog returns the linker diagnostics for p.
	ProgramInfoLog(p Program) string

	// UseProgram selects p for subsequent draws.
	UseProgram(p Program)

	// AttribLocation looks up the location of a named vertex input of a linked program.
	//
	// Parameters:
	//   - p: the linked program
	//   - name: the vertex input variable name
	//
	// Returns:
	//   - int: the location, or -1 if the program has no such input
	AttribLocation(p Program, name string) int

	// CreateBuffer allocates a vertex buffer object.
	CreateBuffer() Buffer

	// BindBuffer makes b the current vertex buffer.
	BindBuffer(b Buffer)

	// BufferData uploads data into the currently bound buffer as static draw data.
	BufferData(data []float32)

	// VertexAttribPointer describes how the vertex input at index is read from the bound buffer.
	//
	// Parameters:
	//   - index: the attribute location
	//   - size: number of float32 components (1-4)
	//   - stride: byte distance between consecutive vertices
	//   - offset: byte offset of the first component within a vertex
	VertexAttribPointer(index uint32, size, stride, offset int)

	// EnableVertexAttribArray enables the vertex input at index for drawing.
	EnableVertexAttribArray(index uint32)

	// CreateTexture allocates a 2D texture object.
	CreateTexture() Texture

	// BindTexture makes t the current texture on unit 0.
	BindTexture(t Texture)

	// TexFilter sets the magnification filter of the bound texture.
	TexFilter(mag Filter)

	// TexImage2D replaces level 0 of the bound texture with tightly packed 8-bit RGB pixels.
	//
	// Parameters:
	//   - width: image width in pixels
	//   - height: image height in pixels
	//   - pixels: width*height*3 bytes, rows tightly packed
	TexImage2D(width, height int, pixels []byte)

	// GenerateMipmap rebuilds all mip levels of the bound texture from level 0.
	GenerateMipmap()

	// ClearColor sets the color used by Clear.
	ClearColor(r, g, b, a float32)

	// Clear clears the color target of the current frame.
	Clear()

	// DrawArrays draws count vertices starting at first from the bound buffer with the current program.
	DrawArrays(mode Primitive, first, count int)

	// Error returns and clears the oldest pending error flag, or NoError.
	Error() ErrorCode
}

// Presenter is implemented by devices that must be told explicitly when a frame is complete.
// WebGL presents implicitly when the animation frame callback returns and does not implement it.
type Presenter interface {
	Present()
}

// Resizer is implemented by devices whose drawable must be reconfigured when the host surface changes size.
type Resizer interface {
	Resize(width, height int)
}
