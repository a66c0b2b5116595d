//go:build !js

// Package opengl implements device.Device on an OpenGL 4.1 core profile context.
package opengl

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

// glDevice issues every call on the context current to the calling thread.
type glDevice struct {
	vao    uint32
	swap   func()
	logger *slog.Logger
}

var _ device.Device = &glDevice{}
var _ device.Presenter = &glDevice{}
var _ device.Resizer = &glDevice{}

// New loads the GL entry points for the current context and creates the vertex array object
// the core profile requires before any attribute can be configured.
// A context must be current on the calling thread, e.g. a window created with window.ClientAPIOpenGL.
//
// Parameters:
//   - options: functional options applied in order
//
// Returns:
//   - device.Device: the OpenGL device, which also implements device.Presenter and device.Resizer
//   - error: error if the GL function pointers could not be loaded
func New(options ...DeviceBuilderOption) (device.Device, error) {
	d := &glDevice{
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(d)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	d.logger.Info("opengl device ready", "version", gl.GoStr(gl.GetString(gl.VERSION)), "renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	// Texture rows are 6 bytes, so the default 4-byte row alignment would skew uploads.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	return d, nil
}

func (d *glDevice) CreateShader(stage device.ShaderStage) device.Shader {
	switch stage {
	case device.StageVertex:
		return device.Shader(gl.CreateShader(gl.VERTEX_SHADER))
	case device.StageFragment:
		return device.Shader(gl.CreateShader(gl.FRAGMENT_SHADER))
	default:
		return device.NoShader
	}
}

func (d *glDevice) ShaderSource(s device.Shader, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (d *glDevice) CompileShader(s device.Shader) {
	gl.CompileShader(uint32(s))
}

func (d *glDevice) ShaderCompiled(s device.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (d *glDevice) ShaderInfoLog(s device.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(log))
	return log
}

func (d *glDevice) CreateProgram() device.Program {
	return device.Program(gl.CreateProgram())
}

func (d *glDevice) AttachShader(p device.Program, s device.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (d *glDevice) LinkProgram(p device.Program) {
	gl.LinkProgram(uint32(p))
}

func (d *glDevice) ProgramLinked(p device.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (d *glDevice) ProgramInfoLog(p device.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(log))
	return log
}

func (d *glDevice) UseProgram(p device.Program) {
	gl.UseProgram(uint32(p))
}

func (d *glDevice) AttribLocation(p device.Program, name string) int {
	return int(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *glDevice) CreateBuffer() device.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return device.Buffer(b)
}

func (d *glDevice) BindBuffer(b device.Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
}

func (d *glDevice) BufferData(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *glDevice) VertexAttribPointer(index uint32, size, stride, offset int) {
	gl.VertexAttribPointer(index, int32(size), gl.FLOAT, false, int32(stride), gl.PtrOffset(offset))
}

func (d *glDevice) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *glDevice) CreateTexture() device.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return device.Texture(t)
}

func (d *glDevice) BindTexture(t device.Texture) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (d *glDevice) TexFilter(mag device.Filter) {
	filter := int32(gl.NEAREST)
	if mag == device.FilterLinear {
		filter = gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
}

func (d *glDevice) TexImage2D(width, height int, pixels []byte) {
	if len(pixels) == 0 {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(width), int32(height), 0, gl.RGB, gl.UNSIGNED_BYTE, nil)
		return
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(width), int32(height), 0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

func (d *glDevice) GenerateMipmap() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (d *glDevice) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *glDevice) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *glDevice) DrawArrays(mode device.Primitive, first, count int) {
	if mode != device.PrimitiveTriangles {
		return
	}
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

func (d *glDevice) Error() device.ErrorCode {
	return device.ErrorCode(gl.GetError())
}

// Present hands the finished frame to the window through the configured swap function.
func (d *glDevice) Present() {
	if d.swap != nil {
		d.swap()
	}
}

func (d *glDevice) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}
