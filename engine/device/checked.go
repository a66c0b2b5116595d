package device

import "fmt"

// CallError describes a device error flag observed directly after a device call.
type CallError struct {
	Call string
	Code ErrorCode
}

func (e *CallError) Error() string {
	return fmt.Sprintf("gpu error after %s: %s", e.Call, e.Code)
}

// checkedDevice forwards every call to the wrapped device and drains its error flags afterwards.
type checkedDevice struct {
	dev    Device
	report func(*CallError)
}

var _ Device = &checkedDevice{}
var _ Presenter = &checkedDevice{}
var _ Resizer = &checkedDevice{}

// Checked wraps dev so that every call is followed by an error query.
// Each pending error flag is passed to report; reporting is diagnostic only and never alters control flow.
//
// Parameters:
//   - dev: the device to wrap
//   - report: receives every observed error, must not be nil
//
// Returns:
//   - Device: the wrapping device, which also implements Presenter
func Checked(dev Device, report func(*CallError)) Device {
	return &checkedDevice{dev: dev, report: report}
}

// Wrap returns Checked(dev, report) when enabled is true and dev itself otherwise,
// so a release configuration pays nothing for the check layer.
//
// Parameters:
//   - dev: the device to wrap
//   - enabled: whether error checking is on
//   - report: receives every observed error when enabled
//
// Returns:
//   - Device: the checked or raw device
func Wrap(dev Device, enabled bool, report func(*CallError)) Device {
	if !enabled || report == nil {
		return dev
	}
	return Checked(dev, report)
}

// Unwrap returns the device underneath a Checked wrapper, or dev unchanged.
func Unwrap(dev Device) Device {
	if c, ok := dev.(*checkedDevice); ok {
		return c.dev
	}
	return dev
}

func (c *checkedDevice) check(call string) {
	// GL keeps one flag per error kind, so draining is bounded.
	for range 8 {
		code := c.dev.Error()
		if code == NoError {
			return
		}
		c.report(&CallError{Call: call, Code: code})
	}
}

func (c *checkedDevice) CreateShader(stage ShaderStage) Shader {
	s := c.dev.CreateShader(stage)
	c.check("CreateShader")
	return s
}

func (c *checkedDevice) ShaderSource(s Shader, source string) {
	c.dev.ShaderSource(s, source)
	c.check("ShaderSource")
}

func (c *checkedDevice) CompileShader(s Shader) {
	c.dev.CompileShader(s)
	c.check("CompileShader")
}

func (c *checkedDevice) ShaderCompiled(s Shader) bool {
	ok := c.dev.ShaderCompiled(s)
	c.check("ShaderCompiled")
	return ok
}

func (c *checkedDevice) ShaderInfoLog(s Shader) string {
	log := c.dev.ShaderInfoLog(s)
	c.check("ShaderInfoLog")
	return log
}

func (c *checkedDevice) CreateProgram() Program {
	p := c.dev.CreateProgram()
	c.check("CreateProgram")
	return p
}

func (c *checkedDevice) AttachShader(p Program, s Shader) {
	c.dev.AttachShader(p, s)
	c.check("AttachShader")
}

func (c *checkedDevice) LinkProgram(p Program) {
	c.dev.LinkProgram(p)
	c.check("LinkProgram")
}

func (c *checkedDevice) ProgramLinked(p Program) bool {
	ok := c.dev.ProgramLinked(p)
	c.check("ProgramLinked")
	return ok
}

func (c *checkedDevice) ProgramInfoLog(p Program) string {
	log := c.dev.ProgramInfoLog(p)
	c.check("ProgramInfoLog")
	return log
}

func (c *checkedDevice) UseProgram(p Program) {
	c.dev.UseProgram(p)
	c.check("UseProgram")
}

func (c *checkedDevice) AttribLocation(p Program, name string) int {
	loc := c.dev.AttribLocation(p, name)
	c.check("AttribLocation")
	return loc
}

func (c *checkedDevice) CreateBuffer() Buffer {
	b := c.dev.CreateBuffer()
	c.check("CreateBuffer")
	return b
}

func (c *checkedDevice) BindBuffer(b Buffer) {
	c.dev.BindBuffer(b)
	c.check("BindBuffer")
}

func (c *checkedDevice) BufferData(data []float32) {
	c.dev.BufferData(data)
	c.check("BufferData")
}

func (c *checkedDevice) VertexAttribPointer(index uint32, size, stride, offset int) {
	c.dev.VertexAttribPointer(index, size, stride, offset)
	c.check("VertexAttribPointer")
}

func (c *checkedDevice) EnableVertexAttribArray(index uint32) {
	c.dev.EnableVertexAttribArray(index)
	c.check("EnableVertexAttribArray")
}

func (c *checkedDevice) CreateTexture() Texture {
	t := c.dev.CreateTexture()
	c.check("CreateTexture")
	return t
}

func (c *checkedDevice) BindTexture(t Texture) {
	c.dev.BindTexture(t)
	c.check("BindTexture")
}

func (c *checkedDevice) TexFilter(mag Filter) {
	c.dev.TexFilter(mag)
	c.check("TexFilter")
}

func (c *checkedDevice) TexImage2D(width, height int, pixels []byte) {
	c.dev.TexImage2D(width, height, pixels)
	c.check("TexImage2D")
}

func (c *checkedDevice) GenerateMipmap() {
	c.dev.GenerateMipmap()
	c.check("GenerateMipmap")
}

func (c *checkedDevice) ClearColor(r, g, b, a float32) {
	c.dev.ClearColor(r, g, b, a)
	c.check("ClearColor")
}

func (c *checkedDevice) Clear() {
	c.dev.Clear()
	c.check("Clear")
}

func (c *checkedDevice) DrawArrays(mode Primitive, first, count int) {
	c.dev.DrawArrays(mode, first, count)
	c.check("DrawArrays")
}

// Error passes through to the wrapped device without reporting.
func (c *checkedDevice) Error() ErrorCode {
	return c.dev.Error()
}

func (c *checkedDevice) Present() {
	if p, ok := c.dev.(Presenter); ok {
		p.Present()
		c.check("Present")
	}
}

func (c *checkedDevice) Resize(width, height int) {
	if r, ok := c.dev.(Resizer); ok {
		r.Resize(width, height)
		c.check("Resize")
	}
}
