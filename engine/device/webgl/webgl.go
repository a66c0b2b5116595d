//go:build js && wasm

// Package webgl implements device.Device on a browser WebGL2 context.
package webgl

import (
	"errors"
	"log/slog"
	"syscall/js"

	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

// glConsts caches the WebGL enum values read from the context once at startup.
type glConsts struct {
	vertexShader     int
	fragmentShader   int
	compileStatus    int
	linkStatus       int
	arrayBuffer      int
	staticDraw       int
	floatType        int
	texture2D        int
	textureMagFilter int
	nearest          int
	linear           int
	rgb              int
	unsignedByte     int
	unpackAlignment  int
	colorBufferBit   int
	triangles        int
}

// webglDevice keeps JS objects behind the integer handles the core uses.
type webglDevice struct {
	gl     js.Value
	consts glConsts
	logger *slog.Logger

	next     uint32
	shaders  map[device.Shader]js.Value
	programs map[device.Program]js.Value
	buffers  map[device.Buffer]js.Value
	textures map[device.Texture]js.Value

	// upload is reused between TexImage2D calls to avoid a JS allocation per frame.
	upload js.Value
}

var _ device.Device = &webglDevice{}
var _ device.Resizer = &webglDevice{}

// New requests a WebGL2 context from canvas and resolves the enum values the device uses.
// Context attributes: no alpha, depth on, stencil off, antialias on.
//
// Parameters:
//   - canvas: the canvas element, e.g. from window.Canvas
//   - options: functional options applied in order
//
// Returns:
//   - device.Device: the WebGL2 device
//   - error: error if the browser does not provide a WebGL2 context
func New(canvas js.Value, options ...DeviceBuilderOption) (device.Device, error) {
	d := &webglDevice{
		logger:   slog.Default(),
		shaders:  make(map[device.Shader]js.Value),
		programs: make(map[device.Program]js.Value),
		buffers:  make(map[device.Buffer]js.Value),
		textures: make(map[device.Texture]js.Value),
	}
	for _, opt := range options {
		opt(d)
	}

	attrs := js.Global().Get("Object").New()
	attrs.Set("alpha", false)
	attrs.Set("depth", true)
	attrs.Set("stencil", false)
	attrs.Set("antialias", true)

	gl := canvas.Call("getContext", "webgl2", attrs)
	if gl.IsNull() || gl.IsUndefined() {
		return nil, errors.New("webgl2 context is not available")
	}
	d.gl = gl
	d.consts = glConsts{
		vertexShader:     gl.Get("VERTEX_SHADER").Int(),
		fragmentShader:   gl.Get("FRAGMENT_SHADER").Int(),
		compileStatus:    gl.Get("COMPILE_STATUS").Int(),
		linkStatus:       gl.Get("LINK_STATUS").Int(),
		arrayBuffer:      gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:       gl.Get("STATIC_DRAW").Int(),
		floatType:        gl.Get("FLOAT").Int(),
		texture2D:        gl.Get("TEXTURE_2D").Int(),
		textureMagFilter: gl.Get("TEXTURE_MAG_FILTER").Int(),
		nearest:          gl.Get("NEAREST").Int(),
		linear:           gl.Get("LINEAR").Int(),
		rgb:              gl.Get("RGB").Int(),
		unsignedByte:     gl.Get("UNSIGNED_BYTE").Int(),
		unpackAlignment:  gl.Get("UNPACK_ALIGNMENT").Int(),
		colorBufferBit:   gl.Get("COLOR_BUFFER_BIT").Int(),
		triangles:        gl.Get("TRIANGLES").Int(),
	}

	// Texture rows are 6 bytes, so the default 4-byte row alignment would skew uploads.
	gl.Call("pixelStorei", d.consts.unpackAlignment, 1)
	gl.Call("viewport", 0, 0, canvas.Get("width").Int(), canvas.Get("height").Int())

	d.logger.Info("webgl device ready", "version", gl.Call("getParameter", gl.Get("VERSION")).String())
	return d, nil
}

func (d *webglDevice) handle() uint32 {
	d.next++
	return d.next
}

func (d *webglDevice) CreateShader(stage device.ShaderStage) device.Shader {
	kind := d.consts.vertexShader
	if stage == device.StageFragment {
		kind = d.consts.fragmentShader
	}
	obj := d.gl.Call("createShader", kind)
	if obj.IsNull() {
		return device.NoShader
	}
	s := device.Shader(d.handle())
	d.shaders[s] = obj
	return s
}

func (d *webglDevice) ShaderSource(s device.Shader, source string) {
	d.gl.Call("shaderSource", d.shaders[s], source)
}

func (d *webglDevice) CompileShader(s device.Shader) {
	d.gl.Call("compileShader", d.shaders[s])
}

func (d *webglDevice) ShaderCompiled(s device.Shader) bool {
	obj, ok := d.shaders[s]
	if !ok {
		return false
	}
	return d.gl.Call("getShaderParameter", obj, d.consts.compileStatus).Bool()
}

func (d *webglDevice) ShaderInfoLog(s device.Shader) string {
	obj, ok := d.shaders[s]
	if !ok {
		return ""
	}
	log := d.gl.Call("getShaderInfoLog", obj)
	if log.IsNull() {
		return ""
	}
	return log.String()
}

func (d *webglDevice) CreateProgram() device.Program {
	obj := d.gl.Call("createProgram")
	if obj.IsNull() {
		return device.NoProgram
	}
	p := device.Program(d.handle())
	d.programs[p] = obj
	return p
}

func (d *webglDevice) AttachShader(p device.Program, s device.Shader) {
	d.gl.Call("attachShader", d.programs[p], d.shaders[s])
}

func (d *webglDevice) LinkProgram(p device.Program) {
	d.gl.Call("linkProgram", d.programs[p])
}

func (d *webglDevice) ProgramLinked(p device.Program) bool {
	obj, ok := d.programs[p]
	if !ok {
		return false
	}
	return d.gl.Call("getProgramParameter", obj, d.consts.linkStatus).Bool()
}

func (d *webglDevice) ProgramInfoLog(p device.Program) string {
	obj, ok := d.programs[p]
	if !ok {
		return ""
	}
	log := d.gl.Call("getProgramInfoLog", obj)
	if log.IsNull() {
		return ""
	}
	return log.String()
}

// UseProgram binds p; NoProgram binds null like glUseProgram(0).
func (d *webglDevice) UseProgram(p device.Program) {
	obj, ok := d.programs[p]
	if !ok {
		d.gl.Call("useProgram", js.Null())
		return
	}
	d.gl.Call("useProgram", obj)
}

func (d *webglDevice) AttribLocation(p device.Program, name string) int {
	obj, ok := d.programs[p]
	if !ok {
		return -1
	}
	return d.gl.Call("getAttribLocation", obj, name).Int()
}

func (d *webglDevice) CreateBuffer() device.Buffer {
	obj := d.gl.Call("createBuffer")
	if obj.IsNull() {
		return device.NoBuffer
	}
	b := device.Buffer(d.handle())
	d.buffers[b] = obj
	return b
}

func (d *webglDevice) BindBuffer(b device.Buffer) {
	obj, ok := d.buffers[b]
	if !ok {
		obj = js.Null()
	}
	d.gl.Call("bindBuffer", d.consts.arrayBuffer, obj)
}

func (d *webglDevice) BufferData(data []float32) {
	d.gl.Call("bufferData", d.consts.arrayBuffer, float32Array(data), d.consts.staticDraw)
}

func (d *webglDevice) VertexAttribPointer(index uint32, size, stride, offset int) {
	d.gl.Call("vertexAttribPointer", index, size, d.consts.floatType, false, stride, offset)
}

func (d *webglDevice) EnableVertexAttribArray(index uint32) {
	d.gl.Call("enableVertexAttribArray", index)
}

func (d *webglDevice) CreateTexture() device.Texture {
	obj := d.gl.Call("createTexture")
	if obj.IsNull() {
		return device.NoTexture
	}
	t := device.Texture(d.handle())
	d.textures[t] = obj
	return t
}

func (d *webglDevice) BindTexture(t device.Texture) {
	obj, ok := d.textures[t]
	if !ok {
		obj = js.Null()
	}
	d.gl.Call("bindTexture", d.consts.texture2D, obj)
}

func (d *webglDevice) TexFilter(mag device.Filter) {
	filter := d.consts.nearest
	if mag == device.FilterLinear {
		filter = d.consts.linear
	}
	d.gl.Call("texParameteri", d.consts.texture2D, d.consts.textureMagFilter, filter)
}

func (d *webglDevice) TexImage2D(width, height int, pixels []byte) {
	if d.upload.IsUndefined() || d.upload.Get("length").Int() != len(pixels) {
		d.upload = js.Global().Get("Uint8Array").New(len(pixels))
	}
	js.CopyBytesToJS(d.upload, pixels)
	d.gl.Call("texImage2D", d.consts.texture2D, 0, d.consts.rgb, width, height, 0, d.consts.rgb, d.consts.unsignedByte, d.upload)
}

func (d *webglDevice) GenerateMipmap() {
	d.gl.Call("generateMipmap", d.consts.texture2D)
}

func (d *webglDevice) ClearColor(r, g, b, a float32) {
	d.gl.Call("clearColor", r, g, b, a)
}

func (d *webglDevice) Clear() {
	d.gl.Call("clear", d.consts.colorBufferBit)
}

func (d *webglDevice) DrawArrays(mode device.Primitive, first, count int) {
	if mode != device.PrimitiveTriangles {
		return
	}
	d.gl.Call("drawArrays", d.consts.triangles, first, count)
}

func (d *webglDevice) Error() device.ErrorCode {
	return device.ErrorCode(d.gl.Call("getError").Int())
}

func (d *webglDevice) Resize(width, height int) {
	d.gl.Call("viewport", 0, 0, width, height)
}

// float32Array copies data into a new Float32Array through a byte view of its buffer.
func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	view := js.Global().Get("Uint8Array").New(arr.Get("buffer"), arr.Get("byteOffset"), arr.Get("byteLength"))
	js.CopyBytesToJS(view, common.SliceToBytes(data))
	return arr
}
