// Package devicetest provides an in-memory device.Device that records every call for assertions.
package devicetest

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

// AttribPointer is the recorded state of one vertex input.
type AttribPointer struct {
	Size    int
	Stride  int
	Offset  int
	Enabled bool
}

type shaderState struct {
	stage    device.ShaderStage
	source   string
	compiled bool
	log      string
}

type programState struct {
	shaders []device.Shader
	linked  bool
	log     string
}

type textureState struct {
	width, height int
	pixels        []byte
	filter        device.Filter
	mipmaps       int
}

// Recorder is a fake device. It behaves like a permissive GL implementation: every shader compiles
// and every program with one compiled vertex and one compiled fragment stage links, unless a failure
// is configured through the exported fields.
type Recorder struct {
	// CompileFailures maps a stage to the info log its compilation should fail with.
	CompileFailures map[device.ShaderStage]string

	// LinkFailure, when non-empty, makes every link fail with this info log.
	LinkFailure string

	// Attributes maps vertex input names to locations for AttribLocation. Unknown names yield -1.
	Attributes map[string]int

	// PendingErrors is drained front to back by Error.
	PendingErrors []device.ErrorCode

	calls []Call
	next  uint32

	shaders  map[device.Shader]*shaderState
	programs map[device.Program]*programState
	buffers  map[device.Buffer][]float32
	textures map[device.Texture]*textureState
	attribs  map[uint32]AttribPointer

	current      device.Program
	boundBuffer  device.Buffer
	boundTexture device.Texture
	clearColor   [4]float32
	presents     int
	size         [2]int
}

var _ device.Device = &Recorder{}
var _ device.Presenter = &Recorder{}
var _ device.Resizer = &Recorder{}

// NewRecorder creates an empty Recorder with the default attribute names registered at locations 0 and 1.
func NewRecorder() *Recorder {
	return &Recorder{
		CompileFailures: make(map[device.ShaderStage]string),
		Attributes:      map[string]int{"position": 0, "inTextureIndex": 1},
		shaders:         make(map[device.Shader]*shaderState),
		programs:        make(map[device.Program]*programState),
		buffers:         make(map[device.Buffer][]float32),
		textures:        make(map[device.Texture]*textureState),
		attribs:         make(map[uint32]AttribPointer),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

// Calls returns a copy of all recorded calls in order.
func (r *Recorder) Calls() []Call {
	return slices.Clone(r.calls)
}

// Names returns the recorded call names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times the named call was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Last returns the most recent call with the given name.
func (r *Recorder) Last(name string) (Call, bool) {
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Name == name {
			return r.calls[i], true
		}
	}
	return Call{}, false
}

// ResetCalls forgets the call log but keeps all object state.
func (r *Recorder) ResetCalls() {
	r.calls = nil
}

// BufferContents returns the data last uploaded to b.
func (r *Recorder) BufferContents(b device.Buffer) []float32 {
	return slices.Clone(r.buffers[b])
}

// TextureImage returns the dimensions and level 0 pixels last uploaded to t.
func (r *Recorder) TextureImage(t device.Texture) (width, height int, pixels []byte) {
	ts, ok := r.textures[t]
	if !ok {
		return 0, 0, nil
	}
	return ts.width, ts.height, slices.Clone(ts.pixels)
}

// TextureFilter returns the magnification filter of t.
func (r *Recorder) TextureFilter(t device.Texture) device.Filter {
	if ts, ok := r.textures[t]; ok {
		return ts.filter
	}
	return device.FilterLinear
}

// Attrib returns the recorded state of the vertex input at index.
func (r *Recorder) Attrib(index uint32) (AttribPointer, bool) {
	a, ok := r.attribs[index]
	return a, ok
}

// CurrentProgram returns the program selected by the last UseProgram.
func (r *Recorder) CurrentProgram() device.Program { return r.current }

// BoundBuffer returns the currently bound buffer.
func (r *Recorder) BoundBuffer() device.Buffer { return r.boundBuffer }

// BoundTexture returns the currently bound texture.
func (r *Recorder) BoundTexture() device.Texture { return r.boundTexture }

// ClearColorValue returns the color set by the last ClearColor.
func (r *Recorder) ClearColorValue() [4]float32 { return r.clearColor }

// Presents returns how many frames were presented.
func (r *Recorder) Presents() int { return r.presents }

func (r *Recorder) CreateShader(stage device.ShaderStage) device.Shader {
	s := device.Shader(r.handle())
	r.shaders[s] = &shaderState{stage: stage}
	r.record("CreateShader", stage)
	return s
}

func (r *Recorder) ShaderSource(s device.Shader, source string) {
	r.record("ShaderSource", s, source)
	if st, ok := r.shaders[s]; ok {
		st.source = source
	}
}

func (r *Recorder) CompileShader(s device.Shader) {
	r.record("CompileShader", s)
	st, ok := r.shaders[s]
	if !ok {
		r.PendingErrors = append(r.PendingErrors, device.InvalidValue)
		return
	}
	if log, fail := r.CompileFailures[st.stage]; fail {
		st.compiled = false
		st.log = log
		return
	}
	st.compiled = true
	st.log = ""
}

func (r *Recorder) ShaderCompiled(s device.Shader) bool {
	r.record("ShaderCompiled", s)
	st, ok := r.shaders[s]
	return ok && st.compiled
}

func (r *Recorder) ShaderInfoLog(s device.Shader) string {
	r.record("ShaderInfoLog", s)
	if st, ok := r.shaders[s]; ok {
		return st.log
	}
	return ""
}

func (r *Recorder) CreateProgram() device.Program {
	p := device.Program(r.handle())
	r.programs[p] = &programState{}
	r.record("CreateProgram")
	return p
}

func (r *Recorder) AttachShader(p device.Program, s device.Shader) {
	r.record("AttachShader", p, s)
	ps, ok := r.programs[p]
	if !ok {
		r.PendingErrors = append(r.PendingErrors, device.InvalidValue)
		return
	}
	ps.shaders = append(ps.shaders, s)
}

func (r *Recorder) LinkProgram(p device.Program) {
	r.record("LinkProgram", p)
	ps, ok := r.programs[p]
	if !ok {
		r.PendingErrors = append(r.PendingErrors, device.InvalidValue)
		return
	}
	ps.linked, ps.log = false, ""
	if r.LinkFailure != "" {
		ps.log = r.LinkFailure
		return
	}
	stages := map[device.ShaderStage]bool{}
	for _, s := range ps.shaders {
		if st, ok := r.shaders[s]; ok && st.compiled {
			stages[st.stage] = true
		}
	}
	for _, want := range []device.ShaderStage{device.StageVertex, device.StageFragment} {
		if !stages[want] {
			ps.log = fmt.Sprintf("missing compiled %s shader", want)
			return
		}
	}
	ps.linked = true
}

func (r *Recorder) ProgramLinked(p device.Program) bool {
	r.record("ProgramLinked", p)
	ps, ok := r.programs[p]
	return ok && ps.linked
}

func (r *Recorder) ProgramInfoLog(p device.Program) string {
	r.record("ProgramInfoLog", p)
	if ps, ok := r.programs[p]; ok {
		return ps.log
	}
	return ""
}

func (r *Recorder) UseProgram(p device.Program) {
	r.record("UseProgram", p)
	r.current = p
}

func (r *Recorder) AttribLocation(p device.Program, name string) int {
	r.record("AttribLocation", p, name)
	if ps, ok := r.programs[p]; !ok || !ps.linked {
		r.PendingErrors = append(r.PendingErrors, device.InvalidOperation)
		return -1
	}
	if loc, ok := r.Attributes[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) CreateBuffer() device.Buffer {
	b := device.Buffer(r.handle())
	r.buffers[b] = nil
	r.record("CreateBuffer")
	return b
}

func (r *Recorder) BindBuffer(b device.Buffer) {
	r.record("BindBuffer", b)
	r.boundBuffer = b
}

func (r *Recorder) BufferData(data []float32) {
	r.record("BufferData", len(data))
	if r.boundBuffer == device.NoBuffer {
		r.PendingErrors = append(r.PendingErrors, device.InvalidOperation)
		return
	}
	r.buffers[r.boundBuffer] = slices.Clone(data)
}

func (r *Recorder) VertexAttribPointer(index uint32, size, stride, offset int) {
	r.record("VertexAttribPointer", index, size, stride, offset)
	a := r.attribs[index]
	a.Size, a.Stride, a.Offset = size, stride, offset
	r.attribs[index] = a
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
	a := r.attribs[index]
	a.Enabled = true
	r.attribs[index] = a
}

func (r *Recorder) CreateTexture() device.Texture {
	t := device.Texture(r.handle())
	r.textures[t] = &textureState{filter: device.FilterLinear}
	r.record("CreateTexture")
	return t
}

func (r *Recorder) BindTexture(t device.Texture) {
	r.record("BindTexture", t)
	r.boundTexture = t
}

func (r *Recorder) TexFilter(mag device.Filter) {
	r.record("TexFilter", mag)
	if ts, ok := r.textures[r.boundTexture]; ok {
		ts.filter = mag
	}
}

func (r *Recorder) TexImage2D(width, height int, pixels []byte) {
	r.record("TexImage2D", width, height, slices.Clone(pixels))
	ts, ok := r.textures[r.boundTexture]
	if !ok {
		r.PendingErrors = append(r.PendingErrors, device.InvalidOperation)
		return
	}
	if len(pixels) < width*height*3 {
		r.PendingErrors = append(r.PendingErrors, device.InvalidValue)
		return
	}
	ts.width, ts.height = width, height
	ts.pixels = slices.Clone(pixels[:width*height*3])
}

func (r *Recorder) GenerateMipmap() {
	r.record("GenerateMipmap")
	if ts, ok := r.textures[r.boundTexture]; ok {
		ts.mipmaps++
	}
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
	r.clearColor = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) Clear() {
	r.record("Clear")
}

func (r *Recorder) DrawArrays(mode device.Primitive, first, count int) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) Error() device.ErrorCode {
	if len(r.PendingErrors) == 0 {
		return device.NoError
	}
	code := r.PendingErrors[0]
	r.PendingErrors = r.PendingErrors[1:]
	return code
}

func (r *Recorder) Present() {
	r.record("Present")
	r.presents++
}

func (r *Recorder) Resize(width, height int) {
	r.record("Resize", width, height)
	r.size = [2]int{width, height}
}

// Size returns the dimensions passed to the last Resize.
func (r *Recorder) Size() (width, height int) { return r.size[0], r.size[1] }
