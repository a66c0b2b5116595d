//go:build !js

// Package webgpu implements device.Device on WebGPU. GL-style state calls are recorded and turned
// into render pipelines, bind groups and render passes when a draw is issued.
package webgpu

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-triangle/common"
	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

// shaderState is one WGSL stage and what compiling it revealed.
type shaderState struct {
	stage      device.ShaderStage
	source     string
	module     *wgpu.ShaderModule
	reflection stageReflection
	compiled   bool
	log        string
}

// programState is a vertex and fragment stage pair with the GPU layout objects created at link time.
type programState struct {
	shaders []device.Shader
	linked  bool
	log     string

	vertex   *shaderState
	fragment *shaderState

	groups           map[int]wgpu.BindGroupLayoutDescriptor
	bindGroupLayouts []*wgpu.BindGroupLayout
	pipelineLayout   *wgpu.PipelineLayout

	// pipeline is rebuilt when the attribute layout it was created for changes.
	pipeline    *wgpu.RenderPipeline
	pipelineKey string
}

type textureState struct {
	tex    *wgpu.Texture
	view   *wgpu.TextureView
	width  int
	height int
	levels uint32
	filter device.Filter
	base   *image.RGBA

	// bindGroups caches one bind group set per program; cleared when the view or filter changes.
	bindGroups map[device.Program][]*wgpu.BindGroup
}

// frameState is the surface image acquired for the frame being recorded.
type frameState struct {
	surface *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

type gpuDevice struct {
	instance      *wgpu.Instance
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surface       *wgpu.Surface
	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	width         int
	height        int

	label  string
	logger *slog.Logger

	next     uint32
	shaders  map[device.Shader]*shaderState
	programs map[device.Program]*programState
	buffers  map[device.Buffer]*wgpu.Buffer
	textures map[device.Texture]*textureState
	samplers map[device.Filter]*wgpu.Sampler

	current      device.Program
	boundBuffer  device.Buffer
	boundTexture device.Texture
	attribs      map[uint32]attribState
	clearColor   wgpu.Color

	frame  *frameState
	errors []device.ErrorCode
}

var _ device.Device = &gpuDevice{}
var _ device.Presenter = &gpuDevice{}
var _ device.Resizer = &gpuDevice{}

// New creates a WebGPU instance, adapter and device for the surface described by descriptor and
// configures the surface at the given size.
//
// Parameters:
//   - descriptor: the platform surface, e.g. from window.SurfaceDescriptor
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - options: functional options applied in order
//
// Returns:
//   - device.Device: the WebGPU device, which also implements device.Presenter and device.Resizer
//   - error: error if no adapter or device could be obtained
func New(descriptor *wgpu.SurfaceDescriptor, width, height int, options ...DeviceBuilderOption) (device.Device, error) {
	if descriptor == nil {
		return nil, errors.New("webgpu device requires a surface descriptor")
	}
	runtime.LockOSThread()

	d := &gpuDevice{
		presentMode: wgpu.PresentModeFifo,
		logger:      slog.Default(),
		shaders:     make(map[device.Shader]*shaderState),
		programs:    make(map[device.Program]*programState),
		buffers:     make(map[device.Buffer]*wgpu.Buffer),
		textures:    make(map[device.Texture]*textureState),
		samplers:    make(map[device.Filter]*wgpu.Sampler),
		attribs:     make(map[uint32]attribState),
		clearColor:  wgpu.Color{A: 1},
	}
	for _, opt := range options {
		opt(d)
	}
	d.label = common.Coalesce(d.label, "oxy-triangle")

	d.instance = wgpu.CreateInstance(nil)
	d.surface = d.instance.CreateSurface(descriptor)

	a, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: d.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	d.adapter = a

	dev, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: d.label + " Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	d.device = dev
	d.queue = dev.GetQueue()

	d.configure(width, height)
	d.logger.Info("webgpu device ready", "width", d.width, "height", d.height)
	return d, nil
}

// configure (re)configures the surface; the first reported format becomes the render target format.
func (d *gpuDevice) configure(width, height int) {
	capabilities := d.surface.GetCapabilities(d.adapter)
	d.surfaceFormat = capabilities.Formats[0]
	d.width, d.height = width, height

	d.surface.Configure(d.adapter, d.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      d.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: d.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

func (d *gpuDevice) handle() uint32 {
	d.next++
	return d.next
}

// fail raises an error flag for Error to return. Like GL, each kind is recorded at most once
// until Error reports it.
func (d *gpuDevice) fail(code device.ErrorCode) {
	if slices.Contains(d.errors, code) {
		return
	}
	d.errors = append(d.errors, code)
}

func (d *gpuDevice) CreateShader(stage device.ShaderStage) device.Shader {
	if stage != device.StageVertex && stage != device.StageFragment {
		d.fail(device.InvalidEnum)
		return device.NoShader
	}
	s := device.Shader(d.handle())
	d.shaders[s] = &shaderState{stage: stage}
	return s
}

func (d *gpuDevice) ShaderSource(s device.Shader, source string) {
	st, ok := d.shaders[s]
	if !ok {
		d.fail(device.InvalidValue)
		return
	}
	st.source = source
}

// CompileShader creates the WGSL module and checks the source declares an entry point for its stage.
func (d *gpuDevice) CompileShader(s device.Shader) {
	st, ok := d.shaders[s]
	if !ok {
		d.fail(device.InvalidValue)
		return
	}
	st.compiled = false
	st.log = ""

	st.reflection = reflectStage(st.source, st.stage)
	if st.reflection.entryPoint == "" {
		st.log = fmt.Sprintf("no @%s entry point", st.stage)
		return
	}

	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: fmt.Sprintf("%s %s shader %d", d.label, st.stage, s),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: st.source,
		},
	})
	if err != nil {
		st.log = err.Error()
		return
	}
	st.module = module
	st.compiled = true
}

func (d *gpuDevice) ShaderCompiled(s device.Shader) bool {
	st, ok := d.shaders[s]
	return ok && st.compiled
}

func (d *gpuDevice) ShaderInfoLog(s device.Shader) string {
	if st, ok := d.shaders[s]; ok {
		return st.log
	}
	return ""
}

func (d *gpuDevice) CreateProgram() device.Program {
	p := device.Program(d.handle())
	d.programs[p] = &programState{}
	return p
}

func (d *gpuDevice) AttachShader(p device.Program, s device.Shader) {
	prog, ok := d.programs[p]
	if !ok {
		d.fail(device.InvalidValue)
		return
	}
	if _, ok := d.shaders[s]; !ok {
		d.fail(device.InvalidValue)
		return
	}
	prog.shaders = append(prog.shaders, s)
}

// LinkProgram pairs the attached stages and creates the bind group and pipeline layouts
// from the resources both stages declare.
func (d *gpuDevice) LinkProgram(p device.Program) {
	prog, ok := d.programs[p]
	if !ok {
		d.fail(device.InvalidValue)
		return
	}
	prog.linked = false
	prog.log = ""
	if err := d.link(prog); err != nil {
		prog.log = err.Error()
		return
	}
	prog.linked = true
}

func (d *gpuDevice) link(prog *programState) error {
	prog.vertex, prog.fragment = nil, nil
	for _, s := range prog.shaders {
		st := d.shaders[s]
		if !st.compiled {
			return fmt.Errorf("attached %s shader %d is not compiled", st.stage, s)
		}
		switch st.stage {
		case device.StageVertex:
			if prog.vertex != nil {
				return errors.New("more than one vertex shader attached")
			}
			prog.vertex = st
		case device.StageFragment:
			if prog.fragment != nil {
				return errors.New("more than one fragment shader attached")
			}
			prog.fragment = st
		}
	}
	if prog.vertex == nil || prog.fragment == nil {
		return errors.New("link requires one compiled vertex and one compiled fragment shader")
	}
	for name, in := range prog.vertex.reflection.inputs {
		if _, ok := wgslVertexFormats[strings.ReplaceAll(in.typeName, " ", "")]; !ok {
			return fmt.Errorf("vertex input %q has unsupported type %s", name, in.typeName)
		}
	}

	prog.groups = mergeBindGroupLayouts(prog.vertex.reflection.groups, prog.fragment.reflection.groups)
	if err := checkBindings(prog.groups); err != nil {
		return err
	}
	maxGroup := -1
	for g := range prog.groups {
		maxGroup = max(maxGroup, g)
	}

	prog.bindGroupLayouts = make([]*wgpu.BindGroupLayout, maxGroup+1)
	for g := range prog.bindGroupLayouts {
		desc := prog.groups[g]
		desc.Label = fmt.Sprintf("%s group %d", d.label, g)
		layout, err := d.device.CreateBindGroupLayout(&desc)
		if err != nil {
			return fmt.Errorf("bind group layout %d: %w", g, err)
		}
		prog.bindGroupLayouts[g] = layout
	}

	layout, err := d.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            d.label + " Pipeline Layout",
		BindGroupLayouts: prog.bindGroupLayouts,
	})
	if err != nil {
		return fmt.Errorf("pipeline layout: %w", err)
	}
	prog.pipelineLayout = layout
	prog.pipeline = nil
	prog.pipelineKey = ""
	return nil
}

func (d *gpuDevice) ProgramLinked(p device.Program) bool {
	prog, ok := d.programs[p]
	return ok && prog.linked
}

func (d *gpuDevice) ProgramInfoLog(p device.Program) string {
	if prog, ok := d.programs[p]; ok {
		return prog.log
	}
	return ""
}

func (d *gpuDevice) UseProgram(p device.Program) {
	if p != device.NoProgram && !d.ProgramLinked(p) {
		d.fail(device.InvalidOperation)
		return
	}
	d.current = p
}

// AttribLocation looks name up among the vertex inputs declared by the linked vertex stage.
func (d *gpuDevice) AttribLocation(p device.Program, name string) int {
	prog, ok := d.programs[p]
	if !ok || !prog.linked {
		d.fail(device.InvalidOperation)
		return -1
	}
	in, ok := prog.vertex.reflection.inputs[name]
	if !ok {
		return -1
	}
	return int(in.location)
}

func (d *gpuDevice) CreateBuffer() device.Buffer {
	b := device.Buffer(d.handle())
	d.buffers[b] = nil
	return b
}

func (d *gpuDevice) BindBuffer(b device.Buffer) {
	if _, ok := d.buffers[b]; !ok && b != device.NoBuffer {
		d.fail(device.InvalidOperation)
		return
	}
	d.boundBuffer = b
}

// BufferData replaces the bound buffer's storage with data.
func (d *gpuDevice) BufferData(data []float32) {
	if d.boundBuffer == device.NoBuffer {
		d.fail(device.InvalidOperation)
		return
	}
	if old := d.buffers[d.boundBuffer]; old != nil {
		old.Release()
		d.buffers[d.boundBuffer] = nil
	}
	if len(data) == 0 {
		return
	}

	bytes := common.SliceToBytes(data)
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: fmt.Sprintf("%s vertex buffer %d", d.label, d.boundBuffer),
		Size:  uint64(len(bytes)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		d.logger.Error("creating vertex buffer", "error", err)
		d.fail(device.OutOfMemory)
		return
	}
	if err := d.queue.WriteBuffer(buf, 0, bytes); err != nil {
		d.logger.Error("writing vertex buffer", "error", err)
		buf.Release()
		d.fail(device.InvalidOperation)
		return
	}
	d.buffers[d.boundBuffer] = buf
}

func (d *gpuDevice) VertexAttribPointer(index uint32, size, stride, offset int) {
	if size < 1 || size > 4 || stride < 0 || offset < 0 {
		d.fail(device.InvalidValue)
		return
	}
	a := d.attribs[index]
	a.size, a.stride, a.offset = size, stride, offset
	d.attribs[index] = a
}

func (d *gpuDevice) EnableVertexAttribArray(index uint32) {
	a := d.attribs[index]
	a.enabled = true
	d.attribs[index] = a
}

func (d *gpuDevice) CreateTexture() device.Texture {
	t := device.Texture(d.handle())
	d.textures[t] = &textureState{
		filter:     device.FilterLinear,
		bindGroups: make(map[device.Program][]*wgpu.BindGroup),
	}
	return t
}

func (d *gpuDevice) BindTexture(t device.Texture) {
	if _, ok := d.textures[t]; !ok && t != device.NoTexture {
		d.fail(device.InvalidOperation)
		return
	}
	d.boundTexture = t
}

func (d *gpuDevice) TexFilter(mag device.Filter) {
	ts, ok := d.textures[d.boundTexture]
	if !ok {
		d.fail(device.InvalidOperation)
		return
	}
	if ts.filter != mag {
		ts.filter = mag
		clear(ts.bindGroups)
	}
}

// TexImage2D uploads level 0 of the bound texture, recreating the GPU texture when the size changes.
func (d *gpuDevice) TexImage2D(width, height int, pixels []byte) {
	ts, ok := d.textures[d.boundTexture]
	if !ok {
		d.fail(device.InvalidOperation)
		return
	}
	if width <= 0 || height <= 0 {
		d.fail(device.InvalidValue)
		return
	}

	if ts.tex == nil || ts.width != width || ts.height != height {
		if err := d.allocateTexture(ts, width, height); err != nil {
			d.logger.Error("creating texture", "error", err)
			d.fail(device.OutOfMemory)
			return
		}
	}

	ts.base = rgbToRGBA(width, height, pixels)
	d.writeLevel(ts, 0, ts.base)
}

func (d *gpuDevice) allocateTexture(ts *textureState, width, height int) error {
	if ts.view != nil {
		ts.view.Release()
	}
	if ts.tex != nil {
		ts.tex.Release()
	}
	ts.tex, ts.view = nil, nil
	clear(ts.bindGroups)

	levels := mipLevelCount(width, height)
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     d.label + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8Unorm,
		MipLevelCount: levels,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	ts.tex, ts.view = tex, view
	ts.width, ts.height, ts.levels = width, height, levels
	return nil
}

func (d *gpuDevice) writeLevel(ts *textureState, level uint32, img *image.RGBA) {
	w, h := uint32(img.Bounds().Dx()), uint32(img.Bounds().Dy())
	d.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  ts.tex,
			MipLevel: level,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		img.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride),
			RowsPerImage: h,
		},
		&wgpu.Extent3D{
			Width:              w,
			Height:             h,
			DepthOrArrayLayers: 1,
		},
	)
}

// GenerateMipmap downsamples level 0 on the CPU and uploads every smaller level.
func (d *gpuDevice) GenerateMipmap() {
	ts, ok := d.textures[d.boundTexture]
	if !ok || ts.base == nil {
		d.fail(device.InvalidOperation)
		return
	}
	chain := mipChain(ts.base, ts.levels)
	for level := 1; level < len(chain); level++ {
		d.writeLevel(ts, uint32(level), chain[level])
	}
}

func (d *gpuDevice) ClearColor(r, g, b, a float32) {
	d.clearColor = wgpu.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)}
}

// Clear starts a render pass that clears the current surface image.
func (d *gpuDevice) Clear() {
	if err := d.beginPass(wgpu.LoadOpClear); err != nil {
		d.logger.Warn("clear skipped", "error", err)
		d.fail(device.InvalidFramebufferOperation)
	}
}

func (d *gpuDevice) DrawArrays(mode device.Primitive, first, count int) {
	if mode != device.PrimitiveTriangles {
		d.fail(device.InvalidEnum)
		return
	}
	if first < 0 || count < 0 {
		d.fail(device.InvalidValue)
		return
	}
	prog, ok := d.programs[d.current]
	if !ok || !prog.linked {
		d.fail(device.InvalidOperation)
		return
	}
	buf := d.buffers[d.boundBuffer]
	if buf == nil {
		d.fail(device.InvalidOperation)
		return
	}

	pipeline, err := d.pipelineFor(prog)
	if err != nil {
		d.logger.Warn("draw skipped", "error", err)
		d.fail(device.InvalidOperation)
		return
	}
	groups, err := d.bindGroupsFor(d.current, prog)
	if err != nil {
		d.logger.Warn("draw skipped", "error", err)
		d.fail(device.InvalidOperation)
		return
	}

	if d.frame == nil || d.frame.pass == nil {
		if err := d.beginPass(wgpu.LoadOpLoad); err != nil {
			d.logger.Warn("draw skipped", "error", err)
			d.fail(device.InvalidFramebufferOperation)
			return
		}
	}
	pass := d.frame.pass
	pass.SetPipeline(pipeline)
	for i, bg := range groups {
		pass.SetBindGroup(uint32(i), bg, nil)
	}
	pass.SetVertexBuffer(0, buf, 0, wgpu.WholeSize)
	pass.Draw(uint32(count), 1, uint32(first), 0)
}

// pipelineFor returns the program's render pipeline for the current attribute layout,
// creating it on first use and whenever the layout changes.
func (d *gpuDevice) pipelineFor(prog *programState) (*wgpu.RenderPipeline, error) {
	layout, key, err := vertexLayout(d.attribs)
	if err != nil {
		return nil, err
	}
	if prog.pipeline != nil && prog.pipelineKey == key {
		return prog.pipeline, nil
	}

	created, err := d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  d.label + " Render Pipeline",
		Layout: prog.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     prog.vertex.module,
			EntryPoint: prog.vertex.reflection.entryPoint,
			Buffers:    []wgpu.VertexBufferLayout{layout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     prog.fragment.module,
			EntryPoint: prog.fragment.reflection.entryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    d.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}
	if prog.pipeline != nil {
		prog.pipeline.Release()
	}
	prog.pipeline = created
	prog.pipelineKey = key
	d.logger.Debug("render pipeline created", "layout", key)
	return created, nil
}

// bindGroupsFor binds the bound texture and its sampler to every texture and sampler entry the
// program declares. Buffer bindings are not supported.
func (d *gpuDevice) bindGroupsFor(p device.Program, prog *programState) ([]*wgpu.BindGroup, error) {
	if len(prog.bindGroupLayouts) == 0 {
		return nil, nil
	}
	ts, ok := d.textures[d.boundTexture]
	if !ok || ts.view == nil {
		return nil, errors.New("program samples a texture but no texture image is bound")
	}
	if cached, ok := ts.bindGroups[p]; ok {
		return cached, nil
	}

	sampler, err := d.samplerFor(ts.filter)
	if err != nil {
		return nil, err
	}

	groups := make([]*wgpu.BindGroup, len(prog.bindGroupLayouts))
	for g, layout := range prog.bindGroupLayouts {
		desc := prog.groups[g]
		entries := make([]wgpu.BindGroupEntry, 0, len(desc.Entries))
		for _, e := range desc.Entries {
			switch {
			case e.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
				entries = append(entries, wgpu.BindGroupEntry{Binding: e.Binding, TextureView: ts.view})
			case e.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
				entries = append(entries, wgpu.BindGroupEntry{Binding: e.Binding, Sampler: sampler})
			default:
				return nil, fmt.Errorf("binding %d in group %d is not a texture or sampler", e.Binding, g)
			}
		}
		bg, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   fmt.Sprintf("%s bind group %d", d.label, g),
			Layout:  layout,
			Entries: entries,
		})
		if err != nil {
			return nil, fmt.Errorf("create bind group %d: %w", g, err)
		}
		groups[g] = bg
	}
	ts.bindGroups[p] = groups
	return groups, nil
}

// samplerFor returns the sampler for a magnification filter. Minification is nearest within a
// level with linear blending between levels, the GL default.
func (d *gpuDevice) samplerFor(filter device.Filter) (*wgpu.Sampler, error) {
	if s, ok := d.samplers[filter]; ok {
		return s, nil
	}
	mag := wgpu.FilterModeNearest
	if filter == device.FilterLinear {
		mag = wgpu.FilterModeLinear
	}
	s, err := d.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         d.label + " Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     mag,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	d.samplers[filter] = s
	return s, nil
}

// beginPass acquires the surface image if the frame has none yet and starts a new render pass on it,
// ending any pass already in progress.
func (d *gpuDevice) beginPass(load wgpu.LoadOp) error {
	if d.frame == nil {
		surfaceTexture, err := d.surface.GetCurrentTexture()
		if err != nil {
			return err
		}
		view, err := surfaceTexture.CreateView(nil)
		if err != nil {
			surfaceTexture.Release()
			return err
		}
		encoder, err := d.device.CreateCommandEncoder(nil)
		if err != nil {
			view.Release()
			surfaceTexture.Release()
			return err
		}
		d.frame = &frameState{surface: surfaceTexture, view: view, encoder: encoder}
	}

	if d.frame.pass != nil {
		d.frame.pass.End()
	}
	d.frame.pass = d.frame.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       d.frame.view,
				LoadOp:     load,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: d.clearColor,
			},
		},
	})
	return nil
}

// Present ends the frame's render pass, submits the recorded commands and presents the surface image.
func (d *gpuDevice) Present() {
	f := d.frame
	if f == nil {
		return
	}
	d.frame = nil

	if f.pass != nil {
		f.pass.End()
	}
	commandBuffer, err := f.encoder.Finish(nil)
	if err != nil {
		d.logger.Error("finishing frame", "error", err)
		d.fail(device.InvalidOperation)
	} else {
		d.queue.Submit(commandBuffer)
		commandBuffer.Release()
		d.surface.Present()
	}
	f.encoder.Release()
	f.view.Release()
	f.surface.Release()
}

// Resize reconfigures the surface. Zero sizes, reported while minimized, are ignored.
func (d *gpuDevice) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.configure(width, height)
}

func (d *gpuDevice) Error() device.ErrorCode {
	if len(d.errors) == 0 {
		return device.NoError
	}
	code := d.errors[0]
	d.errors = d.errors[1:]
	return code
}
