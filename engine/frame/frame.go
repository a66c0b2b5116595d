package frame

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/texture"
)

// State is the lifecycle state of a Driver.
type State int

const (
	StateUninitialized State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// RenderContext is the per-run state carried between frames.
type RenderContext struct {
	Program device.Program
	Buffer  device.Buffer
	Texture device.Texture

	// Last is the timestamp passed to the previous Tick.
	Last time.Duration

	// Elapsed is the sum of all frame deltas. It never decreases.
	Elapsed time.Duration
}

// Stats summarizes what the driver has done so far.
type Stats struct {
	Frames    uint64
	Draws     uint64
	LastDelta time.Duration
	Elapsed   time.Duration
}

// Driver advances the render context once per host frame and issues the draw.
type Driver interface {
	// Tick runs one frame for the monotonic timestamp now. The first call initializes device
	// resources and draws with a zero delta.
	//
	// Parameters:
	//   - now: a monotonic timestamp from the host; the origin is arbitrary
	Tick(now time.Duration)

	// State returns the lifecycle state.
	State() State

	// Context returns a copy of the render context.
	Context() RenderContext

	// Stats returns a copy of the frame counters.
	Stats() Stats
}

type driver struct {
	dev      device.Device
	geometry geometry.Buffer
	texture  texture.Generator
	logger   *slog.Logger

	state State
	ctx   RenderContext
	stats Stats

	allowUnlinkedDraw bool
	clearColor        [4]float32

	// degraded is set once setup fails; the driver keeps clearing but stops drawing.
	degraded error
}

var _ Driver = &driver{}

// NewDriver creates a Driver for the given program and resources. The program may be
// device.NoProgram after a failed build, in which case frames only clear unless
// WithUnlinkedDraw(true) is set.
//
// Parameters:
//   - dev: the device to draw on
//   - program: the linked program, or device.NoProgram
//   - geom: the vertex buffer, uploaded on the first tick if it is not already
//   - tex: the texture generator, initialized on the first tick
//   - options: functional options applied in order
//
// Returns:
//   - Driver: the driver in StateUninitialized
func NewDriver(dev device.Device, program device.Program, geom geometry.Buffer, tex texture.Generator, options ...DriverBuilderOption) Driver {
	d := &driver{
		dev:        dev,
		geometry:   geom,
		texture:    tex,
		logger:     slog.Default(),
		state:      StateUninitialized,
		ctx:        RenderContext{Program: program},
		clearColor: [4]float32{0, 0, 0, 1},
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *driver) Tick(now time.Duration) {
	if d.state == StateUninitialized {
		d.init(now)
	}

	delta := max(now-d.ctx.Last, 0)
	d.ctx.Last = now
	d.ctx.Elapsed += delta
	d.stats.Frames++
	d.stats.LastDelta = delta
	d.stats.Elapsed = d.ctx.Elapsed

	d.dev.Clear()
	if !d.drawable() {
		return
	}

	d.dev.UseProgram(d.ctx.Program)
	if err := d.geometry.Bind(d.dev, d.ctx.Program); err != nil {
		d.degrade(err)
		return
	}
	d.dev.BindTexture(d.ctx.Texture)
	if d.texture.Animated() {
		d.texture.Upload(d.dev, d.ctx.Elapsed.Seconds())
	}
	d.dev.DrawArrays(device.PrimitiveTriangles, 0, geometry.VertexCount)
	d.stats.Draws++
}

// init uploads the static geometry and creates the texture exactly once.
func (d *driver) init(now time.Duration) {
	d.ctx.Last = now
	d.state = StateRunning
	d.dev.ClearColor(d.clearColor[0], d.clearColor[1], d.clearColor[2], d.clearColor[3])

	if !d.geometry.Uploaded() {
		if err := d.geometry.Upload(d.dev); err != nil {
			d.degrade(fmt.Errorf("upload geometry: %w", err))
		}
	}
	d.ctx.Buffer = d.geometry.Handle()

	d.texture.Init(d.dev)
	d.ctx.Texture = d.texture.Handle()

	if d.ctx.Program == device.NoProgram {
		if d.allowUnlinkedDraw {
			d.logger.Warn("drawing without a linked program")
		} else {
			d.logger.Warn("no linked program, frames will only clear")
		}
	}
	d.logger.Info("frame driver running", "program", uint32(d.ctx.Program), "buffer", uint32(d.ctx.Buffer), "texture", uint32(d.ctx.Texture))
}

func (d *driver) drawable() bool {
	if d.degraded != nil {
		return false
	}
	return d.ctx.Program != device.NoProgram || d.allowUnlinkedDraw
}

func (d *driver) degrade(err error) {
	if d.degraded == nil {
		d.logger.Error("frame setup failed, drawing disabled", "error", err)
		d.degraded = err
	}
}

func (d *driver) State() State {
	return d.state
}

func (d *driver) Context() RenderContext {
	return d.ctx
}

func (d *driver) Stats() Stats {
	return d.stats
}
