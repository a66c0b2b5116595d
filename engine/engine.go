package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
	"github.com/Carmen-Shannon/oxy-triangle/engine/frame"
	"github.com/Carmen-Shannon/oxy-triangle/engine/input"
	"github.com/Carmen-Shannon/oxy-triangle/engine/profiler"
	"github.com/Carmen-Shannon/oxy-triangle/engine/window"
)

var (
	// ErrNoHost is returned by Run when no host was configured.
	ErrNoHost = errors.New("engine has no host")

	// ErrNoDriver is returned by Run when no frame driver was configured.
	ErrNoDriver = errors.New("engine has no frame driver")

	// ErrNoDevice is returned by Assemble when no device is given.
	ErrNoDevice = errors.New("engine has no device")
)

// resizable is implemented by hosts that report drawable size changes.
type resizable interface {
	SetResizeCallback(callback func(width, height int))
}

// engine implements the Engine interface.
// Every callback runs on the host's thread; the engine starts no goroutines of its own.
type engine struct {
	host     window.Host
	dev      device.Device
	driver   frame.Driver
	notifier input.Notifier
	logger   *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	// keySinks receive every key event after the notifier.
	keySinks []input.Sink

	frameCallback func(ctx frame.RenderContext)
	shutdown      []func()

	running  bool
	quitOnce sync.Once
}

// Engine is the main entry point for the engine.
// It runs the frame driver inside the host loop and routes host key events to the input notifier.
type Engine interface {
	// Host returns the event loop the engine runs inside.
	//
	// Returns:
	//   - window.Host: the host instance
	Host() window.Host

	// Driver returns the frame driver ticked once per host frame.
	//
	// Returns:
	//   - frame.Driver: the driver instance
	Driver() frame.Driver

	// Notifier returns the notifier receiving host key events.
	//
	// Returns:
	//   - input.Notifier: the notifier, or nil if key events are left to the host
	Notifier() input.Notifier

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function called after each frame is drawn and presented.
	//
	// Parameters:
	//   - callback: receives a copy of the render context for the frame just drawn
	SetFrameCallback(callback func(ctx frame.RenderContext))

	// Running reports whether Run is currently inside the host loop.
	//
	// Returns:
	//   - bool: true while the host loop is active
	Running() bool

	// Run installs the key callbacks and blocks in the host loop until it ends.
	// The host is closed and shutdown hooks are run before Run returns.
	//
	// Returns:
	//   - error: ErrNoHost or ErrNoDriver if the engine is incomplete, or the host loop error
	Run() error

	// Quit closes the host, which ends the loop at the next opportunity.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
// When the host reports resizes and the device can be resized, the two are connected.
//
// Parameters:
//   - options: functional options for engine configuration (host, driver, notifier, profiling, ...)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger: slog.Default(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if rh, ok := e.host.(resizable); ok {
		if rd, ok := e.dev.(device.Resizer); ok {
			rh.SetResizeCallback(func(width, height int) {
				e.logger.Debug("surface resized", "width", width, "height", height)
				rd.Resize(width, height)
			})
		}
	}

	return e
}

func (e *engine) Host() window.Host {
	return e.host
}

func (e *engine) Driver() frame.Driver {
	return e.driver
}

func (e *engine) Notifier() input.Notifier {
	return e.notifier
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(ctx frame.RenderContext)) {
	e.frameCallback = callback
}

func (e *engine) Running() bool {
	return e.running
}

func (e *engine) Run() error {
	if e.host == nil {
		return ErrNoHost
	}
	if e.driver == nil {
		return ErrNoDriver
	}

	if e.notifier != nil || len(e.keySinks) > 0 {
		e.host.SetKeyDownCallback(func(code uint32) bool { return e.key(input.Down, code) })
		e.host.SetKeyUpCallback(func(code uint32) bool { return e.key(input.Up, code) })
	}

	e.running = true
	err := e.host.Run(e.frame)
	e.running = false

	e.Quit()
	for _, fn := range e.shutdown {
		fn()
	}

	if err != nil {
		return fmt.Errorf("host loop: %w", err)
	}
	return nil
}

// key forwards a host key event to the notifier and then to every extra sink.
// The event is consumed if the notifier consumed it or any extra sink saw it.
func (e *engine) key(direction input.Direction, code uint32) bool {
	consumed := len(e.keySinks) > 0
	if e.notifier != nil {
		if direction == input.Down {
			consumed = e.notifier.KeyDown(code) || consumed
		} else {
			consumed = e.notifier.KeyUp(code) || consumed
		}
	}
	for _, s := range e.keySinks {
		s.Notify(input.Event{Direction: direction, Code: code})
	}
	return consumed
}

// Quit closes the host exactly once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if e.host == nil {
			return
		}
		if err := e.host.Close(); err != nil {
			e.logger.Warn("closing host", "error", err)
		}
	})
}

// frame is the host callback: tick the driver, present, notify the frame callback, then profile.
// A panic inside the frame is logged and ends the loop instead of unwinding through the host.
func (e *engine) frame(now time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("frame recovered from panic", "panic", fmt.Sprint(r))
			e.Quit()
		}
	}()

	e.driver.Tick(now)

	if p, ok := e.dev.(device.Presenter); ok {
		p.Present()
	}

	if e.frameCallback != nil {
		e.frameCallback(e.driver.Context())
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}
