package window

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-triangle/engine/frame"
)

// Host is the event loop the engine runs inside. It owns the frame callback cadence and delivers
// key events; frame and key callbacks are never invoked concurrently.
type Host interface {
	// Run drives the frame callback until the host is closed.
	// Blocks for the lifetime of the loop.
	//
	// Parameters:
	//   - frame: called once per display frame with a monotonic timestamp
	//
	// Returns:
	//   - error: error if the loop could not start
	Run(frame func(now time.Duration)) error

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: receives the key code and returns whether the event was consumed
	SetKeyDownCallback(callback func(keyCode uint32) bool)

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: receives the key code and returns whether the event was consumed
	SetKeyUpCallback(callback func(keyCode uint32) bool)

	// Close stops the loop and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error
}

// ClientAPI selects which graphics API the platform window prepares a context for.
type ClientAPI int

const (
	// ClientAPINone creates no context; the device brings its own (WebGPU).
	ClientAPINone ClientAPI = iota

	// ClientAPIOpenGL creates an OpenGL 4.1 core context and makes it current.
	ClientAPIOpenGL

	// ClientAPIWebGL2 requests a WebGL2 context from the canvas.
	ClientAPIWebGL2
)

// Window is a platform Host with a drawable surface.
type Window interface {
	Host

	// SetResizeCallback sets the function called when the drawable is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SwapBuffers presents the back buffer of an OpenGL context. No-op for other client APIs.
	SwapBuffers()

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Width returns the current drawable width in pixels.
	Width() int

	// Height returns the current drawable height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, platform state, and event callbacks.
type engineWindow struct {
	// title is the window title (desktop) or document title (browser).
	title string

	// width is the current drawable width in pixels.
	width int

	// height is the current drawable height in pixels.
	height int

	// clientAPI is the context type prepared for the device.
	clientAPI ClientAPI

	// canvasSelector locates the canvas element in the browser.
	canvasSelector string

	// swapInterval is the OpenGL swap interval; 1 waits for vsync.
	swapInterval int

	// clock supplies frame timestamps; nil uses the platform timer.
	clock frame.Clock

	// internalWindow holds the platform-specific window data.
	internalWindow any

	onResize  func(width, height int)
	onKeyDown func(keyCode uint32) bool
	onKeyUp   func(keyCode uint32) bool
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:          "oxy-triangle",
		width:          1280,
		height:         720,
		clientAPI:      ClientAPINone,
		canvasSelector: "#canvas",
		swapInterval:   1,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32) bool) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32) bool) {
	w.onKeyUp = callback
}

func (w *engineWindow) Run(frame func(now time.Duration)) error {
	return platformRun(w, frame)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// keyDown and keyUp route platform key events to the registered callbacks.
// Unhandled events are reported as not consumed.
func (w *engineWindow) keyDown(code uint32) bool {
	if w.onKeyDown == nil {
		return false
	}
	return w.onKeyDown(code)
}

func (w *engineWindow) keyUp(code uint32) bool {
	if w.onKeyUp == nil {
		return false
	}
	return w.onKeyUp(code)
}

func (w *engineWindow) resize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
