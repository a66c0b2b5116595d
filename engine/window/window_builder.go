package window

import "github.com/Carmen-Shannon/oxy-triangle/engine/frame"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithClientAPI selects the graphics context the window prepares.
//
// Parameters:
//   - api: ClientAPINone for WebGPU, ClientAPIOpenGL for desktop GL, ClientAPIWebGL2 in the browser
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithClientAPI(api ClientAPI) WindowBuilderOption {
	return func(w *engineWindow) {
		w.clientAPI = api
	}
}

// WithCanvas sets the CSS selector of the canvas element used in the browser.
//
// Parameters:
//   - selector: a document.querySelector selector such as "#canvas"
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithCanvas(selector string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.canvasSelector = selector
	}
}

// WithSwapInterval sets the OpenGL swap interval. 0 disables vsync.
//
// Parameters:
//   - interval: number of display refreshes to wait per swap
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSwapInterval(interval int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.swapInterval = interval
	}
}

// WithClock replaces the platform timer that stamps each frame.
//
// Parameters:
//   - clock: the monotonic clock read once per frame
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithClock(clock frame.Clock) WindowBuilderOption {
	return func(w *engineWindow) {
		w.clock = clock
	}
}
