package window

import (
	"errors"
	"time"
)

// ErrHostClosed is returned by ManualHost.Run after Close.
var ErrHostClosed = errors.New("host closed")

// ManualHost is a Host driven by explicit timestamps instead of a display. Run feeds the configured
// timestamps to the frame callback in order, stopping early if Close is called from inside a callback.
type ManualHost struct {
	stamps []time.Duration

	onKeyDown func(keyCode uint32) bool
	onKeyUp   func(keyCode uint32) bool
	onResize  func(width, height int)

	closed bool
	frames int
}

var _ Host = &ManualHost{}

// NewManualHost creates a ManualHost that will run one frame per timestamp.
func NewManualHost(stamps ...time.Duration) *ManualHost {
	return &ManualHost{stamps: stamps}
}

func (h *ManualHost) Run(frame func(now time.Duration)) error {
	if h.closed {
		return ErrHostClosed
	}
	for _, now := range h.stamps {
		if h.closed {
			break
		}
		frame(now)
		h.frames++
	}
	return nil
}

func (h *ManualHost) SetKeyDownCallback(callback func(keyCode uint32) bool) {
	h.onKeyDown = callback
}

func (h *ManualHost) SetKeyUpCallback(callback func(keyCode uint32) bool) {
	h.onKeyUp = callback
}

func (h *ManualHost) SetResizeCallback(callback func(width, height int)) {
	h.onResize = callback
}

func (h *ManualHost) Close() error {
	h.closed = true
	return nil
}

// PressKey delivers a key down event and reports whether it was consumed.
func (h *ManualHost) PressKey(code uint32) bool {
	if h.onKeyDown == nil {
		return false
	}
	return h.onKeyDown(code)
}

// ReleaseKey delivers a key up event and reports whether it was consumed.
func (h *ManualHost) ReleaseKey(code uint32) bool {
	if h.onKeyUp == nil {
		return false
	}
	return h.onKeyUp(code)
}

// Resize reports a new surface size to the resize callback.
func (h *ManualHost) Resize(width, height int) {
	if h.onResize != nil {
		h.onResize(width, height)
	}
}

// Frames returns how many frames Run has delivered.
func (h *ManualHost) Frames() int {
	return h.frames
}

// Closed reports whether Close was called.
func (h *ManualHost) Closed() bool {
	return h.closed
}
