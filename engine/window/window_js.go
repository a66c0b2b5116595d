//go:build js && wasm

package window

import (
	"errors"
	"fmt"
	"syscall/js"
	"time"
)

// canvasWindow holds the browser canvas and the registered JS callbacks.
type canvasWindow struct {
	canvas js.Value

	frameFunc js.Func
	keyDown   js.Func
	keyUp     js.Func

	running bool
	done    chan struct{}
}

// newPlatformWindow locates the canvas, sizes its backing store and installs document key listeners.
func newPlatformWindow(w *engineWindow) error {
	if w.clientAPI == ClientAPIOpenGL {
		return errors.New("desktop OpenGL is not available in the browser")
	}

	doc := js.Global().Get("document")
	canvas := doc.Call("querySelector", w.canvasSelector)
	if canvas.IsNull() || canvas.IsUndefined() {
		return fmt.Errorf("canvas %q not found", w.canvasSelector)
	}
	if w.title != "" {
		doc.Set("title", w.title)
	}

	cw := &canvasWindow{
		canvas: canvas,
		done:   make(chan struct{}),
	}
	w.internalWindow = cw

	// Match the backing store to the displayed size in device pixels.
	ratio := js.Global().Get("devicePixelRatio").Float()
	if ratio <= 0 {
		ratio = 1
	}
	if cssW, cssH := canvas.Get("clientWidth").Int(), canvas.Get("clientHeight").Int(); cssW > 0 && cssH > 0 {
		w.width = int(float64(cssW) * ratio)
		w.height = int(float64(cssH) * ratio)
	}
	canvas.Set("width", w.width)
	canvas.Set("height", w.height)

	// Consumed events suppress the browser default (scrolling on space, find on slash, ...).
	cw.keyDown = js.FuncOf(func(this js.Value, args []js.Value) any {
		e := args[0]
		if w.keyDown(uint32(e.Get("keyCode").Int())) {
			e.Call("preventDefault")
		}
		return nil
	})
	cw.keyUp = js.FuncOf(func(this js.Value, args []js.Value) any {
		e := args[0]
		if w.keyUp(uint32(e.Get("keyCode").Int())) {
			e.Call("preventDefault")
		}
		return nil
	})
	doc.Call("addEventListener", "keydown", cw.keyDown)
	doc.Call("addEventListener", "keyup", cw.keyUp)

	return nil
}

// platformRun schedules frame on every requestAnimationFrame and blocks until the window is closed.
// The rAF timestamp is a DOMHighResTimeStamp in milliseconds, which is monotonic.
func platformRun(w *engineWindow, frame func(now time.Duration)) error {
	if w.internalWindow == nil {
		return errors.New("window is not initialized")
	}
	cw := w.internalWindow.(*canvasWindow)
	cw.running = true

	cw.frameFunc = js.FuncOf(func(this js.Value, args []js.Value) any {
		if !cw.running {
			return nil
		}
		now := time.Duration(args[0].Float() * float64(time.Millisecond))
		if w.clock != nil {
			now = w.clock.Now()
		}
		frame(now)
		js.Global().Call("requestAnimationFrame", cw.frameFunc)
		return nil
	})
	js.Global().Call("requestAnimationFrame", cw.frameFunc)

	<-cw.done
	return nil
}

// platformSwapBuffers is a no-op; the browser composites when the animation frame callback returns.
func platformSwapBuffers(w *engineWindow) {}

func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	return w.internalWindow.(*canvasWindow).running
}

// platformCloseWindow stops the animation loop and removes the key listeners.
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return errors.New("window is not initialized")
	}
	cw := w.internalWindow.(*canvasWindow)
	doc := js.Global().Get("document")
	doc.Call("removeEventListener", "keydown", cw.keyDown)
	doc.Call("removeEventListener", "keyup", cw.keyUp)
	cw.keyDown.Release()
	cw.keyUp.Release()

	wasRunning := cw.running
	cw.running = false
	w.internalWindow = nil
	if wasRunning {
		close(cw.done)
	}
	return nil
}

// Canvas returns the canvas element backing a browser Window.
//
// Parameters:
//   - w: a Window created by NewWindow in the browser
//
// Returns:
//   - js.Value: the canvas element
//   - bool: false if w is not a live browser window
func Canvas(w Window) (js.Value, bool) {
	ew, ok := w.(*engineWindow)
	if !ok || ew.internalWindow == nil {
		return js.Undefined(), false
	}
	return ew.internalWindow.(*canvasWindow).canvas, true
}
