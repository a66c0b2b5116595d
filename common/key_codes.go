package common

import "fmt"

// Key codes delivered by the desktop host. Printable keys use their ASCII value in both GLFW and
// the browser's KeyboardEvent.keyCode; the remaining values are GLFW codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32 // Spacebar (ASCII)
	KeyA     = 65 // A key (ASCII)
	KeyQ     = 81 // Q key (ASCII)
	KeyZ     = 90 // Z key (ASCII)
	Key0     = 48 // 0 key (ASCII)
	Key9     = 57 // 9 key (ASCII)

	KeyEsc        = 256 // Escape key (GLFW)
	KeyEnter      = 257 // Enter key (GLFW)
	KeyBackspace  = 259 // Backspace key (GLFW)
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// Browser KeyboardEvent.keyCode values for keys GLFW numbers differently. They sit below the
// printable range, so they never collide with GLFW codes.
const (
	DOMKeyBackspace = 8  // Backspace (DOM)
	DOMKeyEnter     = 13 // Enter (DOM)
	DOMKeyShift     = 16 // Shift, either side (DOM)
	DOMKeyEsc       = 27 // Escape (DOM)
)

var keyNames = map[uint32]string{
	KeySpace:      "space",
	KeyEsc:        "escape",
	KeyEnter:      "enter",
	KeyBackspace:  "backspace",
	KeyLeftShift:  "left shift",
	KeyRightShift: "right shift",

	DOMKeyBackspace: "backspace",
	DOMKeyEnter:     "enter",
	DOMKeyShift:     "shift",
	DOMKeyEsc:       "escape",
}

// KeyName returns a readable name for a key code, used in input diagnostics.
//
// Parameters:
//   - code: the key code reported by the host
//
// Returns:
//   - string: the letter or digit for printable keys, a lowercase name for known special keys,
//     or "key(N)" otherwise
func KeyName(code uint32) string {
	switch {
	case code >= KeyA && code <= KeyZ, code >= Key0 && code <= Key9:
		return string(rune(code))
	}
	if name, ok := keyNames[code]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", code)
}
