//go:build !gpudebug

package device

// DebugDefault is the default for per-call error checking. Build with -tags gpudebug to turn it on.
const DebugDefault = false
