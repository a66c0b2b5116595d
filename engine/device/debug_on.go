//go:build gpudebug

package device

// DebugDefault is the default for per-call error checking. Builds tagged gpudebug check every call.
const DebugDefault = true
