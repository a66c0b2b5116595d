//go:build js && wasm

package config

const defaultBackend = BackendWebGL
