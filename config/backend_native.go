//go:build !js

package config

const defaultBackend = BackendOpenGL
