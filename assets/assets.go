// Package assets embeds the default triangle shaders for every device backend.
package assets

import (
	"embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-triangle/config"
)

//go:embed shaders
var shaderFS embed.FS

// ShaderPair is the vertex and fragment source of one program.
type ShaderPair struct {
	Vertex   string
	Fragment string
}

var shaderFiles = map[config.Backend][2]string{
	config.BackendWebGL:  {"shaders/triangle_es300.vert", "shaders/triangle_es300.frag"},
	config.BackendOpenGL: {"shaders/triangle_410.vert", "shaders/triangle_410.frag"},
	config.BackendWebGPU: {"shaders/triangle.vert.wgsl", "shaders/triangle.frag.wgsl"},
}

// Sources returns the embedded shaders written in the shading language of backend.
//
// Parameters:
//   - backend: the device backend the program will be built on
//
// Returns:
//   - ShaderPair: the vertex and fragment sources
//   - error: error if no shaders exist for backend
func Sources(backend config.Backend) (ShaderPair, error) {
	files, ok := shaderFiles[backend]
	if !ok {
		return ShaderPair{}, fmt.Errorf("no embedded shaders for backend %q", backend)
	}
	vs, err := shaderFS.ReadFile(files[0])
	if err != nil {
		return ShaderPair{}, fmt.Errorf("read %s: %w", files[0], err)
	}
	fs, err := shaderFS.ReadFile(files[1])
	if err != nil {
		return ShaderPair{}, fmt.Errorf("read %s: %w", files[1], err)
	}
	return ShaderPair{Vertex: string(vs), Fragment: string(fs)}, nil
}
