package shader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

// MaxInfoLogLength bounds every compile and link log carried in an error.
const MaxInfoLogLength = 4096

// CompileError is returned when a single stage fails to compile.
type CompileError struct {
	Stage device.ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("error compiling %s shader: %s", e.Stage, e.Log)
}

// LinkError is returned when both stages compiled but the program failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("error linking program: %s", e.Log)
}

// Builder compiles and links shader programs on a device.
type Builder interface {
	// Build compiles the vertex and fragment sources and links them into a program.
	// Both stages are always compiled so every compile diagnostic is reported in one pass.
	//
	// Parameters:
	//   - vertexSource: source text of the vertex stage
	//   - fragmentSource: source text of the fragment stage
	//
	// Returns:
	//   - device.Program: the linked program, or device.NoProgram on any failure
	//   - error: nil, one or more *CompileError joined together, or a *LinkError
	Build(vertexSource, fragmentSource string) (device.Program, error)
}

type builder struct {
	dev    device.Device
	label  string
	logger *slog.Logger
}

var _ Builder = &builder{}

// NewBuilder creates a Builder bound to dev.
//
// Parameters:
//   - dev: the device the program is created on
//   - options: functional options applied in order
//
// Returns:
//   - Builder: the configured builder
func NewBuilder(dev device.Device, options ...BuilderOption) Builder {
	b := &builder{
		dev:    dev,
		label:  "program",
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// Build is shorthand for NewBuilder(dev).Build(vertexSource, fragmentSource).
func Build(dev device.Device, vertexSource, fragmentSource string) (device.Program, error) {
	return NewBuilder(dev).Build(vertexSource, fragmentSource)
}

func (b *builder) Build(vertexSource, fragmentSource string) (device.Program, error) {
	vs, vErr := b.compile(device.StageVertex, vertexSource)
	fs, fErr := b.compile(device.StageFragment, fragmentSource)
	switch {
	case vErr != nil && fErr != nil:
		return device.NoProgram, errors.Join(vErr, fErr)
	case vErr != nil:
		return device.NoProgram, vErr
	case fErr != nil:
		return device.NoProgram, fErr
	}

	p := b.dev.CreateProgram()
	b.dev.AttachShader(p, vs)
	b.dev.AttachShader(p, fs)
	b.dev.LinkProgram(p)
	if !b.dev.ProgramLinked(p) {
		log := boundLog(b.dev.ProgramInfoLog(p))
		b.logger.Error("error linking program", "label", b.label, "log", log)
		return device.NoProgram, &LinkError{Log: log}
	}

	b.logger.Debug("program linked", "label", b.label, "program", uint32(p))
	return p, nil
}

func (b *builder) compile(stage device.ShaderStage, source string) (device.Shader, error) {
	s := b.dev.CreateShader(stage)
	b.dev.ShaderSource(s, source)
	b.dev.CompileShader(s)
	if !b.dev.ShaderCompiled(s) {
		log := boundLog(b.dev.ShaderInfoLog(s))
		b.logger.Error("error compiling shader", "label", b.label, "stage", stage.String(), "log", log)
		return device.NoShader, &CompileError{Stage: stage, Log: log}
	}
	return s, nil
}

// boundLog trims trailing terminators and caps the log at MaxInfoLogLength bytes.
func boundLog(log string) string {
	log = strings.TrimRight(log, "\x00 \r\n")
	if len(log) > MaxInfoLogLength {
		log = log[:MaxInfoLogLength]
	}
	return log
}

// LoadSource reads a shader stage from disk.
//
// Parameters:
//   - path: file path of the shader source
//
// Returns:
//   - string: the source text
//   - error: wrapped read error
func LoadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader %s: %w", path, err)
	}
	return string(data), nil
}
