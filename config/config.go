package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
)

// Backend names a device implementation.
type Backend string

const (
	BackendWebGL  Backend = "webgl"
	BackendOpenGL Backend = "opengl"
	BackendWebGPU Backend = "webgpu"
)

// Format is a configuration file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned when a file extension maps to no supported encoding.
var ErrUnknownFormat = errors.New("unknown config format")

// Config is the full engine configuration. Zero values are filled by normalize.
type Config struct {
	Window    WindowConfig   `yaml:"window" toml:"window"`
	Backend   Backend        `yaml:"backend" toml:"backend"`
	Debug     DebugConfig    `yaml:"debug" toml:"debug"`
	Texture   TextureConfig  `yaml:"texture" toml:"texture"`
	Geometry  GeometryConfig `yaml:"geometry" toml:"geometry"`
	Program   ProgramConfig  `yaml:"program" toml:"program"`
	Shaders   ShaderConfig   `yaml:"shaders" toml:"shaders"`
	Input     InputConfig    `yaml:"input" toml:"input"`
	Profiling bool           `yaml:"profiling" toml:"profiling"`
}

type WindowConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

type DebugConfig struct {
	// CheckErrors queries the device error flag after every call.
	CheckErrors bool `yaml:"checkErrors" toml:"checkErrors"`
}

type TextureConfig struct {
	Animate bool `yaml:"animate" toml:"animate"`
}

type GeometryConfig struct {
	// Locations is "fixed" or "byName".
	Locations string `yaml:"locations" toml:"locations"`
}

type ProgramConfig struct {
	AllowUnlinkedDraw bool `yaml:"allowUnlinkedDraw" toml:"allowUnlinkedDraw"`
	AbortOnFailure    bool `yaml:"abortOnFailure" toml:"abortOnFailure"`
}

// ShaderConfig holds optional paths overriding the embedded shader sources.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex,omitempty" toml:"vertex,omitempty"`
	Fragment string `yaml:"fragment,omitempty" toml:"fragment,omitempty"`
}

type InputConfig struct {
	// Async moves key event logging onto a worker.
	Async bool `yaml:"async" toml:"async"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-triangle",
			Width:  1280,
			Height: 720,
		},
		Backend:  defaultBackend,
		Debug:    DebugConfig{CheckErrors: device.DebugDefault},
		Texture:  TextureConfig{Animate: true},
		Geometry: GeometryConfig{Locations: "fixed"},
	}
}

func (c *Config) normalize() {
	d := Default()
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width <= 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = d.Window.Height
	}
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	c.Backend = Backend(strings.ToLower(string(c.Backend)))
	if c.Geometry.Locations == "" {
		c.Geometry.Locations = d.Geometry.Locations
	}
}

// Validate reports settings no component can honor.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendWebGL, BackendOpenGL, BackendWebGPU:
	default:
		return fmt.Errorf("unsupported backend %q", c.Backend)
	}
	switch strings.ToLower(c.Geometry.Locations) {
	case "fixed", "byname", "by_name", "name":
	default:
		return fmt.Errorf("unsupported attribute location strategy %q", c.Geometry.Locations)
	}
	return nil
}

// FormatFor maps a file extension to its encoding.
//
// Parameters:
//   - path: a file name ending in .yaml, .yml or .toml
//
// Returns:
//   - Format: the matching encoding
//   - error: ErrUnknownFormat for any other extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Parse decodes data on top of Default, so keys missing from data keep their defaults.
//
// Parameters:
//   - data: the encoded configuration
//   - format: FormatYAML or FormatTOML
//
// Returns:
//   - Config: the normalized configuration
//   - error: error if decoding or validation fails
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse %s config: %w", format, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a configuration file, choosing the decoder by extension.
// An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	format, err := FormatFor(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, format)
}

// Write encodes cfg to path in the format implied by its extension.
func Write(path string, cfg Config) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	cfg.normalize()

	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
