package engine

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-triangle/assets"
	"github.com/Carmen-Shannon/oxy-triangle/config"
	"github.com/Carmen-Shannon/oxy-triangle/engine/device"
	"github.com/Carmen-Shannon/oxy-triangle/engine/frame"
	"github.com/Carmen-Shannon/oxy-triangle/engine/geometry"
	"github.com/Carmen-Shannon/oxy-triangle/engine/input"
	"github.com/Carmen-Shannon/oxy-triangle/engine/shader"
	"github.com/Carmen-Shannon/oxy-triangle/engine/texture"
	"github.com/Carmen-Shannon/oxy-triangle/engine/window"
)

// Assemble builds the triangle program and every per-run component from cfg and returns an Engine
// ready to Run on host. A shader build failure is logged and leaves the driver clearing only, unless
// cfg.Program.AbortOnFailure is set.
//
// Parameters:
//   - cfg: the engine configuration
//   - dev: the device for cfg.Backend; it is wrapped with the error-check layer when cfg.Debug.CheckErrors is set
//   - host: the event loop to run inside
//   - logger: the structured logger shared by all components (nil uses slog.Default)
//   - options: extra engine options applied after the configured ones
//
// Returns:
//   - Engine: the assembled engine
//   - error: ErrNoDevice, ErrNoHost, a shader loading error, or the build error when aborting on failure
func Assemble(cfg config.Config, dev device.Device, host window.Host, logger *slog.Logger, options ...EngineBuilderOption) (Engine, error) {
	if dev == nil {
		return nil, ErrNoDevice
	}
	if host == nil {
		return nil, ErrNoHost
	}
	if logger == nil {
		logger = slog.Default()
	}

	dev = device.Wrap(dev, cfg.Debug.CheckErrors, func(err *device.CallError) {
		logger.Warn("gpu call failed", "call", err.Call, "code", err.Code.String())
	})

	sources, err := shaderSources(cfg)
	if err != nil {
		return nil, err
	}

	program, err := shader.NewBuilder(dev,
		shader.WithLabel("triangle"),
		shader.WithLogger(logger),
	).Build(sources.Vertex, sources.Fragment)
	if err != nil {
		if cfg.Program.AbortOnFailure {
			return nil, fmt.Errorf("build triangle program: %w", err)
		}
		logger.Error("triangle program unusable, continuing without it", "error", err)
	}

	strategy, err := geometry.ParseLocationStrategy(cfg.Geometry.Locations)
	if err != nil {
		return nil, err
	}
	geom := geometry.NewBuffer(geometry.WithLocationStrategy(strategy))
	tex := texture.NewGenerator(texture.WithAnimation(cfg.Texture.Animate))

	driver := frame.NewDriver(dev, program, geom, tex,
		frame.WithUnlinkedDraw(cfg.Program.AllowUnlinkedDraw),
		frame.WithLogger(logger),
	)

	var sink input.Sink = input.NewLogSink(logger)
	var hooks []EngineBuilderOption
	if cfg.Input.Async {
		async := input.NewAsyncSink(sink, 0)
		sink = async
		hooks = append(hooks, WithShutdown(async.Close))
	}

	opts := []EngineBuilderOption{
		WithHost(host),
		WithDevice(dev),
		WithDriver(driver),
		WithNotifier(input.NewNotifier(sink)),
		WithProfiling(cfg.Profiling),
		WithLogger(logger),
	}
	opts = append(opts, hooks...)
	opts = append(opts, options...)

	logger.Info("engine assembled",
		"backend", string(cfg.Backend),
		"checkErrors", cfg.Debug.CheckErrors,
		"locations", strategy.String(),
		"animate", cfg.Texture.Animate,
	)
	return NewEngine(opts...), nil
}

// shaderSources returns the embedded shaders for the backend with any configured file overrides applied.
func shaderSources(cfg config.Config) (assets.ShaderPair, error) {
	pair, err := assets.Sources(cfg.Backend)
	if err != nil {
		return assets.ShaderPair{}, err
	}
	if cfg.Shaders.Vertex != "" {
		if pair.Vertex, err = shader.LoadSource(cfg.Shaders.Vertex); err != nil {
			return assets.ShaderPair{}, err
		}
	}
	if cfg.Shaders.Fragment != "" {
		if pair.Fragment, err = shader.LoadSource(cfg.Shaders.Fragment); err != nil {
			return assets.ShaderPair{}, err
		}
	}
	return pair, nil
}
