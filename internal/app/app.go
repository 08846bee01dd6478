package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/vk/graphsolver/internal/config"
	"github.com/vk/graphsolver/internal/ctxlog"
	"github.com/vk/graphsolver/internal/environment"
	"github.com/vk/graphsolver/internal/registry"
	"github.com/vk/graphsolver/internal/scheduler"
	"github.com/vk/graphsolver/modules/arithmetic"
	"github.com/vk/graphsolver/modules/constraints"
	"github.com/vk/graphsolver/modules/fitness"
)

const (
	defaultTopN             = 10
	defaultProgressInterval = time.Second
)

// coreModules is the definitive list of all modules that are compiled into
// the graphsolver binary.
var coreModules = []registry.Module{
	&arithmetic.Module{},
	&constraints.Module{},
	&fitness.Module{},
}

// settings are the effective search settings after merging the command line
// with the problem's search block.
type settings struct {
	workers          int
	maxSolutions     int64
	maxProcessed     int64
	timeout          time.Duration
	progressInterval time.Duration
	topN             int
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	model    *config.Model
	env      *environment.Environment
	settings settings

	// tree is published once the search starts so the stats endpoint can
	// read it.
	tree       atomic.Pointer[scheduler.Tree]
	started    time.Time
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads the problem,
// validates it against the registered modules and builds the environment the
// search will run against.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.ProblemPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem: %w", err)
	}
	logger.Debug("Problem loaded and translated into unified model.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.ValidateModel(ctx, model); err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		model:    model,
		settings: resolveSettings(cfg, model.Search),
	}
	if a.env, err = a.buildEnvironment(ctx); err != nil {
		return nil, fmt.Errorf("failed to build environment: %w", err)
	}
	logger.Debug("Environment built.", "node_types", len(a.env.NodeTypes()), "libraries", a.env.Libraries())
	return a, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Environment returns the environment built from the problem.
func (a *App) Environment() *environment.Environment {
	return a.env
}

func resolveSettings(cfg *Config, search *config.Search) settings {
	if search == nil {
		search = &config.Search{}
	}
	return settings{
		workers:          firstPositive(cfg.Workers, search.Workers, runtime.NumCPU()),
		maxSolutions:     int64(firstPositive(cfg.MaxSolutions, search.MaxSolutions)),
		maxProcessed:     int64(firstPositive(cfg.MaxProcessed, search.MaxProcessed)),
		timeout:          firstPositive(cfg.Timeout, search.Timeout),
		progressInterval: firstPositive(cfg.ProgressInterval, defaultProgressInterval),
		topN:             firstPositive(cfg.TopN, defaultTopN),
	}
}

func firstPositive[T int | time.Duration](vals ...T) T {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
