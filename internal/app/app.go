package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/ctxlog"
	"github.com/specialistvlad/lootgraph/internal/loader"
	"github.com/specialistvlad/lootgraph/internal/metrics"
	"github.com/specialistvlad/lootgraph/internal/store"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	store      *store.Store
	httpServer *http.Server
}

// Option customizes an App.
type Option func(*App)

// WithLoader replaces the default multi-format loader.
func WithLoader(l config.Loader) Option {
	return func(a *App) { a.loader = l }
}

// NewApp is the constructor for the main application. It returns an App with
// its own isolated logger and metrics registry.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New()
	m.MustRegister(reg)

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader.New(),
		registry: reg,
		metrics:  m,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Store returns the store built by the last successful Run, or nil.
func (a *App) Store() *store.Store {
	return a.store
}

// Context returns ctx carrying the app logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
