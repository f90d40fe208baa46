package internal

import (
	"context"
	"log/slog"
	"time"
)

// runConfig holds configuration collected from RunOptions.
type runConfig struct {
	logger          *slog.Logger
	baseCtx         context.Context
	shutdownTimeout time.Duration
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
}

// RunOption configures the server runtime.
type RunOption func(*runConfig)

// buildRunConfig applies options to a fresh runConfig.
func buildRunConfig(opts ...RunOption) runConfig {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Logger sets the logger used by the server runtime.
func Logger(l *slog.Logger) RunOption {
	return func(cfg *runConfig) {
		cfg.logger = l
	}
}

// ShutdownTimeout sets the maximum duration for graceful shutdown.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(cfg *runConfig) {
		cfg.shutdownTimeout = d
	}
}

// BaseContext sets the base context for the server lifetime. Cancelling it
// triggers graceful shutdown, same as an interrupt signal.
func BaseContext(ctx context.Context) RunOption {
	return func(cfg *runConfig) {
		cfg.baseCtx = ctx
	}
}

// OnStartup registers a hook that runs after the listener is bound and
// before requests are served. A hook error aborts startup.
func OnStartup(fn func(context.Context) error) RunOption {
	return func(cfg *runConfig) {
		cfg.startupHooks = append(cfg.startupHooks, fn)
	}
}

// OnShutdown registers a hook that runs during graceful shutdown, after the
// HTTP server stops accepting requests.
func OnShutdown(fn func(context.Context) error) RunOption {
	return func(cfg *runConfig) {
		cfg.shutdownHooks = append(cfg.shutdownHooks, fn)
	}
}
