package ember

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/ember/internal"
)

// Run options

// Logger sets the logger used by the server runtime.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the maximum duration for graceful shutdown.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// BaseContext sets the base context for the server lifetime. Cancelling it
// triggers graceful shutdown, same as an interrupt signal.
func BaseContext(ctx context.Context) RunOption {
	return internal.BaseContext(ctx)
}

// OnStartup registers a hook that runs after the listener is bound and
// before requests are served.
func OnStartup(fn func(context.Context) error) RunOption {
	return internal.OnStartup(fn)
}

// OnShutdown registers a hook that runs during graceful shutdown.
func OnShutdown(fn func(context.Context) error) RunOption {
	return internal.OnShutdown(fn)
}
