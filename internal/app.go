package internal

import (
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/dmitrymomot/ember/pkg/logger"
	"github.com/dmitrymomot/ember/pkg/mimetype"
	"github.com/dmitrymomot/ember/pkg/view"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// defaultErrorViewsDir is the views subfolder holding status-code views.
const defaultErrorViewsDir = "errors"

// App owns the request dispatch pipeline: the ordered route table, the view
// renderer, the MIME table and the error path. It implements http.Handler
// and is immutable after creation - all configuration is done via New().
type App struct {
	table        routeTable
	dispatch     HandlerFunc
	errorHandler ErrorHandler
	views        *view.Renderer
	errorDir     string
	mimes        mimetype.Table
	logger       *slog.Logger
	middlewares  []Middleware
	handlers     []Handler
	staticMounts []staticConfig
}

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := ember.New(
//	    ember.WithMiddleware(middlewares.Recover()),
//	    ember.WithViews(os.DirFS("views")),
//	    ember.WithStaticFiles("/", os.DirFS("public")),
//	    ember.WithHandlers(handlers.NewDeviceInfo()),
//	)
func New(opts ...Option) *App {
	a := &App{
		logger:   logger.NewNope(), // Default: noop logger (before options)
		mimes:    mimetype.Default(),
		errorDir: defaultErrorViewsDir,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// setupRoutes populates the route table and pre-wraps the dispatch loop in
// the global middleware chain.
func (a *App) setupRoutes() {
	r := &routerAdapter{table: &a.table}

	// Static mounts are registered first: they decline with the
	// pass-through outcome when no file matches, so later routes still
	// get their turn.
	for _, sm := range a.staticMounts {
		r.Use(sm.pattern, staticHandler(sm, a.mimes))
	}

	for _, h := range a.handlers {
		h.Routes(r)
	}

	a.dispatch = wrap(a.dispatchRoutes, a.middlewares...)
}

// ServeHTTP dispatches a single request through the middleware chain and
// the route table, then serializes the terminal outcome or takes the error
// path. Each request runs independently on its own goroutine; no global
// lock serializes requests.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r, a.logger)

	res, err := a.dispatch(c)
	switch {
	case err != nil:
		a.handleError(c, err)
	case res.IsNext():
		// Every route declined (or none matched).
		a.handleError(c, notFound(c.Path()))
	default:
		if err := a.resolve(c, res); err != nil {
			a.handleError(c, err)
		}
	}
}

// dispatchRoutes is the innermost dispatch handler: it walks the route
// table in registration order, invoking each matching route until one
// produces a terminal outcome. Exhaustion surfaces as the pass-through
// outcome, which ServeHTTP converts into a not-found error.
func (a *App) dispatchRoutes(c Context) (Result, error) {
	method, reqPath := c.Method(), c.Path()

	for cursor := 0; ; {
		i, rt := a.table.match(method, reqPath, cursor)
		if rt == nil {
			return Next()
		}

		res, err := rt.handler(c)
		if err != nil {
			return Result{}, err
		}
		if !res.IsNext() {
			return res, nil
		}
		cursor = i + 1
	}
}

// resolve serializes a terminal outcome: a Responder value writes itself, a
// value with a matching view renders as HTML, anything else falls back to
// JSON, and no value at all ends the response with an empty body. A handler
// that already wrote the response is left alone.
func (a *App) resolve(c Context, res Result) error {
	if c.Written() {
		return nil
	}

	v, ok := res.Value()
	if !ok || v == nil {
		return c.NoContent(http.StatusOK)
	}

	if responder, ok := v.(Responder); ok {
		return responder.Respond(c)
	}

	if a.views != nil {
		if out, found := a.views.Render(c.Path(), v); found {
			return c.HTML(http.StatusOK, out)
		}
	}

	return c.JSON(http.StatusOK, v)
}

// handleError funnels every dispatch failure through a single path: log the
// error, and unless the response already started, render the matching error
// view (or the error's message) with the proper status code. Expected
// errors keep their own status and message; anything untyped becomes an
// opaque 500 so internals never leak to clients.
func (a *App) handleError(c Context, err error) {
	httpErr := AsHTTPError(err)

	status := http.StatusInternalServerError
	body := "Server Error"
	if httpErr != nil {
		status = httpErr.Code
		body = httpErr.Message
	}

	c.LogError("request failed",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Int("status", status),
		slog.Any("error", err),
	)

	// A response that already started cannot be corrected post-hoc.
	if c.Written() {
		return
	}

	if a.errorHandler != nil {
		if hErr := a.errorHandler(c, err); hErr != nil {
			c.LogError("error handler failed", slog.Any("error", hErr))
		}
		return
	}

	if a.views != nil {
		name := path.Join(a.errorDir, strconv.Itoa(status))
		data := map[string]any{
			"error": map[string]any{
				"code":    strconv.Itoa(status),
				"message": body,
				"path":    c.Path(),
			},
		}
		if out, ok := a.views.Render(name, data); ok {
			body = out
		}
	}

	_ = c.HTML(status, body)
}

// Run starts the HTTP server and blocks until shutdown. The listener is
// bound before Run reports success, so a bind failure is returned
// immediately.
//
// Example:
//
//	app := ember.New(
//	    ember.WithHandlers(handlers.NewDeviceInfo()),
//	)
//	err := app.Run(":8080", ember.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}
