package internal

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/ember/pkg/mimetype"
	"github.com/dmitrymomot/ember/pkg/view"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided and wraps the whole dispatch
// loop, so it runs once per request regardless of how many routes decline.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup; the order of
// handlers (and of the routes inside each) is the dispatch priority.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithViews configures the view renderer over the given filesystem.
// Views are .html files resolved by request path ("/" maps to "index");
// error views live in a subfolder named by status code (see
// WithErrorViewsDir).
//
// Example:
//
//	//go:embed views
//	var views embed.FS
//
//	ember.New(
//	    ember.WithViews(views, "views"),
//	)
func WithViews(fsys fs.FS, subDir string, opts ...view.Option) Option {
	return func(a *App) {
		if subDir != "" && subDir != "." {
			sub, err := fs.Sub(fsys, subDir)
			if err != nil {
				panic(err)
			}
			fsys = sub
		}
		a.views = view.New(fsys, opts...)
	}
}

// WithErrorViewsDir sets the views subfolder searched for status-code error
// views (e.g. "errors/404"). Defaults to "errors".
func WithErrorViewsDir(dir string) Option {
	return func(a *App) {
		if dir != "" {
			a.errorDir = dir
		}
	}
}

// WithMIMETypes replaces the extension-to-MIME-type table used by static
// file mounts. Defaults to mimetype.Default().
func WithMIMETypes(t mimetype.Table) Option {
	return func(a *App) {
		if t != nil {
			a.mimes = t
		}
	}
}

// WithStaticFiles mounts a static file handler at the given path prefix.
// The handler prefers gzip-precompressed siblings (<path>.gz), sets
// Content-Length and Content-Type, and declines the request when no file
// matches so later routes are still tried.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	ember.New(
//	    ember.WithStaticFiles("/", assets, ember.WithStaticSubDir("public")),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, opts ...StaticOption) Option {
	return func(a *App) {
		cfg := staticConfig{
			fsys:       fsys,
			pattern:    pattern,
			defaultDoc: DefaultDocument,
		}
		for _, opt := range opts {
			opt(&cfg)
		}
		a.staticMounts = append(a.staticMounts, cfg)
	}
}

// WithStaticSubDir serves files from a subdirectory of the mount's
// filesystem, which is convenient with embed.FS roots.
func WithStaticSubDir(subDir string) StaticOption {
	return func(cfg *staticConfig) {
		if subDir == "" || subDir == "." {
			return
		}
		sub, err := fs.Sub(cfg.fsys, subDir)
		if err != nil {
			panic(err)
		}
		cfg.fsys = sub
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error and the response has not
// started yet; it replaces the default error-view rendering.
//
// Example:
//
//	ember.WithErrorHandler(func(c ember.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithLogger sets the logger used by the app and exposed to handlers via
// Context. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
