package ember

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/ember/internal"
	"github.com/dmitrymomot/ember/pkg/logger"
	"github.com/dmitrymomot/ember/pkg/mimetype"
	"github.com/dmitrymomot/ember/pkg/view"
)

// Type aliases - public API
type (
	// App owns the request dispatch pipeline and the server lifecycle.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Result is the tagged outcome of a handler invocation.
	Result = internal.Result

	// Responder is the escape hatch for handlers that serialize themselves.
	Responder = internal.Responder

	// HTTPError is an intentionally raised, status-coded failure.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// StaticOption configures a static file mount.
	StaticOption = internal.StaticOption

	// ResponseWriter wraps http.ResponseWriter with write tracking.
	ResponseWriter = internal.ResponseWriter

	// MIMETable maps file extensions to MIME types for static serving.
	MIMETable = mimetype.Table

	// ViewRenderer lazily loads and renders {dotted.key} HTML views.
	ViewRenderer = view.Renderer

	// ContextExtractor extracts a slog attribute from context.
	// Used with logger.Decorate to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := ember.New(
//	    ember.WithMiddleware(middlewares.Recover()),
//	    ember.WithViews(os.DirFS("views"), ""),
//	    ember.WithStaticFiles("/", os.DirFS("public")),
//	    ember.WithHandlers(handlers.NewDeviceInfo()),
//	)
//
//	err := app.Run(":8080", ember.Logger(slog))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Handler outcomes

// Next returns the pass-through outcome: the handler declined the request
// and dispatch continues with the next matching route.
func Next() (Result, error) {
	return internal.Next()
}

// Done returns the terminal outcome with no value to serialize.
func Done() (Result, error) {
	return internal.Done()
}

// Data returns the terminal outcome carrying a value for the serializer.
func Data(v any) (Result, error) {
	return internal.Data(v)
}

// Errors

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// ErrBadRequest creates a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrNotFound creates a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrInternal creates a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// WithError attaches an underlying error for logging.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithPath records the request path that produced the error.
func WithPath(path string) HTTPErrorOption {
	return internal.WithPath(path)
}

// IsHTTPError reports whether err is an *HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts the HTTPError from an error if present.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Registration order is the dispatch priority.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithViews configures the view renderer over the given filesystem.
// Pass an empty subDir to use the filesystem root directly.
func WithViews(fsys fs.FS, subDir string, opts ...view.Option) Option {
	return internal.WithViews(fsys, subDir, opts...)
}

// WithErrorViewsDir sets the views subfolder holding status-code error
// views. Defaults to "errors".
func WithErrorViewsDir(dir string) Option {
	return internal.WithErrorViewsDir(dir)
}

// WithMIMETypes replaces the extension-to-MIME-type table used by static
// file mounts.
func WithMIMETypes(t MIMETable) Option {
	return internal.WithMIMETypes(t)
}

// WithStaticFiles mounts a static file handler at the given path prefix.
func WithStaticFiles(pattern string, fsys fs.FS, opts ...StaticOption) Option {
	return internal.WithStaticFiles(pattern, fsys, opts...)
}

// WithStaticSubDir serves a static mount from a subdirectory of its
// filesystem, which is convenient with embed.FS roots.
func WithStaticSubDir(subDir string) StaticOption {
	return internal.WithStaticSubDir(subDir)
}

// WithDefaultDocument sets the document served for a static mount's root
// path. Defaults to "/index.html".
func WithDefaultDocument(doc string) StaticOption {
	return internal.WithDefaultDocument(doc)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithLogger sets the logger used by the app and exposed to handlers.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}
