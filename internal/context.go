package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"
)

// Context provides request/response access and helper methods to handlers.
// A Context is created per inbound request and must not be retained after
// the response is sent.
type Context interface {
	// Request returns the underlying *http.Request.
	Request() *http.Request

	// SetRequest replaces the underlying request, e.g. after deriving a
	// request with additional context values in middleware.
	SetRequest(r *http.Request)

	// Response returns the response writer for direct writes.
	Response() http.ResponseWriter

	// ResponseWriter returns the wrapped response writer with write tracking.
	ResponseWriter() *ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Method returns the HTTP request method.
	Method() string

	// Path returns the parsed request path.
	Path() string

	// Query returns the query parameter value for the given key.
	// When a key appears multiple times, the last occurrence wins.
	Query(name string) string

	// QueryDefault returns the query parameter or a default when absent.
	QueryDefault(name, defaultValue string) string

	// Queries returns a copy of all parsed query parameters.
	Queries() map[string]string

	// Header returns a request header value.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// HTML writes an HTML response with the given status code.
	HTML(code int, s string) error

	// NoContent writes a response with a status code and no body.
	NoContent(code int) error

	// Redirect replies with a redirect to the given URL.
	Redirect(code int, url string) error

	// Error builds an HTTPError for intentional, status-coded failures.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether the response header section has been sent.
	Written() bool

	// Set stores a request-scoped value.
	Set(key, value any)

	// Get retrieves a request-scoped value, nil when absent.
	Get(key any) any

	// Logger returns the request-scoped logger.
	Logger() *slog.Logger

	// SetLogger replaces the request-scoped logger, e.g. to attach
	// request-scoped attributes for all subsequent log lines.
	SetLogger(l *slog.Logger)

	// LogDebug logs at debug level with the request-scoped logger.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs at info level with the request-scoped logger.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs at warn level with the request-scoped logger.
	LogWarn(msg string, attrs ...any)

	// LogError logs at error level with the request-scoped logger.
	LogError(msg string, attrs ...any)

	// Deadline, Done, Err, Value implement context.Context so a Context can
	// be passed where one is expected.
	Deadline() (time.Time, bool)
	Done() <-chan struct{}
	Err() error
	Value(key any) any
}

// requestContext is the concrete Context implementation.
type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
	query    map[string]string
	values   map[any]any
	valuesMu sync.RWMutex
}

// newContext creates a new context with the response wrapper.
// Query parameters are parsed once up front; on duplicate keys the last
// occurrence wins.
func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger) *requestContext {
	query := make(map[string]string)
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			query[k] = vs[len(vs)-1]
		}
	}

	return &requestContext{
		request:  r,
		response: NewResponseWriter(w),
		logger:   logger,
		query:    query,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) SetRequest(r *http.Request) {
	if r != nil {
		c.request = r
	}
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Method() string {
	return c.request.Method
}

func (c *requestContext) Path() string {
	return c.request.URL.Path
}

func (c *requestContext) Query(name string) string {
	return c.query[name]
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v, ok := c.query[name]; ok && v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Queries() map[string]string {
	return maps.Clone(c.query)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	// Marshal before touching the response so an encoding failure does not
	// commit the status code.
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.response.Header().Set("Content-Type", "application/json")
	c.response.WriteHeader(code)
	_, err = c.response.Write(data)
	return err
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) HTML(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/html")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	err := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Set(key, value any) {
	c.valuesMu.Lock()
	defer c.valuesMu.Unlock()
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = value
}

func (c *requestContext) Get(key any) any {
	c.valuesMu.RLock()
	defer c.valuesMu.RUnlock()
	return c.values[key]
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l
	}
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.Context(), msg, attrs...)
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}
