package internal

// Handler declares routes on a router.
//
// Example:
//
//	type PagesHandler struct {
//	    store *status.Store
//	}
//
//	func (h *PagesHandler) Routes(r ember.Router) {
//	    r.GET("/status", h.showStatus)
//	    r.POST("/reboot", h.reboot)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns the dispatch outcome plus an error.
// Returning Next() declines the request and lets dispatch continue with the
// next matching route; any other Result ends dispatch for this request.
// Returning a non-nil error triggers the error handling path.
type HandlerFunc func(c Context) (Result, error)

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func NoCache(next ember.HandlerFunc) ember.HandlerFunc {
//	    return func(c ember.Context) (ember.Result, error) {
//	        c.SetHeader("Cache-Control", "no-store")
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error

// Result is the tagged outcome of a handler invocation. The zero value is
// "handled, nothing to serialize"; use the constructors below instead of
// building Result values directly.
type Result struct {
	value any
	next  bool
	data  bool
}

// Next returns the pass-through outcome: this handler declined the request
// and dispatch should try the next matching route.
func Next() (Result, error) {
	return Result{next: true}, nil
}

// Done returns the terminal outcome with no value to serialize. Use it when
// the handler wrote the response itself or wants an empty-body reply.
func Done() (Result, error) {
	return Result{}, nil
}

// Data returns the terminal outcome carrying a value for the serializer:
// template-rendered HTML when a view matches the request path, JSON
// otherwise. If v implements Responder, serialization is delegated to it.
func Data(v any) (Result, error) {
	return Result{value: v, data: true}, nil
}

// IsNext reports whether the result is the pass-through sentinel.
func (r Result) IsNext() bool {
	return r.next
}

// Value returns the carried value and whether one is present.
func (r Result) Value() (any, bool) {
	return r.value, r.data
}

// Responder is the escape hatch for handlers that need full control over
// serialization. A Data value implementing Responder is asked to write the
// entire response (headers, body, end) itself.
type Responder interface {
	Respond(c Context) error
}
