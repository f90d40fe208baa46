package internal

import (
	"net/http"
	"strings"
)

// Router is the interface handlers use to declare routes.
// Routes are tried strictly in registration order: the first registered
// matching route runs first, and later routes run only if every earlier
// match returned the pass-through outcome.
type Router interface {
	// GET registers a handler for GET requests on the exact path.
	GET(path string, h HandlerFunc, mw ...Middleware)

	// POST registers a handler for POST requests on the exact path.
	POST(path string, h HandlerFunc, mw ...Middleware)

	// Use mounts an any-method handler on the path prefix. The handler
	// matches the prefix itself and everything below it; mounting at "/"
	// matches every request.
	Use(prefix string, h HandlerFunc, mw ...Middleware)
}

// route is a single immutable route table entry. The exact and prefix forms
// of the pattern are precomputed at registration so matching does no string
// work beyond a comparison and a prefix check.
type route struct {
	handler    HandlerFunc
	method     string // "" matches any method
	exactPath  string // pattern with any trailing slash stripped
	prefixPath string // pattern with exactly one trailing slash
	prefix     bool
}

// routeTable holds the ordered route entries. It is populated at
// configuration time and read-only once the server starts serving.
type routeTable struct {
	routes []route
}

// register normalizes the pattern and appends the route. Registration order
// is the dispatch priority and is never reordered.
func (t *routeTable) register(method, pattern string, prefix bool, h HandlerFunc) {
	var exact, pfx string
	switch {
	case pattern == "/":
		exact, pfx = "/", "/"
	case strings.HasSuffix(pattern, "/"):
		exact, pfx = strings.TrimSuffix(pattern, "/"), pattern
	default:
		exact, pfx = pattern, pattern+"/"
	}

	t.routes = append(t.routes, route{
		handler:    h,
		method:     method,
		exactPath:  exact,
		prefixPath: pfx,
		prefix:     prefix,
	})
}

// match returns the index and entry of the next route at or after cursor
// that accepts the method and path, or -1 when the table is exhausted.
// Callers resume iteration by passing the returned index plus one.
func (t *routeTable) match(method, path string, cursor int) (int, *route) {
	for i := cursor; i < len(t.routes); i++ {
		rt := &t.routes[i]
		if rt.method != "" && rt.method != method {
			continue
		}
		if path == rt.exactPath || (rt.prefix && strings.HasPrefix(path, rt.prefixPath)) {
			return i, rt
		}
	}
	return -1, nil
}

// routerAdapter exposes the Router registration interface over the app's
// route table, wrapping handlers with route-specific middleware.
type routerAdapter struct {
	table *routeTable
}

func (r *routerAdapter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.table.register(http.MethodGet, path, false, wrap(h, mw...))
}

func (r *routerAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.table.register(http.MethodPost, path, false, wrap(h, mw...))
}

func (r *routerAdapter) Use(prefix string, h HandlerFunc, mw ...Middleware) {
	r.table.register("", prefix, true, wrap(h, mw...))
}

// wrap nests middleware around a handler so the first middleware in the
// slice ends up outermost and runs first.
func wrap(h HandlerFunc, mw ...Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
