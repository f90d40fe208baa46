package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/ember"
)

// routesFunc adapts a function to the ember.Handler interface.
type routesFunc func(r ember.Router)

func (f routesFunc) Routes(r ember.Router) { f(r) }

// serve builds an app with the middleware chain and a single catch-all
// handler, then performs one request against it.
func serve(mw []ember.Middleware, h ember.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	app := ember.New(
		ember.WithMiddleware(mw...),
		ember.WithHandlers(routesFunc(func(r ember.Router) {
			r.Use("/", h)
		})),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}
