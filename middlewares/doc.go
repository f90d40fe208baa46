// Package middlewares provides cross-cutting middleware for ember apps.
//
// Middleware wraps the whole dispatch loop and runs once per request:
//
//	app := ember.New(
//	    ember.WithMiddleware(
//	        middlewares.Recover(),
//	        middlewares.RequestID(),
//	        middlewares.Logging(),
//	    ),
//	)
//
// Recover converts handler panics into opaque 500 responses, RequestID
// assigns or propagates a request ID, and Logging emits one structured line
// per request.
package middlewares
