// Package ember is a minimal HTTP request-dispatch layer for embedding in
// resource-constrained devices.
//
// Ember accepts inbound HTTP connections, matches each request against an
// ordered list of registered route handlers, runs handlers until one
// produces a result, and serializes that result back to the client. It
// ships a fallback templating mechanism ({dotted.key} placeholders) and a
// static-file handler that prefers gzip-precompressed siblings.
//
// # Quick start
//
// Create an application with ember.New(), configure it with options, and
// call Run() to bind the listener and serve until shutdown:
//
//	app := ember.New(
//	    ember.WithLogger(log),
//	    ember.WithMiddleware(middlewares.Recover()),
//	    ember.WithViews(os.DirFS("views"), ""),
//	    ember.WithStaticFiles("/", os.DirFS("public")),
//	    ember.WithHandlers(handlers.NewDeviceInfo()),
//	)
//
//	if err := app.Run(":8080", ember.Logger(log)); err != nil {
//	    log.Error("server failed", "error", err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	func (h *DeviceInfo) Routes(r ember.Router) {
//	    r.GET("/info", h.info)
//	    r.POST("/reboot", h.reboot)
//	    r.Use("/", h.catchAll)
//	}
//
// Routes are tried strictly in registration order. A route handler returns
// a tagged outcome: ember.Next() declines the request so the next matching
// route runs, ember.Data(v) hands v to the serializer (view-rendered HTML
// when a view matches the request path, JSON otherwise), and ember.Done()
// ends dispatch with nothing more to write. Returning an error takes the
// error path: expected *HTTPError values keep their status code and
// message, anything else becomes an opaque 500.
//
// Ember is deliberately small: no HTTPS termination, no HTTP/2, no
// sessions. Put a real reverse proxy in front when those are needed.
package ember
