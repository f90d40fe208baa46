// Package internal contains the request dispatch pipeline: the ordered
// route table, the per-request dispatch loop, result serialization, the
// static file middleware and the error path.
//
// The public API is re-exported by the root ember package via type aliases;
// nothing here is imported directly by applications.
//
// # Dispatch model
//
// Routes are tried strictly in registration order. Each matching route's
// handler returns a tagged Result: the pass-through outcome (Next) hands
// the request to the next matching route, any other outcome is terminal.
// When the table is exhausted without a terminal outcome the request takes
// the not-found error path, identical to having zero matches.
//
// A terminal value is serialized by, in order: delegation to the value's
// own Respond method (Responder), rendering the view derived from the
// request path ("/" maps to "index"), or JSON. Handlers may also write the
// response themselves; the dispatcher checks the response writer's written
// flag and never writes twice.
//
// # Error path
//
// Handler errors, panics surfaced by the recover middleware, and stream
// failures all funnel through one path: log, pick the status code (expected
// *HTTPError values keep their own, everything else is an opaque 500), try
// the matching status-code error view, fall back to the error message. A
// failure after the response started is logged and swallowed since the wire
// protocol cannot be corrected post-hoc.
package internal
