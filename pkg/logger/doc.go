// Package logger provides structured logging defaults on top of log/slog.
//
// New returns a JSON logger writing to stdout; NewNope returns a no-op
// logger suitable as a default when logging is not configured. Decorate
// wraps any slog.Handler with context extractors that inject request-scoped
// attributes (such as request IDs) into every record:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "device rebooted") // includes request_id
package logger
