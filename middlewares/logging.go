package middlewares

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/ember/internal"
)

// Logging returns middleware that logs one line per request with method,
// path, response status, bytes written and duration. The line is emitted
// after dispatch completes, so it reflects the final outcome including the
// error path.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (internal.Result, error) {
			start := time.Now()

			res, err := next(c)

			// The error path writes after the chain unwinds; report the
			// status it is going to send rather than the unwritten 200.
			status := c.ResponseWriter().Status()
			switch {
			case err != nil && !c.Written():
				if httpErr := internal.AsHTTPError(err); httpErr != nil {
					status = httpErr.Code
				} else {
					status = http.StatusInternalServerError
				}
			case err == nil && res.IsNext() && !c.Written():
				status = http.StatusNotFound
			}

			c.LogInfo("request",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"bytes", c.ResponseWriter().Size(),
				"duration", time.Since(start).String(),
			)
			return res, err
		}
	}
}
