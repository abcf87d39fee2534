package middleware

import (
	"net/http"
	"time"
)

// Timeout bounds the whole request. The deadline reaches the inference
// server call through the request context.
func Timeout(timeout time.Duration) Middleware {
	return func(h http.Handler) http.Handler {
		return http.TimeoutHandler(h, timeout, "Request timed out")
	}
}
