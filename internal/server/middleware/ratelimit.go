package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit returns middleware that limits requests per client IP using a
// sliding window. It guards the public word endpoints; admin routes are
// already behind authentication and are not limited.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.LimitByIP(requests, window)
}
