// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/ManuGH/nascinema/internal/api/problem"
)

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	// RequestLimit is the number of requests allowed per WindowSize.
	RequestLimit int
	WindowSize   time.Duration
	// KeyFunc extracts the limit key; defaults to the client IP.
	KeyFunc func(r *http.Request) (string, error)
}

// RateLimit is a sliding-window limiter built on httprate. Rejections are
// 429 problem responses with Retry-After.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = httprate.KeyByIP
	}
	window := cfg.WindowSize
	if window <= 0 {
		window = time.Minute
	}

	return httprate.Limit(
		cfg.RequestLimit,
		window,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			problem.Write(w, r, http.StatusTooManyRequests, problem.TypeRateLimited,
				"Too Many Requests", "RATE_LIMITED", "too many requests, try again later", nil)
		}),
	)
}

// PerMinute limits each client IP to n requests per minute.
func PerMinute(n int) func(http.Handler) http.Handler {
	return RateLimit(RateLimitConfig{RequestLimit: n, WindowSize: time.Minute})
}
