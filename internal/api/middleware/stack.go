// SPDX-License-Identifier: MIT

package middleware

import (
	"github.com/go-chi/chi/v5"

	xglog "github.com/ManuGH/nascinema/internal/log"
)

// StackConfig selects the optional parts of the ingress stack.
type StackConfig struct {
	EnableMetrics bool
	// TracingService names otelhttp spans; empty disables tracing.
	TracingService string
	EnableLogging  bool
	// RateLimitPerMinute caps requests per client IP; 0 disables it.
	RateLimitPerMinute int
}

// NewRouter returns a chi router with the stack applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack installs, outermost first: recovery, request id, tracing,
// metrics, access log, rate limit.
func ApplyStack(r chi.Router, cfg StackConfig) {
	r.Use(Recoverer)
	r.Use(RequestID)
	if cfg.TracingService != "" {
		r.Use(OTelHTTP(cfg.TracingService))
	}
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	if cfg.EnableLogging {
		r.Use(xglog.Middleware())
	}
	if cfg.RateLimitPerMinute > 0 {
		r.Use(PerMinute(cfg.RateLimitPerMinute))
	}
}
