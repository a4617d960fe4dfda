// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"time"

	"github.com/ManuGH/nascinema/internal/telemetry"
	"github.com/ManuGH/nascinema/internal/validate"
)

const (
	minBackendTimeout = 100 * time.Millisecond
	maxBackendTimeout = 10 * time.Minute
)

// Validate returns a validate.ValidationError listing every invalid field.
// backend.url is deliberately absent: a bad address has to surface as an
// unreachable NAS, like any other connectivity failure. See Lint.
func Validate(cfg AppConfig) error {
	v := validate.New()

	validate.Between(v, "backend.timeout", cfg.Backend.Timeout, minBackendTimeout, maxBackendTimeout)

	v.LogLevel("log.level", cfg.Log.Level)
	v.NotBlank("log.service", cfg.Log.Service)

	v.ListenAddr("api.listenAddr", cfg.API.ListenAddr)
	v.Positive("api.rateLimitPerMinute", cfg.API.RateLimitPerMinute)

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, telemetry.ExporterGRPC, telemetry.ExporterHTTP)
		v.NotBlank("telemetry.endpoint", cfg.Telemetry.Endpoint)
	}
	validate.Between(v, "telemetry.samplingRate", cfg.Telemetry.SamplingRate, 0.0, 1.0)

	return v.Err()
}

// Lint reports settings that are accepted but almost certainly wrong. The
// result is advisory and never blocks loading.
func Lint(cfg AppConfig) error {
	v := validate.New()
	v.HTTPURL("backend.url", cfg.Backend.URL)
	return v.Err()
}
