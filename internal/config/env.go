// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ManuGH/nascinema/internal/log"
	"github.com/rs/zerolog"
)

// Environment keys.
const (
	EnvBackendURL     = "NASCINEMA_BACKEND_URL"
	EnvBackendTimeout = "NASCINEMA_BACKEND_TIMEOUT"
	EnvLogLevel       = "NASCINEMA_LOG_LEVEL"
	EnvLogService     = "NASCINEMA_LOG_SERVICE"
	EnvPlayer         = "NASCINEMA_PLAYER"
	EnvListenAddr     = "NASCINEMA_LISTEN"
	EnvRateLimit      = "NASCINEMA_RATE_LIMIT"
	EnvOTelEnabled    = "NASCINEMA_OTEL_ENABLED"
	EnvOTelExporter   = "NASCINEMA_OTEL_EXPORTER"
	EnvOTelEndpoint   = "NASCINEMA_OTEL_ENDPOINT"
	EnvOTelSampling   = "NASCINEMA_OTEL_SAMPLING"
	EnvDataDir        = "NASCINEMA_DATA"
)

func envLogger() zerolog.Logger { return log.WithComponent("config") }

// lookup returns the trimmed value of key; empty counts as unset.
func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// parseEnv converts key with parse. An unset variable or a value parse
// rejects yields def; rejections are logged so typos do not go unnoticed.
func parseEnv[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	logger := envLogger()
	v, err := parse(raw)
	if err != nil {
		logger.Warn().
			Str("key", key).
			Str("value", raw).
			Interface("default", def).
			Msgf("invalid %T in environment variable, using default", def)
		return def
	}
	logger.Debug().Str("key", key).Interface("value", v).Str("source", "environment").Msg("using environment variable")
	return v
}

// ParseString reads a string from the environment or returns defaultValue.
func ParseString(key, defaultValue string) string {
	return parseEnv(key, defaultValue, func(s string) (string, error) { return s, nil })
}

func ParseInt(key string, defaultValue int) int {
	return parseEnv(key, defaultValue, strconv.Atoi)
}

// ParseDuration reads a Go duration such as "5s".
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	return parseEnv(key, defaultValue, time.ParseDuration)
}

// ParseBool accepts true/false, 1/0 and yes/no, case-insensitively.
func ParseBool(key string, defaultValue bool) bool {
	return parseEnv(key, defaultValue, func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return false, fmt.Errorf("not a boolean: %q", s)
	})
}

func ParseFloat(key string, defaultValue float64) float64 {
	return parseEnv(key, defaultValue, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}
