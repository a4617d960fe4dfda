// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package log provides structured logging utilities on top of zerolog.
package log

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stderr)
	Service string    // optional service name attached to every log entry
	Version string    // optional build version attached to every log entry
}

var base atomic.Pointer[zerolog.Logger]

// Configure replaces the global logger. The CLI calls it once with defaults
// and again after the configuration is loaded.
func Configure(cfg Config) {
	zerolog.SetGlobalLevel(levelFor(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	service := cfg.Service
	if service == "" {
		service = "nascinema"
	}

	l := zerolog.New(out).With().
		Timestamp().
		Str(FieldService, service).
		Str(FieldVersion, cfg.Version).
		Logger()
	base.Store(&l)
}

// levelFor prefers the configured level, then NASCINEMA_LOG_LEVEL. Anything
// unparsable means info.
func levelFor(configured string) zerolog.Level {
	name := configured
	if name == "" {
		name = os.Getenv("NASCINEMA_LOG_LEVEL")
	}
	if lvl, err := zerolog.ParseLevel(name); err == nil && name != "" {
		return lvl
	}
	return zerolog.InfoLevel
}

func logger() zerolog.Logger {
	if l := base.Load(); l != nil {
		return *l
	}
	Configure(Config{})
	return *base.Load()
}

func Base() zerolog.Logger { return logger() }

// L returns a copy of the base logger, for call sites that want a pointer.
func L() *zerolog.Logger {
	l := logger()
	return &l
}

func WithComponent(component string) zerolog.Logger {
	return logger().With().Str(FieldComponent, component).Logger()
}

// Derive builds a child logger with whatever fields build adds.
func Derive(build func(*zerolog.Context)) zerolog.Logger {
	c := logger().With()
	if build != nil {
		build(&c)
	}
	return c.Logger()
}
