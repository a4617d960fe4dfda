// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// ContextWithRequestID tags ctx with the HTTP request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(orBackground(ctx), requestIDKey{}, id)
}

// ContextWithCorrelationID tags ctx with a correlation id. Each catalog load
// gets its own, so its probe and fetch lines can be grouped.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(orBackground(ctx), correlationIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey{})
}

func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, correlationIDKey{})
}

// WithContext adds the request id, correlation id and active span of ctx to
// logger. Without any of them logger is returned unchanged.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return logger
	}
	rid := RequestIDFromContext(ctx)
	cid := CorrelationIDFromContext(ctx)
	sc := trace.SpanContextFromContext(ctx)
	if rid == "" && cid == "" && !sc.IsValid() {
		return logger
	}

	b := logger.With()
	if rid != "" {
		b = b.Str(FieldRequestID, rid)
	}
	if cid != "" {
		b = b.Str(FieldCorrelationID, cid)
	}
	if sc.IsValid() {
		b = b.Str(FieldTraceID, sc.TraceID().String()).Str(FieldSpanID, sc.SpanID().String())
	}
	return b.Logger()
}

// WithComponentFromContext is WithComponent enriched by WithContext.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	return WithContext(ctx, WithComponent(component))
}

// FromContext returns the logger attached with zerolog's WithContext, or the
// global logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return L()
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func stringValue(ctx context.Context, key any) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}
