// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// SPDX-License-Identifier: MIT
package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

func TestContextWithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		requestID string
		want      string
	}{
		{name: "nil context", ctx: nil, requestID: "test-id-123", want: "test-id-123"},
		{name: "background context", ctx: context.Background(), requestID: "req-456", want: "req-456"},
		{name: "empty request ID", ctx: context.Background(), requestID: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ContextWithRequestID(tt.ctx, tt.requestID)
			if got := RequestIDFromContext(ctx); got != tt.want {
				t.Errorf("RequestIDFromContext() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCorrelationIDFromContext_Missing(t *testing.T) {
	if got := CorrelationIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty correlation id, got %q", got)
	}
	if got := CorrelationIDFromContext(nil); got != "" { //nolint:staticcheck
		t.Fatalf("expected empty correlation id for nil ctx, got %q", got)
	}
}

func TestWithContext_AddsCorrelationAndTrace(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	ctx := ContextWithCorrelationID(context.Background(), "load-1")
	ctx = trace.ContextWithSpanContext(ctx, sc)

	l := WithContext(ctx, base)
	l.Info().Msg("x")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m[FieldCorrelationID] != "load-1" {
		t.Errorf("correlation_id = %v", m[FieldCorrelationID])
	}
	if m[FieldTraceID] != traceID.String() {
		t.Errorf("trace_id = %v", m[FieldTraceID])
	}
	if m[FieldSpanID] != spanID.String() {
		t.Errorf("span_id = %v", m[FieldSpanID])
	}
}

func TestWithContext_NoFieldsReturnsSameLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	l := WithContext(context.Background(), base)
	l.Info().Msg("plain")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := m[FieldCorrelationID]; ok {
		t.Error("unexpected correlation_id field")
	}
}

func TestFromContext_FallsBackToBase(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected base logger")
	}

	var buf bytes.Buffer
	attached := zerolog.New(&buf).With().Str("marker", "ctx").Logger()
	ctx := attached.WithContext(context.Background())
	FromContext(ctx).Info().Msg("y")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["marker"] != "ctx" {
		t.Fatalf("expected context logger, got %v", m)
	}
}
