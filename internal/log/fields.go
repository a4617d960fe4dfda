// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService       = "service"
	FieldVersion       = "version"
	FieldComponent     = "component"
	FieldEvent         = "event"
	FieldRequestID     = "request_id"
	FieldCorrelationID = "correlation_id"
	FieldTraceID       = "trace_id"
	FieldSpanID        = "span_id"

	// Catalog / media fields
	FieldItemKey   = "item_key"
	FieldItemName  = "item_name"
	FieldItemCount = "item_count"
	FieldQuery     = "query"
	FieldPath      = "path"
	FieldStreamURL = "stream_url"

	// State fields
	FieldOldState  = "old_state"
	FieldNewState  = "new_state"
	FieldConnected = "connected"

	// Network fields
	FieldBaseURL  = "base_url"
	FieldEndpoint = "endpoint"
	FieldStatus   = "status"
	FieldDuration = "duration"
)
