// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Span attribute keys.
const (
	CorrelationIDKey = "nascinema.correlation_id"

	BackendURLKey = "backend.url"

	CatalogItemsKey = "catalog.items"
	CatalogQueryKey = "catalog.query"

	LoadOutcomeKey = "load.outcome"
	ConnectedKey   = "nas.connected"

	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// LoadAttributes describes a finished load sequence.
func LoadAttributes(outcome string, connected bool, items int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(LoadOutcomeKey, outcome),
		attribute.Bool(ConnectedKey, connected),
		attribute.Int(CatalogItemsKey, items),
	}
}

// ErrorAttributes marks a span as failed with a coarse error class.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
