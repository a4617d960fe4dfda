// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics holds the Prometheus collectors for the catalog client and view state.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nascinema_backend_requests_total",
		Help: "Requests issued to the NAS backend by endpoint and outcome",
	}, []string{"endpoint", "outcome"}) // endpoint=probe|movies|info; outcome=success|http_error|transport_error|decode_error

	backendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nascinema_backend_request_duration_seconds",
		Help:    "Latency of NAS backend requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	catalogItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nascinema_catalog_items",
		Help: "Number of items in the last successful catalog load",
	})

	nasConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nascinema_nas_connected",
		Help: "Result of the last connectivity probe (1 connected, 0 disconnected)",
	})
)

// Backend request outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
)

// ObserveBackendRequest records one backend round-trip.
func ObserveBackendRequest(endpoint, outcome string, d time.Duration) {
	backendRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	backendRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func RecordCatalogItems(n int) { catalogItems.Set(float64(n)) }

func RecordConnected(ok bool) {
	if ok {
		nasConnected.Set(1)
		return
	}
	nasConnected.Set(0)
}
