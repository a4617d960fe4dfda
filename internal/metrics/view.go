// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nascinema_catalog_loads_total",
		Help: "Completed load sequences by outcome",
	}, []string{"outcome"}) // outcome=ready|unreachable|fetch_error

	loadsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nascinema_catalog_loads_rejected_total",
		Help: "Load triggers ignored because a load was already in flight",
	})

	viewPhase = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "nascinema_view_phase",
		Help: "Current view phase (1 for the active phase, 0 otherwise)",
	}, []string{"phase"})

	sessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nascinema_playback_sessions_total",
		Help: "Playback session transitions by action",
	}, []string{"action"}) // action=open|replace|close|reload_close
)

// Load outcomes.
const (
	LoadReady       = "ready"
	LoadUnreachable = "unreachable"
	LoadFetchError  = "fetch_error"
)

var phases = []string{"loading", "ready", "error"}

func RecordLoad(outcome string) { loadsTotal.WithLabelValues(outcome).Inc() }
func IncLoadRejected()          { loadsRejected.Inc() }

// SetPhase marks phase as active and clears the others.
func SetPhase(phase string) {
	for _, p := range phases {
		if p == phase {
			viewPhase.WithLabelValues(p).Set(1)
			continue
		}
		viewPhase.WithLabelValues(p).Set(0)
	}
}

func RecordSession(action string) { sessionsTotal.WithLabelValues(action).Inc() }
