// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package connectivity tracks whether the NAS backend answered the last probe.
package connectivity

import (
	"sync"

	"github.com/ManuGH/nascinema/internal/metrics"
)

// Badge is the two-state connectivity label shown next to the catalog.
type Badge string

const (
	BadgeConnected    Badge = "connected"
	BadgeDisconnected Badge = "disconnected"
)

// Monitor holds the result of the last probe. It is only written by Record;
// there is no timer, so it is as fresh as the last load sequence.
type Monitor struct {
	mu        sync.RWMutex
	connected bool
	known     bool
}

// Record stores a probe result.
func (m *Monitor) Record(connected bool) {
	m.mu.Lock()
	m.connected = connected
	m.known = true
	m.mu.Unlock()
	metrics.RecordConnected(connected)
}

// Connected reports the last probe result; false before the first probe.
func (m *Monitor) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Known reports whether any probe has completed yet.
func (m *Monitor) Known() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.known
}

// Badge derives the label. Callers must not render it before Known is true.
func (m *Monitor) Badge() Badge {
	if m.Connected() {
		return BadgeConnected
	}
	return BadgeDisconnected
}
