// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitor(t *testing.T) {
	var m Monitor
	assert.False(t, m.Known())
	assert.False(t, m.Connected())

	m.Record(true)
	assert.True(t, m.Known())
	assert.True(t, m.Connected())
	assert.Equal(t, BadgeConnected, m.Badge())

	m.Record(false)
	assert.True(t, m.Known())
	assert.Equal(t, BadgeDisconnected, m.Badge())
}
