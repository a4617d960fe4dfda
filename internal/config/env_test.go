// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseString(t *testing.T) {
	const key = "NASCINEMA_TEST_STRING"
	assert.Equal(t, "def", ParseString(key, "def"))
	t.Setenv(key, "")
	assert.Equal(t, "def", ParseString(key, "def"), "empty counts as unset")
	t.Setenv(key, "val")
	assert.Equal(t, "val", ParseString(key, "def"))
}

func TestParseInt(t *testing.T) {
	const key = "NASCINEMA_TEST_INT"
	assert.Equal(t, 7, ParseInt(key, 7))
	t.Setenv(key, " 42 ")
	assert.Equal(t, 42, ParseInt(key, 7))
	t.Setenv(key, "many")
	assert.Equal(t, 7, ParseInt(key, 7))
}

func TestParseDuration(t *testing.T) {
	const key = "NASCINEMA_TEST_DURATION"
	assert.Equal(t, time.Second, ParseDuration(key, time.Second))
	t.Setenv(key, "1m30s")
	assert.Equal(t, 90*time.Second, ParseDuration(key, time.Second))
	t.Setenv(key, "30")
	assert.Equal(t, time.Second, ParseDuration(key, time.Second), "bare numbers are not durations")
}

func TestParseBool(t *testing.T) {
	const key = "NASCINEMA_TEST_BOOL"
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"YES", true},
		{"1", true},
		{"false", false},
		{"no", false},
		{"0", false},
		{"maybe", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(key, tt.value)
			assert.Equal(t, tt.want, ParseBool(key, true))
		})
	}
}

func TestParseFloat(t *testing.T) {
	const key = "NASCINEMA_TEST_FLOAT"
	assert.InDelta(t, 1.0, ParseFloat(key, 1.0), 1e-9)
	t.Setenv(key, "0.1")
	assert.InDelta(t, 0.1, ParseFloat(key, 1.0), 1e-9)
	t.Setenv(key, "tenth")
	assert.InDelta(t, 1.0, ParseFloat(key, 1.0), 1e-9)
}
