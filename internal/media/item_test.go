// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemKey(t *testing.T) {
	assert.Equal(t, "abc", Item{ID: "abc", Position: 3}.Key())
	assert.Equal(t, "pos-3", Item{Position: 3}.Key())
	assert.True(t, Item{ID: "abc"}.HasStableID())
	assert.False(t, Item{}.HasStableID())
}

func TestItemTitle(t *testing.T) {
	tests := map[string]string{
		"Inception.mp4":       "Inception",
		"Amélie.mkv":          "Amélie",
		"No Extension":        "No Extension",
		"Dr. Strangelove.avi": "Dr. Strangelove",
		".hidden":             ".hidden",
		"archive.tar.gz":      "archive.tar",
	}
	for name, want := range tests {
		assert.Equal(t, want, Item{Name: name}.Title(), name)
	}
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, "mp4", FormatOf("Inception.MP4"))
	assert.Equal(t, "", FormatOf("README"))
	assert.Equal(t, "", FormatOf(".mkv"))
}

func TestItemKind(t *testing.T) {
	assert.Equal(t, "matroska", Item{Format: "MKV"}.Kind())
	assert.Equal(t, "film", Item{Format: "unknown"}.Kind())
}
