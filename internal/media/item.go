// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package media defines the catalog item model shared by the client, the
// search filter, the playback session and the view model.
package media

import (
	"path"
	"strconv"
	"strings"
)

// Item is one media file reported by the backend. It is immutable once
// received: every component passes it by value.
type Item struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Format    string `json:"format"`
	Path      string `json:"path"`
	Size      *int64 `json:"size,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`

	// Position is the item's index within the load that produced it.
	Position int `json:"position"`
}

// Key identifies an item within the current load: the backend id when
// present, otherwise its position. Positional keys are only stable for a
// single load.
func (i Item) Key() string {
	if i.ID != "" {
		return i.ID
	}
	return "pos-" + strconv.Itoa(i.Position)
}

// HasStableID reports whether Key is backed by a backend identifier.
func (i Item) HasStableID() bool { return i.ID != "" }

// Title is the display name without its file extension.
func (i Item) Title() string {
	ext := path.Ext(i.Name)
	if ext == "" || ext == i.Name {
		return i.Name
	}
	return strings.TrimSuffix(i.Name, ext)
}

// Kind maps the container format to a coarse label for listings.
func (i Item) Kind() string {
	switch strings.ToLower(i.Format) {
	case "mp4", "m4v":
		return "film"
	case "mkv":
		return "matroska"
	case "avi":
		return "avi"
	case "mov":
		return "quicktime"
	case "wmv":
		return "windows-media"
	case "webm", "flv":
		return "web"
	default:
		return "film"
	}
}

// FormatOf derives the lowercase extension used for Format when the backend omits it.
func FormatOf(name string) string {
	ext := path.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
