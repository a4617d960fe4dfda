// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package playback

import (
	"net/url"
	"strings"
)

// StreamURL appends an item's server path to the stream base
// ({backend}/api/stream). Paths are raw filesystem paths, so each segment is
// percent-encoded; "/" separators are kept. A path without a leading slash
// gets one.
func StreamURL(streamBase, path string) string {
	base := strings.TrimRight(streamBase, "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + (&url.URL{Path: path}).EscapedPath()
}
