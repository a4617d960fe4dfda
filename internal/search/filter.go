// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package search filters a catalog by display name.
package search

import (
	"strings"

	"github.com/ManuGH/nascinema/internal/media"
)

// Filter returns the items whose Name contains query after lower-casing
// both. Names are compared as stored: a decomposed accent only matches a
// decomposed query. Relative order is preserved, an empty query returns
// items unchanged and the result never aliases items.
func Filter(items []media.Item, query string) []media.Item {
	out := make([]media.Item, 0, len(items))
	if query == "" {
		return append(out, items...)
	}
	needle := strings.ToLower(query)
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			out = append(out, it)
		}
	}
	return out
}
