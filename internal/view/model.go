// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package view

import (
	"github.com/ManuGH/nascinema/internal/connectivity"
	"github.com/ManuGH/nascinema/internal/media"
)

// Phase is the catalog state a renderer switches on.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// EmptyReason explains an empty visible list in the Ready phase.
type EmptyReason string

const (
	EmptyNone      EmptyReason = ""
	EmptyNoMatches EmptyReason = "no_matches"
	EmptyCatalog   EmptyReason = "catalog_empty"
)

// ViewModel is one published rendering of the view. Values are never
// mutated after publication; treat the slices as read-only.
type ViewModel struct {
	Revision uint64 `json:"revision"`
	Phase    Phase  `json:"phase"`

	// Badge and Connected are only set once a probe has answered and no load
	// is running, so a loading view never shows a stale badge.
	Badge     connectivity.Badge `json:"badge,omitempty"`
	Connected bool               `json:"connected"`

	ErrorMessage string `json:"errorMessage,omitempty"`

	Query        string       `json:"query"`
	Total        int          `json:"total"`
	VisibleItems []media.Item `json:"visibleItems"`

	ActiveSession *media.Item `json:"activeSession,omitempty"`
	StreamURL     string      `json:"streamURL,omitempty"`
}

// EmptyReason distinguishes "nothing matched the query" from "the catalog is
// empty". Only meaningful in PhaseReady with no visible items.
func (v ViewModel) EmptyReason() EmptyReason {
	if v.Phase != PhaseReady || len(v.VisibleItems) > 0 {
		return EmptyNone
	}
	if v.Query != "" {
		return EmptyNoMatches
	}
	return EmptyCatalog
}
