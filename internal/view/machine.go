// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package view

import "github.com/ManuGH/nascinema/internal/fsm"

type state string

const (
	stateIdle    state = "idle"
	stateLoading state = "loading"
	stateReady   state = "ready"
	stateError   state = "error"
)

type event string

const (
	evLoad   event = "load"
	evLoaded event = "loaded"
	evFailed event = "failed"
)

// phase folds idle into loading: nothing has been shown yet.
func (s state) phase() Phase {
	switch s {
	case stateReady:
		return PhaseReady
	case stateError:
		return PhaseError
	default:
		return PhaseLoading
	}
}

// No load edge leaves Loading; overlapping loads are refused by the table.
func newMachine() (*fsm.Machine[state, event], error) {
	return fsm.New(stateIdle, []fsm.Edge[state, event]{
		{From: stateIdle, Event: evLoad, To: stateLoading},
		{From: stateReady, Event: evLoad, To: stateLoading},
		{From: stateError, Event: evLoad, To: stateLoading},
		{From: stateLoading, Event: evLoaded, To: stateReady},
		{From: stateLoading, Event: evFailed, To: stateError},
	})
}
