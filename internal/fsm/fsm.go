// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package fsm runs a fixed transition table. Events without an edge out of
// the current state are rejected, never ignored.
package fsm

import (
	"errors"
	"fmt"
	"sync"
)

var ErrInvalidTransition = errors.New("fsm: invalid transition")

// Edge moves the machine from From to To when Event fires.
type Edge[S ~string, E ~string] struct {
	From  S
	Event E
	To    S
}

type Machine[S ~string, E ~string] struct {
	mu     sync.Mutex
	cur    S
	edges  map[S]map[E]S
	onMove []func(from, to S, event E)
}

// New validates the table and returns a machine parked in initial.
func New[S ~string, E ~string](initial S, table []Edge[S, E]) (*Machine[S, E], error) {
	edges := make(map[S]map[E]S)
	for _, e := range table {
		out := edges[e.From]
		if out == nil {
			out = make(map[E]S)
			edges[e.From] = out
		}
		if prev, dup := out[e.Event]; dup {
			return nil, fmt.Errorf("fsm: %s on %s already leads to %s", e.From, e.Event, prev)
		}
		out[e.Event] = e.To
	}
	return &Machine[S, E]{cur: initial, edges: edges}, nil
}

// OnTransition adds a hook run after each applied edge, outside the lock.
func (m *Machine[S, E]) OnTransition(fn func(from, to S, event E)) {
	m.mu.Lock()
	m.onMove = append(m.onMove, fn)
	m.mu.Unlock()
}

func (m *Machine[S, E]) State() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Fire applies event. On rejection the returned state is the unchanged
// current one.
func (m *Machine[S, E]) Fire(event E) (S, error) {
	m.mu.Lock()
	from := m.cur
	to, ok := m.edges[from][event]
	if !ok {
		m.mu.Unlock()
		return from, fmt.Errorf("%w: %s does not accept %s", ErrInvalidTransition, from, event)
	}
	m.cur = to
	hooks := m.onMove
	m.mu.Unlock()

	for _, fn := range hooks {
		fn(from, to, event)
	}
	return to, nil
}
