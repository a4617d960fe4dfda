// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package fsm

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type light string
type press string

const (
	off   light = "off"
	dim   light = "dim"
	full  light = "full"
	click press = "click"
	hold  press = "hold"
)

func lamp(t *testing.T) *Machine[light, press] {
	t.Helper()
	m, err := New(off, []Edge[light, press]{
		{From: off, Event: click, To: dim},
		{From: dim, Event: click, To: full},
		{From: full, Event: click, To: off},
		{From: dim, Event: hold, To: off},
	})
	require.NoError(t, err)
	return m
}

func TestFire_WalksTable(t *testing.T) {
	m := lamp(t)
	for _, want := range []light{dim, full, off, dim} {
		got, err := m.Fire(click)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, dim, m.State())
}

func TestFire_RejectsMissingEdge(t *testing.T) {
	m := lamp(t)
	got, err := m.Fire(hold)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, off, got)
	assert.Equal(t, off, m.State())
}

func TestNew_RejectsDuplicateEdge(t *testing.T) {
	_, err := New(off, []Edge[light, press]{
		{From: off, Event: click, To: dim},
		{From: off, Event: click, To: full},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already leads to dim")
}

func TestOnTransition_SkipsRejectedEvents(t *testing.T) {
	m := lamp(t)
	var moves []string
	m.OnTransition(func(from, to light, ev press) {
		moves = append(moves, string(from)+"-"+string(ev)+"->"+string(to))
	})

	_, _ = m.Fire(click)
	_, _ = m.Fire(hold)
	_, _ = m.Fire(hold)

	assert.Equal(t, []string{"off-click->dim", "dim-hold->off"}, moves)
}

func TestFire_ConcurrentSingleWinner(t *testing.T) {
	m, err := New(off, []Edge[light, press]{{From: off, Event: click, To: dim}})
	require.NoError(t, err)

	var won atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Fire(click); err == nil {
				won.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, won.Load())
	assert.Equal(t, dim, m.State())
}
