// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/nascinema/internal/catalog"
	"github.com/ManuGH/nascinema/internal/config"
	"github.com/ManuGH/nascinema/internal/view"
)

func TestApplyReload_RebindsBackend(t *testing.T) {
	first := catalog.NewMockServer()
	defer first.Close()
	second := catalog.NewMockServer()
	defer second.Close()

	old := config.Defaults()
	old.Backend.URL = first.URL
	orch := view.New(newCatalog(old))

	_, err := orch.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Hits(catalog.EndpointMovies))

	cur := old
	cur.Backend.URL = second.URL
	applyReload(orch, old, cur, &bytes.Buffer{})

	vm, err := orch.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, view.PhaseReady, vm.Phase)
	assert.Equal(t, 1, first.Hits(catalog.EndpointMovies))
	assert.Equal(t, 1, second.Hits(catalog.EndpointMovies))
}

func TestApplyReload_UnchangedBackendKeepsClient(t *testing.T) {
	mock := catalog.NewMockServer()
	defer mock.Close()

	cfg := config.Defaults()
	cfg.Backend.URL = mock.URL
	orch := view.New(newCatalog(cfg))

	next := cfg
	next.Log.Level = "debug"
	applyReload(orch, cfg, next, &bytes.Buffer{})

	_, err := orch.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, mock.Hits(catalog.EndpointMovies))
}
