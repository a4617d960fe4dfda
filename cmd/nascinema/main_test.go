// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/nascinema/internal/catalog"
	"github.com/ManuGH/nascinema/internal/config"
	"github.com/ManuGH/nascinema/internal/version"
)

// isolate points discovery at an empty data dir and the backend at base.
func isolate(t *testing.T, base string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvDataDir, dir)
	t.Setenv(config.EnvBackendURL, base)
	return dir
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "-version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, version.Version)
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Unknown command")
}

func TestList_AllAndFiltered(t *testing.T) {
	mock := catalog.NewMockServer()
	defer mock.Close()
	isolate(t, mock.URL)

	code, out, _ := runCLI(t, "list")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "NAS: connected")
	assert.Contains(t, out, "2 films")
	assert.Contains(t, out, "Inception")
	assert.Contains(t, out, "Amélie")

	code, out, _ = runCLI(t, "list", "-q", "ince")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `1 of 2 films match "ince"`)
	assert.NotContains(t, out, "Amélie")
}

func TestList_NoMatches(t *testing.T) {
	mock := catalog.NewMockServer()
	defer mock.Close()
	isolate(t, mock.URL)

	code, out, _ := runCLI(t, "list", "-q", "zzz")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `No films match "zzz"`)
}

func TestList_BackendFailure(t *testing.T) {
	mock := catalog.NewMockServer()
	defer mock.Close()
	mock.FailMoviesWithDetail(http.StatusInternalServerError, "disk not mounted")
	isolate(t, mock.URL)

	code, out, _ := runCLI(t, "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error: disk not mounted")
}

func TestList_Unreachable(t *testing.T) {
	mock := catalog.NewMockServer()
	base := mock.URL
	mock.Close()
	isolate(t, base)

	code, out, _ := runCLI(t, "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "NAS: disconnected")
	assert.Contains(t, out, catalog.UnreachableMessage)
}

func TestPlay_PrintOnly(t *testing.T) {
	mock := catalog.NewMockServer()
	defer mock.Close()
	isolate(t, mock.URL)

	code, out, _ := runCLI(t, "play", "-q", "ince", "--print")
	require.Equal(t, 0, code)
	assert.Equal(t, mock.URL+"/api/stream/Films/Inception.mp4", strings.TrimSpace(out))
	assert.Zero(t, mock.Hits(catalog.EndpointStream))
}

func TestPlay_IndexOutOfRange(t *testing.T) {
	mock := catalog.NewMockServer()
	defer mock.Close()
	isolate(t, mock.URL)

	code, _, errOut := runCLI(t, "play", "-n", "5", "--print")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "out of range")
}

func TestProbe(t *testing.T) {
	mock := catalog.NewMockServer()
	defer mock.Close()
	isolate(t, mock.URL)

	code, out, _ := runCLI(t, "probe")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "NAS: connected")

	mock.SetConnected(false)
	code, out, errOut := runCLI(t, "probe")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "NAS: disconnected")
	assert.Contains(t, errOut, catalog.UnreachableMessage)
}

func TestConfig_InitValidateDump(t *testing.T) {
	dir := isolate(t, "http://nas.local:8001")
	path := filepath.Join(dir, "sub", config.ConfigFileName)

	code, out, _ := runCLI(t, "config", "init", "-f", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, path)
	_, err := os.Stat(path)
	require.NoError(t, err)

	code, _, errOut := runCLI(t, "config", "init", "-f", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "already exists")

	code, out, _ = runCLI(t, "config", "validate", "-f", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "is valid")

	code, out, _ = runCLI(t, "config", "dump", "-f", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "url: http://nas.local:8001")
}

func TestList_MalformedBackendURLIsUnreachable(t *testing.T) {
	isolate(t, "nas.local:8001")

	code, out, _ := runCLI(t, "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "NAS: disconnected")
	assert.Contains(t, out, catalog.UnreachableMessage)
}

func TestConfig_ValidateWarnsOnMalformedBackendURL(t *testing.T) {
	dir := isolate(t, "nas.local:8001")
	path := filepath.Join(dir, config.ConfigFileName)
	code, _, _ := runCLI(t, "config", "init", "-f", path)
	require.Equal(t, 0, code)

	code, out, errOut := runCLI(t, "config", "validate", "-f", path)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, errOut, "Warning")
	assert.Contains(t, errOut, "backend.url")
}

func TestConfig_ValidateRejectsUnknownKey(t *testing.T) {
	dir := isolate(t, "http://nas.local:8001")
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  urll: http://x\n"), 0o600))

	code, _, errOut := runCLI(t, "config", "validate", "-f", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Configuration error")
}
