// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHolder(t *testing.T, body string) (*Holder, string) {
	t.Helper()
	path := writeConfig(t, t.TempDir(), body)
	loader := NewLoader(path, "test")
	cfg, err := loader.Load()
	require.NoError(t, err)
	return NewHolder(cfg, loader), path
}

func TestHolder_ReloadSwapsAndNotifies(t *testing.T) {
	h, path := newTestHolder(t, "backend:\n  url: http://one:8001\n")
	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte("backend:\n  url: http://two:8001\n"), 0o600))
	require.NoError(t, h.Reload(context.Background()))

	assert.Equal(t, "http://two:8001", h.Get().Backend.URL)
	select {
	case cfg := <-ch:
		assert.Equal(t, "http://two:8001", cfg.Backend.URL)
	default:
		t.Fatal("listener was not notified")
	}
}

func TestHolder_InvalidReloadKeepsCurrent(t *testing.T) {
	h, path := newTestHolder(t, "backend:\n  url: http://one:8001\n")

	require.NoError(t, os.WriteFile(path, []byte("backend:\n  url: ftp://bad\n"), 0o600))
	require.Error(t, h.Reload(context.Background()))
	assert.Equal(t, "http://one:8001", h.Get().Backend.URL)
}

func TestHolder_FullListenerDoesNotBlock(t *testing.T) {
	h, _ := newTestHolder(t, "")
	ch := make(chan AppConfig) // unbuffered, never read
	h.RegisterListener(ch)

	done := make(chan error, 1)
	go func() { done <- h.Reload(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("reload blocked on a full listener")
	}
}

func TestHolder_WatcherDisabledWithoutFile(t *testing.T) {
	h := NewHolder(Defaults(), NewLoader("", ""))
	assert.NoError(t, h.StartWatcher(context.Background()))
}

func TestHolder_WatcherReloadsOnAtomicReplace(t *testing.T) {
	h, path := newTestHolder(t, "backend:\n  url: http://one:8001\n")
	h.debounce = 20 * time.Millisecond
	ch := make(chan AppConfig, 4)
	h.RegisterListener(ch)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, h.StartWatcher(ctx))

	next := Defaults()
	next.Backend.URL = "http://two:8001"
	require.NoError(t, WriteFile(path, next))

	select {
	case cfg := <-ch:
		assert.Equal(t, "http://two:8001", cfg.Backend.URL)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload")
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Defaults()
	cfg.Player.Args = []string{"--fs", "{url}"}
	cfg.Version = "not-persisted"

	require.NoError(t, WriteFile(path, cfg))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())

	got := Defaults()
	require.NoError(t, decodeFile(path, &got))
	cfg.Version = ""
	assert.Equal(t, cfg, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 30s")
}

func TestDiff(t *testing.T) {
	old := Defaults()
	assert.Empty(t, Diff(old, old))

	cur := Defaults()
	cur.Backend.URL = "http://nas.local:8001"
	cur.Player.Args = []string{"--fs"}
	cur.API.ListenAddr = "0.0.0.0:8090"

	assert.Equal(t, []Change{
		{Key: "backend.url"},
		{Key: "player"},
		{Key: "api", Restart: true},
	}, Diff(old, cur))
}
