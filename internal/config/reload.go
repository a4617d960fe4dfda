// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	xglog "github.com/ManuGH/nascinema/internal/log"
)

// DefaultDebounce coalesces bursts of file events into one reload.
const DefaultDebounce = 500 * time.Millisecond

// Holder holds the effective configuration and reloads it from file.
// A reload that fails to load or validate keeps the previous configuration.
type Holder struct {
	mu       sync.RWMutex
	current  AppConfig
	loader   *Loader
	debounce time.Duration
	logger   zerolog.Logger

	listenMu  sync.RWMutex
	listeners []chan<- AppConfig
}

// NewHolder wraps an already loaded configuration.
func NewHolder(initial AppConfig, loader *Loader) *Holder {
	return &Holder{
		current:  initial,
		loader:   loader,
		debounce: DefaultDebounce,
		logger:   xglog.WithComponent("config"),
	}
}

// Get returns the current configuration.
func (h *Holder) Get() AppConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload re-runs the loader and swaps the configuration if it is valid.
func (h *Holder) Reload(_ context.Context) error {
	h.logger.Info().Str(xglog.FieldEvent, "config.reload_start").Msg("reloading configuration")

	newCfg, err := h.loader.Load()
	if err != nil {
		h.logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "config.reload_failed").
			Msg("new configuration rejected, keeping the current one")
		return fmt.Errorf("load config: %w", err)
	}

	h.mu.Lock()
	oldCfg := h.current
	h.current = newCfg
	h.mu.Unlock()

	h.logChanges(oldCfg, newCfg)
	h.notifyListeners(newCfg)

	h.logger.Info().
		Str(xglog.FieldEvent, "config.reload_success").
		Msg("configuration reloaded")
	return nil
}

// StartWatcher reloads on changes to the config file until ctx is done.
// The parent directory is watched so atomic replace-by-rename is seen.
// Without a config file this is a no-op.
func (h *Holder) StartWatcher(ctx context.Context) error {
	path := h.loader.Path()
	if path == "" {
		h.logger.Info().
			Str(xglog.FieldEvent, "config.watcher_disabled").
			Msg("config file watcher disabled (ENV-only configuration)")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}

	h.logger.Info().
		Str(xglog.FieldEvent, "config.watcher_started").
		Str(xglog.FieldPath, path).
		Msg("watching config file for changes")

	go h.watchLoop(ctx, watcher, filepath.Clean(path))
	return nil
}

// watchLoop reloads on the loop goroutine once events have been quiet for
// the debounce window, so reloads never overlap.
func (h *Holder) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string) {
	defer func() { _ = watcher.Close() }()

	quiet := time.NewTimer(h.debounce)
	quiet.Stop()
	defer quiet.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str(xglog.FieldEvent, "config.watcher_stopped").Msg("config watcher stopped")
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !touches(ev, path) {
				continue
			}
			h.logger.Debug().Str(xglog.FieldEvent, "config.file_changed").Str("op", ev.Op.String()).Msg("config file changed")
			quiet.Reset(h.debounce)

		case <-quiet.C:
			if err := h.Reload(ctx); err != nil {
				h.logger.Error().Err(err).Str(xglog.FieldEvent, "config.auto_reload_failed").Msg("automatic config reload failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Str(xglog.FieldEvent, "config.watcher_error").Msg("config watcher error")
		}
	}
}

// touches reports whether ev may have changed the content at path. Chmod
// and Remove alone do not; an editor's replace-by-rename ends in Create.
func touches(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// RegisterListener registers ch for successful reloads. Sends never block;
// a full channel misses the update. The caller owns ch.
func (h *Holder) RegisterListener(ch chan<- AppConfig) {
	h.listenMu.Lock()
	defer h.listenMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

func (h *Holder) notifyListeners(cfg AppConfig) {
	h.listenMu.RLock()
	defer h.listenMu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- cfg:
		default:
			h.logger.Warn().
				Str(xglog.FieldEvent, "config.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}

// Change names one configuration key that differs between two configs.
type Change struct {
	Key string
	// Restart is set when running components cannot pick the value up.
	Restart bool
}

// Diff lists the keys that differ between old and cur.
func Diff(old, cur AppConfig) []Change {
	var out []Change
	add := func(changed bool, key string, restart bool) {
		if changed {
			out = append(out, Change{Key: key, Restart: restart})
		}
	}
	add(old.Backend.URL != cur.Backend.URL, "backend.url", false)
	add(old.Backend.Timeout != cur.Backend.Timeout, "backend.timeout", false)
	add(old.Log != cur.Log, "log", false)
	add(old.Player.Command != cur.Player.Command || !slices.Equal(old.Player.Args, cur.Player.Args), "player", false)
	add(old.API != cur.API, "api", true)
	add(old.Telemetry != cur.Telemetry, "telemetry", true)
	return out
}

func (h *Holder) logChanges(old, cur AppConfig) {
	for _, c := range Diff(old, cur) {
		if c.Restart {
			h.logger.Warn().Str("key", c.Key).Msg("config changed, takes effect after restart")
			continue
		}
		h.logger.Info().Str("key", c.Key).Msg("config changed")
	}
}
