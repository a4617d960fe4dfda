// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package playback owns the single active playback selection and hands its
// stream URL to an external player.
package playback

import (
	"sync"

	"github.com/ManuGH/nascinema/internal/media"
)

// Session is None or Active(item). Position, volume and the like belong to
// the player, not to the session.
type Session struct {
	mu     sync.RWMutex
	active *media.Item
}

// Open makes item the active selection, replacing any previous one.
// It reports whether a session was replaced.
func (s *Session) Open(item media.Item) (replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced = s.active != nil
	it := item
	s.active = &it
	return replaced
}

// Close clears the selection. It reports whether a session was active;
// closing an empty session is a no-op.
func (s *Session) Close() (closed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	closed = s.active != nil
	s.active = nil
	return closed
}

// Active returns the selected item, if any.
func (s *Session) Active() (media.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return media.Item{}, false
	}
	return *s.active, true
}
