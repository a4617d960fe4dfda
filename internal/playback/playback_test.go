// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package playback

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/ManuGH/nascinema/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	inception = media.Item{Name: "Inception.mp4", Format: "mp4", Path: "/Films/Inception.mp4", Position: 0}
	amelie    = media.Item{Name: "Amélie.mkv", Format: "mkv", Path: "/Films/Amelie.mkv", Position: 1}
)

func TestSession_OpenReplaces(t *testing.T) {
	var s Session
	_, ok := s.Active()
	assert.False(t, ok)

	assert.False(t, s.Open(inception))
	assert.True(t, s.Open(amelie))

	got, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, amelie.Name, got.Name)
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	var s Session
	assert.False(t, s.Close())

	s.Open(inception)
	assert.True(t, s.Close())
	_, ok := s.Active()
	assert.False(t, ok)

	assert.False(t, s.Close())
}

func TestStreamURL(t *testing.T) {
	base := "http://nas:8001/api/stream"
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "plain", base: base, path: "/Films/Inception.mp4", want: base + "/Films/Inception.mp4"},
		{name: "trailing slash base", base: base + "/", path: "/Films/Inception.mp4", want: base + "/Films/Inception.mp4"},
		{name: "spaces", base: base, path: "/Films/Example Movie 1.mp4", want: base + "/Films/Example%20Movie%201.mp4"},
		{name: "accents", base: base, path: "/Films/Amélie.mkv", want: base + "/Films/Am%C3%A9lie.mkv"},
		{name: "query chars", base: base, path: "/Films/What?#1.mp4", want: base + "/Films/What%3F%231.mp4"},
		{name: "no leading slash", base: base, path: "Films/Heat.avi", want: base + "/Films/Heat.avi"},
		{name: "empty", base: base, path: "", want: base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StreamURL(tt.base, tt.path))
		})
	}
}

func TestExpandArgs(t *testing.T) {
	u := "http://nas/api/stream/Films/Inception.mp4"
	assert.Equal(t, []string{"--fs", u}, ExpandArgs([]string{"--fs"}, inception, u))
	assert.Equal(t,
		[]string{"--title=Inception", u, "--fs"},
		ExpandArgs([]string{"--title={title}", "{url}", "--fs"}, inception, u))
	assert.Equal(t, []string{u}, ExpandArgs(nil, inception, u))
}

func TestCommandPlayer_NoCommand(t *testing.T) {
	err := CommandPlayer{}.Play(context.Background(), inception, "http://x")
	assert.ErrorIs(t, err, ErrNoPlayer)
}

func TestCommandPlayer_MissingBinary(t *testing.T) {
	err := CommandPlayer{Command: "nascinema-no-such-player"}.Play(context.Background(), inception, "http://x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find player")
}

func TestCommandPlayer_RunsCommand(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}
	var out bytes.Buffer
	p := CommandPlayer{Command: "echo", Args: []string{"{title}"}, Stdout: &out}
	require.NoError(t, p.Play(context.Background(), inception, "http://nas/api/stream/Films/Inception.mp4"))
	assert.Equal(t, "Inception http://nas/api/stream/Films/Inception.mp4\n", out.String())
}
