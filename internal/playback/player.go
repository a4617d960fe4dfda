// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ManuGH/nascinema/internal/log"
	"github.com/ManuGH/nascinema/internal/media"
)

// ErrNoPlayer is returned when no player command is configured.
var ErrNoPlayer = errors.New("playback: no player command configured")

// Player is the external media-rendering surface.
type Player interface {
	Play(ctx context.Context, item media.Item, streamURL string) error
}

// CommandPlayer runs an external program (mpv, vlc, ...) on the stream URL
// and waits for it to exit.
//
// Args may contain the placeholders {url} and {title}. When no argument
// contains {url}, the URL is appended as the last argument.
type CommandPlayer struct {
	Command string
	Args    []string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Play blocks until the player exits or ctx is cancelled.
func (p CommandPlayer) Play(ctx context.Context, item media.Item, streamURL string) error {
	if strings.TrimSpace(p.Command) == "" {
		return ErrNoPlayer
	}
	bin, err := exec.LookPath(p.Command)
	if err != nil {
		return fmt.Errorf("find player %q: %w", p.Command, err)
	}

	args := ExpandArgs(p.Args, item, streamURL)
	logger := log.WithComponentFromContext(ctx, "player")
	logger.Info().
		Str(log.FieldEvent, "player.start").
		Str("command", bin).
		Str(log.FieldItemName, item.Name).
		Str(log.FieldStreamURL, streamURL).
		Msg("handing stream to external player")

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run player: %w", err)
	}

	logger.Info().Str(log.FieldEvent, "player.exit").Msg("player exited")
	return nil
}

// ExpandArgs substitutes {url} and {title} in args.
func ExpandArgs(args []string, item media.Item, streamURL string) []string {
	out := make([]string, 0, len(args)+1)
	sawURL := false
	r := strings.NewReplacer("{url}", streamURL, "{title}", item.Title())
	for _, a := range args {
		if strings.Contains(a, "{url}") {
			sawURL = true
		}
		out = append(out, r.Replace(a))
	}
	if !sawURL {
		out = append(out, streamURL)
	}
	return out
}
