// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	xglog "github.com/ManuGH/nascinema/internal/log"
	"github.com/ManuGH/nascinema/internal/playback"
	"github.com/ManuGH/nascinema/internal/view"
)

func runPlay(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("nascinema play", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config file (YAML)")
	query := fs.String("q", "", "case-insensitive search query")
	index := fs.Int("n", 1, "1-based index into the visible list")
	printOnly := fs.Bool("print", false, "print the stream URL without starting the player")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, _, err := loadConfig(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	orch, vm, err := loadView(ctx, cfg, *query)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if vm.Phase == view.PhaseError {
		fmt.Fprintf(stderr, "Error: %s\n", vm.ErrorMessage)
		return 1
	}
	if *index < 1 || *index > len(vm.VisibleItems) {
		fmt.Fprintf(stderr, "Error: index %d out of range (%d visible)\n", *index, len(vm.VisibleItems))
		return 1
	}

	vm, err = orch.Select(vm.VisibleItems[*index-1].Key())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer orch.Close()

	item := *vm.ActiveSession
	fmt.Fprintln(stdout, vm.StreamURL)
	if *printOnly {
		return 0
	}

	player := playback.CommandPlayer{
		Command: cfg.Player.Command,
		Args:    cfg.Player.Args,
		Stdout:  stdout,
		Stderr:  stderr,
	}
	if err := player.Play(ctx, item, vm.StreamURL); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		logger := xglog.WithComponent("cli")
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "player.failed").
			Str(xglog.FieldItemName, item.Name).
			Msg("player failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
