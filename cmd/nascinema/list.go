// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/unicode/norm"

	"github.com/ManuGH/nascinema/internal/config"
	"github.com/ManuGH/nascinema/internal/media"
	"github.com/ManuGH/nascinema/internal/view"
)

func runList(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("nascinema list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config file (YAML)")
	query := fs.String("q", "", "case-insensitive search query")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, _, err := loadConfig(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	_, vm, err := loadView(ctx, cfg, *query)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	renderView(stdout, vm)
	if vm.Phase == view.PhaseError {
		return 1
	}
	return 0
}

// loadView runs one load sequence and applies query.
func loadView(ctx context.Context, cfg config.AppConfig, query string) (*view.Orchestrator, view.ViewModel, error) {
	orch := view.New(newCatalog(cfg))
	vm, err := orch.Load(ctx)
	if err != nil {
		return orch, vm, err
	}
	if query != "" {
		vm = orch.SetQuery(query)
	}
	return orch, vm, nil
}

// renderView prints a view model the way a terminal user reads it.
func renderView(w io.Writer, vm view.ViewModel) {
	if vm.Badge != "" {
		fmt.Fprintf(w, "NAS: %s\n", vm.Badge)
	}

	switch vm.Phase {
	case view.PhaseLoading:
		fmt.Fprintln(w, "Loading...")
		return
	case view.PhaseError:
		fmt.Fprintf(w, "Error: %s\n", vm.ErrorMessage)
		return
	}

	switch vm.EmptyReason() {
	case view.EmptyNoMatches:
		fmt.Fprintf(w, "No films match %q\n", vm.Query)
		return
	case view.EmptyCatalog:
		fmt.Fprintln(w, "The catalog is empty")
		return
	}

	if vm.Query != "" {
		fmt.Fprintf(w, "%d of %d films match %q\n", len(vm.VisibleItems), vm.Total, vm.Query)
	} else {
		fmt.Fprintf(w, "%d films\n", vm.Total)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, item := range vm.VisibleItems {
		size := "-"
		if item.Size != nil && *item.Size >= 0 {
			size = humanize.Bytes(uint64(*item.Size))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, displayTitle(item), item.Kind(), size)
	}
	_ = tw.Flush()

	if vm.ActiveSession != nil {
		fmt.Fprintf(w, "Playing: %s\n%s\n", displayTitle(*vm.ActiveSession), vm.StreamURL)
	}
}

// displayTitle composes accents for the terminal only. tabwriter counts
// runes, so a decomposed name would be padded one cell short per accent.
func displayTitle(item media.Item) string {
	return norm.NFC.String(item.Title())
}
