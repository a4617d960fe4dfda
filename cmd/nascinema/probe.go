// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/ManuGH/nascinema/internal/catalog"
	"github.com/ManuGH/nascinema/internal/connectivity"
	xglog "github.com/ManuGH/nascinema/internal/log"
)

func runProbe(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("nascinema probe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config file (YAML)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, _, err := loadConfig(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	client := newCatalog(cfg)
	fmt.Fprintf(stdout, "Backend: %s\n", xglog.RedactURL(client.BaseURL()))

	st := client.TestConnection(ctx)
	var mon connectivity.Monitor
	mon.Record(st.Connected)
	fmt.Fprintf(stdout, "NAS: %s\n", mon.Badge())
	if st.Message != "" {
		fmt.Fprintf(stdout, "Message: %s\n", st.Message)
	}
	if !st.Connected {
		fmt.Fprintln(stderr, catalog.UnreachableMessage)
		return 1
	}

	info, err := client.Info(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Info: %v\n", err)
		return 0
	}
	if info.Version != "" {
		fmt.Fprintf(stdout, "Version: %s\n", info.Version)
	}
	if info.Message != "" {
		fmt.Fprintf(stdout, "Server: %s\n", info.Message)
	}
	return 0
}
