// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command nascinema browses and plays the film catalog of a NAS media backend.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ManuGH/nascinema/internal/catalog"
	"github.com/ManuGH/nascinema/internal/config"
	xglog "github.com/ManuGH/nascinema/internal/log"
	"github.com/ManuGH/nascinema/internal/platform/httpx"
	"github.com/ManuGH/nascinema/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Safe defaults until the config is loaded.
	xglog.Configure(xglog.Config{
		Level:   "warn",
		Output:  stderr,
		Service: config.DefaultService,
		Version: version.Version,
	})

	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	switch args[0] {
	case "-version", "--version", "version":
		fmt.Fprintln(stdout, version.String())
		return 0
	case "list":
		return runList(ctx, args[1:], stdout, stderr)
	case "play":
		return runPlay(ctx, args[1:], stdout, stderr)
	case "probe":
		return runProbe(ctx, args[1:], stdout, stderr)
	case "serve":
		return runServe(ctx, args[1:], stdout, stderr)
	case "config":
		return runConfigCLI(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  nascinema list  [--config file] [-q query]")
	fmt.Fprintln(w, "  nascinema play  [--config file] [-q query] [-n index] [--print]")
	fmt.Fprintln(w, "  nascinema probe [--config file]")
	fmt.Fprintln(w, "  nascinema serve [--config file] [--listen addr]")
	fmt.Fprintln(w, "  nascinema config validate|dump|init")
	fmt.Fprintln(w, "  nascinema -version")
}

// loadConfig resolves and loads the effective configuration, then
// reconfigures logging from it.
func loadConfig(flagPath string, stderr io.Writer) (config.AppConfig, *config.Loader, error) {
	path := config.Discover(flagPath)
	loader := config.NewLoader(path, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		return cfg, loader, err
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.Log.Level,
		Output:  stderr,
		Service: cfg.Log.Service,
		Version: cfg.Version,
	})

	logger := xglog.WithComponent("cli")
	source := "env+defaults"
	if path != "" {
		source = "file"
	}
	logger.Debug().
		Str(xglog.FieldEvent, "config.loaded").
		Str("source", source).
		Str(xglog.FieldPath, path).
		Str(xglog.FieldBaseURL, xglog.RedactURL(cfg.Backend.URL)).
		Msg("configuration loaded")
	if err := config.Lint(cfg); err != nil {
		logger.Warn().Err(err).Str(xglog.FieldEvent, "config.lint").Msg("backend address looks wrong; loads will report the NAS unreachable")
	}
	return cfg, loader, nil
}

// newCatalog builds the backend client for cfg.
func newCatalog(cfg config.AppConfig) *catalog.Client {
	hc := httpx.NewClient(httpx.Options{
		Timeout:   cfg.Backend.Timeout,
		UserAgent: version.UserAgent(),
	})
	return catalog.New(cfg.Backend.URL, catalog.WithHTTPClient(hc))
}
