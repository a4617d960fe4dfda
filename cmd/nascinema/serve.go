// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/nascinema/internal/api"
	"github.com/ManuGH/nascinema/internal/api/middleware"
	"github.com/ManuGH/nascinema/internal/config"
	"github.com/ManuGH/nascinema/internal/health"
	xglog "github.com/ManuGH/nascinema/internal/log"
	"github.com/ManuGH/nascinema/internal/telemetry"
	"github.com/ManuGH/nascinema/internal/version"
	"github.com/ManuGH/nascinema/internal/view"
)

func runServe(ctx context.Context, args []string, _, stderr io.Writer) int {
	fs := flag.NewFlagSet("nascinema serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config file (YAML)")
	listen := fs.String("listen", "", "listen address (overrides api.listenAddr)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, loader, err := loadConfig(*configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	addr := cfg.API.ListenAddr
	if strings.TrimSpace(*listen) != "" {
		addr = strings.TrimSpace(*listen)
	}

	if err := serve(ctx, cfg, loader, addr, stderr); err != nil {
		logger := xglog.WithComponent("cli")
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "serve.failed").
			Msg("serve stopped with error")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// serve runs the HTTP surface, the config watcher and the reload listener
// until ctx is done or one of them fails.
func serve(ctx context.Context, cfg config.AppConfig, loader *config.Loader, addr string, stderr io.Writer) error {
	logger := xglog.WithComponent("serve")

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.Log.Service,
		ServiceVersion: version.Version,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("start telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Str(xglog.FieldEvent, "telemetry.shutdown_failed").Msg("telemetry shutdown failed")
		}
	}()

	orch := view.New(newCatalog(cfg), view.WithTracer(telemetry.Tracer("nascinema/view")))
	defer orch.Wait()

	hm := health.NewManager(version.Version)
	hm.RegisterChecker(health.NewConnectivityChecker(orch.Monitor()))

	g, gctx := errgroup.WithContext(ctx)

	stack := middleware.StackConfig{
		EnableMetrics:      true,
		EnableLogging:      true,
		RateLimitPerMinute: cfg.API.RateLimitPerMinute,
	}
	if cfg.Telemetry.Enabled {
		stack.TracingService = cfg.Log.Service
	}
	srv := api.New(api.Deps{
		View:        orch,
		Health:      hm,
		Stack:       stack,
		LoadContext: gctx,
	})
	g.Go(func() error { return srv.ListenAndServe(gctx, addr) })

	holder := config.NewHolder(cfg, loader)
	updates := make(chan config.AppConfig, 1)
	holder.RegisterListener(updates)
	if err := holder.StartWatcher(gctx); err != nil {
		logger.Warn().Err(err).Str(xglog.FieldEvent, "config.watcher_failed").Msg("config hot reload unavailable")
	}
	g.Go(func() error {
		current := cfg
		for {
			select {
			case <-gctx.Done():
				return nil
			case next := <-updates:
				applyReload(orch, current, next, stderr)
				current = next
			}
		}
	})

	if err := orch.Start(gctx); err != nil {
		logger.Warn().Err(err).Str(xglog.FieldEvent, "view.initial_load_skipped").Msg("initial load not started")
	}

	return g.Wait()
}

// applyReload pushes a reloaded configuration into the running components.
// The listen address and telemetry settings need a restart.
func applyReload(orch *view.Orchestrator, old, cur config.AppConfig, stderr io.Writer) {
	logger := xglog.WithComponent("serve")

	if old.Log != cur.Log {
		xglog.Configure(xglog.Config{
			Level:   cur.Log.Level,
			Output:  stderr,
			Service: cur.Log.Service,
			Version: cur.Version,
		})
	}
	if old.Backend != cur.Backend {
		orch.Rebind(newCatalog(cur))
		logger.Info().
			Str(xglog.FieldEvent, "catalog.rebound").
			Str(xglog.FieldBaseURL, xglog.RedactURL(cur.Backend.URL)).
			Msg("backend changed, next load uses the new client")
	}
	if old.API.ListenAddr != cur.API.ListenAddr || old.Telemetry != cur.Telemetry {
		logger.Warn().
			Str(xglog.FieldEvent, "config.restart_required").
			Msg("listen address or telemetry changed; restart to apply")
	}
}
