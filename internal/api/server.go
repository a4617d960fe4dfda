// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api exposes the view model of a running orchestrator over HTTP
// for an external UI.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuGH/nascinema/internal/api/middleware"
	"github.com/ManuGH/nascinema/internal/api/problem"
	"github.com/ManuGH/nascinema/internal/health"
	"github.com/ManuGH/nascinema/internal/log"
	"github.com/ManuGH/nascinema/internal/view"
)

const shutdownTimeout = 5 * time.Second

// ViewService is the orchestrator surface the handlers drive.
type ViewService interface {
	Snapshot() view.ViewModel
	Start(ctx context.Context) error
	SetQuery(query string) view.ViewModel
	Select(key string) (view.ViewModel, error)
	Close() view.ViewModel
}

// Deps wires a Server.
type Deps struct {
	View   ViewService
	Health *health.Manager
	Stack  middleware.StackConfig
	// LoadContext bounds loads started by the retry endpoint. Loads outlive
	// the request that triggered them, so this is not a request context.
	LoadContext context.Context
}

// Server serves the HTTP surface.
type Server struct {
	view    ViewService
	health  *health.Manager
	loadCtx context.Context
	handler http.Handler
}

// New builds the router.
func New(deps Deps) *Server {
	s := &Server{
		view:    deps.View,
		health:  deps.Health,
		loadCtx: deps.LoadContext,
	}
	if s.health == nil {
		s.health = health.NewManager("")
	}
	if s.loadCtx == nil {
		s.loadCtx = context.Background()
	}
	s.handler = s.routes(deps.Stack)
	return s
}

// Handler returns the router with middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes(stack middleware.StackConfig) http.Handler {
	r := middleware.NewRouter(stack)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not Found", "NOT_FOUND", "", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		problem.Write(w, r, http.StatusMethodNotAllowed, problem.TypeMethodNotAllowed,
			"Method Not Allowed", "METHOD_NOT_ALLOWED", "", nil)
	})

	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/view", func(r chi.Router) {
		r.Get("/", s.handleGetView)
		r.Post("/retry", s.handleRetry)
		r.Put("/query", s.handleSetQuery)
		r.Post("/session", s.handleOpenSession)
		r.Delete("/session", s.handleCloseSession)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done. It closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := log.WithComponent("api")
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	logger.Info().
		Str(log.FieldEvent, "api.listening").
		Str("addr", ln.Addr().String()).
		Msg("HTTP surface listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info().Str(log.FieldEvent, "api.stopped").Msg("HTTP surface stopped")
	return nil
}
