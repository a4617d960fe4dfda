// SPDX-License-Identifier: MIT

// Package health serves liveness and readiness checks for the serve command.
// Liveness only says the process answers; readiness reflects whether the
// NAS answered the last probe.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ManuGH/nascinema/internal/log"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// severity orders statuses so the worst check wins.
func (s Status) severity() int {
	switch s {
	case StatusUnhealthy:
		return 2
	case StatusDegraded:
		return 1
	default:
		return 0
	}
}

// CheckResult is the outcome of one component check.
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status    Status                 `json:"status"`
	Version   string                 `json:"version,omitempty"`
	Uptime    int64                  `json:"uptime_seconds"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// ReadinessResponse is the /readyz body.
type ReadinessResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// Checker is one named component check.
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// Manager runs the registered checkers. It is safe for concurrent use.
type Manager struct {
	version string
	started time.Time

	mu       sync.RWMutex
	checkers []Checker
}

func NewManager(version string) *Manager {
	return &Manager{version: version, started: time.Now()}
}

func (m *Manager) RegisterChecker(c Checker) {
	m.mu.Lock()
	m.checkers = append(m.checkers, c)
	m.mu.Unlock()
}

// evaluate runs every checker and returns the worst status.
func (m *Manager) evaluate(ctx context.Context) (Status, map[string]CheckResult) {
	m.mu.RLock()
	checkers := append([]Checker(nil), m.checkers...)
	m.mu.RUnlock()

	overall := StatusHealthy
	if len(checkers) == 0 {
		return overall, nil
	}
	results := make(map[string]CheckResult, len(checkers))
	for _, c := range checkers {
		r := c.Check(ctx)
		results[c.Name()] = r
		if r.Status.severity() > overall.severity() {
			overall = r.Status
		}
	}
	return overall, results
}

// Health is the liveness view. Checks only run when verbose; the status is
// then the worst check, but liveness still answers 200.
func (m *Manager) Health(ctx context.Context, verbose bool) HealthResponse {
	resp := HealthResponse{
		Status:    StatusHealthy,
		Version:   m.version,
		Uptime:    int64(time.Since(m.started).Seconds()),
		Timestamp: time.Now(),
	}
	if verbose {
		resp.Status, resp.Checks = m.evaluate(ctx)
	}
	return resp
}

// Ready is the readiness view: ready unless a check is unhealthy.
func (m *Manager) Ready(ctx context.Context) ReadinessResponse {
	status, checks := m.evaluate(ctx)
	return ReadinessResponse{
		Ready:     status != StatusUnhealthy,
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	}
}

func (m *Manager) ServeHealth(w http.ResponseWriter, r *http.Request) {
	resp := m.Health(r.Context(), r.URL.Query().Get("verbose") == "true")
	writeJSON(w, r, http.StatusOK, resp, "health")
}

func (m *Manager) ServeReady(w http.ResponseWriter, r *http.Request) {
	resp := m.Ready(r.Context())
	code := http.StatusOK
	if !resp.Ready {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, r, code, resp, "readiness")
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, body any, component string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger := log.WithComponentFromContext(r.Context(), component)
		logger.Error().Err(err).Str(log.FieldEvent, component+".encode_error").Msg("failed to encode response")
	}
}

// ProbeState is the connectivity surface a ConnectivityChecker reads.
type ProbeState interface {
	Known() bool
	Connected() bool
}

// ConnectivityChecker reports the last NAS probe: healthy when connected,
// unhealthy when disconnected, degraded before the first probe.
type ConnectivityChecker struct {
	state ProbeState
}

func NewConnectivityChecker(state ProbeState) *ConnectivityChecker {
	return &ConnectivityChecker{state: state}
}

func (c *ConnectivityChecker) Name() string { return "nas" }

func (c *ConnectivityChecker) Check(context.Context) CheckResult {
	switch {
	case !c.state.Known():
		return CheckResult{Status: StatusDegraded, Message: "no probe yet"}
	case c.state.Connected():
		return CheckResult{Status: StatusHealthy, Message: "connected"}
	default:
		return CheckResult{Status: StatusUnhealthy, Error: "cannot reach the NAS"}
	}
}

// FuncChecker adapts a function to Checker.
type FuncChecker struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

func NewFuncChecker(name string, fn func(ctx context.Context) CheckResult) *FuncChecker {
	return &FuncChecker{name: name, fn: fn}
}

func (c *FuncChecker) Name() string { return c.name }

func (c *FuncChecker) Check(ctx context.Context) CheckResult { return c.fn(ctx) }
