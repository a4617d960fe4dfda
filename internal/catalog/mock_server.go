// SPDX-License-Identifier: MIT
package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/ManuGH/nascinema/internal/media"
)

// Endpoint names accepted by MockServer.SetDelay and MockServer.Hits.
const (
	EndpointProbe  = "probe"
	EndpointMovies = "movies"
	EndpointInfo   = "info"
	EndpointStream = "stream"
)

// MockServer is a configurable fake NAS backend for tests.
type MockServer struct {
	*httptest.Server

	mu        sync.RWMutex
	connected bool
	probeCode int
	movies    []media.Item
	moviesErr *mockFailure
	delay     map[string]time.Duration
	hits      map[string]int
	streams   map[string][]byte
}

type mockFailure struct {
	status int
	body   string
}

// NewMockServer starts a backend that is connected and lists DefaultMovies.
func NewMockServer() *MockServer {
	m := &MockServer{
		connected: true,
		probeCode: http.StatusOK,
		movies:    DefaultMovies(),
		delay:     make(map[string]time.Duration),
		hits:      make(map[string]int),
		streams:   make(map[string][]byte),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/connection/test", m.handleProbe)
	mux.HandleFunc("/api/movies", m.handleMovies)
	mux.HandleFunc("/api/stream/", m.handleStream)
	mux.HandleFunc("/api/", m.handleInfo)

	m.Server = httptest.NewServer(mux)
	return m
}

// DefaultMovies is the catalog served by a fresh MockServer.
func DefaultMovies() []media.Item {
	return []media.Item{
		{Name: "Inception.mp4", Format: "mp4", Path: "/Films/Inception.mp4"},
		{Name: "Amélie.mkv", Format: "mkv", Path: "/Films/Amelie.mkv"},
	}
}

// SetConnected sets the "connected" field of the probe response.
func (m *MockServer) SetConnected(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = ok
}

// SetProbeStatus makes the probe answer with code (non-2xx means a probe failure).
func (m *MockServer) SetProbeStatus(code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probeCode = code
}

// SetMovies replaces the listed catalog. A nil slice is encoded as null.
func (m *MockServer) SetMovies(items []media.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movies = items
	m.moviesErr = nil
}

// FailMovies makes the listing answer with status and the given raw body.
func (m *MockServer) FailMovies(status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moviesErr = &mockFailure{status: status, body: body}
}

// FailMoviesWithDetail answers like a FastAPI HTTPException.
func (m *MockServer) FailMoviesWithDetail(status int, detail string) {
	b, _ := json.Marshal(map[string]string{"detail": detail})
	m.FailMovies(status, string(b))
}

// SetDelay delays every response of endpoint.
func (m *MockServer) SetDelay(endpoint string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay[endpoint] = d
}

// SetStream registers content served under /api/stream{path}.
func (m *MockServer) SetStream(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams[path] = content
}

// Hits returns how many requests endpoint received.
func (m *MockServer) Hits(endpoint string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits[endpoint]
}

func (m *MockServer) enter(endpoint string) {
	m.mu.Lock()
	m.hits[endpoint]++
	d := m.delay[endpoint]
	m.mu.Unlock()
	if d > 0 {
		time.Sleep(d)
	}
}

func (m *MockServer) handleProbe(w http.ResponseWriter, _ *http.Request) {
	m.enter(EndpointProbe)

	m.mu.RLock()
	code, connected := m.probeCode, m.connected
	m.mu.RUnlock()

	if code < 200 || code > 299 {
		http.Error(w, "probe failed", code)
		return
	}
	msg := "Connected to NAS"
	if !connected {
		msg = "Failed to connect to NAS"
	}
	writeJSON(w, code, map[string]any{"connected": connected, "message": msg})
}

func (m *MockServer) handleMovies(w http.ResponseWriter, _ *http.Request) {
	m.enter(EndpointMovies)

	m.mu.RLock()
	fail := m.moviesErr
	movies := m.movies
	m.mu.RUnlock()

	if fail != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fail.status)
		_, _ = w.Write([]byte(fail.body))
		return
	}

	var list []movieDTO
	if movies != nil {
		list = make([]movieDTO, 0, len(movies))
		for _, it := range movies {
			list = append(list, movieDTO{ID: it.ID, Name: it.Name, Path: it.Path, Format: it.Format, Size: it.Size, Thumbnail: it.Thumbnail})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"movies": list, "total": len(list)})
}

func (m *MockServer) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/" {
		http.NotFound(w, r)
		return
	}
	m.enter(EndpointInfo)
	writeJSON(w, http.StatusOK, ServerInfo{Message: "NAS Movie Streamer API", Version: "1.0.0"})
}

func (m *MockServer) handleStream(w http.ResponseWriter, r *http.Request) {
	m.enter(EndpointStream)

	p := strings.TrimPrefix(r.URL.Path, "/api/stream")
	m.mu.RLock()
	content, ok := m.streams[p]
	m.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Movie not found"})
		return
	}
	http.ServeContent(w, r, p, time.Time{}, bytes.NewReader(content))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
