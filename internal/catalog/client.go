// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package catalog is the client of the NAS backend API: connectivity probe,
// movie listing and stream URL base.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ManuGH/nascinema/internal/log"
	"github.com/ManuGH/nascinema/internal/media"
	"github.com/ManuGH/nascinema/internal/metrics"
	"github.com/ManuGH/nascinema/internal/platform/httpx"
	"github.com/rs/zerolog"
)

const (
	pathProbe  = "/api/connection/test"
	pathMovies = "/api/movies"
	pathInfo   = "/api/"
	pathStream = "/api/stream"

	maxErrorBody = 64 << 10
)

// Client talks to one backend base address. It never retries.
type Client struct {
	base   string
	http   *http.Client
	logger zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default hardened client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for base. base is not validated: a bad address
// surfaces as a failed probe.
func New(base string, opts ...Option) *Client {
	c := &Client{base: strings.TrimRight(strings.TrimSpace(base), "/")}
	c.logger = log.Derive(func(lc *zerolog.Context) {
		*lc = lc.Str(log.FieldComponent, "catalog").Str(log.FieldBaseURL, log.RedactURL(c.base))
	})
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpx.NewClient(httpx.Options{})
	}
	return c
}

// BaseURL returns the normalised backend base address.
func (c *Client) BaseURL() string { return c.base }

// StreamBase returns the prefix stream paths are appended to.
func (c *Client) StreamBase() string { return c.base + pathStream }

// Status is the outcome of a connectivity probe.
type Status struct {
	Connected bool
	Message   string
	// Err is the failure that collapsed the probe to false. Logged, never surfaced.
	Err error
}

// TestConnection probes the backend. Every failure collapses into Connected=false.
func (c *Client) TestConnection(ctx context.Context) Status {
	logger := log.WithContext(ctx, c.logger)
	start := time.Now()

	var payload struct {
		Connected bool   `json:"connected"`
		Message   string `json:"message"`
	}
	status, outcome, err := c.getJSON(ctx, pathProbe, &payload)
	metrics.ObserveBackendRequest("probe", outcome, time.Since(start))
	if err != nil {
		logger.Debug().
			Err(err).
			Str(log.FieldEvent, "catalog.probe_failed").
			Int(log.FieldStatus, status).
			Msg("connectivity probe failed, reporting disconnected")
		return Status{Connected: false, Err: err}
	}

	logger.Debug().
		Str(log.FieldEvent, "catalog.probe_done").
		Bool(log.FieldConnected, payload.Connected).
		Dur(log.FieldDuration, time.Since(start)).
		Msg("connectivity probe answered")
	return Status{Connected: payload.Connected, Message: payload.Message}
}

type movieDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Format    string `json:"format"`
	Size      *int64 `json:"size"`
	Thumbnail string `json:"thumbnail"`
}

// FetchMovies lists the catalog. Failures are *FetchError.
func (c *Client) FetchMovies(ctx context.Context) ([]media.Item, error) {
	logger := log.WithContext(ctx, c.logger)
	start := time.Now()

	var payload struct {
		Movies []movieDTO `json:"movies"`
		Total  *int       `json:"total"`
	}
	status, outcome, err := c.getJSON(ctx, pathMovies, &payload)
	metrics.ObserveBackendRequest("movies", outcome, time.Since(start))
	if err != nil {
		fe := toFetchError("movies", status, err)
		logger.Warn().
			Err(err).
			Str(log.FieldEvent, "catalog.fetch_failed").
			Int(log.FieldStatus, status).
			Str("message", fe.Message()).
			Msg("movie listing failed")
		return nil, fe
	}

	items := make([]media.Item, 0, len(payload.Movies))
	for i, m := range payload.Movies {
		format := strings.ToLower(m.Format)
		if format == "" {
			format = media.FormatOf(m.Name)
		}
		items = append(items, media.Item{
			ID:        m.ID,
			Name:      m.Name,
			Format:    format,
			Path:      m.Path,
			Size:      m.Size,
			Thumbnail: m.Thumbnail,
			Position:  i,
		})
	}
	if payload.Total != nil && *payload.Total != len(items) {
		logger.Debug().
			Int("total", *payload.Total).
			Int(log.FieldItemCount, len(items)).
			Msg("backend total differs from listed movies")
	}

	logger.Debug().
		Str(log.FieldEvent, "catalog.fetch_done").
		Int(log.FieldItemCount, len(items)).
		Dur(log.FieldDuration, time.Since(start)).
		Msg("movie listing received")
	return items, nil
}

// ServerInfo is the backend's self description.
type ServerInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// Info reads the backend's root endpoint.
func (c *Client) Info(ctx context.Context) (ServerInfo, error) {
	start := time.Now()
	var info ServerInfo
	status, outcome, err := c.getJSON(ctx, pathInfo, &info)
	metrics.ObserveBackendRequest("info", outcome, time.Since(start))
	if err != nil {
		return ServerInfo{}, toFetchError("info", status, err)
	}
	return info, nil
}

// httpStatusError is a non-2xx response. body holds at most maxErrorBody bytes.
type httpStatusError struct {
	status int
	body   []byte
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.status)
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return "invalid response from backend: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// getJSON performs one GET and decodes a 2xx body into out. It returns the
// HTTP status (0 on transport failure) and the metrics outcome label.
func (c *Client) getJSON(ctx context.Context, path string, out any) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return 0, metrics.OutcomeTransportError, err
	}
	req.Header.Set("Accept", "application/json")
	if cid := log.CorrelationIDFromContext(ctx); cid != "" {
		req.Header.Set("X-Correlation-ID", cid)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, metrics.OutcomeTransportError, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return res.StatusCode, metrics.OutcomeHTTPError, &httpStatusError{status: res.StatusCode, body: body}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return res.StatusCode, metrics.OutcomeDecodeError, &decodeError{err: err}
	}
	return res.StatusCode, metrics.OutcomeSuccess, nil
}

func toFetchError(op string, status int, err error) *FetchError {
	fe := &FetchError{Operation: op, Status: status}

	var se *httpStatusError
	if errors.As(err, &se) {
		fe.Detail = detailOf(se.body)
		fe.Err = se
		return fe
	}

	// Report the transport cause without the "Get <url>:" prefix.
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		fe.Err = ue.Err
		return fe
	}
	fe.Err = err
	return fe
}

// detailOf extracts a string "detail" field from an error body.
func detailOf(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
