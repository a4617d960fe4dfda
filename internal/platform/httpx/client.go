// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package httpx builds the HTTP clients used to talk to the NAS backend.
package httpx

import (
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultClientTimeout         = 30 * time.Second
	defaultDialTimeout           = 5 * time.Second
	defaultResponseHeaderTimeout = 15 * time.Second
	defaultIdleConnTimeout       = 30 * time.Second
	defaultExpectContinueTimeout = 1 * time.Second
	defaultMaxIdleConns          = 8
	defaultMaxIdleConnsPerHost   = 4

	// DefaultUserAgent is sent when Options.UserAgent is empty.
	DefaultUserAgent = "nascinema"
)

// Options tunes NewClient. The zero value is valid.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Base replaces the tuned *http.Transport; tests use it to inject failures.
	Base http.RoundTripper
}

// NewClient returns a hardened HTTP client with tracing and a fixed User-Agent.
// A non-positive timeout selects the default.
func NewClient(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}

	base := opts.Base
	if base == nil {
		base = newTransport(timeout)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(&userAgent{next: base, value: ua}),
	}
}

// newTransport caps the dial and header waits by the overall timeout. A
// NAS on the LAN answers fast or not at all.
func newTransport(timeout time.Duration) *http.Transport {
	dial := min(timeout, defaultDialTimeout)
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{Timeout: dial, KeepAlive: 30 * time.Second}).DialContext
	t.TLSHandshakeTimeout = dial
	t.ResponseHeaderTimeout = min(timeout, defaultResponseHeaderTimeout)
	t.ExpectContinueTimeout = defaultExpectContinueTimeout
	t.IdleConnTimeout = defaultIdleConnTimeout
	t.MaxIdleConns = defaultMaxIdleConns
	t.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost
	return t
}

type userAgent struct {
	next  http.RoundTripper
	value string
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", u.value)
	return u.next.RoundTrip(r)
}
