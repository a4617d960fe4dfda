// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package problem writes RFC 7807 problem details responses.
package problem

import (
	"encoding/json"
	"maps"
	"net/http"

	"github.com/ManuGH/nascinema/internal/log"
)

const (
	HeaderRequestID  = "X-Request-ID"
	JSONKeyRequestID = "requestId"
	ContentType      = "application/problem+json"
)

const (
	TypeBadRequest       = "view/bad_request"
	TypeNotReady         = "view/not_ready"
	TypeNotVisible       = "view/not_visible"
	TypeLoadInFlight     = "view/load_in_flight"
	TypeRateLimited      = "system/rate_limited"
	TypeInternal         = "system/internal"
	TypeNotFound         = "system/not_found"
	TypeMethodNotAllowed = "system/method_not_allowed"
)

// Details is the body of a problem response. Extra members are merged in
// at the top level but can never shadow the standard ones.
type Details struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	RequestID string `json:"requestId,omitempty"`

	Extra map[string]any `json:"-"`
}

func (d Details) MarshalJSON() ([]byte, error) {
	type plain Details
	std, err := json.Marshal(plain(d))
	if err != nil || len(d.Extra) == 0 {
		return std, err
	}
	var merged map[string]any
	if err := json.Unmarshal(std, &merged); err != nil {
		return nil, err
	}
	for k, v := range d.Extra {
		if reserved(k) {
			log.L().Warn().Str("key", k).Str("problem_type", d.Type).Msg("ignoring reserved key in problem extras")
			continue
		}
		merged[k] = v
	}
	return json.Marshal(merged)
}

func reserved(key string) bool {
	switch key {
	case "type", "title", "status", "code", "detail", "instance", JSONKeyRequestID:
		return true
	}
	return false
}

// Write sends a problem response. problemType is a machine identifier such
// as "view/not_ready" and code a stable upper-case token such as
// "NOT_READY". The request id comes from the context, else from a header
// already set on w.
func Write(w http.ResponseWriter, r *http.Request, status int, problemType, title, code, detail string, extra map[string]any) {
	d := Details{
		Type:   problemType,
		Title:  title,
		Status: status,
		Code:   code,
		Detail: detail,
		Extra:  maps.Clone(extra),
	}
	if r != nil {
		d.Instance = r.URL.EscapedPath()
		d.RequestID = log.RequestIDFromContext(r.Context())
	}
	if d.RequestID == "" {
		d.RequestID = w.Header().Get(HeaderRequestID)
	} else {
		w.Header().Set(HeaderRequestID, d.RequestID)
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(d); err != nil {
		log.L().Error().Err(err).Str("type", problemType).Int("status", status).Msg("failed to encode problem response")
	}
}
