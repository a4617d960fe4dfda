// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ManuGH/nascinema/internal/api/problem"
	"github.com/ManuGH/nascinema/internal/log"
	"github.com/ManuGH/nascinema/internal/view"
)

const maxBodyBytes = 4 << 10

type queryRequest struct {
	Query string `json:"query"`
}

type sessionRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.view.Snapshot())
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	if err := s.view.Start(s.loadCtx); err != nil {
		if errors.Is(err, view.ErrLoadInFlight) {
			problem.Write(w, r, http.StatusConflict, problem.TypeLoadInFlight,
				"Conflict", "LOAD_IN_FLIGHT", err.Error(), nil)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeInternal,
			"Internal Server Error", "INTERNAL", err.Error(), nil)
		return
	}
	writeJSON(w, r, http.StatusAccepted, s.view.Snapshot())
}

func (s *Server) handleSetQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeBody(w, r, &req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeBadRequest,
			"Bad Request", "INVALID_BODY", err.Error(), nil)
		return
	}
	writeJSON(w, r, http.StatusOK, s.view.SetQuery(req.Query))
}

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeBadRequest,
			"Bad Request", "INVALID_BODY", err.Error(), nil)
		return
	}
	if req.Key == "" {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeBadRequest,
			"Bad Request", "MISSING_KEY", "key is required", nil)
		return
	}

	vm, err := s.view.Select(req.Key)
	switch {
	case errors.Is(err, view.ErrNotReady):
		problem.Write(w, r, http.StatusConflict, problem.TypeNotReady,
			"Conflict", "NOT_READY", err.Error(), map[string]any{"phase": vm.Phase})
	case errors.Is(err, view.ErrNotVisible):
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotVisible,
			"Not Found", "NOT_VISIBLE", err.Error(), nil)
	case err != nil:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeInternal,
			"Internal Server Error", "INTERNAL", err.Error(), nil)
	default:
		writeJSON(w, r, http.StatusOK, vm)
	}
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.view.Close())
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).Error().
			Err(err).
			Str(log.FieldEvent, "api.encode_failed").
			Msg("failed to encode response")
	}
}
