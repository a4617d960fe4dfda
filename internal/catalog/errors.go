// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package catalog

import (
	"errors"
	"fmt"
)

const (
	// UnreachableMessage is shown when the connectivity probe reports false.
	UnreachableMessage = "cannot reach the NAS"
	// GenericFetchMessage is the last-resort message of the fetch error policy.
	GenericFetchMessage = "failed to load the movie catalog"
)

var (
	// Sentinel errors for errors.Is checks at the boundary.
	ErrUnreachable = errors.New("catalog: NAS unreachable")
	ErrFetchFailed = errors.New("catalog: fetch failed")
)

// ConnectivityError is returned by a load when the probe reported the NAS as unreachable.
type ConnectivityError struct {
	// Cause is the collapsed probe failure, if any. It is never shown to users.
	Cause error
}

func (e *ConnectivityError) Message() string { return UnreachableMessage }

func (e *ConnectivityError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", UnreachableMessage, e.Cause)
	}
	return UnreachableMessage
}

func (e *ConnectivityError) Unwrap() error { return ErrUnreachable }

// FetchError describes a failed backend call.
type FetchError struct {
	Operation string
	Status    int    // HTTP status, 0 on transport failure
	Detail    string // server-provided "detail" field
	Err       error  // transport or decode failure
}

// Message selects the user-facing text: the server detail, else the
// transport message, else GenericFetchMessage.
func (e *FetchError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		if msg := e.Err.Error(); msg != "" {
			return msg
		}
	}
	return GenericFetchMessage
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("catalog: %s: %s", e.Operation, e.Message())
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	return msg
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetchFailed}
	}
	return []error{ErrFetchFailed, e.Err}
}

// MessageOf returns the user-facing message of a load error.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var m interface{ Message() string }
	if errors.As(err, &m) {
		return m.Message()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericFetchMessage
}
