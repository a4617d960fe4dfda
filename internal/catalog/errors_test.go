// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchErrorMessagePolicy(t *testing.T) {
	tests := []struct {
		name string
		err  *FetchError
		want string
	}{
		{name: "server detail", err: &FetchError{Detail: "disk not mounted", Err: errors.New("request failed with status code 500")}, want: "disk not mounted"},
		{name: "transport message", err: &FetchError{Err: errors.New("timeout")}, want: "timeout"},
		{name: "empty transport message", err: &FetchError{Err: errors.New("")}, want: GenericFetchMessage},
		{name: "nothing", err: &FetchError{}, want: GenericFetchMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Message())
			assert.Equal(t, tt.want, MessageOf(tt.err))
		})
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("load: %w", &FetchError{Operation: "movies", Err: cause})
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "boom", MessageOf(err))
}

func TestConnectivityError(t *testing.T) {
	err := &ConnectivityError{Cause: errors.New("refused")}
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, UnreachableMessage, MessageOf(err))
	assert.Contains(t, err.Error(), "refused")
	assert.Equal(t, UnreachableMessage, (&ConnectivityError{}).Error())
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "", MessageOf(nil))
	assert.Equal(t, "plain", MessageOf(errors.New("plain")))
}
