// SPDX-License-Identifier: MIT

// Package validate collects every invalid field of a configuration in one
// pass, so a user fixes the whole file at once instead of one key per run.
package validate

import (
	"cmp"
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// FieldError is one invalid field.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationError lists the fields rejected by one pass.
type ValidationError struct {
	fields []FieldError
}

// Errors returns the rejected fields in check order.
func (e ValidationError) Errors() []FieldError { return slices.Clone(e.fields) }

// Has reports whether field was rejected.
func (e ValidationError) Has(field string) bool {
	return slices.ContainsFunc(e.fields, func(f FieldError) bool { return f.Field == field })
}

func (e ValidationError) Error() string {
	parts := make([]string, len(e.fields))
	for i, f := range e.fields {
		parts[i] = f.Error()
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Validator accumulates field errors. The zero value is ready to use.
type Validator struct {
	fields []FieldError
}

func New() *Validator { return &Validator{} }

// Fail records field as invalid.
func (v *Validator) Fail(field string, value any, format string, args ...any) {
	v.fields = append(v.fields, FieldError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)})
}

// Err returns a ValidationError, or nil when every check passed.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return ValidationError{fields: slices.Clone(v.fields)}
}

// HTTPURL requires an absolute http or https URL with a host.
func (v *Validator) HTTPURL(field, raw string) {
	if strings.TrimSpace(raw) == "" {
		v.Fail(field, raw, "is required")
		return
	}
	u, err := url.Parse(raw)
	if err != nil {
		v.Fail(field, raw, "is not a URL: %v", err)
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		v.Fail(field, raw, "scheme must be http or https, got %q", u.Scheme)
		return
	}
	if u.Host == "" {
		v.Fail(field, raw, "has no host")
	}
}

// ListenAddr requires host:port with a port in 1..65535. The host may be empty.
func (v *Validator) ListenAddr(field, addr string) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		v.Fail(field, addr, "is not host:port: %v", err)
		return
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		v.Fail(field, addr, "port must be 1-65535, got %q", port)
	}
}

// NotBlank rejects empty and whitespace-only strings.
func (v *Validator) NotBlank(field, s string) {
	if strings.TrimSpace(s) == "" {
		v.Fail(field, s, "is required")
	}
}

// OneOf requires s to equal one of allowed.
func (v *Validator) OneOf(field, s string, allowed ...string) {
	if !slices.Contains(allowed, s) {
		v.Fail(field, s, "must be one of %s, got %q", strings.Join(allowed, ", "), s)
	}
}

// Positive requires n > 0.
func (v *Validator) Positive(field string, n int) {
	if n <= 0 {
		v.Fail(field, n, "must be positive, got %d", n)
	}
}

// Between requires lo <= val <= hi. It is a function because methods cannot
// take type parameters.
func Between[T cmp.Ordered](v *Validator, field string, val, lo, hi T) {
	if val < lo || val > hi {
		v.Fail(field, val, "must be between %v and %v, got %v", lo, hi, val)
	}
}
