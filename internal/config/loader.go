// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownConfigField classifies strict YAML failures caused by unknown keys.
var ErrUnknownConfigField = errors.New("unknown config field")

// Loader applies defaults, the optional YAML file and the environment.
type Loader struct {
	configPath string
	version    string

	// ConsumedEnvKeys records every environment key the last Load read.
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a loader. An empty configPath means ENV and defaults only.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

// Path returns the file the loader reads, or "".
func (l *Loader) Path() string { return l.configPath }

// Load builds the effective configuration: defaults, then file, then ENV,
// then validation.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := decodeFile(l.configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	l.mergeEnv(&cfg)
	cfg.Backend.URL = strings.TrimRight(strings.TrimSpace(cfg.Backend.URL), "/")
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// EnvKeys returns the consumed keys sorted, for config dump.
func (l *Loader) EnvKeys() []string {
	keys := make([]string, 0, len(l.ConsumedEnvKeys))
	for k := range l.ConsumedEnvKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (l *Loader) mergeEnv(cfg *AppConfig) {
	consume := func(key string) string {
		l.ConsumedEnvKeys[key] = struct{}{}
		return key
	}
	cfg.Backend.URL = ParseString(consume(EnvBackendURL), cfg.Backend.URL)
	cfg.Backend.Timeout = ParseDuration(consume(EnvBackendTimeout), cfg.Backend.Timeout)
	cfg.Log.Level = ParseString(consume(EnvLogLevel), cfg.Log.Level)
	cfg.Log.Service = ParseString(consume(EnvLogService), cfg.Log.Service)
	cfg.Player.Command = ParseString(consume(EnvPlayer), cfg.Player.Command)
	cfg.API.ListenAddr = ParseString(consume(EnvListenAddr), cfg.API.ListenAddr)
	cfg.API.RateLimitPerMinute = ParseInt(consume(EnvRateLimit), cfg.API.RateLimitPerMinute)
	cfg.Telemetry.Enabled = ParseBool(consume(EnvOTelEnabled), cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = ParseString(consume(EnvOTelExporter), cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = ParseString(consume(EnvOTelEndpoint), cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = ParseFloat(consume(EnvOTelSampling), cfg.Telemetry.SamplingRate)
}

// decodeFile decodes path onto cfg. Keys absent from the file keep the
// values already in cfg.
func decodeFile(path string, cfg *AppConfig) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- the config path is chosen by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}
