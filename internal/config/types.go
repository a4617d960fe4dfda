// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// AppConfig is the effective configuration.
type AppConfig struct {
	// Version is the binary version; never read from the file.
	Version string `yaml:"-"`

	Backend   BackendConfig   `yaml:"backend"`
	Log       LogConfig       `yaml:"log"`
	Player    PlayerConfig    `yaml:"player"`
	API       APIConfig       `yaml:"api"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// BackendConfig addresses the NAS catalog backend.
type BackendConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// PlayerConfig is the external player the play command hands streams to.
// Args may use the {url} and {title} placeholders.
type PlayerConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
}

// APIConfig controls the local HTTP surface of the serve command.
type APIConfig struct {
	ListenAddr         string `yaml:"listenAddr"`
	RateLimitPerMinute int    `yaml:"rateLimitPerMinute"`
}

type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"`
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
}

// Defaults.
const (
	DefaultBackendURL     = "http://localhost:8001"
	DefaultBackendTimeout = 30 * time.Second
	DefaultLogLevel       = "info"
	DefaultService        = "nascinema"
	DefaultPlayer         = "mpv"
	DefaultListenAddr     = "127.0.0.1:8090"
	DefaultRateLimit      = 600
	DefaultExporter       = "grpc"
	DefaultOTLPEndpoint   = "localhost:4317"
	DefaultSamplingRate   = 1.0
)

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		Backend: BackendConfig{
			URL:     DefaultBackendURL,
			Timeout: DefaultBackendTimeout,
		},
		Log: LogConfig{
			Level:   DefaultLogLevel,
			Service: DefaultService,
		},
		Player: PlayerConfig{
			Command: DefaultPlayer,
		},
		API: APIConfig{
			ListenAddr:         DefaultListenAddr,
			RateLimitPerMinute: DefaultRateLimit,
		},
		Telemetry: TelemetryConfig{
			Exporter:     DefaultExporter,
			Endpoint:     DefaultOTLPEndpoint,
			SamplingRate: DefaultSamplingRate,
		},
	}
}
