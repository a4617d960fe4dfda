// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads nascinema configuration.
//
// Precedence is ENV > YAML file > defaults. YAML decoding is strict: unknown
// keys and trailing documents are rejected. Holder hot-reloads the file.
package config
