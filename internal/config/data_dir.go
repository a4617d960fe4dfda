// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigFileName is the file looked up inside the data directory.
const ConfigFileName = "config.yaml"

// ResolveDataDir returns $NASCINEMA_DATA, else ~/.config/nascinema.
func ResolveDataDir() string {
	if v := strings.TrimSpace(ParseString(EnvDataDir, "")); v != "" {
		return v
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "nascinema")
	}
	return "."
}

// DefaultPath is where config init writes and discovery looks.
func DefaultPath() string {
	return filepath.Join(ResolveDataDir(), ConfigFileName)
}

// Discover picks the config file: the explicit flag value if given,
// otherwise DefaultPath when that file exists, otherwise "" (no file).
func Discover(flagPath string) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p
	}
	p := DefaultPath()
	if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
		return p
	}
	return ""
}
