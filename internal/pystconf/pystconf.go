// Package pystconf resolves the small amount of host configuration the
// driver needs: verbose logging, controlled by a host-standard log-level
// environment variable.
package pystconf

import (
	"os"
	"strings"
)

// LogLevelEnv is the environment variable consulted for verbose logging,
// following the PYST_LOG_LEVEL convention.
const LogLevelEnv = "PYST_LOG_LEVEL"

// Config holds the resolved runtime configuration.
type Config struct {
	LogLevel string
}

// Load reads configuration from the environment, defaulting LogLevel to
// "info" when the variable is unset or empty.
func Load() Config {
	level := strings.TrimSpace(os.Getenv(LogLevelEnv))
	if level == "" {
		level = "info"
	}
	return Config{LogLevel: strings.ToLower(level)}
}

// Verbose reports whether the configured level is at least as detailed
// as "debug".
func (c Config) Verbose() bool {
	return c.LogLevel == "debug" || c.LogLevel == "trace"
}
