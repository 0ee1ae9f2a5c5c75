// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"os"
	"strings"

	"github.com/ManuGH/tailcfg/internal/log"
	"github.com/rs/zerolog"
)

// Environment keys consumed by the loader and the CLI.
const (
	EnvConfigPath = "TAILCFG_CONFIG"
	EnvContent    = "TAILCFG_CONTENT"
	EnvFontSans   = "TAILCFG_FONT_SANS"
)

// ParseString reads a string from environment variable or returns default value.
// It logs the source (environment or default) for observability.
func ParseString(key, defaultValue string) string {
	return parseStringWithLogger(log.WithComponent("config"), key, defaultValue)
}

func parseStringWithLogger(logger zerolog.Logger, key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		if value == "" {
			logger.Debug().
				Str(log.FieldEnvKey, key).
				Str("default", defaultValue).
				Str(log.FieldSource, "default").
				Msg("using default value (environment variable is empty)")
			return defaultValue
		}
		logger.Debug().
			Str(log.FieldEnvKey, key).
			Str("value", value).
			Str(log.FieldSource, "environment").
			Msg("using environment variable")
		return value
	}
	logger.Debug().
		Str(log.FieldEnvKey, key).
		Str("default", defaultValue).
		Str(log.FieldSource, "default").
		Msg("using default value")
	return defaultValue
}

// ParseList reads a comma-separated list from the environment.
// Entries are trimmed and empty entries dropped. ok is false when the
// variable is unset or yields no entries.
func ParseList(key string) (values []string, ok bool) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return nil, false
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	logger := log.WithComponent("config")
	if len(values) == 0 {
		logger.Warn().
			Str(log.FieldEnvKey, key).
			Str(log.FieldEvent, "config.env_ignored").
			Msg("environment variable set but holds no entries, ignoring")
		return nil, false
	}
	logger.Debug().
		Str(log.FieldEnvKey, key).
		Strs("values", values).
		Str(log.FieldSource, "environment").
		Msg("using environment variable")
	return values, true
}
