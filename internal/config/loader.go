// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ManuGH/tailcfg/internal/log"
	"github.com/ManuGH/tailcfg/internal/metrics"
	"github.com/rs/zerolog"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	ConsumedEnvKeys map[string]struct{} // Mechanical tracking of consumed keys
	logger          zerolog.Logger
}

// NewLoader creates a new configuration loader. An empty path loads
// defaults and environment only.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath:      configPath,
		ConsumedEnvKeys: make(map[string]struct{}),
		logger:          log.WithComponent("config"),
	}
}

// Path returns the file the loader reads, if any.
func (l *Loader) Path() string {
	return l.configPath
}

func (l *Loader) envList(key string) ([]string, bool) {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseList(key)
}

// Load loads configuration with precedence: ENV > File > Defaults
// It enforces Strict Validated Order: Parse File (Strict) -> Apply Env -> Validate
func (l *Loader) Load() (Config, error) {
	cfg, err := l.load()
	metrics.RecordConfigLoad(err == nil)
	return cfg, err
}

func (l *Loader) load() (Config, error) {
	// 1. Defaults
	cfg := Default()

	// 2. File (if provided)
	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		mergeFileConfig(&cfg, fileCfg)
	}

	// 3. Environment (highest priority)
	l.mergeEnvConfig(&cfg)
	normalize(&cfg)

	// 4. Validate final configuration
	if err := Validate(cfg); err != nil {
		metrics.IncConfigValidationError()
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	l.logger.Debug().
		Str(log.FieldEvent, "config.loaded").
		Str(log.FieldConfigPath, l.configPath).
		Strs(log.FieldPatterns, cfg.Content).
		Int("plugins", len(cfg.Plugins)).
		Msg("configuration loaded")

	return cfg, nil
}

func (l *Loader) mergeEnvConfig(cfg *Config) {
	if content, ok := l.envList(EnvContent); ok {
		cfg.Content = content
	}
	if sans, ok := l.envList(EnvFontSans); ok {
		fonts := CloneFonts(cfg.Theme.FontFamily)
		if fonts == nil {
			fonts = map[string][]string{}
		}
		fonts["sans"] = sans
		cfg.Theme.FontFamily = fonts
	}
}

// loadFile loads configuration from a YAML or JSON file with STRICT parsing.
// Unknown fields will cause a fatal error to prevent misconfiguration.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	l.logger.Debug().
		Str(log.FieldEvent, "config.file_read").
		Str(log.FieldConfigPath, path).
		Str(log.FieldFormat, string(format)).
		Int("bytes", len(data)).
		Msg("read config file")

	return decode(data, format)
}

// LoadFileConfig loads a config file without applying defaults or env overrides.
func LoadFileConfig(path string) (*FileConfig, error) {
	loader := NewLoader(path)
	return loader.loadFile(path)
}
