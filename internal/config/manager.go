// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ManuGH/tailcfg/internal/log"
	"github.com/google/renameio/v2"
)

// Manager handles configuration persistence.
type Manager struct {
	configPath string
}

// NewManager creates a new configuration manager.
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
	}
}

// Save validates cfg and writes it to disk in the format implied by the
// path extension. The write is atomic and durable: readers see either the
// old file or the new one.
func (m *Manager) Save(cfg Config) error {
	logger := log.WithComponent("config")

	format, err := FormatFromPath(m.configPath)
	if err != nil {
		return err
	}
	if err := Validate(cfg); err != nil {
		return err
	}
	data, err := Marshal(cfg, format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o750); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pendingFile, err := renameio.NewPendingFile(m.configPath, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending config file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending config file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write config data: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace config file: %w", err)
	}

	logger.Info().
		Str(log.FieldEvent, "config.saved").
		Str(log.FieldConfigPath, m.configPath).
		Str(log.FieldFormat, string(format)).
		Msg("configuration saved")
	return nil
}
