// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads, validates and persists the utility-class build
// configuration record.
//
// A record names the source globs scanned for class usage (content), the
// theme overrides (theme.fontFamily replaces the built-in font mapping,
// theme.extend is merged onto the built-in tokens) and the plugin list.
// Records are values: every accessor hands out a deep copy, and nothing in
// this package mutates a record after it has been loaded.
//
// Load order is defaults, then file, then environment. Files are decoded
// strictly; unknown keys are rejected with ErrUnknownConfigField.
package config
