// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "errors"

var (
	// ErrUnknownConfigField classifies strict parse failures caused by unknown keys.
	// Use errors.Is(err, ErrUnknownConfigField) instead of string matching.
	ErrUnknownConfigField = errors.New("unknown config field")

	// ErrInvalidConfig classifies type mismatches and validation failures.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUnsupportedFormat is returned for file extensions other than .yaml, .yml and .json.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrMultipleDocuments is returned when a file holds more than one document
	// or trailing content after the record.
	ErrMultipleDocuments = errors.New("config file contains multiple documents or trailing content")
)
