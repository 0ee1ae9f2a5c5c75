// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse strictly decodes data, applies it onto the defaults and normalizes
// the result. The record is not validated.
func Parse(data []byte, format Format) (Config, error) {
	fileCfg, err := decode(data, format)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	mergeFileConfig(&cfg, fileCfg)
	normalize(&cfg)
	return cfg, nil
}

func decode(data []byte, format Format) (*FileConfig, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// decodeYAML parses a single YAML document; unknown fields are fatal.
func decodeYAML(data []byte) (*FileConfig, error) {
	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		return nil, classifyYAMLError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrMultipleDocuments
	}

	return &fileCfg, nil
}

func classifyYAMLError(err error) error {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		for _, msg := range typeErr.Errors {
			if strings.Contains(msg, "not found in type") {
				return fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
			}
		}
		return fmt.Errorf("strict config parse error: %w: %w", ErrInvalidConfig, err)
	}
	return fmt.Errorf("strict config parse error: %w", err)
}

// decodeJSON parses a single JSON object; unknown fields are fatal.
func decodeJSON(data []byte) (*FileConfig, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &FileConfig{}, nil
	}

	var fileCfg FileConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&fileCfg); err != nil {
		return nil, classifyJSONError(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrMultipleDocuments
	}

	return &fileCfg, nil
}

func classifyJSONError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Errorf("strict config parse error: %w: %w", ErrInvalidConfig, err)
	}
	// encoding/json reports unknown fields as a plain error
	if strings.HasPrefix(err.Error(), "json: unknown field") {
		return fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
	}
	return fmt.Errorf("strict config parse error: %w", err)
}

// mergeFileConfig applies every key present in the file onto cfg.
// Present keys replace; absent keys keep their current value.
func mergeFileConfig(dst *Config, src *FileConfig) {
	if src == nil {
		return
	}
	if src.Content != nil {
		dst.Content = cloneStringSlice(src.Content)
	}
	if src.Theme != nil {
		if src.Theme.FontFamily != nil {
			dst.Theme.FontFamily = CloneFonts(src.Theme.FontFamily)
		}
		if src.Theme.Extend != nil {
			dst.Theme.Extend = CloneMap(src.Theme.Extend)
		}
	}
	if src.Plugins != nil {
		dst.Plugins = clonePlugins(src.Plugins)
	}
}
