// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config is the effective configuration record.
// Treat it as read-only; use Clone before handing it to code that may modify it.
type Config struct {
	// Content lists the glob patterns selecting files scanned for class usage.
	// Order is kept for output only; matching treats the list as a set.
	Content []string `yaml:"content" json:"content"`
	Theme   Theme    `yaml:"theme" json:"theme"`
	Plugins []Plugin `yaml:"plugins" json:"plugins"`
}

// Theme holds design-token overrides.
type Theme struct {
	// FontFamily maps a font role ("sans", "mono") to a font stack.
	// A non-empty mapping replaces the built-in one.
	FontFamily map[string][]string `yaml:"fontFamily" json:"fontFamily"`
	// Extend holds additional tokens merged onto the built-in theme.
	Extend map[string]any `yaml:"extend" json:"extend"`
}

// ExtendFontFamily is the extend key whose roles are added to FontFamily.
const ExtendFontFamily = "fontFamily"

// FontStack decodes a font stack written under extend: a single name or a
// list of names. ok is false for any other shape, including lists holding
// non-strings.
func FontStack(v any) (stack []string, ok bool) {
	switch t := v.(type) {
	case string:
		return []string{t}, true
	case []string:
		return append([]string(nil), t...), true
	case []any:
		stack = make([]string, 0, len(t))
		for _, item := range t {
			s, isString := item.(string)
			if !isString {
				return nil, false
			}
			stack = append(stack, s)
		}
		return stack, true
	default:
		return nil, false
	}
}

// Plugin is a build-tool extension registration.
type Plugin struct {
	Name    string         `yaml:"name" json:"name"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// FileConfig is the on-disk shape. Nil fields were absent from the file.
type FileConfig struct {
	Content []string   `yaml:"content,omitempty" json:"content,omitempty"`
	Theme   *FileTheme `yaml:"theme,omitempty" json:"theme,omitempty"`
	Plugins []Plugin   `yaml:"plugins,omitempty" json:"plugins,omitempty"`
}

// FileTheme is the on-disk theme section.
type FileTheme struct {
	FontFamily map[string][]string `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
	Extend     map[string]any      `yaml:"extend,omitempty" json:"extend,omitempty"`
}

// Format is a supported file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath selects the format by file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s (only YAML and JSON supported)", ErrUnsupportedFormat, ext)
	}
}
