// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ManuGH/tailcfg/internal/validate"
)

// Validate checks the record shape. The returned error wraps ErrInvalidConfig
// and a validate.ValidationError listing every failing field.
func Validate(cfg Config) error {
	v := validate.New()

	v.NonEmptyList("content", len(cfg.Content))
	includes := 0
	for i, pattern := range cfg.Content {
		field := fmt.Sprintf("content[%d]", i)
		glob, exclude := validate.SplitGlob(pattern)
		if !exclude {
			includes++
		}
		v.Glob(field, glob)
	}
	if len(cfg.Content) > 0 && includes == 0 {
		v.AddError("content", "at least one non-exclusion pattern is required", cfg.Content)
	}

	// sorted so error order is stable
	roles := make([]string, 0, len(cfg.Theme.FontFamily))
	for role := range cfg.Theme.FontFamily {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		field := "theme.fontFamily." + role
		if strings.TrimSpace(role) == "" {
			v.AddError("theme.fontFamily", "font role cannot be empty", role)
			continue
		}
		stack := cfg.Theme.FontFamily[role]
		if len(stack) == 0 {
			v.AddError(field, "font stack cannot be empty", stack)
			continue
		}
		for i, name := range stack {
			v.NotEmpty(fmt.Sprintf("%s[%d]", field, i), name)
		}
	}

	if raw, ok := cfg.Theme.Extend[ExtendFontFamily]; ok {
		validateExtendFonts(v, raw)
	}
	v.Custom("theme.extend", cfg.Theme.Extend, jsonEncodable)

	seen := make(map[string]struct{}, len(cfg.Plugins))
	for i, p := range cfg.Plugins {
		field := fmt.Sprintf("plugins[%d].name", i)
		if strings.TrimSpace(p.Name) == "" {
			v.AddError(field, "plugin name cannot be empty", p.Name)
			continue
		}
		v.Unique(field, p.Name, seen)
		if p.Options != nil {
			v.Custom(fmt.Sprintf("plugins[%d].options", i), p.Options, jsonEncodable)
		}
	}

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// validateExtendFonts checks extend.fontFamily: a mapping of non-blank
// roles to a name or a non-empty list of non-blank names.
func validateExtendFonts(v *validate.Validator, raw any) {
	const field = "theme.extend." + ExtendFontFamily
	roles, ok := raw.(map[string]any)
	if !ok {
		v.AddError(field, "must be a mapping of font role to font stack", raw)
		return
	}
	names := make([]string, 0, len(roles))
	for role := range roles {
		names = append(names, role)
	}
	sort.Strings(names)
	for _, role := range names {
		if strings.TrimSpace(role) == "" {
			v.AddError(field, "font role cannot be empty", role)
			continue
		}
		roleField := field + "." + role
		stack, ok := FontStack(roles[role])
		if !ok {
			v.AddError(roleField, "font stack must be a name or a list of names", roles[role])
			continue
		}
		if len(stack) == 0 {
			v.AddError(roleField, "font stack cannot be empty", stack)
			continue
		}
		for i, name := range stack {
			v.NotEmpty(fmt.Sprintf("%s[%d]", roleField, i), name)
		}
	}
}

// jsonEncodable rejects values the canonical encoding cannot represent,
// such as YAML mappings with non-string keys.
func jsonEncodable(value interface{}) error {
	if _, err := json.Marshal(value); err != nil {
		return fmt.Errorf("value cannot be encoded: %w", err)
	}
	return nil
}
