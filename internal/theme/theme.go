// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package theme resolves a configured theme against the built-in tokens.
package theme

import (
	"sort"

	"github.com/ManuGH/tailcfg/internal/config"
)

// Section names used inside Tokens.
const (
	SectionFontFamily = config.ExtendFontFamily
	SectionScreens    = "screens"
)

// Theme is a full set of design tokens.
type Theme struct {
	FontFamily map[string][]string `json:"fontFamily"`
	// Tokens holds every other section, keyed by section name.
	Tokens map[string]any `json:"tokens"`
}

// Defaults returns the built-in tokens.
func Defaults() Theme {
	return Theme{
		FontFamily: map[string][]string{
			"sans":  {"ui-sans-serif", "system-ui", "sans-serif", "Apple Color Emoji", "Segoe UI Emoji"},
			"serif": {"ui-serif", "Georgia", "Cambria", "Times New Roman", "Times", "serif"},
			"mono":  {"ui-monospace", "SFMono-Regular", "Menlo", "Monaco", "Consolas", "monospace"},
		},
		Tokens: map[string]any{
			SectionScreens: map[string]any{
				"sm":  "640px",
				"md":  "768px",
				"lg":  "1024px",
				"xl":  "1280px",
				"2xl": "1536px",
			},
		},
	}
}

// Resolve applies cfg onto defaults. A non-empty fontFamily replaces the
// default mapping; extend is then merged on top, key by key for mappings.
// Neither input is modified.
func Resolve(defaults Theme, cfg config.Theme) Theme {
	out := Theme{
		FontFamily: config.CloneFonts(defaults.FontFamily),
		Tokens:     config.CloneMap(defaults.Tokens),
	}
	if out.FontFamily == nil {
		out.FontFamily = map[string][]string{}
	}
	if out.Tokens == nil {
		out.Tokens = map[string]any{}
	}

	if len(cfg.FontFamily) > 0 {
		out.FontFamily = config.CloneFonts(cfg.FontFamily)
	}

	for _, key := range sortedKeys(cfg.Extend) {
		value := cfg.Extend[key]
		if key == SectionFontFamily {
			mergeFonts(out.FontFamily, value)
			continue
		}
		out.Tokens[key] = mergeValue(out.Tokens[key], value)
	}
	return out
}

// Font returns the stack for role and whether the role exists.
func (t Theme) Font(role string) ([]string, bool) {
	stack, ok := t.FontFamily[role]
	if !ok {
		return nil, false
	}
	return append([]string(nil), stack...), true
}

// mergeFonts adds the roles of an extend.fontFamily mapping. Shapes that
// Validate rejects are skipped.
func mergeFonts(dst map[string][]string, value any) {
	m, ok := value.(map[string]any)
	if !ok {
		return
	}
	for role, raw := range m {
		if stack, ok := config.FontStack(raw); ok && len(stack) > 0 {
			dst[role] = stack
		}
	}
}

// mergeValue merges ext onto base. Two mappings merge recursively with ext
// winning; anything else is replaced by ext.
func mergeValue(base, ext any) any {
	bm, bok := base.(map[string]any)
	em, eok := ext.(map[string]any)
	if !bok || !eok {
		return config.CloneValue(ext)
	}
	out := config.CloneMap(bm)
	for k, v := range em {
		out[k] = mergeValue(out[k], v)
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
