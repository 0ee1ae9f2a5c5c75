// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

// DefaultFontSans is the font stack of the "sans" role in the default record.
const DefaultFontSans = "Fredoka"

// Default returns the built-in record: root HTML files and Rust sources under
// src/ are scanned, the sans font is Fredoka, and nothing is extended or plugged in.
func Default() Config {
	return Config{
		Content: []string{"*.html", "./src/**/*.rs"},
		Theme: Theme{
			FontFamily: map[string][]string{
				"sans": {DefaultFontSans},
			},
			Extend: map[string]any{},
		},
		Plugins: []Plugin{},
	}
}

// normalize replaces absent collections with empty ones so that encoded
// records always carry extend and plugins, and drops empty plugin options.
func normalize(cfg *Config) {
	if cfg.Content == nil {
		cfg.Content = []string{}
	}
	if cfg.Theme.FontFamily == nil {
		cfg.Theme.FontFamily = map[string][]string{}
	}
	if cfg.Theme.Extend == nil {
		cfg.Theme.Extend = map[string]any{}
	}
	if cfg.Plugins == nil {
		cfg.Plugins = []Plugin{}
	}
	for i := range cfg.Plugins {
		if len(cfg.Plugins[i].Options) == 0 {
			cfg.Plugins[i].Options = nil
		}
	}
}
