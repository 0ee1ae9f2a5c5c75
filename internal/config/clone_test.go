// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsAliasFree(t *testing.T) {
	orig := Config{
		Content: []string{"*.html"},
		Theme: Theme{
			FontFamily: map[string][]string{"sans": {"Fredoka"}},
			Extend: map[string]any{
				"colors": map[string]any{"brand": "#fff"},
				"list":   []any{"a", map[string]any{"b": 1}},
			},
		},
		Plugins: []Plugin{{Name: "forms", Options: map[string]any{"strategy": "class"}}},
	}

	cp := Clone(orig)
	require.Equal(t, orig, cp)

	cp.Content[0] = "x"
	cp.Theme.FontFamily["sans"][0] = "y"
	cp.Theme.Extend["colors"].(map[string]any)["brand"] = "#000"
	cp.Theme.Extend["list"].([]any)[1].(map[string]any)["b"] = 2
	cp.Plugins[0].Options["strategy"] = "base"

	assert.Equal(t, "*.html", orig.Content[0])
	assert.Equal(t, "Fredoka", orig.Theme.FontFamily["sans"][0])
	assert.Equal(t, "#fff", orig.Theme.Extend["colors"].(map[string]any)["brand"])
	assert.Equal(t, 1, orig.Theme.Extend["list"].([]any)[1].(map[string]any)["b"])
	assert.Equal(t, "class", orig.Plugins[0].Options["strategy"])
}

func TestClonePreservesNil(t *testing.T) {
	cp := Clone(Config{})
	assert.Nil(t, cp.Content)
	assert.Nil(t, cp.Theme.FontFamily)
	assert.Nil(t, cp.Theme.Extend)
	assert.Nil(t, cp.Plugins)
}

func TestCloneValueCopiesContainers(t *testing.T) {
	orig := map[string]any{
		"fonts":  []string{"Fredoka"},
		"nested": map[string]any{"list": []any{"a"}},
		"n":      3,
	}
	cp := CloneMap(orig)
	require.Equal(t, orig, cp)

	cp["fonts"].([]string)[0] = "x"
	cp["nested"].(map[string]any)["list"].([]any)[0] = "b"

	assert.Equal(t, "Fredoka", orig["fonts"].([]string)[0])
	assert.Equal(t, "a", orig["nested"].(map[string]any)["list"].([]any)[0])
	assert.Equal(t, "scalar", CloneValue("scalar"))
	assert.Nil(t, CloneMap(nil))
}

func TestFontStackShapes(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   []string
		wantOK bool
	}{
		{"single name", "Fredoka", []string{"Fredoka"}, true},
		{"string list", []string{"Fredoka", "sans-serif"}, []string{"Fredoka", "sans-serif"}, true},
		{"decoded list", []any{"Fredoka", "sans-serif"}, []string{"Fredoka", "sans-serif"}, true},
		{"empty list", []any{}, []string{}, true},
		{"non-string entry", []any{"Fredoka", 1}, nil, false},
		{"number", 12, nil, false},
		{"mapping", map[string]any{"a": "b"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FontStack(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
