// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ChangeSummary describes the result of comparing two records.
type ChangeSummary struct {
	ChangedFields []string // top-level paths that changed, in declaration order
	Text          string   // human readable diff, empty when nothing changed
}

// Changed reports whether any field differs.
func (s ChangeSummary) Changed() bool {
	return len(s.ChangedFields) > 0
}

// nil and empty collections compare equal
var equateEmpty = cmpopts.EquateEmpty()

// Diff compares two records field by field.
func Diff(old, next Config) ChangeSummary {
	summary := ChangeSummary{}

	if !cmp.Equal(old.Content, next.Content, equateEmpty) {
		summary.ChangedFields = append(summary.ChangedFields, "content")
	}
	if !cmp.Equal(old.Theme.FontFamily, next.Theme.FontFamily, equateEmpty) {
		summary.ChangedFields = append(summary.ChangedFields, "theme.fontFamily")
	}
	if !cmp.Equal(old.Theme.Extend, next.Theme.Extend, equateEmpty) {
		summary.ChangedFields = append(summary.ChangedFields, "theme.extend")
	}
	if !cmp.Equal(old.Plugins, next.Plugins, equateEmpty) {
		summary.ChangedFields = append(summary.ChangedFields, "plugins")
	}

	if summary.Changed() {
		summary.Text = cmp.Diff(old, next, equateEmpty)
	}
	return summary
}
