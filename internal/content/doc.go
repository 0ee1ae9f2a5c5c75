// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package content selects source files by the configured content globs and
// extracts class-name candidates from them.
//
// Patterns are matched against slash-separated paths relative to the scan
// root. "*" never crosses a directory boundary, "**" spans any number of
// directories (including none), a leading "./" is ignored and a leading "!"
// turns the pattern into an exclusion.
package content
