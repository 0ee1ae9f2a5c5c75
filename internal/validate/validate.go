// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package validate provides configuration validation utilities for tailcfg.
package validate

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Error is one failed check.
type Error struct {
	Field   string      // dotted path, e.g. "theme.fontFamily.sans[0]"
	Value   interface{} // offending value
	Message string
}

func (e Error) Error() string {
	return e.Field + ": " + e.Message
}

// Validator collects failures so a single pass reports every problem.
// The zero value is ready to use.
type Validator struct {
	errors []Error
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string, value interface{}) {
	v.errors = append(v.errors, Error{Field: field, Value: value, Message: message})
}

// IsValid reports whether nothing failed so far.
func (v *Validator) IsValid() bool {
	return len(v.errors) == 0
}

// Errors returns the failures recorded so far.
func (v *Validator) Errors() []Error {
	return v.errors
}

// Err returns nil or a ValidationError holding a snapshot of the failures.
func (v *Validator) Err() error {
	if v.IsValid() {
		return nil
	}
	return ValidationError{errors: append([]Error(nil), v.errors...)}
}

// ValidationError reports every failure of one validation pass.
type ValidationError struct {
	errors []Error
}

// Errors returns the individual failures in report order.
func (e ValidationError) Errors() []Error {
	return e.errors
}

// Fields returns the failing field paths in report order.
func (e ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.errors))
	for _, err := range e.errors {
		fields = append(fields, err.Field)
	}
	return fields
}

func (e ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, err := range e.errors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// NotEmpty fails blank or whitespace-only strings.
func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "value cannot be empty", value)
	}
}

// NonEmptyList validates that a list has at least one element.
func (v *Validator) NonEmptyList(field string, n int) {
	if n <= 0 {
		v.AddError(field, "list cannot be empty", n)
	}
}

// SplitGlob normalizes a content pattern. Surrounding whitespace is
// trimmed, a leading "!" marks an exclusion and leading "./" segments are
// dropped. Validation and matching both go through here.
func SplitGlob(raw string) (pattern string, exclude bool) {
	pattern, exclude = strings.CutPrefix(strings.TrimSpace(raw), "!")
	for strings.HasPrefix(pattern, "./") {
		pattern = pattern[2:]
	}
	return pattern, exclude
}

// Glob validates the syntax of a file glob. "**" is accepted as a
// directory wildcard and brace alternatives are allowed.
func (v *Validator) Glob(field, pattern string) {
	if strings.TrimSpace(pattern) == "" {
		v.AddError(field, "glob pattern cannot be empty", pattern)
		return
	}
	if !doublestar.ValidatePattern(pattern) {
		v.AddError(field, fmt.Sprintf("invalid glob pattern %q", pattern), pattern)
	}
}

// Unique records value in seen and reports a duplicate if it was already present.
func (v *Validator) Unique(field, value string, seen map[string]struct{}) {
	if _, dup := seen[value]; dup {
		v.AddError(field, fmt.Sprintf("duplicate value %q", value), value)
		return
	}
	seen[value] = struct{}{}
}

// Custom runs check against value and records its error, if any.
func (v *Validator) Custom(field string, value interface{}, check func(interface{}) error) {
	if err := check(value); err != nil {
		v.AddError(field, err.Error(), value)
	}
}
