// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import (
	"fmt"
	"path"
	"strings"

	"github.com/ManuGH/tailcfg/internal/validate"
	"github.com/bmatcuk/doublestar/v4"
)

// ErrBadPattern is returned for patterns doublestar cannot parse.
var ErrBadPattern = doublestar.ErrBadPattern

// Matcher decides whether a relative path is selected by a pattern set.
type Matcher struct {
	include []string
	exclude []string
}

// NewMatcher compiles patterns. At least one inclusion is required.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, raw := range patterns {
		p, exclude := validate.SplitGlob(raw)
		if p == "" || !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, raw)
		}
		if exclude {
			m.exclude = append(m.exclude, p)
		} else {
			m.include = append(m.include, p)
		}
	}
	if len(m.include) == 0 {
		return nil, fmt.Errorf("%w: no inclusion pattern in %q", ErrBadPattern, patterns)
	}
	return m, nil
}

// Match reports whether rel is included and not excluded.
func (m *Matcher) Match(rel string) bool {
	rel = strings.TrimPrefix(path.Clean(rel), "./")
	return matchAny(m.include, rel) && !matchAny(m.exclude, rel)
}

// Includes returns the cleaned inclusion patterns.
func (m *Matcher) Includes() []string {
	return append([]string(nil), m.include...)
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		// patterns are validated in NewMatcher, so the error is always nil
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
