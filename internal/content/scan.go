// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	xglog "github.com/ManuGH/tailcfg/internal/log"
	"github.com/ManuGH/tailcfg/internal/metrics"
)

// DefaultIgnoreDirs are never descended into.
var DefaultIgnoreDirs = []string{".git", "node_modules"}

// Options tune a scan.
type Options struct {
	// IgnoreDirs lists directory base names to skip. Nil means DefaultIgnoreDirs.
	IgnoreDirs []string
}

// Result is the outcome of a scan.
type Result struct {
	Root  string   // absolute scan root with symlinks resolved
	Files []string // sorted, slash-separated, relative to Root
}

// Scan walks root and returns every regular file selected by patterns.
func Scan(ctx context.Context, root string, patterns []string, opts Options) (Result, error) {
	start := time.Now()
	res, err := scan(ctx, root, patterns, opts)
	metrics.RecordContentScan(len(res.Files), time.Since(start), err)

	logger := xglog.WithComponentFromContext(ctx, "content")
	if err != nil {
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "content.scan_failed").
			Str(xglog.FieldRoot, root).
			Msg("content scan failed")
		return Result{}, err
	}
	logger.Info().
		Str(xglog.FieldEvent, "content.scan_complete").
		Str(xglog.FieldRoot, res.Root).
		Strs(xglog.FieldPatterns, patterns).
		Int(xglog.FieldFiles, len(res.Files)).
		Dur(xglog.FieldDuration, time.Since(start)).
		Msg("content scan complete")
	return res, nil
}

func scan(ctx context.Context, root string, patterns []string, opts Options) (Result, error) {
	m, err := NewMatcher(patterns)
	if err != nil {
		return Result{}, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Result{}, fmt.Errorf("resolve root: %w", err)
	}
	// WalkDir does not follow a symlinked root
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return Result{}, fmt.Errorf("resolve root: %w", err)
	}

	ignore := opts.IgnoreDirs
	if ignore == nil {
		ignore = DefaultIgnoreDirs
	}
	skip := make(map[string]struct{}, len(ignore))
	for _, d := range ignore {
		skip[d] = struct{}{}
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if _, ok := skip[d.Name()]; ok && p != absRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if m.Match(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("walk %s: %w", absRoot, err)
	}

	sort.Strings(files)
	if files == nil {
		files = []string{}
	}
	return Result{Root: absRoot, Files: files}, nil
}
