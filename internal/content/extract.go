// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/ManuGH/tailcfg/internal/fsutil"
	xglog "github.com/ManuGH/tailcfg/internal/log"
	"github.com/ManuGH/tailcfg/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel file reads in Candidates.
const DefaultConcurrency = 8

// MaxFileBytes is the largest content file Extract accepts.
const MaxFileBytes = 4 << 20

// ErrFileTooLarge is returned for inputs over MaxFileBytes.
var ErrFileTooLarge = errors.New("content file too large")

// candidatePattern matches maximal runs outside markup delimiters and
// whitespace, not ending in a colon.
var candidatePattern = regexp.MustCompile("[^<>\"'`\\s]*[^<>\"'`\\s:]")

// Extract returns the class candidates in r, deduplicated in first-seen order.
func Extract(r io.Reader) ([]string, error) {
	// one byte past the limit tells truncation apart from an exact fit
	data, err := io.ReadAll(io.LimitReader(r, MaxFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	if len(data) > MaxFileBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrFileTooLarge, MaxFileBytes)
	}

	seen := make(map[string]struct{})
	out := []string{}
	for _, tok := range candidatePattern.FindAllString(string(data), -1) {
		if !hasLetter(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out, nil
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// Candidates extracts candidates from files (relative to root) with at most
// limit concurrent reads. It returns the per-file candidates and their
// sorted union.
func Candidates(ctx context.Context, root string, files []string, limit int) (map[string][]string, []string, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([][]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cands, err := extractFile(root, rel)
			if err != nil {
				return fmt.Errorf("%s: %w", rel, err)
			}
			results[i] = cands
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	perFile := make(map[string][]string, len(files))
	union := make(map[string]struct{})
	for i, rel := range files {
		perFile[rel] = results[i]
		for _, c := range results[i] {
			union[c] = struct{}{}
		}
	}
	all := make([]string, 0, len(union))
	for c := range union {
		all = append(all, c)
	}
	sort.Strings(all)

	metrics.RecordContentCandidates(len(all))
	logger := xglog.WithComponentFromContext(ctx, "content")
	logger.Debug().
		Str(xglog.FieldEvent, "content.candidates_extracted").
		Int(xglog.FieldFiles, len(files)).
		Int(xglog.FieldCandidates, len(all)).
		Msg("class candidates extracted")

	return perFile, all, nil
}

func extractFile(root, rel string) ([]string, error) {
	f, err := fsutil.OpenRegular(root, rel)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Extract(f)
}
