// Package keys resolves which localization keys a source tree actually
// references, flags keys only reachable through dynamically built paths,
// and can prune the confirmed-unused remainder from the tree.
package keys

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/localens/localens/internal/cancel"
	"github.com/localens/localens/internal/fileproc"
)

// Resolver scans source files for references to a flattened key set.
type Resolver struct {
	functions []string
	width     int
}

// Option is a functional option for configuring Resolver.
type Option func(*Resolver)

// WithFunctions overrides the translation call aliases to recognize.
func WithFunctions(functions []string) Option {
	return func(r *Resolver) {
		if len(functions) > 0 {
			r.functions = functions
		}
	}
}

// WithConcurrency sets the batch width (0 scales with corpus size).
func WithConcurrency(width int) Option {
	return func(r *Resolver) {
		r.width = width
	}
}

// New creates a resolver with the default call aliases.
func New(opts ...Option) *Resolver {
	r := &Resolver{functions: DefaultFunctions}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// fileMatch pairs one scanned file with what it referenced. The index is the
// file's position in the input list; batches settle in arbitrary order, so it
// is what preserves discovery order in the report.
type fileMatch struct {
	index   int
	path    string
	matches FileMatches
}

// Analyze scans all files against the flattened key set and settles each
// key's usage. Unreadable files are skipped without failing the run: a key
// is only reported unused when no readable file references it statically and
// no dynamic construction covers it. Cancellation aborts at the next batch
// boundary with cancel.ErrCancelled and no partial report.
func (r *Resolver) Analyze(ctx context.Context, tok *cancel.Token, files []string, flat []FlattenedKey, onProgress fileproc.ProgressFunc) (*Analysis, error) {
	start := time.Now()
	matcher := NewMatcher(flat, r.functions)

	indexOf := make(map[string]int, len(files))
	for i, path := range files {
		indexOf[path] = i
	}

	scan := func(path string) (fileMatch, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return fileMatch{}, err
		}
		return fileMatch{index: indexOf[path], path: path, matches: matcher.MatchFile(string(data))}, nil
	}

	results, _, err := fileproc.CollectBatches(ctx, tok, files, r.width, scan, onProgress)
	if err != nil {
		return nil, err
	}

	usage := make([]UsageResult, len(flat))
	matchedBy := make([]map[int]bool, len(flat))
	dynamicPrefixes := make(map[string]bool)

	for _, fm := range results {
		for _, i := range fm.matches.Static {
			usage[i].Found = true
			if matchedBy[i] == nil {
				matchedBy[i] = make(map[int]bool)
			}
			matchedBy[i][fm.index] = true
		}
		for _, prefix := range fm.matches.Dynamic {
			dynamicPrefixes[prefix] = true
		}
	}

	// A dynamic construction under a prefix can resolve to any key beneath
	// it, so every descendant counts as used.
	for prefix := range dynamicPrefixes {
		for _, i := range matcher.Descendants(prefix) {
			usage[i].Found = true
			usage[i].IsDynamic = true
		}
	}

	analysis := &Analysis{
		TotalKeys:    len(flat),
		UnusedKeys:   []FlattenedKey{},
		MatchedFiles: make(map[string][]string),
		FilesScanned: len(results),
		DurationSecs: time.Since(start).Seconds(),
	}

	for i, k := range flat {
		if !usage[i].Found {
			analysis.UnusedKeys = append(analysis.UnusedKeys, k)
			continue
		}
		if usage[i].IsDynamic {
			analysis.DynamicKeyCount++
		}
		if len(matchedBy[i]) > 0 {
			// Matched files keep the input (discovery) order, deduplicated.
			indexes := make([]int, 0, len(matchedBy[i]))
			for idx := range matchedBy[i] {
				indexes = append(indexes, idx)
			}
			sort.Ints(indexes)
			paths := make([]string, len(indexes))
			for j, idx := range indexes {
				paths[j] = files[idx]
			}
			usage[i].MatchedFiles = paths
			analysis.MatchedFiles[k.Path] = paths
		}
	}
	return analysis, nil
}
