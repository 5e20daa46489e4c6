// Package content classifies every line of a source tree (code, comment
// variants, blanks, TODO markers) and tallies the naming conventions of
// file names, producing one aggregate report per run.
package content

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/localens/localens/internal/cache"
	"github.com/localens/localens/internal/cancel"
	"github.com/localens/localens/internal/fileproc"
)

// Analyzer runs the per-file line and naming classification.
type Analyzer struct {
	lines  bool
	naming bool
	width  int
	cache  *cache.Cache
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithoutLines disables line classification.
func WithoutLines() Option {
	return func(a *Analyzer) {
		a.lines = false
	}
}

// WithoutNaming disables naming-convention classification.
func WithoutNaming() Option {
	return func(a *Analyzer) {
		a.naming = false
	}
}

// WithConcurrency sets the batch width (0 scales with corpus size).
func WithConcurrency(width int) Option {
	return func(a *Analyzer) {
		a.width = width
	}
}

// WithCache reuses per-file results for unchanged files.
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) {
		a.cache = c
	}
}

// New creates a content analyzer with both classifications enabled.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{lines: true, naming: true}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze classifies all files and merges their stats into one report.
// Unreadable files are skipped and counted; cancellation aborts at the next
// batch boundary with cancel.ErrCancelled and no partial report.
func (a *Analyzer) Analyze(ctx context.Context, tok *cancel.Token, files []string, onProgress fileproc.ProgressFunc) (*Analysis, error) {
	start := time.Now()

	results, errs, err := fileproc.CollectBatches(ctx, tok, files, a.width, a.analyzeFile, onProgress)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		FileCount:    len(results),
		Cases:        make(map[string]int),
		DurationSecs: time.Since(start).Seconds(),
	}
	if errs != nil {
		analysis.SkippedFiles = len(errs.Errors)
	}

	for _, stats := range results {
		analysis.Counters.Merge(stats.Counters)
		if stats.CaseLabel != "" {
			analysis.Cases[stats.CaseLabel]++
		}
	}
	analysis.Source = analysis.Counters.Source()

	if !a.naming {
		analysis.Cases = nil
	}
	return analysis, nil
}

// analyzeFile computes one file's stats, consulting the cache first.
func (a *Analyzer) analyzeFile(path string) (FileStats, error) {
	var stats FileStats

	if a.naming {
		stats.CaseLabel = ClassifyFileCase(path)
	}
	if !a.lines {
		return stats, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return stats, err
	}

	hash := cache.HashBytes(data)
	if a.cache != nil {
		if cached, ok := a.cache.GetWithHash(path, hash); ok {
			var counters Counters
			if err := json.Unmarshal(cached, &counters); err == nil {
				stats.Counters = counters
				return stats, nil
			}
		}
	}

	CountLines(string(data), StyleFor(path), &stats.Counters)

	if a.cache != nil {
		if encoded, err := json.Marshal(stats.Counters); err == nil {
			_ = a.cache.Put(path, hash, encoded)
		}
	}
	return stats, nil
}
