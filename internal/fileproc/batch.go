// Package fileproc runs per-file workers over a path list in bounded
// concurrent batches. Batch boundaries double as cancellation checkpoints:
// batch N settles completely before batch N+1 starts, and a fired token
// aborts the run before the next batch is launched.
package fileproc

import (
	"context"
	"fmt"
	"sync"

	"github.com/localens/localens/internal/cancel"
	"github.com/sourcegraph/conc/pool"
)

// BatchError records a single file's processing failure.
type BatchError struct {
	Path string
	Err  error
}

func (e BatchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// BatchErrors collects per-file failures across batches. Individual file
// failures never abort a run; callers decide whether to report them.
type BatchErrors struct {
	Errors []BatchError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *BatchErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, BatchError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *BatchErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *BatchErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// Batch width defaults. The work is disk-latency bound, so small corpora
// use a narrow batch to avoid oversubscribing I/O and larger trees widen.
const (
	smallCorpusLimit = 64
	narrowWidth      = 8
	wideWidth        = 32
)

// DefaultWidth returns the batch width for a corpus of n files.
func DefaultWidth(n int) int {
	if n <= smallCorpusLimit {
		return narrowWidth
	}
	return wideWidth
}

// ProgressFunc is called after each file settles, success or failure.
type ProgressFunc func()

// CollectBatches runs fn over every item in consecutive batches of at most
// width items, collecting results in settle order. Per-file errors are
// gathered into BatchErrors; a worker returning cancel.ErrCancelled, a fired
// token, or a done context aborts the run with cancel.ErrCancelled and no
// results, since a cancelled scan must not masquerade as a partial one.
func CollectBatches[T any](ctx context.Context, tok *cancel.Token, items []string, width int, fn func(string) (T, error), onProgress ProgressFunc) ([]T, *BatchErrors, error) {
	if len(items) == 0 {
		return nil, nil, nil
	}
	if width <= 0 {
		width = DefaultWidth(len(items))
	}

	results := make([]T, 0, len(items))
	errs := &BatchErrors{}
	var mu sync.Mutex

	for start := 0; start < len(items); start += width {
		// Checkpoint between batches.
		if err := checkpoint(ctx, tok); err != nil {
			return nil, nil, err
		}

		end := start + width
		if end > len(items) {
			end = len(items)
		}

		cancelled := false
		p := pool.New().WithMaxGoroutines(width)
		for _, path := range items[start:end] {
			p.Go(func() {
				// Cooperative yield point inside the batch. A fired token
				// skips the remaining work but the batch still settles.
				if tok != nil && tok.Cancelled() {
					mu.Lock()
					cancelled = true
					mu.Unlock()
					return
				}

				result, err := fn(path)
				if onProgress != nil {
					onProgress()
				}
				if err != nil {
					if err == cancel.ErrCancelled {
						mu.Lock()
						cancelled = true
						mu.Unlock()
						return
					}
					errs.Add(path, err)
					return
				}

				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			})
		}
		p.Wait()

		if cancelled {
			return nil, nil, cancel.ErrCancelled
		}
	}

	if !errs.HasErrors() {
		return results, nil, nil
	}
	return results, errs, nil
}

func checkpoint(ctx context.Context, tok *cancel.Token) error {
	if tok != nil && tok.Cancelled() {
		return cancel.ErrCancelled
	}
	if ctx != nil {
		select {
		case <-ctx.Done():
			return cancel.ErrCancelled
		default:
		}
	}
	return nil
}
