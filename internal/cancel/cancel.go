// Package cancel provides a once-settable cancellation token shared by
// long-running scans. Batches check the token between units of work;
// in-flight file reads are never interrupted.
package cancel

import (
	"errors"
	"sync"
)

// ErrCancelled is returned by operations that stopped because the token
// fired. Callers should detect it with errors.Is and report a cancelled
// outcome instead of a failure.
var ErrCancelled = errors.New("operation cancelled")

// Token signals cancellation to cooperating tasks. The zero value is not
// usable; create one with NewToken. Cancel transitions the token exactly
// once and runs registered cleanups; later calls are no-ops.
type Token struct {
	mu       sync.Mutex
	done     chan struct{}
	fired    bool
	cleanups []func()
}

// NewToken creates an unfired token.
func NewToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Cancel fires the token and invokes all registered cleanup callbacks in
// registration order. Safe to call from signal handlers and multiple
// goroutines; only the first call has any effect.
func (t *Token) Cancel() {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	close(t.done)
	cleanups := t.cleanups
	t.cleanups = nil
	t.mu.Unlock()

	for _, fn := range cleanups {
		fn()
	}
}

// Cancelled reports whether the token has fired.
func (t *Token) Cancelled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the token fires, for use in select.
func (t *Token) Done() <-chan struct{} {
	return t.done
}

// Err returns ErrCancelled if the token has fired, nil otherwise.
func (t *Token) Err() error {
	if t.Cancelled() {
		return ErrCancelled
	}
	return nil
}

// OnCancel registers fn to run when the token fires. If the token has
// already fired, fn runs immediately on the calling goroutine.
func (t *Token) OnCancel(fn func()) {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		fn()
		return
	}
	t.cleanups = append(t.cleanups, fn)
	t.mu.Unlock()
}
