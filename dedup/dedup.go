package dedup

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Operation produces the value for a coalesced request.
type Operation func(ctx context.Context) (any, error)

// Deduplicator maps a key to at most one in-flight operation.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use.
// - Context: op runs with the context of the caller that started it;
//   callers that join an in-flight operation block until it settles and
//   are not unblocked by their own context.
// - Errors: a failing operation propagates its error verbatim to every
//   coalesced caller.
type Deduplicator struct {
	group singleflight.Group

	mu       sync.Mutex
	inflight map[string]int // key -> outstanding Do calls
}

// New creates a deduplicator.
func New() *Deduplicator {
	return &Deduplicator{
		inflight: make(map[string]int),
	}
}

// Do returns the result of op for key, invoking op at most once per
// outstanding key. Callers that arrive while an operation for key is in
// flight wait for it instead of starting their own; shared reports
// whether the result was given to more than one caller. Once the
// operation settles - success or failure alike - the key is forgotten
// and a later Do starts a fresh operation.
func (d *Deduplicator) Do(ctx context.Context, key string, op Operation) (v any, err error, shared bool) {
	d.mu.Lock()
	d.inflight[key]++
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		if d.inflight[key]--; d.inflight[key] <= 0 {
			delete(d.inflight, key)
		}
		d.mu.Unlock()
	}()

	return d.group.Do(key, func() (any, error) {
		return op(ctx)
	})
}

// Cancel detaches key from its in-flight operation without cancelling
// the operation itself: callers already waiting still receive its
// result, but the next Do for key starts fresh instead of joining it.
// Cancelling the underlying work is the operation's own job, via the
// context threaded through Do.
func (d *Deduplicator) Cancel(key string) {
	d.group.Forget(key)
}

// Clear detaches every key from its in-flight operation, with the same
// caveats as Cancel.
func (d *Deduplicator) Clear() {
	d.mu.Lock()
	keys := make([]string, 0, len(d.inflight))
	for key := range d.inflight {
		keys = append(keys, key)
	}
	d.mu.Unlock()

	for _, key := range keys {
		d.group.Forget(key)
	}
}

// Reset is an alias for Clear, for teardown paths that reset the whole
// resilience layer.
func (d *Deduplicator) Reset() {
	d.Clear()
}

// Inflight returns the number of keys with an outstanding operation.
func (d *Deduplicator) Inflight() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.inflight)
}
