// Package dedupe removes exact and near-duplicate admission records.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Tracker records seen content hashes so a record is processed at most once
// within a pipeline run. The durable cross-run check lives in the store's
// insert-if-absent; this tracker keeps the in-batch stage cheap.
type Tracker interface {
	// SeenAndRecord atomically checks if hash was seen and records it if not.
	// Returns true if hash was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, hash string) bool

	// Unrecord removes a hash from the seen set, allowing a retry after a
	// record was marked seen but failed to reach the store.
	Unrecord(ctx context.Context, hash string)

	Size() int64
}

// inMemoryTracker implements Tracker with a mutex-guarded set.
type inMemoryTracker struct {
	mu      sync.RWMutex
	seen    map[string]struct{}
	maxSize int
	size    atomic.Int64
}

// Option applies a configuration option to the in-memory tracker.
type Option func(*inMemoryTracker)

// WithMaxSize bounds the number of hashes kept in memory. At the bound, new
// hashes are still recorded logically but the set stops growing; 0 or
// negative means unbounded.
func WithMaxSize(maxSize int) Option {
	return func(t *inMemoryTracker) {
		t.maxSize = maxSize
	}
}

// NewTracker creates an in-memory hash tracker.
func NewTracker(opts ...Option) Tracker {
	t := &inMemoryTracker{
		seen: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *inMemoryTracker) SeenAndRecord(_ context.Context, hash string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[hash]; ok {
		return true
	}
	if t.maxSize > 0 && len(t.seen) >= t.maxSize {
		// Saturated: report unseen without recording. A later durable check
		// against the store still rejects true duplicates.
		return false
	}
	t.seen[hash] = struct{}{}
	t.size.Add(1)
	return false
}

func (t *inMemoryTracker) Unrecord(_ context.Context, hash string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[hash]; ok {
		delete(t.seen, hash)
		t.size.Add(-1)
	}
}

func (t *inMemoryTracker) Size() int64 {
	return t.size.Load()
}
