package repository

import (
	"context"
	"sync"

	"github.com/C0nnectify/edulens/internal/domain/model"
)

// MemStore implements Store in memory. It backs tests and offline runs; the
// Mongo store provides the durable production path.
type MemStore struct {
	mu     sync.RWMutex
	byHash map[string]*model.CleanedRecord
	order  []string // hashes in insertion order
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		byHash: make(map[string]*model.CleanedRecord),
	}
}

// InsertIfAbsent inserts the record if its hash is unseen. The single lock
// makes the check-and-insert atomic.
func (s *MemStore) InsertIfAbsent(_ context.Context, r *model.CleanedRecord) (bool, error) {
	if r.Hash == "" {
		return false, ErrMissingHash
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byHash[r.Hash]; ok {
		return false, nil
	}
	s.byHash[r.Hash] = r
	s.order = append(s.order, r.Hash)
	return true, nil
}

// Find returns matching records in insertion order with paging.
func (s *MemStore) Find(_ context.Context, f Filter, skip, limit int) ([]*model.CleanedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.CleanedRecord
	skipped := 0
	for _, h := range s.order {
		r := s.byHash[h]
		if !f.Matches(r) {
			continue
		}
		if skipped < skip {
			skipped++
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Count returns the number of matching records.
func (s *MemStore) Count(_ context.Context, f Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, h := range s.order {
		if f.Matches(s.byHash[h]) {
			n++
		}
	}
	return n, nil
}

// All returns a deep copy of every record in insertion order. Callers
// (imputer, feature engineering) fill fields on the returned records, and
// the Mongo store likewise decodes fresh copies, so mutations never reach
// stored state.
func (s *MemStore) All(_ context.Context) ([]*model.CleanedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.CleanedRecord, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.byHash[h].Clone())
	}
	return out, nil
}

// Size returns the number of stored records.
func (s *MemStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
