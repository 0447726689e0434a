// Package repository defines the cleaned-record store contract and its
// implementations.
package repository

import (
	"context"

	"github.com/C0nnectify/edulens/internal/domain/model"
)

// Filter narrows Find and Count queries. Zero-valued fields match anything.
type Filter struct {
	University string
	Decision   model.Decision
	Season     string
	ValidOnly  bool
}

// Matches reports whether a record satisfies the filter.
func (f Filter) Matches(r *model.CleanedRecord) bool {
	if f.University != "" && r.University != f.University {
		return false
	}
	if f.Decision != "" && r.Decision != f.Decision {
		return false
	}
	if f.Season != "" && r.Season != f.Season {
		return false
	}
	if f.ValidOnly && !r.IsValid {
		return false
	}
	return true
}

// Store provides durable access to cleaned records keyed by content hash.
// The hash is the durable uniqueness invariant: a record whose hash already
// exists is never inserted twice, and rejection is a normal outcome rather
// than an error.
type Store interface {
	// InsertIfAbsent atomically inserts the record keyed by its hash.
	// Returns true if inserted, false if the hash already existed.
	InsertIfAbsent(ctx context.Context, r *model.CleanedRecord) (bool, error)

	// Find returns records matching the filter, in insertion order, with
	// skip/limit paging. limit <= 0 means no limit.
	Find(ctx context.Context, f Filter, skip, limit int) ([]*model.CleanedRecord, error)

	// Count returns the number of records matching the filter.
	Count(ctx context.Context, f Filter) (int, error)

	// All returns every stored record in insertion order. The splitter and
	// aggregator need the full set materialized.
	All(ctx context.Context) ([]*model.CleanedRecord, error)
}
