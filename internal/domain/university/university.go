// Package university resolves raw university name strings to stable
// canonical identifiers.
package university

import (
	"strings"
	"sync"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/gosimple/slug"
)

// defaultThreshold is the minimum token-sort-ratio (0-100) for a fuzzy
// match to be accepted.
const defaultThreshold = 85

// Index maps observed alias strings to canonical university ids. It is
// owned by a pipeline run and passed by handle to canonicalization calls;
// there is no process-wide singleton. Once an alias resolves to an id it
// resolves to that id for the lifetime of the Index.
type Index struct {
	mu        sync.RWMutex
	aliases   map[string]string // normalized alias -> canonical id
	display   map[string]string // canonical id -> display name
	threshold int
}

// Option applies a configuration option to the Index.
type Option func(*Index)

// WithThreshold sets the fuzzy-match acceptance threshold in [0,1].
func WithThreshold(t float64) Option {
	return func(ix *Index) {
		if t > 0 && t <= 1 {
			ix.threshold = int(t * 100)
		}
	}
}

// WithAliases registers extra seed aliases (alias -> canonical id).
func WithAliases(extra map[string]string) Option {
	return func(ix *Index) {
		for alias, id := range extra {
			ix.register(alias, id)
		}
	}
}

// NewIndex creates an Index seeded with the built-in alias dictionary.
func NewIndex(opts ...Option) *Index {
	ix := &Index{
		aliases:   make(map[string]string),
		display:   make(map[string]string),
		threshold: defaultThreshold,
	}
	for id, entry := range seedDictionary {
		ix.display[id] = entry.display
		ix.aliases[normalizeAlias(id)] = id
		ix.aliases[normalizeAlias(entry.display)] = id
		for _, alias := range entry.aliases {
			ix.aliases[normalizeAlias(alias)] = id
		}
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Canonicalize resolves a raw name to its canonical id. Resolution order:
// exact alias lookup, fuzzy match against known display names, slugified
// fallback registered as a new canonical id. Canonicalization is idempotent:
// an already-canonical id comes back unchanged.
func (ix *Index) Canonicalize(raw string) string {
	key := normalizeAlias(raw)
	if key == "" {
		return ""
	}

	ix.mu.RLock()
	if id, ok := ix.aliases[key]; ok {
		ix.mu.RUnlock()
		return id
	}
	ix.mu.RUnlock()

	// Single-writer section: concurrent discovery of the same new alias must
	// not mint two different canonical ids.
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if id, ok := ix.aliases[key]; ok {
		return id
	}

	if id, ok := ix.bestFuzzyMatch(key); ok {
		ix.aliases[key] = id
		return id
	}

	id := slug.Make(raw)
	if id == "" {
		return ""
	}
	ix.aliases[key] = id
	ix.aliases[normalizeAlias(id)] = id
	if _, ok := ix.display[id]; !ok {
		ix.display[id] = strings.TrimSpace(raw)
	}
	return id
}

// bestFuzzyMatch scans known display names for the highest token-sort-ratio
// and accepts it at or above the threshold. Caller holds the write lock.
func (ix *Index) bestFuzzyMatch(key string) (string, bool) {
	bestID, bestScore := "", 0
	for id, display := range ix.display {
		s := fuzzy.TokenSortRatio(key, normalizeAlias(display))
		if s > bestScore {
			bestID, bestScore = id, s
		}
	}
	if bestScore >= ix.threshold {
		return bestID, true
	}
	return "", false
}

// Size returns the number of registered aliases.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.aliases)
}

// register adds an alias under the write lock, creating the canonical id's
// self-alias if needed.
func (ix *Index) register(alias, id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.aliases[normalizeAlias(alias)] = id
	ix.aliases[normalizeAlias(id)] = id
	if _, ok := ix.display[id]; !ok {
		ix.display[id] = alias
	}
}

// normalizeAlias lowercases, trims, and collapses interior whitespace so
// lookup keys are insensitive to formatting noise.
func normalizeAlias(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}
