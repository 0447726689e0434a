// Package split produces deterministic stratified train/validation/test
// partitions of feature-vector ids.
package split

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/C0nnectify/edulens/internal/domain/features"
	"github.com/C0nnectify/edulens/internal/domain/types"
)

// Defaults: 70/15/15 with a fixed seed. The seed is part of the contract:
// identical input order and seed always produce identical partitions.
const (
	defaultTestFraction = 0.15
	defaultValFraction  = 0.15
	defaultSeed         = 42

	// maxStrata disables stratification when the target takes this many or
	// more distinct values; the split then runs over a single stratum.
	maxStrata = 10
)

// noTargetStratum groups vectors excluded from supervised training; they
// still participate in the partitioning so the split stays exhaustive.
const noTargetStratum = "_none"

// Splitter carves the test fraction first via stratified sampling on the
// target, then validation from the remainder at val/(1-test).
type Splitter struct {
	testFraction float64
	valFraction  float64
	seed         int64
}

// Option applies a configuration option to the Splitter.
type Option func(*Splitter)

// WithFractions sets the validation and test fractions.
func WithFractions(val, test float64) Option {
	return func(s *Splitter) {
		if val > 0 && test > 0 && val+test < 1 {
			s.valFraction = val
			s.testFraction = test
		}
	}
}

// WithSeed fixes the shuffle seed.
func WithSeed(seed int64) Option {
	return func(s *Splitter) {
		s.seed = seed
	}
}

// New creates a Splitter with the default 70/15/15 ratios.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		testFraction: defaultTestFraction,
		valFraction:  defaultValFraction,
		seed:         defaultSeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split partitions the vectors into three disjoint, exhaustive id sets.
func (s *Splitter) Split(vectors []features.Vector) types.SplitResult {
	strata := s.stratify(vectors)

	keys := make([]string, 0, len(strata))
	for k := range strata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rng := rand.New(rand.NewSource(s.seed)) //nolint:gosec // deterministic partitioning, not cryptography

	var res types.SplitResult
	adjVal := s.valFraction / (1 - s.testFraction)
	for _, k := range keys {
		ids := strata[k]
		rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

		nTest := int(math.Round(s.testFraction * float64(len(ids))))
		rest := ids[nTest:]
		nVal := int(math.Round(adjVal * float64(len(rest))))

		res.Test = append(res.Test, ids[:nTest]...)
		res.Validation = append(res.Validation, rest[:nVal]...)
		res.Train = append(res.Train, rest[nVal:]...)
	}
	return res
}

// stratify buckets vector ids by target value; vectors without a target form
// their own stratum. When the target cardinality reaches maxStrata the whole
// input collapses into one stratum.
func (s *Splitter) stratify(vectors []features.Vector) map[string][]string {
	strata := make(map[string][]string)
	for _, v := range vectors {
		key := noTargetStratum
		if v.HasTarget {
			key = fmt.Sprintf("%g", v.Target)
		}
		strata[key] = append(strata[key], v.RecordID)
	}
	if len(strata) >= maxStrata {
		all := make([]string, 0, len(vectors))
		for _, v := range vectors {
			all = append(all, v.RecordID)
		}
		return map[string][]string{"_all": all}
	}
	return strata
}
