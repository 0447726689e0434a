package dedupe

import (
	"context"
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/C0nnectify/edulens/internal/domain/model"
)

// Defaults for the near-duplicate stage.
const (
	// defaultFuzzyCeiling disables near-duplicate clustering above this
	// batch size. The stage compares pairs within blocks and is quadratic
	// in the worst case.
	defaultFuzzyCeiling = 5000

	// defaultFuzzySimilarity is the token-sort-ratio (0-100) at or above
	// which two records in the same block are considered near-duplicates.
	defaultFuzzySimilarity = 90
)

// Result reports what one detection pass dropped and kept.
type Result struct {
	Kept            []*model.CleanedRecord
	ExactDuplicates int
	HashDuplicates  int
	NearDuplicates  int
	FuzzySkipped    bool // true when the batch exceeded the fuzzy ceiling
}

// Detector removes duplicate records in three stages: exact composite-key
// matches, content-hash matches, and (for bounded batch sizes) fuzzy
// near-duplicate clusters. First occurrence wins in every stage.
type Detector struct {
	tracker         Tracker
	fuzzyCeiling    int
	fuzzySimilarity int
}

// DetectorOption applies a configuration option to the Detector.
type DetectorOption func(*Detector)

// WithFuzzyCeiling sets the batch size above which the near-duplicate stage
// is skipped; 0 disables the stage entirely.
func WithFuzzyCeiling(n int) DetectorOption {
	return func(d *Detector) {
		if n >= 0 {
			d.fuzzyCeiling = n
		}
	}
}

// WithFuzzySimilarity sets the near-duplicate similarity threshold in [0,1].
func WithFuzzySimilarity(t float64) DetectorOption {
	return func(d *Detector) {
		if t > 0 && t <= 1 {
			d.fuzzySimilarity = int(t * 100)
		}
	}
}

// WithTracker shares a hash tracker across detector passes so cross-batch
// hash duplicates within one run are caught here rather than at the store.
func WithTracker(t Tracker) DetectorOption {
	return func(d *Detector) {
		if t != nil {
			d.tracker = t
		}
	}
}

// NewDetector creates a Detector with its own unbounded tracker by default.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		tracker:         NewTracker(),
		fuzzyCeiling:    defaultFuzzyCeiling,
		fuzzySimilarity: defaultFuzzySimilarity,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect runs all stages over the batch in input order. Dropped records are
// counted, never returned; duplicates are normal outcomes, not errors.
func (d *Detector) Detect(ctx context.Context, records []*model.CleanedRecord) Result {
	res := Result{Kept: make([]*model.CleanedRecord, 0, len(records))}

	seenKeys := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seenKeys[r.CompositeKey()]; dup {
			res.ExactDuplicates++
			continue
		}
		seenKeys[r.CompositeKey()] = struct{}{}

		if r.Hash == "" {
			r.Hash = r.ContentHash()
		}
		if d.tracker.SeenAndRecord(ctx, r.Hash) {
			res.HashDuplicates++
			continue
		}
		res.Kept = append(res.Kept, r)
	}

	if d.fuzzyCeiling == 0 {
		return res
	}
	if len(res.Kept) > d.fuzzyCeiling {
		res.FuzzySkipped = true
		return res
	}

	kept, near := d.fuzzyPass(res.Kept)
	res.Kept = kept
	res.NearDuplicates = near
	return res
}

// fuzzyPass clusters near-duplicates within blocks keyed by the first rune
// of the canonical university id, bounding the pairwise comparisons. Within
// a block, a record whose program text scores at or above the similarity
// threshold against an earlier kept record with the same university and
// decision is dropped.
func (d *Detector) fuzzyPass(records []*model.CleanedRecord) ([]*model.CleanedRecord, int) {
	blocks := make(map[rune][]*model.CleanedRecord)
	order := make([]rune, 0, 8)
	for _, r := range records {
		key := blockKey(r.University)
		if _, ok := blocks[key]; !ok {
			order = append(order, key)
		}
		blocks[key] = append(blocks[key], r)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	dropped := make(map[*model.CleanedRecord]struct{})
	near := 0
	for _, key := range order {
		block := blocks[key]
		for i := 1; i < len(block); i++ {
			for j := 0; j < i; j++ {
				if _, gone := dropped[block[j]]; gone {
					continue
				}
				if !sameGroup(block[i], block[j]) {
					continue
				}
				if fuzzy.TokenSortRatio(block[i].Program, block[j].Program) >= d.fuzzySimilarity {
					dropped[block[i]] = struct{}{}
					near++
					break
				}
			}
		}
	}

	if near == 0 {
		return records, 0
	}
	kept := make([]*model.CleanedRecord, 0, len(records)-near)
	for _, r := range records {
		if _, gone := dropped[r]; !gone {
			kept = append(kept, r)
		}
	}
	return kept, near
}

// sameGroup restricts fuzzy comparison to records that could plausibly be
// the same submission: same university and decision, same season.
func sameGroup(a, b *model.CleanedRecord) bool {
	return a.University == b.University && a.Decision == b.Decision && a.Season == b.Season
}

func blockKey(university string) rune {
	for _, r := range university {
		return r
	}
	return 0
}
