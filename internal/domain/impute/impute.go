// Package impute fills missing record fields from grouped batch statistics.
package impute

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/C0nnectify/edulens/internal/domain/model"
)

// Imputed numeric field names, used in the per-record audit trail.
const (
	fieldGPA       = "gpa"
	fieldGREVerbal = "gre_verbal"
	fieldGREQuant  = "gre_quant"
	fieldGREAW     = "gre_aw"
	fieldSeason    = "season"
)

// numericField describes how to read and write one imputable numeric field.
type numericField struct {
	name string
	get  func(*model.CleanedRecord) *float64
	set  func(*model.CleanedRecord, float64)
}

var numericFields = []numericField{
	{fieldGPA,
		func(r *model.CleanedRecord) *float64 { return r.GPA },
		func(r *model.CleanedRecord, v float64) { r.GPA = &v }},
	{fieldGREVerbal,
		func(r *model.CleanedRecord) *float64 { return r.Scores.GREVerbal },
		func(r *model.CleanedRecord, v float64) { r.Scores.GREVerbal = &v }},
	{fieldGREQuant,
		func(r *model.CleanedRecord) *float64 { return r.Scores.GREQuant },
		func(r *model.CleanedRecord, v float64) { r.Scores.GREQuant = &v }},
	{fieldGREAW,
		func(r *model.CleanedRecord) *float64 { return r.Scores.GREAnalytical },
		func(r *model.CleanedRecord, v float64) { r.Scores.GREAnalytical = &v }},
}

// Imputer fills missing numeric fields with the median of the same field
// within the (canonical university, decision) group, falling back to the
// global median when the group has no observations; categorical fields use
// the grouped (else global) mode. Statistics are precomputed in one
// sequential pass so Apply can run record-by-record.
type Imputer struct {
	groupMedians  map[string]map[string]float64 // group key -> field -> median
	globalMedians map[string]float64
	groupModes    map[string]string // group key -> modal season
	globalMode    string
}

// New precomputes grouping statistics over the batch.
func New(records []*model.CleanedRecord) *Imputer {
	im := &Imputer{
		groupMedians:  make(map[string]map[string]float64),
		globalMedians: make(map[string]float64),
		groupModes:    make(map[string]string),
	}

	groupValues := make(map[string]map[string][]float64)
	globalValues := make(map[string][]float64)
	groupSeasons := make(map[string]map[string]int)
	globalSeasons := make(map[string]int)

	for _, r := range records {
		key := groupKey(r)
		for _, f := range numericFields {
			v := f.get(r)
			if v == nil {
				continue
			}
			if groupValues[key] == nil {
				groupValues[key] = make(map[string][]float64)
			}
			groupValues[key][f.name] = append(groupValues[key][f.name], *v)
			globalValues[f.name] = append(globalValues[f.name], *v)
		}
		if r.Season != "" {
			if groupSeasons[key] == nil {
				groupSeasons[key] = make(map[string]int)
			}
			groupSeasons[key][r.Season]++
			globalSeasons[r.Season]++
		}
	}

	for key, fields := range groupValues {
		im.groupMedians[key] = make(map[string]float64, len(fields))
		for name, vals := range fields {
			im.groupMedians[key][name] = median(vals)
		}
	}
	for name, vals := range globalValues {
		im.globalMedians[name] = median(vals)
	}
	for key, counts := range groupSeasons {
		im.groupModes[key] = mode(counts)
	}
	im.globalMode = mode(globalSeasons)

	return im
}

// Apply fills nil fields in place and returns the number of values written.
// Present values are never overwritten, so re-running over an already
// imputed batch is a no-op.
func (im *Imputer) Apply(records []*model.CleanedRecord) int {
	filled := 0
	for _, r := range records {
		key := groupKey(r)
		for _, f := range numericFields {
			if f.get(r) != nil {
				continue
			}
			v, ok := im.lookup(key, f.name)
			if !ok {
				continue
			}
			f.set(r, v)
			r.ImputedFields = append(r.ImputedFields, f.name)
			filled++
		}
		if r.Season == "" {
			if s, ok := im.groupModes[key]; ok && s != "" {
				r.Season = s
			} else if im.globalMode != "" {
				r.Season = im.globalMode
			}
			if r.Season != "" {
				r.ImputedFields = append(r.ImputedFields, fieldSeason)
				filled++
			}
		}
	}
	return filled
}

func (im *Imputer) lookup(key, field string) (float64, bool) {
	if fields, ok := im.groupMedians[key]; ok {
		if v, ok := fields[field]; ok {
			return v, true
		}
	}
	v, ok := im.globalMedians[field]
	return v, ok
}

func groupKey(r *model.CleanedRecord) string {
	return r.University + "|" + string(r.Decision)
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// mode returns the most frequent key; ties break lexicographically so the
// result is deterministic across runs.
func mode(counts map[string]int) string {
	best, bestN := "", 0
	for s, n := range counts {
		if n > bestN || (n == bestN && s < best) {
			best, bestN = s, n
		}
	}
	return best
}
