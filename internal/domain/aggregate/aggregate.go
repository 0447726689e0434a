// Package aggregate computes recomputable reporting statistics over cleaned
// record sets. Nothing here is authoritative state: the same records always
// reproduce the same statistics.
package aggregate

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/C0nnectify/edulens/internal/domain/model"
	"github.com/C0nnectify/edulens/internal/domain/types"
)

// completenessBandWidth controls the quality histogram granularity: bands
// are [0.0,0.2), [0.2,0.4), ... with the top band closed at 1.0.
const completenessBandWidth = 0.2

// Statistics computes the full aggregation summary for a record set.
func Statistics(records []*model.CleanedRecord) types.AggregationStatistics {
	agg := types.AggregationStatistics{
		TotalRecords:        len(records),
		Decisions:           make(map[string]int),
		Universities:        make(map[string]types.UniversityStats),
		GPAByDecision:       make(map[string]types.DescriptiveStats),
		GREVerbalByDecision: make(map[string]types.DescriptiveStats),
		GREQuantByDecision:  make(map[string]types.DescriptiveStats),
	}

	var gpas, verbals, quants []float64
	gpaByDecision := make(map[string][]float64)
	verbalByDecision := make(map[string][]float64)
	quantByDecision := make(map[string][]float64)

	for _, r := range records {
		agg.Decisions[string(r.Decision)]++

		u := agg.Universities[r.University]
		u.Total++
		switch r.Decision {
		case model.DecisionAccepted:
			u.Accepted++
		case model.DecisionRejected:
			u.Rejected++
		}
		agg.Universities[r.University] = u

		if r.GPA != nil {
			gpas = append(gpas, *r.GPA)
			gpaByDecision[string(r.Decision)] = append(gpaByDecision[string(r.Decision)], *r.GPA)
		}
		if r.Scores.GREVerbal != nil {
			verbals = append(verbals, *r.Scores.GREVerbal)
			verbalByDecision[string(r.Decision)] = append(verbalByDecision[string(r.Decision)], *r.Scores.GREVerbal)
		}
		if r.Scores.GREQuant != nil {
			quants = append(quants, *r.Scores.GREQuant)
			quantByDecision[string(r.Decision)] = append(quantByDecision[string(r.Decision)], *r.Scores.GREQuant)
		}
	}

	for id, u := range agg.Universities {
		if u.Total > 0 {
			u.AcceptanceRate = float64(u.Accepted) / float64(u.Total)
		}
		agg.Universities[id] = u
	}

	agg.GPA = describe(gpas)
	agg.GREVerbal = describe(verbals)
	agg.GREQuant = describe(quants)
	for decision, vals := range gpaByDecision {
		agg.GPAByDecision[decision] = describe(vals)
	}
	for decision, vals := range verbalByDecision {
		agg.GREVerbalByDecision[decision] = describe(vals)
	}
	for decision, vals := range quantByDecision {
		agg.GREQuantByDecision[decision] = describe(vals)
	}

	agg.Quality = QualityReport(records)
	return agg
}

// QualityReport builds the completeness-band histogram and quality-flag
// frequency table.
func QualityReport(records []*model.CleanedRecord) types.QualityReport {
	rep := types.QualityReport{
		CompletenessBands: make(map[string]int),
		QualityFlags:      make(map[string]int),
	}
	for _, r := range records {
		rep.CompletenessBands[band(r.CompletenessScore)]++
		for _, f := range r.QualityFlags {
			rep.QualityFlags[f]++
		}
	}
	return rep
}

// describe summarizes one numeric sample. An empty sample yields zeros
// rather than NaNs so the result stays JSON-serializable.
func describe(vals []float64) types.DescriptiveStats {
	if len(vals) == 0 {
		return types.DescriptiveStats{}
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}
	return types.DescriptiveStats{
		Count:  len(sorted),
		Mean:   mean,
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Std:    std,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

func band(score float64) string {
	lo := int(score/completenessBandWidth) * 2
	if lo >= 10 {
		lo = 8 // 1.0 belongs to the top band
	}
	return fmt.Sprintf("%.1f-%.1f", float64(lo)/10, float64(lo+2)/10)
}
