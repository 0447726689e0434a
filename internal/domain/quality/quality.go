// Package quality computes weighted completeness scores and validity flags
// for cleaned admission records.
package quality

import (
	"fmt"

	"github.com/C0nnectify/edulens/internal/domain/model"
	"github.com/C0nnectify/edulens/internal/domain/score"
)

// Completeness weights for the 12 tracked fields. They sum to exactly 1.00,
// so a fully populated record scores 1.0.
const (
	weightUniversity   = 0.10
	weightProgram      = 0.10
	weightDecision     = 0.10
	weightSeason       = 0.05
	weightDecisionDate = 0.05
	weightGPA          = 0.15
	weightGREVerbal    = 0.10
	weightGREQuant     = 0.10
	weightGREAW        = 0.05
	weightEnglish      = 0.10 // TOEFL or IELTS
	weightResearch     = 0.05 // publications or free-text mention
	weightUndergrad    = 0.05
)

// Completeness band thresholds for quality flags.
const (
	lowCompleteness  = 0.3
	highCompleteness = 0.6
)

// Quality flag names attached to records.
const (
	FlagLowCompleteness  = "low_completeness"
	FlagHighCompleteness = "high_completeness"
	FlagInvalidGPA       = "invalid_gpa"
	FlagScoreOutOfRange  = "score_out_of_range"
	FlagDateOrder        = "decision_before_post"
	FlagAllZeroScores    = "suspicious_all_zero_scores"
)

// Completeness returns the weighted fraction of tracked fields present,
// in [0,1]. A field contributes its weight iff non-nil/non-empty; the
// English-test and research fields are OR-combinations of sub-fields.
func Completeness(r *model.CleanedRecord) float64 {
	var s float64
	if r.University != "" {
		s += weightUniversity
	}
	if r.Program != "" {
		s += weightProgram
	}
	if r.Decision != model.DecisionUnknown && r.Decision != "" {
		s += weightDecision
	}
	if r.Season != "" {
		s += weightSeason
	}
	if r.DecisionDate != "" {
		s += weightDecisionDate
	}
	if r.GPA != nil {
		s += weightGPA
	}
	if r.Scores.GREVerbal != nil {
		s += weightGREVerbal
	}
	if r.Scores.GREQuant != nil {
		s += weightGREQuant
	}
	if r.Scores.GREAnalytical != nil {
		s += weightGREAW
	}
	if r.HasEnglishScore() {
		s += weightEnglish
	}
	if r.HasResearchSignal() {
		s += weightResearch
	}
	if r.UndergradInstitution != "" {
		s += weightUndergrad
	}
	return s
}

// Validate re-checks range invariants and internal consistency. The score
// normalizer should have discarded out-of-range values already; this is a
// defensive re-check at the quality gate. Validation is independent of
// completeness: a sparse record can still be valid.
func Validate(r *model.CleanedRecord) (bool, []string) {
	var issues []string

	if r.GPA != nil && (*r.GPA < 0 || *r.GPA > score.Scale4) {
		issues = append(issues, fmt.Sprintf("gpa %.2f outside [0, %.1f]", *r.GPA, score.Scale4))
	}

	checks := []struct {
		test, component string
		value           *float64
	}{
		{"gre", "verbal", r.Scores.GREVerbal},
		{"gre", "quant", r.Scores.GREQuant},
		{"gre", "analytical", r.Scores.GREAnalytical},
		{"gmat", "", r.Scores.GMAT},
		{"toefl", "", r.Scores.TOEFL},
		{"ielts", "", r.Scores.IELTS},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if rg, ok := score.Range(c.test, c.component); ok && !rg.Contains(*c.value) {
			issues = append(issues, fmt.Sprintf("%s/%s %.1f outside [%.0f, %.0f]", c.test, c.component, *c.value, rg.Min, rg.Max))
		}
	}

	if r.DecisionDate != "" && r.PostDate != "" && r.DecisionDate > r.PostDate {
		issues = append(issues, "decision date later than post date")
	}

	if allZeroScores(r) {
		issues = append(issues, "all reported test scores are zero")
	}

	return len(issues) == 0, issues
}

// Score fills the record's completeness score, validity, and quality flags
// in place and returns the record.
func Score(r *model.CleanedRecord) *model.CleanedRecord {
	r.CompletenessScore = Completeness(r)

	valid, issues := Validate(r)
	r.IsValid = valid

	flags := make([]string, 0, len(issues)+1)
	flags = append(flags, issueFlags(issues)...)
	switch {
	case r.CompletenessScore < lowCompleteness:
		flags = append(flags, FlagLowCompleteness)
	case r.CompletenessScore > highCompleteness:
		flags = append(flags, FlagHighCompleteness)
	}
	r.QualityFlags = flags
	return r
}

// allZeroScores reports the suspicious pattern where every reported test
// score is exactly zero. Scores that are simply absent do not count.
func allZeroScores(r *model.CleanedRecord) bool {
	reported := 0
	for _, v := range []*float64{
		r.Scores.GREVerbal, r.Scores.GREQuant, r.Scores.GREAnalytical,
		r.Scores.GMAT, r.Scores.TOEFL, r.Scores.IELTS,
	} {
		if v == nil {
			continue
		}
		reported++
		if *v != 0 {
			return false
		}
	}
	return reported >= 2
}

// issueFlags maps validation issues onto stable flag names.
func issueFlags(issues []string) []string {
	var flags []string
	seen := make(map[string]struct{})
	add := func(f string) {
		if _, ok := seen[f]; !ok {
			seen[f] = struct{}{}
			flags = append(flags, f)
		}
	}
	for _, issue := range issues {
		switch {
		case len(issue) >= 3 && issue[:3] == "gpa":
			add(FlagInvalidGPA)
		case issue == "decision date earlier than post date":
			add(FlagDateOrder)
		case issue == "all reported test scores are zero":
			add(FlagAllZeroScores)
		default:
			add(FlagScoreOutOfRange)
		}
	}
	return flags
}
