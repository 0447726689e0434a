// Package cleaner runs the field-level normalization stages over one raw
// record: score normalization, university canonicalization, date parsing,
// and quality scoring. Records are independent, so callers may run Clean
// across workers; the canonicalization index is the only shared state and
// guards itself.
package cleaner

import (
	"github.com/C0nnectify/edulens/internal/domain/dates"
	"github.com/C0nnectify/edulens/internal/domain/model"
	"github.com/C0nnectify/edulens/internal/domain/quality"
	"github.com/C0nnectify/edulens/internal/domain/score"
	"github.com/C0nnectify/edulens/internal/domain/university"
)

// Field names reported in per-field error counts.
const (
	FieldGPA          = "gpa"
	FieldGREVerbal    = "gre_verbal"
	FieldGREQuant     = "gre_quant"
	FieldGREAW        = "gre_aw"
	FieldGMAT         = "gmat"
	FieldTOEFL        = "toefl"
	FieldIELTS        = "ielts"
	FieldDecisionDate = "decision_date"
	FieldPostDate     = "post_date"
)

// Cleaner derives CleanedRecords from RawRecords. A single Cleaner is
// shared by all workers in a pipeline run so alias discovery is consistent.
type Cleaner struct {
	index *university.Index
}

// New creates a Cleaner around the run's canonicalization index.
func New(index *university.Index) *Cleaner {
	return &Cleaner{index: index}
}

// Clean normalizes one raw record. A field that fails to parse or validate
// is nulled and named in fieldErrors; the record itself survives. A missing
// hard-required field (university or program) returns an error and the
// record is excluded from the cleaned set.
func (c *Cleaner) Clean(raw *model.RawRecord) (*model.CleanedRecord, []string, error) {
	canonical := c.index.Canonicalize(raw.University)
	if canonical == "" {
		return nil, nil, ErrMissingUniversity
	}
	if raw.Program == "" {
		return nil, nil, ErrMissingProgram
	}

	r := &model.CleanedRecord{
		ID:                   raw.ID,
		Source:               raw.Source,
		University:           canonical,
		Program:              raw.Program,
		Decision:             model.ParseDecision(raw.Decision),
		Season:               raw.Season,
		Publications:         raw.Publications,
		WorkMonths:           raw.WorkMonths,
		UndergradInstitution: raw.UndergradInstitution,
		Notes:                raw.Notes,
	}

	var fieldErrors []string
	fail := func(field string) { fieldErrors = append(fieldErrors, field) }

	if raw.GPA != nil {
		if r.GPA = score.NormalizeGPA(*raw.GPA, raw.GPAScale); r.GPA == nil {
			fail(FieldGPA)
		}
	}

	scores := []struct {
		field, test, component string
		raw                    *float64
		dst                    **float64
	}{
		{FieldGREVerbal, "gre", "verbal", raw.GREVerbal, &r.Scores.GREVerbal},
		{FieldGREQuant, "gre", "quant", raw.GREQuant, &r.Scores.GREQuant},
		{FieldGREAW, "gre", "analytical", raw.GREAnalytical, &r.Scores.GREAnalytical},
		{FieldGMAT, "gmat", "", raw.GMAT, &r.Scores.GMAT},
		{FieldTOEFL, "toefl", "", raw.TOEFL, &r.Scores.TOEFL},
		{FieldIELTS, "ielts", "", raw.IELTS, &r.Scores.IELTS},
	}
	for _, s := range scores {
		if s.raw == nil {
			continue
		}
		if *s.dst = score.StandardizeTestScore(s.test, s.component, *s.raw); *s.dst == nil {
			fail(s.field)
		}
	}

	if raw.DecisionDate != "" {
		if iso, ok := dates.Parse(raw.DecisionDate); ok {
			r.DecisionDate = iso
		} else {
			fail(FieldDecisionDate)
		}
	}
	if raw.PostDate != "" {
		if iso, ok := dates.Parse(raw.PostDate); ok {
			r.PostDate = iso
		} else {
			fail(FieldPostDate)
		}
	}

	quality.Score(r)
	r.Hash = r.ContentHash()
	return r, fieldErrors, nil
}
