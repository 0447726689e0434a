// Package model contains domain models passed between pipeline stages.
package model

import "time"

// RawRecord is an admission outcome exactly as it arrived from a scraper or
// a user submission. It is immutable once ingested; cleaning stages read it
// and produce a CleanedRecord.
type RawRecord struct {
	ID     string // assigned at ingestion, unique per submission
	Source string // scraper/source tag, e.g. "gradcafe", "manual"

	University string // free-text university name
	Program    string // free-text program name
	Decision   string // raw decision string, e.g. "Accepted via E-mail"
	Season     string // e.g. "Fall 2025"

	GPA      *float64 // as reported, on an unknown or declared scale
	GPAScale *float64 // declared scale (4.0, 5.0, 10.0, 100), nil = auto-detect

	GREVerbal     *float64
	GREQuant      *float64
	GREAnalytical *float64
	GMAT          *float64
	TOEFL         *float64
	IELTS         *float64

	Publications         *int   // reported publication count
	WorkMonths           *int   // reported months of work experience
	UndergradInstitution string // free-text undergrad institution
	Notes                string // free-text research/funding/institution mentions

	DecisionDate string // raw date string
	PostDate     string // raw date string

	ScrapedAt time.Time
}

// TestScores holds validated standardized test scores. A nil field means the
// score was absent or discarded as out of range.
type TestScores struct {
	GREVerbal     *float64 `json:"gre_verbal,omitempty"`
	GREQuant      *float64 `json:"gre_quant,omitempty"`
	GREAnalytical *float64 `json:"gre_aw,omitempty"`
	GMAT          *float64 `json:"gmat,omitempty"`
	TOEFL         *float64 `json:"toefl,omitempty"`
	IELTS         *float64 `json:"ielts,omitempty"`
}

// CleanedRecord is the normalized form of exactly one RawRecord. Numeric
// fields are either nil or inside their documented valid range. It is not
// mutated after creation except by the imputer filling nil fields.
type CleanedRecord struct {
	ID     string `json:"id"`
	Source string `json:"source"`

	University string   `json:"university"` // canonical university id (slug)
	Program    string   `json:"program"`
	Decision   Decision `json:"decision"`
	Season     string   `json:"season"`

	GPA    *float64   `json:"gpa,omitempty"` // normalized to the 4.0 scale
	Scores TestScores `json:"scores"`

	Publications         *int   `json:"publications,omitempty"`
	WorkMonths           *int   `json:"work_months,omitempty"`
	UndergradInstitution string `json:"undergrad_institution,omitempty"`
	Notes                string `json:"notes,omitempty"`

	DecisionDate string `json:"decision_date,omitempty"` // YYYY-MM-DD or empty
	PostDate     string `json:"post_date,omitempty"`     // YYYY-MM-DD or empty

	Hash string `json:"hash"` // content hash, see ContentHash

	CompletenessScore float64  `json:"completeness_score"`
	QualityFlags      []string `json:"quality_flags,omitempty"`
	IsValid           bool     `json:"is_valid"`

	// ImputedFields names fields filled by the imputer, for auditability.
	ImputedFields []string `json:"imputed_fields,omitempty"`
}

// Clone returns a deep copy. Analytical stages that fill fields (the
// imputer) work on clones so stored records stay exactly as cleaned.
func (r *CleanedRecord) Clone() *CleanedRecord {
	c := *r
	c.GPA = cloneFloat(r.GPA)
	c.Scores = TestScores{
		GREVerbal:     cloneFloat(r.Scores.GREVerbal),
		GREQuant:      cloneFloat(r.Scores.GREQuant),
		GREAnalytical: cloneFloat(r.Scores.GREAnalytical),
		GMAT:          cloneFloat(r.Scores.GMAT),
		TOEFL:         cloneFloat(r.Scores.TOEFL),
		IELTS:         cloneFloat(r.Scores.IELTS),
	}
	if r.Publications != nil {
		c.Publications = Int(*r.Publications)
	}
	if r.WorkMonths != nil {
		c.WorkMonths = Int(*r.WorkMonths)
	}
	if r.QualityFlags != nil {
		c.QualityFlags = append([]string(nil), r.QualityFlags...)
	}
	if r.ImputedFields != nil {
		c.ImputedFields = append([]string(nil), r.ImputedFields...)
	}
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(*v)
}

// HasResearchSignal reports whether the record carries any research evidence:
// a positive publication count or a research mention in the free text.
func (r *CleanedRecord) HasResearchSignal() bool {
	if r.Publications != nil && *r.Publications > 0 {
		return true
	}
	return containsResearchMention(r.Notes)
}

// HasEnglishScore reports whether either TOEFL or IELTS is present.
func (r *CleanedRecord) HasEnglishScore() bool {
	return r.Scores.TOEFL != nil || r.Scores.IELTS != nil
}

// Float returns a pointer to v. Convenience for optional numeric fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
