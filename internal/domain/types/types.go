// Package types contains reporting and API-facing shapes shared across layers.
package types

// CleaningStats summarizes one submitted batch. Per-record failures never
// abort a batch; they are counted here and returned alongside the data.
type CleaningStats struct {
	Submitted  int `json:"submitted"`
	Accepted   int `json:"accepted"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`

	// FieldErrors counts parse/validation failures by field name. A field
	// failure nulls the field and flags the record but keeps it in the batch.
	FieldErrors map[string]int `json:"field_errors,omitempty"`
}

// DescriptiveStats holds the usual summary numbers for one numeric field.
type DescriptiveStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// UniversityStats aggregates outcomes for one canonical university.
type UniversityStats struct {
	Total          int     `json:"total"`
	Accepted       int     `json:"accepted"`
	Rejected       int     `json:"rejected"`
	AcceptanceRate float64 `json:"acceptance_rate"`
}

// AggregationStatistics is a recomputable summary over a cleaned record set.
// It is regenerated on demand and never persisted as a source of truth.
type AggregationStatistics struct {
	TotalRecords int                        `json:"total_records"`
	Decisions    map[string]int             `json:"decisions"`
	Universities map[string]UniversityStats `json:"universities"`

	GPA           DescriptiveStats            `json:"gpa"`
	GPAByDecision map[string]DescriptiveStats `json:"gpa_by_decision"`

	GREVerbal           DescriptiveStats            `json:"gre_verbal"`
	GREVerbalByDecision map[string]DescriptiveStats `json:"gre_verbal_by_decision"`
	GREQuant            DescriptiveStats            `json:"gre_quant"`
	GREQuantByDecision  map[string]DescriptiveStats `json:"gre_quant_by_decision"`

	Quality QualityReport `json:"quality"`
}

// QualityReport describes the quality profile of a record set: a histogram
// of completeness bands and the frequency of each quality flag.
type QualityReport struct {
	CompletenessBands map[string]int `json:"completeness_distribution"`
	QualityFlags      map[string]int `json:"quality_flags"`
}

// SplitResult holds the three disjoint, exhaustive id partitions produced by
// the dataset splitter.
type SplitResult struct {
	Train      []string `json:"train"`
	Validation []string `json:"validation"`
	Test       []string `json:"test"`
}
