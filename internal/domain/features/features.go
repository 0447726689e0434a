// Package features derives bounded numeric ML features from cleaned records.
// Every feature function here is pure and total: missing inputs take a
// documented default, never an error or a panic.
package features

import (
	"math"

	"github.com/C0nnectify/edulens/internal/domain/model"
)

// Feature names, in the fixed ordering consumed by the training collaborator.
const (
	FeatureGPA             = "gpa_normalized"
	FeatureGREVerbalPct    = "gre_verbal_percentile"
	FeatureGREQuantPct     = "gre_quant_percentile"
	FeatureGREAWPct        = "gre_aw_percentile"
	FeatureEnglishPct      = "english_percentile"
	FeatureTestComposite   = "test_score_composite"
	FeatureResearch        = "research_score"
	FeatureProfessional    = "professional_score"
	FeaturePrestige        = "university_prestige"
	FeatureCompetitiveness = "program_competitiveness"
)

// Defaults for missing inputs.
const (
	neutralPercentile = 50.0 // missing test score
	neutralPrestige   = 0.5  // unknown ranking
	neutralComp       = 0.5  // unknown acceptance rate
)

// Composite score scaling constants.
const (
	publicationWeight = 0.2  // research_score = min(pubs * 0.2, 1)
	workMonthsCap     = 60.0 // professional_score = min(months/60, 1)
	gpaScale          = 4.0
)

// FeatureNames is the fixed feature ordering.
var FeatureNames = []string{
	FeatureGPA,
	FeatureGREVerbalPct,
	FeatureGREQuantPct,
	FeatureGREAWPct,
	FeatureEnglishPct,
	FeatureTestComposite,
	FeatureResearch,
	FeatureProfessional,
	FeaturePrestige,
	FeatureCompetitiveness,
}

// Vector is the per-record feature mapping plus the target encoding.
// HasTarget is false for records whose outcome is excluded from supervised
// training (unknown or interview-only decisions).
type Vector struct {
	RecordID  string             `json:"record_id"`
	Features  map[string]float64 `json:"features"`
	Target    float64            `json:"target"`
	HasTarget bool               `json:"has_target"`
}

// Engineer derives feature vectors. University prestige and program
// competitiveness come from optional reference tables supplied at
// construction; absent entries fall back to neutral defaults.
type Engineer struct {
	rankings        map[string]int     // canonical university id -> world ranking
	acceptanceRates map[string]float64 // canonical university id -> rate in [0,1]
}

// EngineerOption applies a configuration option to the Engineer.
type EngineerOption func(*Engineer)

// WithRankings supplies the university ranking table.
func WithRankings(r map[string]int) EngineerOption {
	return func(e *Engineer) {
		for k, v := range r {
			e.rankings[k] = v
		}
	}
}

// WithAcceptanceRates supplies known per-university acceptance rates.
func WithAcceptanceRates(r map[string]float64) EngineerOption {
	return func(e *Engineer) {
		for k, v := range r {
			if v >= 0 && v <= 1 {
				e.acceptanceRates[k] = v
			}
		}
	}
}

// NewEngineer creates an Engineer with the built-in ranking seed table.
func NewEngineer(opts ...EngineerOption) *Engineer {
	e := &Engineer{
		rankings:        make(map[string]int, len(seedRankings)),
		acceptanceRates: make(map[string]float64),
	}
	for k, v := range seedRankings {
		e.rankings[k] = v
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Vector computes the feature vector for one record.
func (e *Engineer) Vector(r *model.CleanedRecord) Vector {
	f := make(map[string]float64, len(FeatureNames))

	f[FeatureGPA] = gpaNormalized(r.GPA)

	verbal, hasVerbal := Percentile(TestGREVerbal, r.Scores.GREVerbal)
	quant, hasQuant := Percentile(TestGREQuant, r.Scores.GREQuant)
	aw, hasAW := Percentile(TestGREAW, r.Scores.GREAnalytical)
	english, hasEnglish := englishPercentile(r.Scores.TOEFL, r.Scores.IELTS)
	f[FeatureGREVerbalPct] = verbal
	f[FeatureGREQuantPct] = quant
	f[FeatureGREAWPct] = aw
	f[FeatureEnglishPct] = english

	// Composite is the mean of the percentiles actually observed; missing
	// scores are excluded rather than zero-filled. With nothing observed the
	// composite sits at the neutral percentile.
	sum, n := 0.0, 0
	for _, p := range []struct {
		v  float64
		ok bool
	}{{verbal, hasVerbal}, {quant, hasQuant}, {aw, hasAW}, {english, hasEnglish}} {
		if p.ok {
			sum += p.v
			n++
		}
	}
	if n > 0 {
		f[FeatureTestComposite] = sum / float64(n)
	} else {
		f[FeatureTestComposite] = neutralPercentile
	}

	f[FeatureResearch] = researchScore(r.Publications)
	f[FeatureProfessional] = professionalScore(r.WorkMonths)
	f[FeaturePrestige] = e.prestige(r.University)
	f[FeatureCompetitiveness] = e.competitiveness(r.University)

	target, hasTarget := r.Decision.Target()
	return Vector{
		RecordID:  r.ID,
		Features:  f,
		Target:    target,
		HasTarget: hasTarget,
	}
}

// Vectors computes feature vectors for every valid record in the batch,
// preserving input order. Invalid records are quality-gated out.
func (e *Engineer) Vectors(records []*model.CleanedRecord) []Vector {
	out := make([]Vector, 0, len(records))
	for _, r := range records {
		if !r.IsValid {
			continue
		}
		out = append(out, e.Vector(r))
	}
	return out
}

// englishPercentile resolves the English requirement from whichever test is
// present; with both reported, the stronger result stands.
func englishPercentile(toefl, ielts *float64) (float64, bool) {
	t, hasT := Percentile(TestTOEFL, toefl)
	i, hasI := Percentile(TestIELTS, ielts)
	switch {
	case hasT && hasI:
		return math.Max(t, i), true
	case hasT:
		return t, true
	case hasI:
		return i, true
	}
	return neutralPercentile, false
}

func gpaNormalized(gpa *float64) float64 {
	if gpa == nil {
		return neutralPercentile / 100 // 0.5, mirroring the neutral percentile
	}
	return *gpa / gpaScale
}

func researchScore(pubs *int) float64 {
	if pubs == nil || *pubs <= 0 {
		return 0
	}
	s := float64(*pubs) * publicationWeight
	if s > 1 {
		return 1
	}
	return s
}

func professionalScore(months *int) float64 {
	if months == nil || *months <= 0 {
		return 0
	}
	s := float64(*months) / workMonthsCap
	if s > 1 {
		return 1
	}
	return s
}

// prestige maps a world ranking onto a bounded step score. Unknown
// universities take the neutral default.
func (e *Engineer) prestige(university string) float64 {
	rank, ok := e.rankings[university]
	if !ok {
		return neutralPrestige
	}
	switch {
	case rank <= 10:
		return 1.0
	case rank <= 50:
		return 0.9
	case rank <= 100:
		return 0.8
	case rank <= 200:
		return 0.7
	case rank <= 500:
		return 0.5
	default:
		return 0.3
	}
}

func (e *Engineer) competitiveness(university string) float64 {
	rate, ok := e.acceptanceRates[university]
	if !ok {
		return neutralComp
	}
	return 1 - rate
}
