package synth

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/C0nnectify/edulens/pkg/logger"
)

// Record mirrors the POST /records wire schema for one raw record.
type Record struct {
	Source     string `json:"source"`
	University string `json:"university"`
	Program    string `json:"program"`
	Decision   string `json:"decision"`
	Season     string `json:"season"`

	GPA      *float64 `json:"gpa,omitempty"`
	GPAScale *float64 `json:"gpa_scale,omitempty"`

	GREVerbal *float64 `json:"gre_verbal,omitempty"`
	GREQuant  *float64 `json:"gre_quant,omitempty"`
	GREAW     *float64 `json:"gre_aw,omitempty"`
	TOEFL     *float64 `json:"toefl,omitempty"`

	Publications *int   `json:"publications,omitempty"`
	WorkMonths   *int   `json:"work_months,omitempty"`
	Notes        string `json:"notes,omitempty"`

	DecisionDate string `json:"decision_date,omitempty"`
	PostDate     string `json:"post_date,omitempty"`
}

// universityVariants groups the spellings scrapers actually produce for the
// same school; one run samples across variants so canonicalization has work
// to do.
var universityVariants = [][]string{
	{"Massachusetts Institute of Technology", "MIT", "  MIT "},
	{"Stanford University", "Stanford", "stanford university"},
	{"University of California, Berkeley", "UC Berkeley", "Berkeley"},
	{"Carnegie Mellon University", "CMU", "Carnegie Mellon"},
	{"Georgia Institute of Technology", "Georgia Tech"},
	{"University of Toronto", "Toronto"},
	{"Obscure State University"},
}

var programs = []string{
	"Computer Science PhD",
	"Electrical Engineering PhD",
	"Computer Science Masters",
	"Statistics PhD",
	"Bioengineering PhD",
}

var decisionPhrases = []string{
	"Accepted",
	"Accepted via E-mail",
	"Rejected",
	"Rejected via Website",
	"Wait listed",
	"Interview",
	"Other",
}

var seasons = []string{"Fall 2025", "Spring 2026", "Fall 2026"}

var dateFormats = []string{
	"2025-03-%02d",
	"03/%02d/2025",
	"March %d, 2025",
}

var researchNotes = []string{
	"",
	"",
	"Two years as a research assistant, one first-author publication.",
	"Funded RA position mentioned in the offer.",
	"Strong letters, no research experience.",
}

// Generate produces n deliberately messy raw records: mixed GPA scales,
// mixed date formats, name variants, occasional out-of-range scores, and
// a configurable share of near-duplicate re-emissions.
func Generate(ctx context.Context, cfg *Config) []Record {
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible synthetic data, not crypto

	records := make([]Record, 0, cfg.NumRecords+cfg.NumRecords/10)
	for i := 0; i < cfg.NumRecords; i++ {
		r := randomRecord(rng, i)
		records = append(records, r)

		if rng.Float64() < cfg.DupeRate {
			records = append(records, cosmeticVariant(rng, r))
		}
	}

	logger.Get().Info(ctx, "generated synthetic records",
		logger.Int("requested", cfg.NumRecords),
		logger.Int("emitted", len(records)),
		logger.Float64("dupeRate", cfg.DupeRate),
	)
	return records
}

func randomRecord(rng *rand.Rand, i int) Record {
	variants := universityVariants[rng.Intn(len(universityVariants))]

	r := Record{
		Source:     "synth",
		University: variants[rng.Intn(len(variants))],
		Program:    programs[rng.Intn(len(programs))],
		Decision:   decisionPhrases[rng.Intn(len(decisionPhrases))],
		Season:     seasons[rng.Intn(len(seasons))],
	}

	// GPA on one of three reporting scales; a tenth declare the scale.
	switch rng.Intn(3) {
	case 0:
		r.GPA = f(2.5 + rng.Float64()*1.5) // 4.0 scale
	case 1:
		r.GPA = f(6.0 + rng.Float64()*4.0) // 10-point scale
	default:
		r.GPA = f(60.0 + rng.Float64()*40.0) // percentage
		if rng.Intn(10) == 0 {
			r.GPAScale = f(100)
		}
	}

	if rng.Intn(2) == 0 {
		r.GREVerbal = f(float64(145 + rng.Intn(26)))
		r.GREQuant = f(float64(150 + rng.Intn(21)))
	}
	if rng.Intn(4) == 0 {
		r.GREAW = f(3.0 + rng.Float64()*2.5)
	}
	if rng.Intn(3) == 0 {
		r.TOEFL = f(float64(85 + rng.Intn(36)))
	}
	// A small share of scores arrive corrupted and must be discarded,
	// not clamped.
	if rng.Intn(25) == 0 {
		r.GREVerbal = f(float64(171 + rng.Intn(30)))
	}

	if rng.Intn(3) == 0 {
		r.Publications = n(rng.Intn(6))
	}
	if rng.Intn(3) == 0 {
		r.WorkMonths = n(rng.Intn(84))
	}
	r.Notes = researchNotes[rng.Intn(len(researchNotes))]

	day := 1 + rng.Intn(28)
	r.DecisionDate = fmt.Sprintf(dateFormats[rng.Intn(len(dateFormats))], day)
	if rng.Intn(5) == 0 {
		r.DecisionDate = "sometime in spring" // unparseable on purpose
	}

	// Unique program suffix for a slice of records keeps the batch from
	// collapsing into one composite key per university.
	if rng.Intn(2) == 0 {
		r.Program = fmt.Sprintf("%s (cohort %d)", r.Program, i%7)
	}
	return r
}

// cosmeticVariant re-emits a record with formatting noise only, so the
// pipeline should flag it as a duplicate.
func cosmeticVariant(rng *rand.Rand, r Record) Record {
	dupe := r
	switch rng.Intn(3) {
	case 0:
		dupe.University = " " + r.University + " "
	case 1:
		dupe.University = strings.ToUpper(r.University)
	default:
		dupe.Decision = r.Decision + " "
	}
	return dupe
}

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }
