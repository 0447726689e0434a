package repository

import (
	"time"

	"github.com/C0nnectify/edulens/internal/domain/model"
)

// recordDocument is the BSON shape of a stored cleaned record. Keeping it
// separate from the domain model pins the wire schema independently of
// struct refactors.
type recordDocument struct {
	ID     string `bson:"id"`
	Source string `bson:"source"`

	University string `bson:"university"`
	Program    string `bson:"program"`
	Decision   string `bson:"decision"`
	Season     string `bson:"season,omitempty"`

	GPA           *float64 `bson:"gpa,omitempty"`
	GREVerbal     *float64 `bson:"gre_verbal,omitempty"`
	GREQuant      *float64 `bson:"gre_quant,omitempty"`
	GREAnalytical *float64 `bson:"gre_aw,omitempty"`
	GMAT          *float64 `bson:"gmat,omitempty"`
	TOEFL         *float64 `bson:"toefl,omitempty"`
	IELTS         *float64 `bson:"ielts,omitempty"`

	Publications         *int   `bson:"publications,omitempty"`
	WorkMonths           *int   `bson:"work_months,omitempty"`
	UndergradInstitution string `bson:"undergrad_institution,omitempty"`
	Notes                string `bson:"notes,omitempty"`

	DecisionDate string `bson:"decision_date,omitempty"`
	PostDate     string `bson:"post_date,omitempty"`

	Hash string `bson:"hash"`

	CompletenessScore float64  `bson:"completeness_score"`
	QualityFlags      []string `bson:"quality_flags,omitempty"`
	IsValid           bool     `bson:"is_valid"`
	ImputedFields     []string `bson:"imputed_fields,omitempty"`

	InsertedAt time.Time `bson:"inserted_at"`
}

func toDocument(r *model.CleanedRecord) recordDocument {
	return recordDocument{
		ID:                   r.ID,
		Source:               r.Source,
		University:           r.University,
		Program:              r.Program,
		Decision:             string(r.Decision),
		Season:               r.Season,
		GPA:                  r.GPA,
		GREVerbal:            r.Scores.GREVerbal,
		GREQuant:             r.Scores.GREQuant,
		GREAnalytical:        r.Scores.GREAnalytical,
		GMAT:                 r.Scores.GMAT,
		TOEFL:                r.Scores.TOEFL,
		IELTS:                r.Scores.IELTS,
		Publications:         r.Publications,
		WorkMonths:           r.WorkMonths,
		UndergradInstitution: r.UndergradInstitution,
		Notes:                r.Notes,
		DecisionDate:         r.DecisionDate,
		PostDate:             r.PostDate,
		Hash:                 r.Hash,
		CompletenessScore:    r.CompletenessScore,
		QualityFlags:         r.QualityFlags,
		IsValid:              r.IsValid,
		ImputedFields:        r.ImputedFields,
		InsertedAt:           time.Now().UTC(),
	}
}

func (d *recordDocument) toRecord() *model.CleanedRecord {
	return &model.CleanedRecord{
		ID:         d.ID,
		Source:     d.Source,
		University: d.University,
		Program:    d.Program,
		Decision:   model.Decision(d.Decision),
		Season:     d.Season,
		GPA:        d.GPA,
		Scores: model.TestScores{
			GREVerbal:     d.GREVerbal,
			GREQuant:      d.GREQuant,
			GREAnalytical: d.GREAnalytical,
			GMAT:          d.GMAT,
			TOEFL:         d.TOEFL,
			IELTS:         d.IELTS,
		},
		Publications:         d.Publications,
		WorkMonths:           d.WorkMonths,
		UndergradInstitution: d.UndergradInstitution,
		Notes:                d.Notes,
		DecisionDate:         d.DecisionDate,
		PostDate:             d.PostDate,
		Hash:                 d.Hash,
		CompletenessScore:    d.CompletenessScore,
		QualityFlags:         d.QualityFlags,
		IsValid:              d.IsValid,
		ImputedFields:        d.ImputedFields,
	}
}
