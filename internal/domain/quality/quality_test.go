package quality_test

import (
	"testing"

	"github.com/C0nnectify/edulens/internal/domain/model"
	"github.com/C0nnectify/edulens/internal/domain/quality"
	. "github.com/smartystreets/goconvey/convey"
)

func fullRecord() *model.CleanedRecord {
	return &model.CleanedRecord{
		University:   "berkeley",
		Program:      "Computer Science",
		Decision:     model.DecisionAccepted,
		Season:       "Fall 2025",
		DecisionDate: "2025-03-01",
		PostDate:     "2025-03-04",
		GPA:          model.Float(3.8),
		Scores: model.TestScores{
			GREVerbal:     model.Float(162),
			GREQuant:      model.Float(168),
			GREAnalytical: model.Float(4.5),
			TOEFL:         model.Float(108),
		},
		Publications:         model.Int(2),
		UndergradInstitution: "IIT Bombay",
	}
}

func TestCompleteness(t *testing.T) {
	Convey("Given a record with all 12 tracked fields", t, func() {
		r := fullRecord()

		Convey("Then completeness is exactly 1.0", func() {
			So(quality.Completeness(r), ShouldAlmostEqual, 1.0, 1e-9)
		})
	})

	Convey("Given a record missing GPA, GRE, and English scores", t, func() {
		r := &model.CleanedRecord{
			University:   "berkeley",
			Program:      "Computer Science",
			Decision:     model.DecisionAccepted,
			Season:       "Fall 2025",
			DecisionDate: "2025-03-04",
		}

		Convey("Then the present fields sum to 0.40", func() {
			So(quality.Completeness(r), ShouldAlmostEqual, 0.40, 1e-9)
		})
	})

	Convey("Given an empty record", t, func() {
		Convey("Then completeness is 0 and stays in bounds", func() {
			c := quality.Completeness(&model.CleanedRecord{})
			So(c, ShouldEqual, 0)
		})
	})

	Convey("Given OR-combined sub-fields", t, func() {
		r := &model.CleanedRecord{Scores: model.TestScores{IELTS: model.Float(7.5)}}

		Convey("Then IELTS alone earns the English weight once", func() {
			So(quality.Completeness(r), ShouldAlmostEqual, 0.10, 1e-9)
			r.Scores.TOEFL = model.Float(100)
			So(quality.Completeness(r), ShouldAlmostEqual, 0.10, 1e-9)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a consistent record", t, func() {
		valid, issues := quality.Validate(fullRecord())

		Convey("Then it is valid with no issues", func() {
			So(valid, ShouldBeTrue)
			So(issues, ShouldBeEmpty)
		})
	})

	Convey("Given a GPA outside the normalized range", t, func() {
		r := fullRecord()
		r.GPA = model.Float(4.7)
		valid, issues := quality.Validate(r)

		Convey("Then it is flagged", func() {
			So(valid, ShouldBeFalse)
			So(len(issues), ShouldEqual, 1)
		})
	})

	Convey("Given an out-of-range score that slipped past normalization", t, func() {
		r := fullRecord()
		r.Scores.GREQuant = model.Float(185)
		valid, _ := quality.Validate(r)

		Convey("Then the defensive re-check catches it", func() {
			So(valid, ShouldBeFalse)
		})
	})

	Convey("Given a decision date later than the post date", t, func() {
		r := fullRecord()
		r.DecisionDate = "2025-03-10"
		valid, issues := quality.Validate(r)

		So(valid, ShouldBeFalse)
		So(issues, ShouldContain, "decision date later than post date")
	})

	Convey("Given a decision announced before the result was posted", t, func() {
		r := fullRecord()
		r.DecisionDate = "2025-02-01"
		valid, _ := quality.Validate(r)

		So(valid, ShouldBeTrue)
	})

	Convey("Given multiple all-zero scores", t, func() {
		r := &model.CleanedRecord{Scores: model.TestScores{
			TOEFL: model.Float(0),
			IELTS: model.Float(0),
		}}
		valid, _ := quality.Validate(r)

		Convey("Then the suspicious pattern is flagged", func() {
			So(valid, ShouldBeFalse)
		})
	})

	Convey("Given a single zero score", t, func() {
		r := &model.CleanedRecord{Scores: model.TestScores{TOEFL: model.Float(0)}}
		valid, _ := quality.Validate(r)

		Convey("Then one zero alone is not suspicious", func() {
			So(valid, ShouldBeTrue)
		})
	})
}

func TestScoreFlags(t *testing.T) {
	Convey("Given records at completeness extremes", t, func() {
		Convey("Then a sparse record gets low_completeness", func() {
			r := quality.Score(&model.CleanedRecord{University: "mit"})
			So(r.QualityFlags, ShouldContain, quality.FlagLowCompleteness)
			So(r.QualityFlags, ShouldNotContain, quality.FlagHighCompleteness)
		})

		Convey("Then a full record gets high_completeness", func() {
			r := quality.Score(fullRecord())
			So(r.QualityFlags, ShouldContain, quality.FlagHighCompleteness)
			So(r.QualityFlags, ShouldNotContain, quality.FlagLowCompleteness)
			So(r.IsValid, ShouldBeTrue)
			So(r.CompletenessScore, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Then a mid-band record gets neither flag", func() {
			r := quality.Score(&model.CleanedRecord{
				University: "mit",
				Program:    "EECS",
				Decision:   model.DecisionAccepted,
				GPA:        model.Float(3.5),
			})
			So(r.QualityFlags, ShouldNotContain, quality.FlagLowCompleteness)
			So(r.QualityFlags, ShouldNotContain, quality.FlagHighCompleteness)
		})
	})
}
