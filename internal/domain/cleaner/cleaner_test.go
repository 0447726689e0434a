package cleaner_test

import (
	"testing"

	"github.com/C0nnectify/edulens/internal/domain/cleaner"
	"github.com/C0nnectify/edulens/internal/domain/model"
	"github.com/C0nnectify/edulens/internal/domain/university"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClean(t *testing.T) {
	c := cleaner.New(university.NewIndex())

	Convey("Given a messy but complete raw record", t, func() {
		raw := &model.RawRecord{
			ID:           "r1",
			Source:       "gradcafe",
			University:   "UC Berkeley",
			Program:      "Computer Science PhD",
			Decision:     "Accepted via E-mail",
			Season:       "Fall 2025",
			GPA:          model.Float(9.2),
			GPAScale:     model.Float(10),
			GREVerbal:    model.Float(162),
			GREQuant:     model.Float(168),
			TOEFL:        model.Float(108),
			DecisionDate: "Mar 1, 2025",
			PostDate:     "2025-03-04",
		}
		r, fieldErrors, err := c.Clean(raw)

		Convey("Then every field-level stage ran", func() {
			So(err, ShouldBeNil)
			So(fieldErrors, ShouldBeEmpty)
			So(r.University, ShouldEqual, "berkeley")
			So(r.Decision, ShouldEqual, model.DecisionAccepted)
			So(*r.GPA, ShouldEqual, 3.68)
			So(*r.Scores.GREQuant, ShouldEqual, 168)
			So(r.DecisionDate, ShouldEqual, "2025-03-01")
			So(r.Hash, ShouldNotBeEmpty)
			So(r.CompletenessScore, ShouldBeGreaterThan, 0)
			So(r.IsValid, ShouldBeTrue)
		})
	})

	Convey("Given unparseable and out-of-range fields", t, func() {
		raw := &model.RawRecord{
			ID:           "r2",
			University:   "MIT",
			Program:      "EECS",
			Decision:     "Rejected",
			GPA:          model.Float(150), // beyond every scale
			GREVerbal:    model.Float(175), // out of range
			DecisionDate: "sometime in spring",
		}
		r, fieldErrors, err := c.Clean(raw)

		Convey("Then bad fields are nulled and named, the record survives", func() {
			So(err, ShouldBeNil)
			So(r.GPA, ShouldBeNil)
			So(r.Scores.GREVerbal, ShouldBeNil)
			So(r.DecisionDate, ShouldEqual, "")
			So(fieldErrors, ShouldContain, cleaner.FieldGPA)
			So(fieldErrors, ShouldContain, cleaner.FieldGREVerbal)
			So(fieldErrors, ShouldContain, cleaner.FieldDecisionDate)
		})
	})

	Convey("Given a record missing hard-required fields", t, func() {
		Convey("Then a missing university excludes the record", func() {
			_, _, err := c.Clean(&model.RawRecord{Program: "EECS"})
			So(err, ShouldWrap, cleaner.ErrMissingUniversity)
		})

		Convey("Then a missing program excludes the record", func() {
			_, _, err := c.Clean(&model.RawRecord{University: "MIT"})
			So(err, ShouldWrap, cleaner.ErrMissingProgram)
		})
	})
}
