package model_test

import (
	"testing"

	"github.com/C0nnectify/edulens/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDecision(t *testing.T) {
	Convey("Given raw decision strings", t, func() {
		Convey("When the string mentions acceptance", func() {
			So(model.ParseDecision("Accepted via E-mail on 4 Mar"), ShouldEqual, model.DecisionAccepted)
			So(model.ParseDecision("ADMITTED"), ShouldEqual, model.DecisionAccepted)
			So(model.ParseDecision("Offer received"), ShouldEqual, model.DecisionAccepted)
		})

		Convey("When the string mentions rejection", func() {
			So(model.ParseDecision("Rejected via Website"), ShouldEqual, model.DecisionRejected)
			So(model.ParseDecision("denied"), ShouldEqual, model.DecisionRejected)
		})

		Convey("When the string mentions a waitlist", func() {
			So(model.ParseDecision("Wait listed"), ShouldEqual, model.DecisionWaitlisted)
		})

		Convey("When the string is empty or unrecognized", func() {
			So(model.ParseDecision(""), ShouldEqual, model.DecisionUnknown)
			So(model.ParseDecision("pending review"), ShouldEqual, model.DecisionUnknown)
		})
	})
}

func TestDecisionTarget(t *testing.T) {
	Convey("Given normalized decisions", t, func() {
		Convey("Then accepted encodes to 1", func() {
			v, ok := model.DecisionAccepted.Target()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 1)
		})

		Convey("Then rejected encodes to 0", func() {
			v, ok := model.DecisionRejected.Target()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 0)
		})

		Convey("Then waitlisted encodes to 0.5", func() {
			v, ok := model.DecisionWaitlisted.Target()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 0.5)
		})

		Convey("Then unknown is excluded", func() {
			_, ok := model.DecisionUnknown.Target()
			So(ok, ShouldBeFalse)
		})
	})
}

func TestContentHash(t *testing.T) {
	Convey("Given two records with the same core fields", t, func() {
		a := &model.CleanedRecord{
			University: "berkeley",
			Program:    "Computer Science",
			Decision:   model.DecisionAccepted,
			Season:     "Fall 2025",
			Notes:      "strong research background",
		}
		b := &model.CleanedRecord{
			University: "berkeley",
			Program:    "  Computer Science ",
			Decision:   model.DecisionAccepted,
			Season:     "fall 2025",
			Notes:      "Strong research background",
		}

		Convey("Then their content hashes match despite case and whitespace", func() {
			So(a.ContentHash(), ShouldEqual, b.ContentHash())
		})

		Convey("When a core field differs", func() {
			b.Decision = model.DecisionRejected

			Convey("Then the hashes differ", func() {
				So(a.ContentHash(), ShouldNotEqual, b.ContentHash())
			})
		})

		Convey("When only text beyond the hashed prefix differs", func() {
			long := make([]byte, 150)
			for i := range long {
				long[i] = 'x'
			}
			a.Notes = string(long) + "tail-one"
			b.Notes = string(long) + "tail-two"

			Convey("Then the hashes still match", func() {
				So(a.ContentHash(), ShouldEqual, b.ContentHash())
			})
		})
	})
}

func TestCompositeKey(t *testing.T) {
	Convey("Given a cleaned record", t, func() {
		r := &model.CleanedRecord{
			University: "mit",
			Program:    "EECS",
			Decision:   model.DecisionAccepted,
			GPA:        model.Float(3.68),
		}

		Convey("Then the key includes the formatted GPA", func() {
			So(r.CompositeKey(), ShouldEqual, "mit|eecs|3.68|accepted")
		})

		Convey("When the GPA is missing", func() {
			r.GPA = nil

			Convey("Then the key marks it null", func() {
				So(r.CompositeKey(), ShouldEqual, "mit|eecs|null|accepted")
			})
		})
	})
}

func TestResearchSignal(t *testing.T) {
	Convey("Given a record", t, func() {
		r := &model.CleanedRecord{}

		Convey("Then no publications and no mentions means no signal", func() {
			So(r.HasResearchSignal(), ShouldBeFalse)
		})

		Convey("When publications are reported", func() {
			r.Publications = model.Int(2)
			So(r.HasResearchSignal(), ShouldBeTrue)
		})

		Convey("When the notes mention research", func() {
			r.Notes = "Two years in a robotics lab"
			So(r.HasResearchSignal(), ShouldBeTrue)
		})
	})
}
