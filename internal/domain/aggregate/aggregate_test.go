package aggregate_test

import (
	"testing"

	"github.com/C0nnectify/edulens/internal/domain/aggregate"
	"github.com/C0nnectify/edulens/internal/domain/model"
	"github.com/C0nnectify/edulens/internal/domain/quality"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRecords() []*model.CleanedRecord {
	records := []*model.CleanedRecord{
		{University: "mit", Decision: model.DecisionAccepted, GPA: model.Float(3.8),
			Scores: model.TestScores{GREQuant: model.Float(168)}},
		{University: "mit", Decision: model.DecisionRejected, GPA: model.Float(3.2)},
		{University: "mit", Decision: model.DecisionRejected, GPA: model.Float(3.4)},
		{University: "mit", Decision: model.DecisionAccepted, GPA: model.Float(4.0)},
		{University: "berkeley", Decision: model.DecisionWaitlisted, GPA: model.Float(3.6),
			Scores: model.TestScores{GREVerbal: model.Float(160)}},
	}
	for _, r := range records {
		quality.Score(r)
	}
	return records
}

func TestStatistics(t *testing.T) {
	Convey("Given a small record set", t, func() {
		agg := aggregate.Statistics(sampleRecords())

		Convey("Then decision counts are tallied", func() {
			So(agg.TotalRecords, ShouldEqual, 5)
			So(agg.Decisions["accepted"], ShouldEqual, 2)
			So(agg.Decisions["rejected"], ShouldEqual, 2)
			So(agg.Decisions["waitlisted"], ShouldEqual, 1)
		})

		Convey("Then per-university acceptance rates follow accepted/total", func() {
			mit := agg.Universities["mit"]
			So(mit.Total, ShouldEqual, 4)
			So(mit.Accepted, ShouldEqual, 2)
			So(mit.Rejected, ShouldEqual, 2)
			So(mit.AcceptanceRate, ShouldEqual, 0.5)

			b := agg.Universities["berkeley"]
			So(b.Total, ShouldEqual, 1)
			So(b.AcceptanceRate, ShouldEqual, 0)
		})

		Convey("Then GPA descriptive statistics line up", func() {
			So(agg.GPA.Count, ShouldEqual, 5)
			So(agg.GPA.Mean, ShouldAlmostEqual, 3.6, 1e-9)
			So(agg.GPA.Min, ShouldEqual, 3.2)
			So(agg.GPA.Max, ShouldEqual, 4.0)
			So(agg.GPA.Median, ShouldEqual, 3.6)
		})

		Convey("Then split-by-decision statistics only see their slice", func() {
			So(agg.GPAByDecision["accepted"].Count, ShouldEqual, 2)
			So(agg.GPAByDecision["accepted"].Mean, ShouldAlmostEqual, 3.9, 1e-9)

			So(agg.GREQuantByDecision["accepted"].Count, ShouldEqual, 1)
			So(agg.GREQuantByDecision["accepted"].Mean, ShouldEqual, 168)
			So(agg.GREQuantByDecision["rejected"].Count, ShouldEqual, 0)
			So(agg.GREVerbalByDecision["waitlisted"].Mean, ShouldEqual, 160)
		})

		Convey("Then sparse score fields summarize what exists", func() {
			So(agg.GREQuant.Count, ShouldEqual, 1)
			So(agg.GREQuant.Mean, ShouldEqual, 168)
			So(agg.GREQuant.Std, ShouldEqual, 0)
			So(agg.GREVerbal.Count, ShouldEqual, 1)
		})

		Convey("Then the quality report histograms completeness", func() {
			total := 0
			for _, n := range agg.Quality.CompletenessBands {
				total += n
			}
			So(total, ShouldEqual, 5)
		})
	})

	Convey("Given the same records twice", t, func() {
		a := aggregate.Statistics(sampleRecords())
		b := aggregate.Statistics(sampleRecords())

		Convey("Then the statistics are reproduced exactly", func() {
			So(a, ShouldResemble, b)
		})
	})

	Convey("Given no records", t, func() {
		agg := aggregate.Statistics(nil)

		Convey("Then everything is zero-valued, not NaN", func() {
			So(agg.TotalRecords, ShouldEqual, 0)
			So(agg.GPA.Mean, ShouldEqual, 0)
			So(agg.GPA.Count, ShouldEqual, 0)
		})
	})
}
