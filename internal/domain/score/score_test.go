package score_test

import (
	"testing"

	"github.com/C0nnectify/edulens/internal/domain/score"
	"github.com/C0nnectify/edulens/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeGPA(t *testing.T) {
	Convey("Given GPAs on declared scales", t, func() {
		Convey("Then a 4.0-scale value passes through unchanged", func() {
			So(*score.NormalizeGPA(3.5, model.Float(4.0)), ShouldEqual, 3.5)
		})

		Convey("Then a 10-scale value converts linearly", func() {
			So(*score.NormalizeGPA(9.2, model.Float(10.0)), ShouldEqual, 3.68)
		})

		Convey("Then a 5-scale value converts linearly", func() {
			So(*score.NormalizeGPA(4.5, model.Float(5.0)), ShouldEqual, 3.6)
		})

		Convey("Then a value above its declared scale is discarded", func() {
			So(score.NormalizeGPA(4.8, model.Float(4.0)), ShouldBeNil)
		})

		Convey("Then an unknown declared scale is discarded", func() {
			So(score.NormalizeGPA(8.0, model.Float(12.0)), ShouldBeNil)
		})
	})

	Convey("Given GPAs with no declared scale", t, func() {
		Convey("Then magnitude picks the scale", func() {
			So(*score.NormalizeGPA(3.9, nil), ShouldEqual, 3.9)
			So(*score.NormalizeGPA(4.5, nil), ShouldEqual, 3.6)  // 5-scale
			So(*score.NormalizeGPA(9.2, nil), ShouldEqual, 3.68) // 10-scale
		})

		Convey("Then a percentage uses the piecewise bands", func() {
			So(*score.NormalizeGPA(85, nil), ShouldEqual, 3.35) // 3.0 + 0.07*5
			So(*score.NormalizeGPA(95, nil), ShouldEqual, 3.85) // 3.7 + 0.03*5
			So(*score.NormalizeGPA(75, nil), ShouldEqual, 2.65) // 2.3 + 0.07*5
			So(*score.NormalizeGPA(65, nil), ShouldEqual, 2.15) // 2.0 + 0.03*5
			So(*score.NormalizeGPA(30, nil), ShouldEqual, 1.0)  // (30/60)*2
		})

		Convey("Then out-of-band inputs are discarded", func() {
			So(score.NormalizeGPA(0, nil), ShouldBeNil)
			So(score.NormalizeGPA(-1, nil), ShouldBeNil)
			So(score.NormalizeGPA(101, nil), ShouldBeNil)
		})

		Convey("Then normalization is idempotent", func() {
			once := score.NormalizeGPA(9.2, model.Float(10.0))
			twice := score.NormalizeGPA(*once, model.Float(4.0))
			So(*twice, ShouldEqual, *once)
		})
	})
}

func TestStandardizeTestScore(t *testing.T) {
	Convey("Given standardized test scores", t, func() {
		Convey("Then in-range scores pass through", func() {
			So(*score.StandardizeTestScore("gre", "verbal", 165), ShouldEqual, 165)
			So(*score.StandardizeTestScore("gre", "analytical", 4.5), ShouldEqual, 4.5)
			So(*score.StandardizeTestScore("gmat", "", 710), ShouldEqual, 710)
			So(*score.StandardizeTestScore("toefl", "", 105), ShouldEqual, 105)
			So(*score.StandardizeTestScore("ielts", "", 7.5), ShouldEqual, 7.5)
		})

		Convey("Then out-of-range scores are discarded, not clamped", func() {
			So(score.StandardizeTestScore("gre", "verbal", 175), ShouldBeNil)
			So(score.StandardizeTestScore("gre", "quant", 129), ShouldBeNil)
			So(score.StandardizeTestScore("toefl", "", 121), ShouldBeNil)
			So(score.StandardizeTestScore("ielts", "", -1), ShouldBeNil)
		})

		Convey("Then unknown test types are discarded", func() {
			So(score.StandardizeTestScore("sat", "", 1400), ShouldBeNil)
		})

		Convey("Then range lookups report their bounds", func() {
			r, ok := score.Range("gre", "quant")
			So(ok, ShouldBeTrue)
			So(r.Min, ShouldEqual, 130)
			So(r.Max, ShouldEqual, 170)

			_, ok = score.Range("lsat", "")
			So(ok, ShouldBeFalse)
		})
	})
}
