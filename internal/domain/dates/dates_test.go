package dates_test

import (
	"testing"

	"github.com/C0nnectify/edulens/internal/domain/dates"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given date strings in supported formats", t, func() {
		cases := map[string]string{
			"2025-03-04":     "2025-03-04",
			"03/04/2025":     "2025-03-04", // month-first wins over day-first
			"2025/03/04":     "2025-03-04",
			"Mar 4, 2025":    "2025-03-04",
			"March 4, 2025":  "2025-03-04",
			"4 Mar 2025":     "2025-03-04",
			"4 March 2025":   "2025-03-04",
			" 2025-03-04 ":   "2025-03-04",
		}

		Convey("Then each parses to ISO-8601", func() {
			for in, want := range cases {
				got, ok := dates.Parse(in)
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, want)
			}
		})
	})

	Convey("Given a format outside the ordered list", t, func() {
		got, ok := dates.Parse("2025-03-04T10:30:00Z")

		Convey("Then the generic fallback handles it", func() {
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, "2025-03-04")
		})
	})

	Convey("Given unparseable input", t, func() {
		Convey("Then the result is empty, never partial", func() {
			for _, in := range []string{"", "   ", "sometime in spring", "13/45/2025"} {
				got, ok := dates.Parse(in)
				So(ok, ShouldBeFalse)
				So(got, ShouldEqual, "")
			}
		})
	})
}
