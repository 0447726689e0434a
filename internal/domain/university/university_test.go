package university_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/C0nnectify/edulens/internal/domain/university"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCanonicalize(t *testing.T) {
	Convey("Given a seeded index", t, func() {
		ix := university.NewIndex()

		Convey("When resolving known alias variants", func() {
			a := ix.Canonicalize("UC Berkeley")
			b := ix.Canonicalize("University of California, Berkeley")

			Convey("Then both resolve to the same canonical id", func() {
				So(a, ShouldEqual, "berkeley")
				So(b, ShouldEqual, "berkeley")
			})
		})

		Convey("When resolving a near-miss of a known display name", func() {
			id := ix.Canonicalize("Univ of California Berkeley")

			Convey("Then the fuzzy stage catches it", func() {
				So(id, ShouldEqual, "berkeley")
			})
		})

		Convey("When resolving an unknown university", func() {
			id := ix.Canonicalize("Wossamotta University")

			Convey("Then it is slugified and registered", func() {
				So(id, ShouldEqual, "wossamotta-university")
			})

			Convey("And resolving it again returns the same id", func() {
				So(ix.Canonicalize("Wossamotta University"), ShouldEqual, id)
				So(ix.Canonicalize(id), ShouldEqual, id)
			})
		})

		Convey("When resolving an already-canonical id", func() {
			Convey("Then canonicalization is idempotent", func() {
				So(ix.Canonicalize("berkeley"), ShouldEqual, "berkeley")
				So(ix.Canonicalize("mit"), ShouldEqual, "mit")
			})
		})

		Convey("When the input is empty or whitespace", func() {
			So(ix.Canonicalize(""), ShouldEqual, "")
			So(ix.Canonicalize("   "), ShouldEqual, "")
		})
	})

	Convey("Given an index with extra seed aliases", t, func() {
		ix := university.NewIndex(university.WithAliases(map[string]string{
			"THU": "tsinghua",
		}))

		Convey("Then the extra alias resolves", func() {
			So(ix.Canonicalize("THU"), ShouldEqual, "tsinghua")
		})
	})
}

func TestCanonicalizeConcurrent(t *testing.T) {
	Convey("Given concurrent discovery of the same new alias", t, func() {
		ix := university.NewIndex()

		const goroutines = 32
		ids := make([]string, goroutines)
		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ids[i] = ix.Canonicalize("Miskatonic University")
			}(i)
		}
		wg.Wait()

		Convey("Then exactly one canonical id is minted", func() {
			for i := 1; i < goroutines; i++ {
				So(ids[i], ShouldEqual, ids[0])
			}
		})
	})
}

func TestIndexStability(t *testing.T) {
	Convey("Given many registered aliases", t, func() {
		ix := university.NewIndex()
		before := ix.Size()
		for i := 0; i < 20; i++ {
			ix.Canonicalize(fmt.Sprintf("Test University %d", i))
		}

		Convey("Then each new name adds aliases and stays stable on re-run", func() {
			So(ix.Size(), ShouldBeGreaterThan, before)
			after := ix.Size()
			for i := 0; i < 20; i++ {
				ix.Canonicalize(fmt.Sprintf("Test University %d", i))
			}
			So(ix.Size(), ShouldEqual, after)
		})
	})
}
