package service

import (
	"context"
	"errors"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/C0nnectify/edulens/internal/adapters/repository"
	"github.com/C0nnectify/edulens/internal/domain/features"
	"github.com/C0nnectify/edulens/internal/domain/model"
	"github.com/C0nnectify/edulens/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func rawRecord(university, program, decision string, gpa float64) *model.RawRecord {
	return &model.RawRecord{
		Source:     "test",
		University: university,
		Program:    program,
		Decision:   decision,
		Season:     "Fall 2025",
		GPA:        model.Float(gpa),
	}
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a service", t, func() {
		s := New(WithWorkerCount(2), WithQueueSize(64))
		ctx := context.Background()

		Convey("When operations run before Start", func() {
			_, err := s.Submit(ctx, []*model.RawRecord{rawRecord("MIT", "EECS PhD", "Accepted", 3.9)})
			So(err, ShouldWrap, ErrNotStarted)

			_, err = s.Statistics(ctx)
			So(err, ShouldWrap, ErrNotStarted)
		})

		Convey("When the service starts and stops", func() {
			So(s.Start(ctx), ShouldBeNil)
			So(s.Start(ctx), ShouldBeNil) // idempotent

			stats := s.Stats(ctx)
			So(stats["started"], ShouldBeTrue)

			s.Stop()
			s.Stop() // idempotent
		})
	})
}

func TestServiceSubmit(t *testing.T) {
	Convey("Given a started service", t, func() {
		s := New(WithWorkerCount(2), WithQueueSize(64))
		ctx := context.Background()
		So(s.Start(ctx), ShouldBeNil)
		defer s.Stop()

		Convey("When a batch with variants, an exact duplicate, and an invalid record is submitted", func() {
			batch := []*model.RawRecord{
				rawRecord("MIT", "EECS PhD", "Accepted", 3.9),
				rawRecord("Massachusetts Institute of  Technology", "EECS PhD", "Accepted via E-mail", 3.9),
				rawRecord("", "CS PhD", "Rejected", 3.5),
				rawRecord("Stanford University", "CS PhD", "Rejected", 3.5),
			}

			stats, err := s.Submit(ctx, batch)

			Convey("Then outcomes are counted and the store holds the survivors", func() {
				So(err, ShouldBeNil)
				So(stats.Submitted, ShouldEqual, 4)
				So(stats.Accepted, ShouldEqual, 2)
				So(stats.Duplicates, ShouldEqual, 1)
				So(stats.Invalid, ShouldEqual, 1)

				records, err := s.Records(ctx, repository.Filter{}, 0, 0)
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 2)
			})

			Convey("And resubmitting the same content yields only duplicates", func() {
				So(err, ShouldBeNil)

				again, err := s.Submit(ctx, []*model.RawRecord{
					rawRecord("MIT", "EECS PhD", "Accepted", 3.9),
					rawRecord("Stanford University", "CS PhD", "Rejected", 3.5),
				})
				So(err, ShouldBeNil)
				So(again.Accepted, ShouldEqual, 0)
				So(again.Duplicates, ShouldEqual, 2)
			})
		})

		Convey("When an empty batch is submitted", func() {
			stats, err := s.Submit(ctx, nil)
			So(err, ShouldBeNil)
			So(stats.Submitted, ShouldEqual, 0)
			So(stats.Accepted, ShouldEqual, 0)
		})

		Convey("When records carry unparseable soft fields", func() {
			r := rawRecord("MIT", "EECS PhD", "Accepted", 3.8)
			r.GREVerbal = model.Float(195) // out of range, discarded
			r.DecisionDate = "not a date"

			stats, err := s.Submit(ctx, []*model.RawRecord{r})

			Convey("Then the record survives and the failures are counted per field", func() {
				So(err, ShouldBeNil)
				So(stats.Accepted, ShouldEqual, 1)
				So(stats.Invalid, ShouldEqual, 0)
				So(stats.FieldErrors["gre_verbal"], ShouldEqual, 1)
				So(stats.FieldErrors["decision_date"], ShouldEqual, 1)
			})
		})
	})
}

// failingStore rejects the first n inserts to simulate a transient
// backend outage.
type failingStore struct {
	repository.Store
	failures int
}

func (f *failingStore) InsertIfAbsent(ctx context.Context, r *model.CleanedRecord) (bool, error) {
	if f.failures > 0 {
		f.failures--
		return false, errors.New("backend unavailable")
	}
	return f.Store.InsertIfAbsent(ctx, r)
}

func TestServiceSubmitRetryAfterStoreError(t *testing.T) {
	Convey("Given a service whose store fails transiently", t, func() {
		st := &failingStore{Store: repository.NewMemStore(), failures: 1}
		s := New(WithWorkerCount(2), WithStore(st))
		ctx := context.Background()
		So(s.Start(ctx), ShouldBeNil)
		defer s.Stop()

		batch := func() []*model.RawRecord {
			return []*model.RawRecord{
				rawRecord("MIT", "EECS PhD", "Accepted", 3.9),
				rawRecord("Stanford University", "CS PhD", "Rejected", 3.5),
			}
		}

		_, err := s.Submit(ctx, batch())
		So(err, ShouldNotBeNil)

		Convey("When the same batch is resubmitted", func() {
			stats, err := s.Submit(ctx, batch())

			Convey("Then the records are stored, not counted as duplicates", func() {
				So(err, ShouldBeNil)
				So(stats.Accepted, ShouldEqual, 2)
				So(stats.Duplicates, ShouldEqual, 0)

				n, err := st.Count(ctx, repository.Filter{})
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
			})
		})
	})
}

func TestServiceAnalytics(t *testing.T) {
	Convey("Given a service with a seeded record set", t, func() {
		s := New(WithWorkerCount(2), WithSplitConfig(0.2, 0.2, 42))
		ctx := context.Background()
		So(s.Start(ctx), ShouldBeNil)
		defer s.Stop()

		batch := make([]*model.RawRecord, 0, 20)
		programs := []string{"CS PhD", "EE PhD", "Math PhD", "Bio PhD", "Physics PhD"}
		for i, program := range programs {
			a := rawRecord("MIT", program, "Accepted", 3.5+float64(i)*0.1)
			a.GREQuant = model.Float(165)
			batch = append(batch, a)

			r := rawRecord("Stanford University", program, "Rejected", 3.0+float64(i)*0.1)
			batch = append(batch, r)
		}
		stats, err := s.Submit(ctx, batch)
		So(err, ShouldBeNil)
		So(stats.Accepted, ShouldEqual, 10)

		Convey("When statistics are computed", func() {
			agg, err := s.Statistics(ctx)

			Convey("Then decisions and universities are aggregated", func() {
				So(err, ShouldBeNil)
				So(agg.TotalRecords, ShouldEqual, 10)
				So(agg.Decisions["accepted"], ShouldEqual, 5)
				So(agg.Decisions["rejected"], ShouldEqual, 5)
				So(agg.Universities["mit"].AcceptanceRate, ShouldEqual, 1.0)
				So(agg.Universities["stanford"].AcceptanceRate, ShouldEqual, 0.0)
			})
		})

		Convey("When the quality report is computed", func() {
			report, err := s.Quality(ctx)
			So(err, ShouldBeNil)
			So(len(report.CompletenessBands), ShouldBeGreaterThan, 0)
		})

		Convey("When missing values are imputed", func() {
			// Half the records report GRE quant; the others inherit group
			// or global medians.
			filled, err := s.Impute(ctx)
			So(err, ShouldBeNil)
			So(filled, ShouldBeGreaterThan, 0)

			Convey("And the imputed values never reach the store", func() {
				records, err := s.Records(ctx, repository.Filter{}, 0, 0)
				So(err, ShouldBeNil)
				missing := 0
				for _, r := range records {
					if r.Scores.GREQuant == nil {
						missing++
					}
				}
				So(missing, ShouldEqual, 5)
			})
		})

		Convey("When feature vectors are computed", func() {
			vectors, err := s.Features(ctx)

			Convey("Then every valid record yields a full vector with a target", func() {
				So(err, ShouldBeNil)
				So(len(vectors), ShouldEqual, 10)
				for _, v := range vectors {
					So(len(v.Features), ShouldEqual, len(features.FeatureNames))
					So(v.HasTarget, ShouldBeTrue)
				}
			})
		})

		Convey("When the dataset is split", func() {
			res, err := s.Split(ctx)

			Convey("Then the partitions are disjoint and exhaustive", func() {
				So(err, ShouldBeNil)
				total := len(res.Train) + len(res.Validation) + len(res.Test)
				So(total, ShouldEqual, 10)
				So(len(res.Test), ShouldEqual, 2)

				seen := make(map[string]bool)
				for _, id := range append(append(append([]string{}, res.Train...), res.Validation...), res.Test...) {
					So(seen[id], ShouldBeFalse)
					seen[id] = true
				}
			})

			Convey("And splitting again is deterministic", func() {
				So(err, ShouldBeNil)
				res2, err := s.Split(ctx)
				So(err, ShouldBeNil)
				So(res2.Train, ShouldResemble, res.Train)
				So(res2.Validation, ShouldResemble, res.Validation)
				So(res2.Test, ShouldResemble, res.Test)
			})
		})
	})
}
