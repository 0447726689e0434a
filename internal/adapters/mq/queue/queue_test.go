package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/C0nnectify/edulens/internal/adapters/mq/queue"
	"github.com/C0nnectify/edulens/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func task(id string) queue.Task {
	return queue.Task{Record: &model.RawRecord{ID: id}}
}

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a queue with small capacity", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))
		ctx := context.Background()

		Convey("When enqueueing within capacity", func() {
			So(q.Enqueue(ctx, task("a")), ShouldBeTrue)
			So(q.Enqueue(ctx, task("b")), ShouldBeTrue)
			So(q.Len(ctx), ShouldEqual, 2)

			Convey("Then a third enqueue reports backpressure", func() {
				So(q.Enqueue(ctx, task("c")), ShouldBeFalse)
			})
		})

		Convey("When dequeuing", func() {
			q.Enqueue(ctx, task("a"))

			select {
			case got := <-q.Dequeue(ctx):
				So(got.Record.ID, ShouldEqual, "a")
			case <-time.After(time.Second):
				t.Fatal("dequeue timed out")
			}
		})

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueue is refused and close is idempotent", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, task("x")), ShouldBeFalse)
				So(q.Close(), ShouldBeNil)
			})

			Convey("Then the dequeue channel drains and closes", func() {
				_, open := <-q.Dequeue(ctx)
				So(open, ShouldBeFalse)
			})
		})
	})
}
