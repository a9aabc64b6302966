package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/edgefinder/internal/adapters/worker"
	"github.com/smartystreets/goconvey/convey"
)

func TestMap(t *testing.T) {
	convey.Convey("Given a pool of three workers", t, func() {
		pool := worker.NewPool(3, worker.WithName("test"))
		ctx := context.Background()

		convey.Convey("When mapping with uneven task durations", func() {
			items := []int{5, 1, 4, 2, 3, 0, 6}
			var running, peak int32
			got, err := worker.Map(ctx, pool, items, func(_ context.Context, v int) (int, error) {
				n := atomic.AddInt32(&running, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(time.Duration(v) * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return v * v, nil
			})

			convey.Convey("Then results keep input order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldResemble, []int{25, 1, 16, 4, 9, 0, 36})
			})

			convey.Convey("Then concurrency is bounded", func() {
				convey.So(atomic.LoadInt32(&peak), convey.ShouldBeLessThanOrEqualTo, 3)
			})
		})

		convey.Convey("When a task fails", func() {
			boom := errors.New("boom")
			_, err := worker.Map(ctx, pool, []int{1, 2, 3, 4}, func(_ context.Context, v int) (int, error) {
				if v == 2 {
					return 0, boom
				}
				return v, nil
			})

			convey.Convey("Then the error is returned", func() {
				convey.So(errors.Is(err, boom), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := worker.Map(cctx, pool, []int{1, 2}, func(_ context.Context, v int) (int, error) { return v, nil })
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})

		convey.Convey("When there is nothing to do", func() {
			got, err := worker.Map(ctx, pool, nil, func(_ context.Context, v int) (int, error) { return v, nil })
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given a non-positive size", t, func() {
		convey.So(worker.NewPool(0).Size(), convey.ShouldBeGreaterThan, 0)
	})
}
