// Package worker fans matchup computations out over a bounded pool.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/edgefinder/pkg/logger"
	"github.com/okian/edgefinder/pkg/metrics"
)

// Pool bounds how many tasks run at once.
type Pool struct {
	size   int
	name   string
	logger logger.Logger
}

// NewPool creates a pool of size workers. A non-positive size uses the CPU count.
func NewPool(size int, opts ...Option) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	p := &Pool{size: size, name: "worker-pool", logger: logger.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

type job[T any] struct {
	index int
	item  T
}

// Map applies fn to every item using at most p.Size() goroutines and returns
// the results in input order, so the output matches a sequential loop. The
// first error cancels the remaining work and is returned.
func Map[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	if len(items) == 0 {
		return out, ctx.Err()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job[T])
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	workers := min(p.size, len(items))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log := p.logger.Named(p.name + "-" + strconv.Itoa(id))
			for j := range jobs {
				if ctx.Err() != nil {
					continue
				}
				start := time.Now()
				metrics.WorkerStarted()
				r, err := fn(ctx, j.item)
				metrics.WorkerFinished(float64(time.Since(start).Microseconds()) / 1000)
				if err != nil {
					log.Error(ctx, "task failed", logger.Int("index", j.index), logger.Error(err))
					metrics.RecordErrorByComponent("worker", "task_error")
					fail(fmt.Errorf("task %d: %w", j.index, err))
					continue
				}
				out[j.index] = r
			}
		}(w)
	}

feed:
	for i, it := range items {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job[T]{index: i, item: it}:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
