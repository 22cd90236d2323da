package encode

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// limiter bounds the number of encoder subprocesses running at once. Encoding
// is CPU bound, so the zero-value configuration tracks the machine.
type limiter struct {
	sem *semaphore.Weighted
}

func newLimiter(concurrency int) *limiter {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &limiter{sem: semaphore.NewWeighted(int64(concurrency))}
}

func (l *limiter) acquire(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

func (l *limiter) release() {
	l.sem.Release(1)
}
