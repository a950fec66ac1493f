// Package hashpool bounds the number of concurrently running password
// hashing jobs. Argon2id is deliberately CPU- and memory-hungry; without a
// bound a burst of logins could occupy every scheduler thread and starve
// unrelated request handling.
package hashpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool admits at most capacity hashing jobs at a time. Callers block on
// Do until a slot is free or their context is cancelled; other goroutines
// keep running.
type Pool struct {
	sem *semaphore.Weighted
}

// New creates a pool with the given capacity. Non-positive capacity
// defaults to GOMAXPROCS.
func New(capacity int) *Pool {
	if capacity <= 0 {
		capacity = runtime.GOMAXPROCS(0)
	}
	return &Pool{sem: semaphore.NewWeighted(int64(capacity))}
}

// Do runs fn once a slot is available and returns its result. If ctx is
// done before a slot frees up, the context error is returned and fn never
// runs.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	return fn()
}
