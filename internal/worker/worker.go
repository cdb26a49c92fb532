// Package worker provides bounded concurrent fan-out for per-sentence
// provider calls.
package worker

import (
	"context"
	"sync"
)

// Pool bounds how many provider calls run at once. It is request-scoped:
// each Run call owns its goroutines and returns when they all finish.
type Pool struct {
	size int
}

// NewPool creates a pool that runs at most size tasks concurrently.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size}
}

// Run invokes fn for each index in [0, n), at most p.size at a time, and
// waits for all of them. Tasks not yet started are skipped once ctx is
// cancelled; tasks in flight observe the cancellation through ctx.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	sem := make(chan struct{}, p.size)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(ctx, i)
		}(i)
	}
	wg.Wait()
}
