package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsEveryTask(t *testing.T) {
	pool := NewPool(3)
	var mu sync.Mutex
	seen := make(map[int]bool)

	pool.Run(context.Background(), 10, func(ctx context.Context, i int) {
		mu.Lock()
		seen[i] = true
		mu.Unlock()
	})

	if len(seen) != 10 {
		t.Fatalf("ran %d tasks, want 10", len(seen))
	}
	for i := 0; i < 10; i++ {
		if !seen[i] {
			t.Errorf("task %d never ran", i)
		}
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	pool := NewPool(2)
	var active, peak int32

	pool.Run(context.Background(), 8, func(ctx context.Context, i int) {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&active, -1)
	})

	if got := atomic.LoadInt32(&peak); got > 2 {
		t.Errorf("peak concurrency = %d, want at most 2", got)
	}
}

func TestPoolCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(1)
	var ran int32
	pool.Run(ctx, 5, func(ctx context.Context, i int) {
		atomic.AddInt32(&ran, 1)
	})

	// A cancelled context stops new tasks from starting; at most the task
	// already holding the semaphore slot runs.
	if got := atomic.LoadInt32(&ran); got > 1 {
		t.Errorf("ran %d tasks after cancellation, want at most 1", got)
	}
}

func TestPoolClampsSize(t *testing.T) {
	pool := NewPool(0)
	ran := false
	pool.Run(context.Background(), 1, func(ctx context.Context, i int) { ran = true })
	if !ran {
		t.Error("a pool created with size 0 should still run tasks")
	}
}
