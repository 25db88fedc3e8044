package core

import (
	"context"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNewWorkerPoolDefaultsToCPUCount(t *testing.T) {
	pool := NewWorkerPool(0)
	if pool.GetNumWorkers() != runtime.NumCPU() {
		t.Errorf("GetNumWorkers() = %d, want %d", pool.GetNumWorkers(), runtime.NumCPU())
	}
}

func TestParallelForVisitsEveryIndexOnce(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	const n = 1001
	counts := make([]int32, n)
	pool.ParallelFor(0, n, func(i int) {
		atomic.AddInt32(&counts[i], 1)
	})

	for i, c := range counts {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestParallelForEmptyRange(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	called := false
	pool.ParallelFor(5, 5, func(int) { called = true })
	if called {
		t.Errorf("fn called for an empty range")
	}
}

func TestParallelForWithCancelledContext(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	pool.ParallelForWithContext(ctx, 0, 100, func(int) { calls.Add(1) })
	if calls.Load() != 0 {
		t.Errorf("fn called %d times after cancellation", calls.Load())
	}
}

func TestSubmitAndWait(t *testing.T) {
	pool := NewWorkerPool(3)
	pool.Start()
	defer pool.Stop()

	var done atomic.Int32
	for i := 0; i < 10; i++ {
		pool.Submit(func() { done.Add(1) })
	}
	pool.Wait()
	if done.Load() != 10 {
		t.Errorf("completed %d jobs, want 10", done.Load())
	}
}

func TestStopTwice(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Start()
	pool.Stop()
	pool.Stop()
}

func TestCreateWorkerPool(t *testing.T) {
	if CreateWorkerPool(1) != nil {
		t.Errorf("one worker should mean sequential (nil pool)")
	}
	pool := CreateWorkerPool(3)
	if pool == nil || pool.GetNumWorkers() != 3 {
		t.Fatalf("CreateWorkerPool(3) = %v", pool)
	}
	pool.Stop()
}
