package core

// CreateWorkerPool creates and starts a pool for the configured worker count.
// A count of 1 returns nil: callers treat a nil pool as sequential execution.
func CreateWorkerPool(workers int) *WorkerPool {
	if workers == 1 {
		return nil
	}
	pool := NewWorkerPool(workers)
	pool.Start()
	return pool
}
