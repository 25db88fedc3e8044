package threading

import (
	"raycaster/internal/threading/core"
	"raycaster/internal/threading/monitoring"
)

// ThreadingComponents holds the worker pool used for column projection and
// the frame monitor.
type ThreadingComponents struct {
	Pool               *core.WorkerPool
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates the pool for the configured worker count
// (0 = one per CPU, 1 = sequential) and a fresh monitor.
func NewThreadingComponents(workers int) *ThreadingComponents {
	return &ThreadingComponents{
		Pool:               core.CreateWorkerPool(workers),
		PerformanceMonitor: monitoring.NewPerformanceMonitor(),
	}
}

// Shutdown gracefully shuts down all threading components
func (tc *ThreadingComponents) Shutdown() {
	if tc.Pool != nil {
		tc.Pool.Stop()
	}
	if tc.PerformanceMonitor != nil {
		tc.PerformanceMonitor.Reset()
	}
}
