package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// smoothing is the weight of the newest sample in the moving averages.
const smoothing = 0.1

// PerformanceMonitor tracks frame and projection timings
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Projection metrics
	raycastTime   atomic.Uint64 // nanoseconds
	columnsHit    atomic.Uint64
	columnsMissed atomic.Uint64

	mutex          sync.RWMutex
	avgFrameTime   float64
	avgRaycastTime float64
	startTime      time.Time
	lowFPSLimit    float64
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:   time.Now(),
		lowFPSLimit: 30,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.recordFrame(time.Since(ft.startTime))
}

func (pm *PerformanceMonitor) recordFrame(d time.Duration) {
	pm.frameTime.Store(uint64(d.Nanoseconds()))
	pm.frameCount.Add(1)

	pm.mutex.Lock()
	pm.avgFrameTime = movingAverage(pm.avgFrameTime, float64(d.Nanoseconds()))
	pm.mutex.Unlock()
}

// RaycastTimer helps measure projection performance
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRaycast begins projection timing
func (pm *PerformanceMonitor) StartRaycast() *RaycastTimer {
	return &RaycastTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndRaycast completes projection timing and records how many columns hit a wall.
func (rt *RaycastTimer) EndRaycast(hit, missed int) {
	rt.monitor.recordRaycast(time.Since(rt.startTime), hit, missed)
}

func (pm *PerformanceMonitor) recordRaycast(d time.Duration, hit, missed int) {
	pm.raycastTime.Store(uint64(d.Nanoseconds()))
	pm.columnsHit.Add(uint64(hit))
	pm.columnsMissed.Add(uint64(missed))

	pm.mutex.Lock()
	pm.avgRaycastTime = movingAverage(pm.avgRaycastTime, float64(d.Nanoseconds()))
	pm.mutex.Unlock()
}

// movingAverage seeds the average with the first sample.
func movingAverage(avg, sample float64) float64 {
	if avg == 0 {
		return sample
	}
	return avg + smoothing*(sample-avg)
}

// FrameMetrics is a snapshot of the monitor's counters
type FrameMetrics struct {
	FrameCount       uint64
	FramesPerSecond  float64
	AvgFrameTimeMs   float64
	LastRaycastMs    float64
	AvgRaycastTimeMs float64
	ColumnsHit       uint64
	ColumnsMissed    uint64
	Uptime           time.Duration
}

// RuntimeStats is the process memory and goroutine count. Reading it stops
// the world, so it is sampled only when logging.
type RuntimeStats struct {
	MemoryUsageMB uint64
	Goroutines    int
}

// ReadRuntimeStats samples the Go runtime.
func ReadRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	return RuntimeStats{
		MemoryUsageMB: memStats.Alloc / 1024 / 1024,
		Goroutines:    runtime.NumGoroutine(),
	}
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	fps := 0.0
	if pm.avgFrameTime > 0 {
		fps = float64(time.Second) / pm.avgFrameTime
	}

	return FrameMetrics{
		FrameCount:       pm.frameCount.Load(),
		FramesPerSecond:  fps,
		AvgFrameTimeMs:   pm.avgFrameTime / float64(time.Millisecond),
		LastRaycastMs:    float64(pm.raycastTime.Load()) / float64(time.Millisecond),
		AvgRaycastTimeMs: pm.avgRaycastTime / float64(time.Millisecond),
		ColumnsHit:       pm.columnsHit.Load(),
		ColumnsMissed:    pm.columnsMissed.Load(),
		Uptime:           time.Since(pm.startTime),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// SetLowFPSLimit changes the frame rate below which CheckPerformanceAlerts warns.
func (pm *PerformanceMonitor) SetLowFPSLimit(fps float64) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.lowFPSLimit = fps
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	now := time.Now()

	pm.mutex.RLock()
	avgFrame := pm.avgFrameTime
	limit := pm.lowFPSLimit
	pm.mutex.RUnlock()

	if avgFrame > 0 {
		fps := float64(time.Second) / avgFrame
		if fps < limit {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below the configured limit",
				Value:     fps,
				Threshold: limit,
				Timestamp: now,
			})
		}
	}

	hit := pm.columnsHit.Load()
	missed := pm.columnsMissed.Load()
	if total := hit + missed; total > 0 && missed*2 > total {
		alerts = append(alerts, PerformanceAlert{
			Type:      "open_map",
			Message:   "Most columns found no wall; the map border may be open",
			Value:     float64(missed) / float64(total),
			Threshold: 0.5,
			Timestamp: now,
		})
	}

	return alerts
}

// ResetColumns clears the hit and missed column counts, so the open_map
// alert only reflects the level being played.
func (pm *PerformanceMonitor) ResetColumns() {
	pm.columnsHit.Store(0)
	pm.columnsMissed.Store(0)
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.columnsHit.Store(0)
	pm.columnsMissed.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
