package game

import (
	"time"

	"raycaster/internal/threading/monitoring"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

const (
	perfLowFpsDuration = 3 * time.Second
	perfLogInterval    = 10 * time.Second
)

// maybeLogPerfDrop logs the monitor's alerts once the frame rate has stayed
// below the monitor's limit for a while, at most once per interval.
func (g *Game) maybeLogPerfDrop() {
	if !g.log.Logger.IsLevelEnabled(logrus.WarnLevel) {
		return
	}
	g.logPerfAlerts(time.Now())
}

func (g *Game) logPerfAlerts(now time.Time) {
	alerts := g.threading.PerformanceMonitor.CheckPerformanceAlerts()
	if len(alerts) == 0 {
		g.perfLowFpsSince = time.Time{}
		return
	}

	if g.perfLowFpsSince.IsZero() {
		g.perfLowFpsSince = now
		return
	}
	if now.Sub(g.perfLowFpsSince) < perfLowFpsDuration {
		return
	}
	if !g.perfLastPerfLog.IsZero() && now.Sub(g.perfLastPerfLog) < perfLogInterval {
		return
	}
	g.perfLastPerfLog = now

	m := g.threading.PerformanceMonitor.GetCurrentMetrics()
	rt := monitoring.ReadRuntimeStats()
	for _, a := range alerts {
		g.log.WithFields(logrus.Fields{
			"alert":      a.Type,
			"value":      a.Value,
			"threshold":  a.Threshold,
			"tps":        ebiten.ActualTPS(),
			"raycast_ms": m.AvgRaycastTimeMs,
			"goroutines": rt.Goroutines,
			"memory_mb":  rt.MemoryUsageMB,
		}).Warn(a.Message)
	}
}
