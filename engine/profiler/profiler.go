package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame presentation and memory statistics for performance
// monitoring. Frames are counted as presented or skipped (a skipped frame is
// one dropped because the surface was unavailable or recording failed).
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	presentedFrames int
	skippedFrames   int
	lastTime        time.Time
	updateInterval  time.Duration
	memStats        runtime.MemStats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// Tick should be called once per frame attempt, with whether the frame was
// actually presented. Logs statistics when the update interval has elapsed:
// presented FPS, skipped frame count, heap usage, and process footprint.
//
// Parameters:
//   - presented: true if the frame reached the display, false if it was skipped
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(presented bool) bool {
	if presented {
		p.presentedFrames++
	} else {
		p.skippedFrames++
	}

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.presentedFrames) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: bytes of live heap objects. Sys: total memory obtained from the
	// OS (actual process footprint).
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	log.Printf("[Profiler] FPS: %.2f | Skipped: %d | Heap: %.2f MB | Sys: %.2f MB",
		fps, p.skippedFrames, allocMB, sysMB)

	p.presentedFrames = 0
	p.skippedFrames = 0
	p.lastTime = currentTime
	return true
}

// Counts returns the presented and skipped frame counts accumulated since the
// last interval rollover.
//
// Returns:
//   - int: presented frames this interval
//   - int: skipped frames this interval
func (p *Profiler) Counts() (presented, skipped int) {
	return p.presentedFrames, p.skippedFrames
}
