package debug

import (
	"runtime"
	"time"

	"artboard-wallpaper/internal/utils"
)

// DebugOverlay draws diagnostics on top of the scene and keeps frame timing.
type DebugOverlay struct {
	ShowBoundingBoxes   bool
	SelectedObjectIndex int

	// StatsInterval is how often frame statistics are logged.
	StatsInterval time.Duration

	lastUpdateTime time.Time
	lastFrameTime  time.Time
	frameCount     int
	worstFrame     time.Duration
	fps            float64
	memStats       runtime.MemStats

	log utils.Logger
}

func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{
		SelectedObjectIndex: -1,
		StatsInterval:       5 * time.Second,
		log:                 utils.Scope("debug"),
	}
}

// Toggle flips the bounding box view, as bound to F8 in the window host.
func (d *DebugOverlay) Toggle() {
	d.ShowBoundingBoxes = !d.ShowBoundingBoxes
	d.log.Info("Bounding boxes: %v", d.ShowBoundingBoxes)
}

// Update records one frame at now and logs a summary once per interval.
func (d *DebugOverlay) Update(now time.Time) {
	if d.lastUpdateTime.IsZero() {
		d.lastUpdateTime = now
		d.lastFrameTime = now
		return
	}
	if dt := now.Sub(d.lastFrameTime); dt > d.worstFrame {
		d.worstFrame = dt
	}
	d.lastFrameTime = now
	d.frameCount++

	elapsed := now.Sub(d.lastUpdateTime)
	if elapsed < d.StatsInterval {
		return
	}
	d.fps = float64(d.frameCount) / elapsed.Seconds()
	runtime.ReadMemStats(&d.memStats)
	d.log.Debug("%.1f fps, worst frame %.2f ms, heap %.2f MB, goroutines %d",
		d.fps,
		float64(d.worstFrame.Microseconds())/1000,
		float64(d.memStats.HeapAlloc)/1024/1024,
		runtime.NumGoroutine(),
	)
	d.lastUpdateTime = now
	d.frameCount = 0
	d.worstFrame = 0
}

// FPS is the rate measured over the last completed interval.
func (d *DebugOverlay) FPS() float64 { return d.fps }
