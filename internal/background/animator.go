package background

import (
	"image"
	"time"

	"artboard-wallpaper/internal/debug"
	"artboard-wallpaper/internal/engine2D"
	"artboard-wallpaper/internal/scene"
	"artboard-wallpaper/internal/utils"

	"golang.org/x/exp/rand"
)

type State int

const (
	Unmounted State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "unmounted"
}

// PointerFunc reports the pointer position normalised to [-1, 1] on both
// axes, and false when it is unknown.
type PointerFunc func() (x, y float64, ok bool)

// Backdrop is a repeating texture that scrolls diagonally behind the scene.
type Backdrop struct {
	Image    image.Image
	TileSize float64
	// Period is the time to scroll one full tile.
	Period  time.Duration
	Opacity float64
}

type Options struct {
	Preset scene.Preset
	Style  Style
	// Rand defaults to a time-seeded source.
	Rand     scene.Rand
	Backdrop *Backdrop
	Pointer  PointerFunc
	Debug    *debug.DebugOverlay
}

// Animator owns the surface, the scene and the per-frame callback. An
// Animator is mounted at most once.
type Animator struct {
	canvas   engine2D.Canvas
	viewport engine2D.Viewport
	frames   engine2D.FrameScheduler
	opts     Options

	surface *engine2D.Surface
	shapes  []scene.Shape
	offsets []engine2D.Point
	rng     scene.Rand

	state   State
	alive   bool
	used    bool
	frame   engine2D.FrameID
	start   time.Time
	texture engine2D.Texture
	frameNo uint64

	log utils.Logger
}

// New prepares an animator. canvas may be nil when the host could not obtain
// one, in which case Mount does nothing.
func New(canvas engine2D.Canvas, viewport engine2D.Viewport, frames engine2D.FrameScheduler, opts Options) *Animator {
	a := &Animator{
		canvas:   canvas,
		viewport: viewport,
		frames:   frames,
		opts:     opts,
		rng:      opts.Rand,
		log:      utils.Scope("animator"),
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return a
}

func (a *Animator) State() State { return a.state }

// Frames reports how many frames have been drawn.
func (a *Animator) Frames() uint64 { return a.frameNo }

// Shapes returns a copy of the current scene.
func (a *Animator) Shapes() []scene.Shape {
	out := make([]scene.Shape, len(a.shapes))
	copy(out, a.shapes)
	return out
}

// Size returns the surface size, or zero before mounting.
func (a *Animator) Size() (int, int) {
	if a.surface == nil {
		return 0, 0
	}
	return a.surface.Size()
}

// Mount sizes the surface, seeds the scene and schedules the first frame.
func (a *Animator) Mount() {
	if a.used {
		return
	}
	a.used = true

	if a.canvas == nil || a.viewport == nil || a.frames == nil {
		a.log.Warn("Not starting: %v", engine2D.ErrNoCanvas)
		return
	}
	if err := a.opts.Style.Validate(); err != nil {
		a.log.Error("Invalid style: %v", err)
		return
	}

	a.surface = engine2D.NewSurface(a.canvas, a.viewport)
	a.surface.Attach()
	w, h := a.surface.Size()

	a.shapes = scene.SeedPreset(a.rng, float64(w), float64(h), a.opts.Preset)
	a.offsets = make([]engine2D.Point, len(a.shapes))
	a.loadBackdrop()

	a.alive = true
	a.state = Running
	a.frame = a.frames.RequestFrame(a.tick)
	a.log.Info("Mounted %q preset: %d artboards, %d bounding boxes on %dx%d",
		a.opts.Preset.Name, a.opts.Preset.Artboards.Count, a.opts.Preset.BoundingBoxes.Count, w, h)
}

// Unmount cancels the pending frame, stops following resizes and drops the
// scene.
func (a *Animator) Unmount() {
	if a.state != Running {
		return
	}
	a.alive = false
	a.frames.CancelFrame(a.frame)
	a.surface.Detach()
	if a.texture != nil {
		a.texture.Release()
		a.texture = nil
	}
	a.shapes = nil
	a.offsets = nil
	a.state = Unmounted
	a.log.Info("Unmounted after %d frames", a.frameNo)
}

func (a *Animator) loadBackdrop() {
	b := a.opts.Backdrop
	if b == nil || b.Image == nil {
		return
	}
	tex, err := a.canvas.LoadTexture(b.Image)
	if err != nil {
		a.log.Warn("Backdrop disabled: %v", err)
		return
	}
	a.texture = tex
}

func (a *Animator) tick(now time.Time) {
	if !a.alive {
		return
	}
	if a.frameNo == 0 {
		a.start = now
	}
	elapsed := now.Sub(a.start)
	w, h := a.surface.Size()
	fw, fh := float64(w), float64(h)

	a.canvas.Clear()
	a.drawBase(fw, fh, elapsed)

	a.canvas.PushLayer(a.opts.Style.Opacity)
	a.drawGrid(fw, fh)
	a.drawGuides(fw, fh)
	a.updateOffsets()
	for i := range a.shapes {
		a.drawShape(&a.shapes[i], a.offsets[i])
	}
	a.canvas.PopLayer()

	scene.AdvanceAll(a.shapes, fw, fh, a.opts.Preset.Motion, elapsed.Seconds(), a.rng)

	a.drawOverlay(fw, fh)
	if d := a.opts.Debug; d != nil {
		d.Update(now)
		d.Draw(a.canvas, a.shapes, a.offsets)
	}

	a.frameNo++
	a.frame = a.frames.RequestFrame(a.tick)
}

// updateOffsets computes the draw-time parallax shift. Nearer shapes, by
// index, move further.
func (a *Animator) updateOffsets() {
	var px, py float64
	ok := false
	if a.opts.Pointer != nil && a.opts.Style.Parallax != 0 {
		px, py, ok = a.opts.Pointer()
	}
	for i := range a.offsets {
		if !ok {
			a.offsets[i] = engine2D.Point{}
			continue
		}
		depth := parallaxDepth(a.shapes[i].Index)
		a.offsets[i] = engine2D.Point{
			X: -px * a.opts.Style.Parallax * depth,
			Y: -py * a.opts.Style.Parallax * depth,
		}
	}
}

func parallaxDepth(index int) float64 {
	return 0.3 + 0.7*float64(index*7%10)/9
}
