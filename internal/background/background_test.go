package background

import (
	"image"
	"math"
	"testing"
	"time"

	"artboard-wallpaper/internal/debug"
	"artboard-wallpaper/internal/engine2D"
	"artboard-wallpaper/internal/scene"

	"golang.org/x/exp/rand"
)

type harness struct {
	rec    *engine2D.Recorder
	sig    *engine2D.ResizeSignal
	loop   *engine2D.FrameLoop
	anim   *Animator
	clock  time.Time
	preset scene.Preset
}

func newHarness(t *testing.T, preset scene.Preset, w, h int, mod func(*Options)) *harness {
	t.Helper()
	opts := Options{
		Preset: preset,
		Style:  StyleFor(preset.Name),
		Rand:   rand.New(rand.NewSource(42)),
	}
	if mod != nil {
		mod(&opts)
	}
	hs := &harness{
		rec:    engine2D.NewRecorder(0, 0),
		sig:    engine2D.NewResizeSignal(w, h),
		loop:   engine2D.NewFrameLoop(),
		clock:  time.Unix(1_700_000_000, 0),
		preset: preset,
	}
	hs.anim = New(hs.rec, hs.sig, hs.loop, opts)
	return hs
}

func (h *harness) step() int {
	h.rec.Reset()
	n := h.loop.Tick(h.clock)
	h.clock = h.clock.Add(time.Second / 60)
	return n
}

func TestAnimator_DrawsEveryShapeEachFrame(t *testing.T) {
	for _, p := range []scene.Preset{scene.Blueprint(), scene.Mesh()} {
		t.Run(p.Name, func(t *testing.T) {
			h := newHarness(t, p, 1280, 720, nil)
			h.anim.Mount()
			for frame := 0; frame < 120; frame++ {
				if n := h.step(); n != 1 {
					t.Fatalf("frame %d: expected 1 callback, got %d", frame, n)
				}
				if h.rec.Saves != p.Size() {
					t.Fatalf("frame %d: expected %d shapes, got %d", frame, p.Size(), h.rec.Saves)
				}
				if h.rec.Depth != 0 || h.rec.LayerDepth != 0 {
					t.Fatalf("frame %d: unbalanced state depth=%d layers=%d", frame, h.rec.Depth, h.rec.LayerDepth)
				}
				if h.rec.Calls[0].Op != engine2D.OpClear {
					t.Fatalf("frame %d: expected clear first, got %s", frame, h.rec.Calls[0].Op)
				}
			}
			if got := h.anim.Frames(); got != 120 {
				t.Fatalf("expected 120 frames, got %d", got)
			}
		})
	}
}

func TestAnimator_FirstFrameShowsSeededState(t *testing.T) {
	h := newHarness(t, scene.Blueprint(), 800, 600, nil)
	h.anim.Mount()
	seeded := h.anim.Shapes()

	h.step()
	var rects []engine2D.Call
	for _, c := range h.rec.Calls {
		if c.Op == engine2D.OpStrokeRect {
			rects = append(rects, c)
		}
	}
	if len(rects) != len(seeded) {
		t.Fatalf("expected %d outlines, got %d", len(seeded), len(rects))
	}
	for i, s := range seeded {
		if rects[i].X != s.X || rects[i].Y != s.Y {
			t.Fatalf("shape %d drawn at (%g, %g), seeded at (%g, %g)", i, rects[i].X, rects[i].Y, s.X, s.Y)
		}
	}

	after := h.anim.Shapes()
	for i := range after {
		if after[i].Y != seeded[i].Y+seeded[i].VY && after[i].Y > seeded[i].Y {
			t.Fatalf("shape %d: expected one step of motion after the frame, y %g -> %g", i, seeded[i].Y, after[i].Y)
		}
	}
}

func TestAnimator_UnmountStopsEverything(t *testing.T) {
	h := newHarness(t, scene.Mesh(), 1024, 768, nil)
	h.anim.Mount()
	for i := 0; i < 10; i++ {
		h.step()
	}
	h.anim.Unmount()

	if h.anim.State() != Unmounted {
		t.Fatalf("expected unmounted, got %v", h.anim.State())
	}
	if h.sig.Listeners() != 0 {
		t.Fatalf("expected resize listener released, got %d", h.sig.Listeners())
	}
	resizes := h.rec.Resizes
	for i := 0; i < 30; i++ {
		if n := h.step(); n != 0 {
			t.Fatalf("tick %d after unmount ran %d callbacks", i, n)
		}
		if len(h.rec.Calls) != 0 {
			t.Fatalf("tick %d after unmount drew %d calls", i, len(h.rec.Calls))
		}
	}
	h.sig.Dispatch(640, 480)
	if h.rec.Resizes != resizes {
		t.Fatalf("resize reached canvas after unmount")
	}
}

func TestAnimator_UnmountClosesInFlightFrame(t *testing.T) {
	// A scheduler that ignores cancellation still must not draw.
	h := newHarness(t, scene.Blueprint(), 640, 480, nil)
	leaky := &leakyScheduler{FrameLoop: h.loop}
	h.anim = New(h.rec, h.sig, leaky, Options{
		Preset: h.preset,
		Style:  BlueprintStyle(),
		Rand:   rand.New(rand.NewSource(1)),
	})
	h.anim.Mount()
	h.anim.Unmount()
	h.step()
	if len(h.rec.Calls) != 0 {
		t.Fatalf("expected no draws from a stale frame, got %d", len(h.rec.Calls))
	}
}

type leakyScheduler struct {
	*engine2D.FrameLoop
}

func (leakyScheduler) CancelFrame(engine2D.FrameID) {}

func TestAnimator_MountIsSingleUse(t *testing.T) {
	h := newHarness(t, scene.Blueprint(), 640, 480, nil)
	h.anim.Mount()
	h.anim.Mount()
	if h.loop.Pending() != 1 || h.sig.Listeners() != 1 {
		t.Fatalf("expected one frame and one listener, got %d and %d", h.loop.Pending(), h.sig.Listeners())
	}
	h.anim.Unmount()
	h.anim.Mount()
	if h.anim.State() != Unmounted || h.loop.Pending() != 0 {
		t.Fatalf("expected remount to be ignored, state %v pending %d", h.anim.State(), h.loop.Pending())
	}
}

func TestAnimator_ResizeTracksViewport(t *testing.T) {
	h := newHarness(t, scene.Blueprint(), 800, 600, nil)
	h.anim.Mount()
	h.step()
	for _, sz := range [][2]int{{1920, 1080}, {300, 200}, {2560, 1440}} {
		h.sig.Dispatch(sz[0], sz[1])
		h.step()
	}
	if w, ht := h.anim.Size(); w != 2560 || ht != 1440 {
		t.Fatalf("expected 2560x1440, got %dx%d", w, ht)
	}
	if h.rec.Width != 2560 || h.rec.Height != 1440 {
		t.Fatalf("expected canvas 2560x1440, got %dx%d", h.rec.Width, h.rec.Height)
	}
	if got := len(h.anim.Shapes()); got != h.preset.Size() {
		t.Fatalf("expected population to survive resize, got %d", got)
	}
}

func TestAnimator_ZeroViewport(t *testing.T) {
	h := newHarness(t, scene.Mesh(), 0, 0, nil)
	h.anim.Mount()
	for i := 0; i < 200; i++ {
		h.step()
	}
	if w, ht := h.anim.Size(); w != 1 || ht != 1 {
		t.Fatalf("expected 1x1 surface, got %dx%d", w, ht)
	}
	for i, s := range h.anim.Shapes() {
		if math.IsNaN(s.X) || math.IsNaN(s.Y) || math.IsInf(s.X, 0) || math.IsInf(s.Y, 0) {
			t.Fatalf("shape %d: non-finite position (%g, %g)", i, s.X, s.Y)
		}
	}
}

func TestAnimator_NoCanvasIsNoop(t *testing.T) {
	sig := engine2D.NewResizeSignal(800, 600)
	loop := engine2D.NewFrameLoop()
	a := New(nil, sig, loop, Options{Preset: scene.Blueprint(), Style: BlueprintStyle()})
	a.Mount()
	if a.State() != Unmounted {
		t.Fatalf("expected animator to stay unmounted")
	}
	if loop.Pending() != 0 || sig.Listeners() != 0 {
		t.Fatalf("expected nothing scheduled, got %d frames and %d listeners", loop.Pending(), sig.Listeners())
	}
	a.Unmount()
}

func TestAnimator_StylesDrawExpectedPrimitives(t *testing.T) {
	blue := newHarness(t, scene.Blueprint(), 600, 600, nil)
	blue.anim.Mount()
	blue.step()
	p := blue.preset
	if got := blue.rec.Count(engine2D.OpFillRect); got != 4*p.Artboards.Count {
		t.Fatalf("expected %d corner handles, got %d", 4*p.Artboards.Count, got)
	}
	if got := blue.rec.Count(engine2D.OpFillLinear); got != 1 {
		t.Fatalf("expected one linear wash, got %d", got)
	}
	// 10 vertical and 10 horizontal grid lines on a 600px surface, plus the cross of
	// every box.
	if got, want := blue.rec.Count(engine2D.OpStrokeLine), 20+2*p.BoundingBoxes.Count; got != want {
		t.Fatalf("expected %d lines, got %d", want, got)
	}

	mesh := newHarness(t, scene.Mesh(), 600, 600, nil)
	mesh.anim.Mount()
	mesh.step()
	mp := mesh.preset
	if got := mesh.rec.Count(engine2D.OpFillRoundedRect); got != mp.Artboards.Count {
		t.Fatalf("expected %d gradient artboards, got %d", mp.Artboards.Count, got)
	}
	if got := mesh.rec.Count(engine2D.OpFillRadial); got != 1 {
		t.Fatalf("expected one radial overlay, got %d", got)
	}
	if got, want := mesh.rec.Count(engine2D.OpStrokeLine), 20+4+2*mp.BoundingBoxes.Count; got != want {
		t.Fatalf("expected %d lines with guides, got %d", want, got)
	}
}

func TestAnimator_BoxesUseDashedOutline(t *testing.T) {
	h := newHarness(t, scene.Blueprint(), 400, 400, nil)
	h.anim.Mount()
	h.step()
	dashed := 0
	for _, c := range h.rec.Calls {
		if c.Op == engine2D.OpStrokeRect && len(c.Stroke.Dash) > 0 {
			dashed++
		}
	}
	if dashed != h.preset.BoundingBoxes.Count {
		t.Fatalf("expected %d dashed outlines, got %d", h.preset.BoundingBoxes.Count, dashed)
	}
}

func TestAnimator_ParallaxShiftsDrawOnly(t *testing.T) {
	h := newHarness(t, scene.Mesh(), 800, 600, func(o *Options) {
		o.Pointer = func() (float64, float64, bool) { return 1, 0, true }
	})
	h.anim.Mount()
	seeded := h.anim.Shapes()
	h.step()

	var first engine2D.Call
	for _, c := range h.rec.Calls {
		if c.Op == engine2D.OpFillRoundedRect {
			first = c
			break
		}
	}
	want := seeded[0].X - h.anim.opts.Style.Parallax*parallaxDepth(0)
	if math.Abs(first.X-want) > 1e-9 {
		t.Fatalf("expected parallax-shifted x %g, got %g", want, first.X)
	}
	if h.anim.Shapes()[0].Index != 0 {
		t.Fatalf("unexpected shape order")
	}
}

func TestAnimator_BackdropTiles(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	h := newHarness(t, scene.Blueprint(), 250, 150, func(o *Options) {
		o.Backdrop = &Backdrop{Image: img, Period: 20 * time.Second, Opacity: 0.1}
	})
	h.anim.Mount()
	h.step()
	// Offset zero on the first frame: 3 columns x 2 rows.
	if got := h.rec.Count(engine2D.OpDrawTexture); got != 6 {
		t.Fatalf("expected 6 tiles, got %d", got)
	}
	h.step()
	// Scrolled by a fraction of a pixel: one extra row and column.
	if got := h.rec.Count(engine2D.OpDrawTexture); got != 12 {
		t.Fatalf("expected 12 tiles once scrolling, got %d", got)
	}
}

func TestAnimator_TinyBackdropUsesMinimumTile(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	h := newHarness(t, scene.Blueprint(), 160, 80, func(o *Options) {
		o.Backdrop = &Backdrop{Image: img, Period: 20 * time.Second, Opacity: 0.1}
	})
	h.anim.Mount()
	h.step()
	want := (160 / engine2D.MinTileSize) * (80 / engine2D.MinTileSize)
	if got := h.rec.Count(engine2D.OpDrawTexture); got != want {
		t.Fatalf("expected %d tiles at the minimum size, got %d", want, got)
	}
}

func TestAnimator_DebugOverlayDrawsBounds(t *testing.T) {
	ov := debug.NewDebugOverlay()
	ov.ShowBoundingBoxes = true
	h := newHarness(t, scene.Blueprint(), 640, 480, func(o *Options) {
		o.Debug = ov
		o.Style.Overlay = OverlayNone
	})
	h.anim.Mount()
	h.step()
	p := h.preset
	// Outline per shape, plus one debug box per shape.
	if got := h.rec.Count(engine2D.OpStrokeRect); got != 2*p.Size() {
		t.Fatalf("expected %d outlines, got %d", 2*p.Size(), got)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b float64
		a       float64
	}{
		{"#ff0000", 1, 0, 0, 1},
		{"#0f0", 0, 1, 0, 1},
		{"#0000ff80", 0, 0, 1, 128.0 / 255},
		{"oklch(1 0 0)", 1, 1, 1, 1},
		{"oklch(0% 0 0 / 0.5)", 0, 0, 0, 0.5},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if err != nil {
			t.Fatalf("%s: %v", c.in, err)
		}
		if math.Abs(got.R-c.r) > 0.01 || math.Abs(got.G-c.g) > 0.01 || math.Abs(got.B-c.b) > 0.01 || math.Abs(got.A-c.a) > 1e-9 {
			t.Errorf("%s: expected (%g %g %g %g), got %+v", c.in, c.r, c.g, c.b, c.a, got)
		}
	}
	for _, bad := range []string{"red", "#12345", "oklch(0.5 0.1)", "oklch(2 0 0)"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("%s: expected error", bad)
		}
	}
}

func TestDefaultPaletteIsSRGB(t *testing.T) {
	for i, c := range DefaultPalette() {
		for _, v := range []float64{c.R, c.G, c.B} {
			if v < 0 || v > 1 {
				t.Fatalf("palette %d out of gamut: %+v", i, c)
			}
		}
	}
	// figma purple leans blue-red, coral leans red.
	p := DefaultPalette()
	if p[0].B <= p[0].G || p[1].R <= p[1].B {
		t.Fatalf("unexpected palette hues: %+v", p)
	}
}

func TestStyleValidate(t *testing.T) {
	s := MeshStyle()
	if err := s.Validate(); err != nil {
		t.Fatalf("mesh style invalid: %v", err)
	}
	s.Palette = nil
	if err := s.Validate(); err == nil {
		t.Fatalf("expected empty palette to fail")
	}
	s = BlueprintStyle()
	s.Guides = []float64{1.5}
	if err := s.Validate(); err == nil {
		t.Fatalf("expected out-of-range guide to fail")
	}
}
