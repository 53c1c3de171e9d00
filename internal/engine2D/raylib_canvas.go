package engine2D

import (
	"fmt"
	"image"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gg"
)

// RaylibCanvas draws into the current raylib frame. Transforms go through the
// rlgl matrix stack, so every primitive honours Translate and Rotate.
//
// Layers are approximated by multiplying alpha; overlapping shapes inside one
// layer blend with each other rather than being flattened first. Rounded
// gradient fills ignore the corner radius, and radial fills use only their
// first and last stops.
type RaylibCanvas struct {
	width, height int
	alpha         []float64
	depth         int
}

// NewRaylibCanvas wraps the open raylib window. It returns ErrNoCanvas when
// the window was never initialised.
func NewRaylibCanvas() (*RaylibCanvas, error) {
	if !rl.IsWindowReady() {
		return nil, ErrNoCanvas
	}
	return &RaylibCanvas{
		width:  max(rl.GetScreenWidth(), 1),
		height: max(rl.GetScreenHeight(), 1),
		alpha:  []float64{1},
	}, nil
}

func (c *RaylibCanvas) Size() (int, int) { return c.width, c.height }

// Resize records the new size. The window itself has already been resized by
// the time the signal arrives.
func (c *RaylibCanvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize canvas: invalid size %dx%d", width, height)
	}
	c.width, c.height = width, height
	c.Clear()
	return nil
}

func (c *RaylibCanvas) Clear() { rl.ClearBackground(rl.Blank) }

func (c *RaylibCanvas) Save() {
	rl.PushMatrix()
	c.depth++
}

func (c *RaylibCanvas) Restore() {
	if c.depth == 0 {
		return
	}
	rl.PopMatrix()
	c.depth--
}

func (c *RaylibCanvas) Translate(x, y float64) { rl.Translatef(float32(x), float32(y), 0) }

func (c *RaylibCanvas) Rotate(radians float64) {
	rl.Rotatef(float32(radians*180/math.Pi), 0, 0, 1)
}

func (c *RaylibCanvas) PushLayer(opacity float64) {
	c.alpha = append(c.alpha, c.opacity()*clamp01(opacity))
}

func (c *RaylibCanvas) PopLayer() {
	if len(c.alpha) > 1 {
		c.alpha = c.alpha[:len(c.alpha)-1]
	}
}

func (c *RaylibCanvas) opacity() float64 { return c.alpha[len(c.alpha)-1] }

func (c *RaylibCanvas) color(col gg.RGBA) rl.Color {
	return rl.NewColor(
		channel(col.R),
		channel(col.G),
		channel(col.B),
		channel(col.A*c.opacity()),
	)
}

func vec(p Point) rl.Vector2 { return rl.NewVector2(float32(p.X), float32(p.Y)) }

func (c *RaylibCanvas) strokePath(pts []Point, closed bool, s Stroke) {
	col := c.color(s.Color)
	thick := float32(s.Width)
	for _, seg := range DashPath(pts, s.Dash, closed) {
		rl.DrawLineEx(vec(seg.From), vec(seg.To), thick, col)
	}
}

func (c *RaylibCanvas) StrokeLine(x1, y1, x2, y2 float64, s Stroke) {
	c.strokePath([]Point{{x1, y1}, {x2, y2}}, false, s)
}

func (c *RaylibCanvas) StrokeRect(x, y, w, h float64, s Stroke) {
	if len(s.Dash) == 0 {
		rl.DrawRectangleLinesEx(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), float32(s.Width), c.color(s.Color))
		return
	}
	c.strokePath(RectPath(x, y, w, h), true, s)
}

func (c *RaylibCanvas) FillRect(x, y, w, h float64, col gg.RGBA) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), c.color(col))
}

// cornerColors samples g at the four rectangle corners. For a two-stop
// gradient the bilinear blend raylib applies between them is exact.
func (c *RaylibCanvas) cornerColors(x, y, w, h float64, g LinearGradient) (tl, bl, br, tr rl.Color) {
	at := func(px, py float64) rl.Color { return c.color(g.At(px, py)) }
	return at(x, y), at(x, y+h), at(x+w, y+h), at(x+w, y)
}

func (c *RaylibCanvas) FillRoundedRect(x, y, w, h, radius float64, g LinearGradient) {
	tl, bl, br, tr := c.cornerColors(x, y, w, h, g)
	rl.DrawRectangleGradientEx(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), tl, bl, br, tr)
}

func (c *RaylibCanvas) FillLinear(g LinearGradient) {
	w, h := float64(c.width), float64(c.height)
	tl, bl, br, tr := c.cornerColors(0, 0, w, h, g)
	rl.DrawRectangleGradientEx(rl.NewRectangle(0, 0, float32(w), float32(h)), tl, bl, br, tr)
}

func (c *RaylibCanvas) FillRadial(cx, cy, radius float64, stops []gg.ColorStop) {
	if len(stops) == 0 || radius <= 0 {
		return
	}
	inner := c.color(stops[0].Color)
	outer := c.color(stops[len(stops)-1].Color)
	rl.DrawRectangle(0, 0, int32(c.width), int32(c.height), outer)
	rl.DrawCircleGradient(int32(cx), int32(cy), float32(radius), inner, outer)
}

type raylibTexture struct {
	tex    rl.Texture2D
	loaded bool
}

func (t *raylibTexture) Size() (int, int) { return int(t.tex.Width), int(t.tex.Height) }

func (t *raylibTexture) Release() {
	if t.loaded {
		rl.UnloadTexture(t.tex)
		t.loaded = false
	}
}

func (c *RaylibCanvas) LoadTexture(img image.Image) (Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("load texture: nil image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("load texture: empty image %dx%d", b.Dx(), b.Dy())
	}
	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	if tex.ID == 0 {
		return nil, fmt.Errorf("load texture: upload failed")
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return &raylibTexture{tex: tex, loaded: true}, nil
}

func (c *RaylibCanvas) DrawTexture(tex Texture, x, y, w, h, opacity float64) {
	t, ok := tex.(*raylibTexture)
	if !ok || !t.loaded {
		return
	}
	src := rl.NewRectangle(0, 0, float32(t.tex.Width), float32(t.tex.Height))
	dst := rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
	tint := c.color(gg.RGBA{R: 1, G: 1, B: 1, A: opacity})
	rl.DrawTexturePro(t.tex, src, dst, rl.NewVector2(0, 0), 0, tint)
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
