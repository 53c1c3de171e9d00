package engine2D

import (
	"errors"
	"image"

	"github.com/gogpu/gg"
)

// ErrNoCanvas is returned when the host cannot provide a 2-D drawing surface.
var ErrNoCanvas = errors.New("no drawable canvas")

// Stroke describes a line style. A nil Dash draws solid lines.
type Stroke struct {
	Color gg.RGBA
	Width float64
	Dash  []float64
}

// LinearGradient runs from (X0, Y0) to (X1, Y1) in the current local
// coordinate space.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []gg.ColorStop
}

// At evaluates the gradient at a point in the same coordinate space, clamping
// beyond either end.
func (g LinearGradient) At(x, y float64) gg.RGBA {
	if len(g.Stops) == 0 {
		return gg.Transparent
	}
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	t := 0.0
	if l2 := dx*dx + dy*dy; l2 > 0 {
		t = ((x-g.X0)*dx + (y-g.Y0)*dy) / l2
	}
	return StopsAt(g.Stops, t)
}

// StopsAt interpolates sorted colour stops at offset t.
func StopsAt(stops []gg.ColorStop, t float64) gg.RGBA {
	if len(stops) == 0 {
		return gg.Transparent
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// Texture is a backend-owned image that can be drawn repeatedly.
type Texture interface {
	Size() (width, height int)
	Release()
}

// Canvas is the immediate-mode drawing surface the background renders into.
// Save/Restore bracket transform changes; PushLayer/PopLayer composite
// everything drawn in between at the given opacity.
type Canvas interface {
	Size() (width, height int)
	// Resize reallocates the backing store and clears it.
	Resize(width, height int) error
	Clear()

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(radians float64)

	PushLayer(opacity float64)
	PopLayer()

	StrokeLine(x1, y1, x2, y2 float64, s Stroke)
	StrokeRect(x, y, w, h float64, s Stroke)
	FillRect(x, y, w, h float64, c gg.RGBA)
	FillRoundedRect(x, y, w, h, radius float64, g LinearGradient)
	// FillRadial covers the whole surface with a radial gradient centred on
	// (cx, cy) in the current transform; beyond radius the last stop's colour
	// is held. The raylib backend blends only the first and last stops.
	FillRadial(cx, cy, radius float64, stops []gg.ColorStop)
	FillLinear(g LinearGradient)

	LoadTexture(img image.Image) (Texture, error)
	DrawTexture(tex Texture, x, y, w, h, opacity float64)
}

// WithAlpha scales a colour's alpha.
func WithAlpha(c gg.RGBA, alpha float64) gg.RGBA {
	c.A *= alpha
	return c
}
