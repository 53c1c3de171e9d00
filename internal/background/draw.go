package background

import (
	"math"
	"time"

	"artboard-wallpaper/internal/engine2D"
	"artboard-wallpaper/internal/scene"

	"github.com/gogpu/gg"
)

// drawBase paints what sits under the shape layer: the solid background and
// the scrolling backdrop.
func (a *Animator) drawBase(w, h float64, elapsed time.Duration) {
	st := a.opts.Style
	if st.Background.A > 0 {
		a.canvas.FillRect(0, 0, w, h, st.Background)
	}
	if a.texture == nil {
		return
	}
	b := a.opts.Backdrop
	tile := b.TileSize
	if tile <= 0 {
		tw, _ := a.texture.Size()
		tile = float64(tw)
	}
	tile = math.Max(tile, engine2D.MinTileSize)
	off := engine2D.ScrollOffset(elapsed, b.Period, tile)
	engine2D.EachTile(w, h, tile, off, off, func(p engine2D.Point) {
		a.canvas.DrawTexture(a.texture, p.X, p.Y, tile, tile, b.Opacity)
	})
}

func (a *Animator) drawGrid(w, h float64) {
	pitch := a.opts.Style.GridPitch
	if pitch <= 0 {
		return
	}
	s := a.opts.Style.GridStroke
	for x := 0.0; x < w; x += pitch {
		a.canvas.StrokeLine(x, 0, x, h, s)
	}
	for y := 0.0; y < h; y += pitch {
		a.canvas.StrokeLine(0, y, w, y, s)
	}
}

func (a *Animator) drawGuides(w, h float64) {
	s := a.opts.Style.GuideStroke
	for _, r := range a.opts.Style.Guides {
		a.canvas.StrokeLine(w*r, 0, w*r, h, s)
		a.canvas.StrokeLine(0, h*r, w, h*r, s)
	}
}

func (a *Animator) drawShape(s *scene.Shape, off engine2D.Point) {
	a.canvas.Save()
	a.canvas.Translate(s.X+off.X, s.Y+off.Y)
	a.canvas.Rotate(s.Rotation)
	switch s.Kind {
	case scene.Artboard:
		a.drawArtboard(s)
	case scene.BoundingBox:
		a.drawBoundingBox(s)
	}
	a.canvas.Restore()
}

func (a *Animator) drawArtboard(s *scene.Shape) {
	st := a.opts.Style.Artboard
	hw, hh := s.Width/2, s.Height/2

	if st.Look == LookGradient {
		lead := a.opts.Style.PaletteColor(s.Index)
		trail := a.opts.Style.PaletteColor(s.Index + 1)
		alpha := st.GradientAlpha * s.Opacity
		a.canvas.FillRoundedRect(-hw, -hh, s.Width, s.Height, st.Radius, engine2D.LinearGradient{
			X0: -hw, Y0: -hh, X1: hw, Y1: hh,
			Stops: []gg.ColorStop{
				{Offset: 0, Color: engine2D.WithAlpha(lead, alpha)},
				{Offset: 1, Color: engine2D.WithAlpha(trail, alpha*0.25)},
			},
		})
		if st.Outline.Width > 0 {
			a.canvas.StrokeRect(-hw, -hh, s.Width, s.Height, st.Outline)
		}
		return
	}

	a.canvas.StrokeRect(-hw, -hh, s.Width, s.Height, st.Outline)
	hs := st.HandleSize
	if hs <= 0 {
		return
	}
	for _, c := range [4][2]float64{{-hw, -hh}, {hw, -hh}, {-hw, hh}, {hw, hh}} {
		a.canvas.FillRect(c[0]-hs/2, c[1]-hs/2, hs, hs, st.HandleColor)
	}
}

func (a *Animator) drawBoundingBox(s *scene.Shape) {
	st := a.opts.Style.Box
	hw, hh := s.Width/2, s.Height/2
	a.canvas.StrokeRect(-hw, -hh, s.Width, s.Height, st.Outline)
	a.canvas.StrokeLine(0, -hh, 0, hh, st.Cross)
	a.canvas.StrokeLine(-hw, 0, hw, 0, st.Cross)
}

func (a *Animator) drawOverlay(w, h float64) {
	st := a.opts.Style
	if st.OverlayAlpha <= 0 {
		return
	}
	switch st.Overlay {
	case OverlayLinear:
		a.canvas.FillLinear(engine2D.LinearGradient{
			X0: 0, Y0: 0, X1: w, Y1: h,
			Stops: []gg.ColorStop{
				{Offset: 0, Color: engine2D.WithAlpha(st.PaletteColor(0), st.OverlayAlpha)},
				{Offset: 0.5, Color: gg.Transparent},
				{Offset: 1, Color: engine2D.WithAlpha(st.PaletteColor(1), st.OverlayAlpha)},
			},
		})
	case OverlayRadial:
		a.canvas.FillRadial(w/2, h/2, math.Max(w, h)*0.75, []gg.ColorStop{
			{Offset: 0, Color: engine2D.WithAlpha(st.PaletteColor(0), st.OverlayAlpha)},
			{Offset: 0.6, Color: engine2D.WithAlpha(st.PaletteColor(1), st.OverlayAlpha*0.4)},
			{Offset: 1, Color: gg.Transparent},
		})
	}
}
