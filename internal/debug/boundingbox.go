package debug

import (
	"artboard-wallpaper/internal/engine2D"
	"artboard-wallpaper/internal/scene"

	"github.com/gogpu/gg"
)

var (
	artboardCol = gg.RGBA{G: 1, A: 1}
	boxCol      = gg.RGBA{G: 1, B: 1, A: 0.4}
	selectedCol = gg.RGBA{R: 1, G: 1, A: 1}
	originCol   = gg.RGBA{R: 1, A: 1}
)

// Draw paints the enabled diagnostics over the finished frame. offsets holds
// the per-shape parallax shift applied while drawing.
func (d *DebugOverlay) Draw(c engine2D.Canvas, shapes []scene.Shape, offsets []engine2D.Point) {
	if !d.ShowBoundingBoxes {
		return
	}
	d.drawSceneBoundingBoxes(c, shapes, offsets)
	if d.SelectedObjectIndex >= 0 && d.SelectedObjectIndex < len(shapes) {
		d.drawSelectedBoundingBox(c, shapes[d.SelectedObjectIndex], offsetAt(offsets, d.SelectedObjectIndex))
	}
}

func offsetAt(offsets []engine2D.Point, i int) engine2D.Point {
	if i < len(offsets) {
		return offsets[i]
	}
	return engine2D.Point{}
}

func (d *DebugOverlay) drawSelectedBoundingBox(c engine2D.Canvas, s scene.Shape, off engine2D.Point) {
	d.drawObjectBoundingBox(c, s, off, selectedCol)
}

func (d *DebugOverlay) drawSceneBoundingBoxes(c engine2D.Canvas, shapes []scene.Shape, offsets []engine2D.Point) {
	for i, s := range shapes {
		if i == d.SelectedObjectIndex {
			continue
		}
		col := artboardCol
		if s.Kind == scene.BoundingBox {
			col = boxCol
		}
		d.drawObjectBoundingBox(c, s, offsetAt(offsets, i), col)
	}
}

func (d *DebugOverlay) drawObjectBoundingBox(c engine2D.Canvas, s scene.Shape, off engine2D.Point, col gg.RGBA) {
	x, y, w, h := s.Bounds()
	x += off.X
	y += off.Y
	c.StrokeRect(x, y, w, h, engine2D.Stroke{Color: col, Width: 1})

	// Origin point as a small red square
	c.FillRect(s.X+off.X-2, s.Y+off.Y-2, 4, 4, originCol)
}
