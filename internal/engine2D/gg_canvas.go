package engine2D

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
)

// GGCanvas renders in software through gogpu/gg. It backs the framebuffer and
// PNG hosts.
type GGCanvas struct {
	dc  *gg.Context
	err error
}

func NewGGCanvas(width, height int) *GGCanvas {
	return &GGCanvas{dc: gg.NewContext(max(width, 1), max(height, 1))}
}

// Context exposes the underlying gg context.
func (c *GGCanvas) Context() *gg.Context { return c.dc }

func (c *GGCanvas) Image() image.Image { return c.dc.Image() }

func (c *GGCanvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// Err returns the first rasterizer error seen since the last call.
func (c *GGCanvas) Err() error {
	err := c.err
	c.err = nil
	return err
}

func (c *GGCanvas) Close() error { return c.dc.Close() }

func (c *GGCanvas) check(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *GGCanvas) Size() (int, int) { return c.dc.Width(), c.dc.Height() }

func (c *GGCanvas) Resize(width, height int) error {
	if err := c.dc.Resize(width, height); err != nil {
		return fmt.Errorf("resize canvas: %w", err)
	}
	// gg keeps the pixels when the size is unchanged; a canvas resize never does.
	c.dc.Clear()
	return nil
}

func (c *GGCanvas) Clear() { c.dc.Clear() }

func (c *GGCanvas) Save()    { c.dc.Push() }
func (c *GGCanvas) Restore() { c.dc.Pop() }

func (c *GGCanvas) Translate(x, y float64) { c.dc.Translate(x, y) }
func (c *GGCanvas) Rotate(radians float64) { c.dc.Rotate(radians) }

func (c *GGCanvas) PushLayer(opacity float64) { c.dc.PushLayer(gg.BlendNormal, opacity) }
func (c *GGCanvas) PopLayer()                 { c.dc.PopLayer() }

func (c *GGCanvas) applyStroke(s Stroke) {
	c.dc.SetStrokeBrush(gg.Solid(s.Color))
	c.dc.SetLineWidth(s.Width)
	if len(s.Dash) > 0 {
		c.dc.SetDash(s.Dash...)
	} else {
		c.dc.ClearDash()
	}
}

func (c *GGCanvas) StrokeLine(x1, y1, x2, y2 float64, s Stroke) {
	c.applyStroke(s)
	c.dc.DrawLine(x1, y1, x2, y2)
	c.check(c.dc.Stroke())
}

func (c *GGCanvas) StrokeRect(x, y, w, h float64, s Stroke) {
	c.applyStroke(s)
	c.dc.DrawRectangle(x, y, w, h)
	c.check(c.dc.Stroke())
}

func (c *GGCanvas) FillRect(x, y, w, h float64, col gg.RGBA) {
	c.dc.SetFillBrush(gg.Solid(col))
	c.dc.DrawRectangle(x, y, w, h)
	c.check(c.dc.Fill())
}

// linearBrush maps local gradient endpoints to device space, where gg
// evaluates brushes.
func (c *GGCanvas) linearBrush(g LinearGradient) *gg.LinearGradientBrush {
	x0, y0 := c.dc.TransformPoint(g.X0, g.Y0)
	x1, y1 := c.dc.TransformPoint(g.X1, g.Y1)
	brush := gg.NewLinearGradientBrush(x0, y0, x1, y1)
	for _, stop := range g.Stops {
		brush.AddColorStop(stop.Offset, stop.Color)
	}
	return brush
}

func (c *GGCanvas) FillRoundedRect(x, y, w, h, radius float64, g LinearGradient) {
	c.dc.SetFillBrush(c.linearBrush(g))
	c.dc.DrawRoundedRectangle(x, y, w, h, radius)
	c.check(c.dc.Fill())
}

func (c *GGCanvas) FillRadial(cx, cy, radius float64, stops []gg.ColorStop) {
	dx, dy := c.dc.TransformPoint(cx, cy)
	brush := gg.NewRadialGradientBrush(dx, dy, 0, radius)
	for _, stop := range stops {
		brush.AddColorStop(stop.Offset, stop.Color)
	}
	c.dc.SetFillBrush(brush)
	c.dc.DrawRectangle(0, 0, float64(c.dc.Width()), float64(c.dc.Height()))
	c.check(c.dc.Fill())
}

func (c *GGCanvas) FillLinear(g LinearGradient) {
	c.dc.SetFillBrush(c.linearBrush(g))
	c.dc.DrawRectangle(0, 0, float64(c.dc.Width()), float64(c.dc.Height()))
	c.check(c.dc.Fill())
}

type ggTexture struct {
	buf           *gg.ImageBuf
	width, height int
}

func (t *ggTexture) Size() (int, int) { return t.width, t.height }
func (t *ggTexture) Release()         { t.buf = nil }

func (c *GGCanvas) LoadTexture(img image.Image) (Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("load texture: nil image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("load texture: empty image %dx%d", b.Dx(), b.Dy())
	}
	return &ggTexture{buf: gg.ImageBufFromImage(img), width: b.Dx(), height: b.Dy()}, nil
}

func (c *GGCanvas) DrawTexture(tex Texture, x, y, w, h, opacity float64) {
	t, ok := tex.(*ggTexture)
	if !ok || t.buf == nil {
		return
	}
	c.dc.DrawImageEx(t.buf, gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       opacity,
		BlendMode:     gg.BlendNormal,
	})
}
