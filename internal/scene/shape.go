package scene

import (
	"fmt"
	"math"
)

type Kind int

const (
	Artboard Kind = iota
	BoundingBox
)

func (k Kind) String() string {
	switch k {
	case Artboard:
		return "artboard"
	case BoundingBox:
		return "bounding-box"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Shape is one decorative rectangle. X and Y are the centre in surface pixels.
// Only X, Y and Rotation change after seeding.
type Shape struct {
	Kind  Kind
	Index int

	X, Y          float64
	Width, Height float64

	Rotation     float64
	RotationRate float64

	Speed  float64
	VX, VY float64

	Opacity float64
}

// Spinning reports whether the rotation angle animates.
func (s *Shape) Spinning() bool {
	return s.RotationRate != 0
}

// Margins returns how far past an edge the centre travels before the shape
// wraps on each axis. X and Y are the centre, so the shape is fully off the
// surface once the centre is half its rotated extent past the edge; the margin
// is never smaller than the shape's own size along the axis, keeping the
// position within [-size, dim+size]. Spinning shapes use the half diagonal,
// which covers any angle.
func (s *Shape) Margins() (mx, my float64) {
	var hx, hy float64
	if s.Spinning() {
		d := math.Hypot(s.Width, s.Height) / 2
		hx, hy = d, d
	} else {
		sin := math.Abs(math.Sin(s.Rotation))
		cos := math.Abs(math.Cos(s.Rotation))
		hx = (s.Width*cos + s.Height*sin) / 2
		hy = (s.Width*sin + s.Height*cos) / 2
	}
	return math.Max(s.Width, hx), math.Max(s.Height, hy)
}

// Bounds returns the axis-aligned box covering the rotated shape.
func (s *Shape) Bounds() (x, y, w, h float64) {
	sin := math.Abs(math.Sin(s.Rotation))
	cos := math.Abs(math.Cos(s.Rotation))
	w = s.Width*cos + s.Height*sin
	h = s.Width*sin + s.Height*cos
	return s.X - w/2, s.Y - h/2, w, h
}

// opacityForIndex spreads shapes over a few fixed opacity steps.
func opacityForIndex(i int) float64 {
	const steps = 5
	return 0.55 + 0.45*float64(i*3%steps)/float64(steps-1)
}
