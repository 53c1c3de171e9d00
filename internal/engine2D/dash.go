package engine2D

import "math"

type Point struct {
	X, Y float64
}

// Segment is one visible piece of a dashed path.
type Segment struct {
	From, To Point
}

// DashPath splits the polyline through pts into the "on" runs of pattern,
// carrying the dash phase across corners. closed joins the last point back to
// the first. An empty or non-positive pattern returns the path as solid
// segments.
func DashPath(pts []Point, pattern []float64, closed bool) []Segment {
	if len(pts) < 2 {
		return nil
	}
	edges := make([]Segment, 0, len(pts))
	for i := 1; i < len(pts); i++ {
		edges = append(edges, Segment{pts[i-1], pts[i]})
	}
	if closed {
		edges = append(edges, Segment{pts[len(pts)-1], pts[0]})
	}

	total := 0.0
	for _, d := range pattern {
		if d < 0 || math.IsNaN(d) {
			return edges
		}
		total += d
	}
	if total <= 0 {
		return edges
	}
	// An odd pattern repeats once so on/off alternate.
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64{}, pattern...), pattern...)
	}

	var out []Segment
	idx := 0
	left := pattern[0]
	on := true
	for _, e := range edges {
		dx, dy := e.To.X-e.From.X, e.To.Y-e.From.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		pos := 0.0
		for pos < length {
			step := math.Min(left, length-pos)
			if on && step > 0 {
				a, b := pos/length, (pos+step)/length
				out = append(out, Segment{
					From: Point{e.From.X + dx*a, e.From.Y + dy*a},
					To:   Point{e.From.X + dx*b, e.From.Y + dy*b},
				})
			}
			pos += step
			left -= step
			if left <= 0 {
				idx = (idx + 1) % len(pattern)
				left = pattern[idx]
				on = idx%2 == 0
			}
		}
	}
	return out
}

// RectPath returns the corners of an axis-aligned rectangle, clockwise from
// the top-left.
func RectPath(x, y, w, h float64) []Point {
	return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}
