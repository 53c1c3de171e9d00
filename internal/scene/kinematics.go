package scene

import "math"

type WrapMode int

const (
	// WrapVertical respawns shapes at the opposite vertical edge with a new x.
	WrapVertical WrapMode = iota
	// WrapBoth wraps each axis independently and keeps the other coordinate.
	WrapBoth
)

func (m WrapMode) String() string {
	if m == WrapBoth {
		return "both"
	}
	return "vertical"
}

// Motion holds the per-preset rules applied on every frame.
type Motion struct {
	Wrap WrapMode
	// DriftAmplitude is the peak extra displacement per frame from the
	// time-driven wobble, in pixels. Zero disables it.
	DriftAmplitude float64
	// DriftFrequency is the wobble angular frequency in radians per second.
	DriftFrequency float64
}

// driftPhaseStep separates neighbouring shapes so they do not wobble in sync.
const driftPhaseStep = 0.7

// Advance moves the shape one frame on a width x height surface. now is the
// wall-clock time in seconds since the scene started. rng only supplies the
// new column for vertical respawns. It reports whether the shape wrapped.
func (s *Shape) Advance(width, height float64, m Motion, now float64, rng Rand) bool {
	dx, dy := s.VX, s.VY
	if m.DriftAmplitude != 0 {
		phase := now*m.DriftFrequency + float64(s.Index)*driftPhaseStep
		dy += math.Cos(phase*0.8) * m.DriftAmplitude
		if m.Wrap == WrapBoth {
			dx += math.Sin(phase) * m.DriftAmplitude
		}
	}
	s.X += dx
	s.Y += dy

	if s.RotationRate != 0 {
		s.Rotation = math.Mod(s.Rotation+s.RotationRate, 2*math.Pi)
	}

	mx, my := s.Margins()
	wrapped := false

	switch {
	case s.Y >= height+my:
		s.Y = -my
		wrapped = true
	case s.Y < -my:
		s.Y = height + my
		wrapped = true
	}
	if wrapped && m.Wrap == WrapVertical {
		s.X = rng.Float64() * width
	}

	if m.Wrap == WrapBoth {
		switch {
		case s.X >= width+mx:
			s.X = -mx
			wrapped = true
		case s.X < -mx:
			s.X = width + mx
			wrapped = true
		}
	}

	return wrapped
}

// AdvanceAll moves every shape one frame in place and returns how many wrapped.
func AdvanceAll(shapes []Shape, width, height float64, m Motion, now float64, rng Rand) int {
	wrapped := 0
	for i := range shapes {
		if shapes[i].Advance(width, height, m, now, rng) {
			wrapped++
		}
	}
	return wrapped
}
