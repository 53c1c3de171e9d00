package scene

import (
	"errors"
	"fmt"
	"math"
)

// Rand is the random source used for seeding and respawns.
// *golang.org/x/exp/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

var ErrInvalidPopulation = errors.New("invalid population")

type Range struct {
	Min, Max float64
}

func (r Range) Sample(rng Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) Valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) && r.Min <= r.Max
}

// Population describes how one kind of shape is generated.
type Population struct {
	Count  int
	Width  Range
	Height Range
	Speed  Range

	// Rotation is drawn from [0, RotationRange).
	RotationRange float64
	// RotationRate is the per-frame spin in radians; zero keeps rotation static.
	RotationRate Range
	// Heading is the drift direction in radians, 0 pointing right and pi/2 down.
	Heading Range
}

func (p Population) Validate() error {
	if p.Count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidPopulation, p.Count)
	}
	for name, r := range map[string]Range{
		"width":         p.Width,
		"height":        p.Height,
		"speed":         p.Speed,
		"rotation rate": p.RotationRate,
		"heading":       p.Heading,
	} {
		if !r.Valid() {
			return fmt.Errorf("%w: %s range [%g, %g]", ErrInvalidPopulation, name, r.Min, r.Max)
		}
	}
	if p.Width.Min <= 0 || p.Height.Min <= 0 {
		return fmt.Errorf("%w: sizes must be positive", ErrInvalidPopulation)
	}
	if p.Speed.Min < 0 {
		return fmt.Errorf("%w: speed must not be negative", ErrInvalidPopulation)
	}
	if p.RotationRange < 0 {
		return fmt.Errorf("%w: rotation range must not be negative", ErrInvalidPopulation)
	}
	return nil
}

// Seed generates count shapes spread uniformly over a width x height surface.
// indexBase offsets the shape indices so several populations can share one
// index space. A zero-sized surface puts every shape at the origin.
func Seed(rng Rand, width, height float64, kind Kind, pop Population, indexBase int) []Shape {
	shapes := make([]Shape, pop.Count)
	for i := range shapes {
		s := &shapes[i]
		s.Kind = kind
		s.Index = indexBase + i
		s.X = rng.Float64() * width
		s.Y = rng.Float64() * height
		s.Width = pop.Width.Sample(rng)
		s.Height = pop.Height.Sample(rng)
		s.Rotation = rng.Float64() * pop.RotationRange
		s.Speed = pop.Speed.Sample(rng)
		if pop.RotationRate != (Range{}) {
			s.RotationRate = pop.RotationRate.Sample(rng)
		}
		heading := pop.Heading.Sample(rng)
		s.VX = roundZero(math.Cos(heading) * s.Speed)
		s.VY = roundZero(math.Sin(heading) * s.Speed)
		s.Opacity = opacityForIndex(s.Index)
	}
	return shapes
}

// SeedPreset seeds the artboards followed by the bounding boxes.
func SeedPreset(rng Rand, width, height float64, p Preset) []Shape {
	shapes := make([]Shape, 0, p.Artboards.Count+p.BoundingBoxes.Count)
	shapes = append(shapes, Seed(rng, width, height, Artboard, p.Artboards, 0)...)
	shapes = append(shapes, Seed(rng, width, height, BoundingBox, p.BoundingBoxes, p.Artboards.Count)...)
	return shapes
}

// roundZero drops the cos(pi/2) residue so vertical drift stays exactly vertical.
func roundZero(v float64) float64 {
	if math.Abs(v) < 1e-12 {
		return 0
	}
	return v
}
