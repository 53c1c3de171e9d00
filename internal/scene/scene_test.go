package scene

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

type scriptedRand struct {
	vals []float64
	i    int
}

func (r *scriptedRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func inRange(v float64, r Range) bool {
	return v >= r.Min && v <= r.Max
}

func TestSeed_ValuesWithinRanges(t *testing.T) {
	p := Blueprint()
	shapes := SeedPreset(newRand(1), 1920, 1080, p)

	if len(shapes) != p.Size() {
		t.Fatalf("expected %d shapes, got %d", p.Size(), len(shapes))
	}
	for i, s := range shapes {
		if s.Index != i {
			t.Fatalf("shape %d: expected index %d, got %d", i, i, s.Index)
		}
		pop := p.Artboards
		if i >= p.Artboards.Count {
			pop = p.BoundingBoxes
			if s.Kind != BoundingBox {
				t.Fatalf("shape %d: expected bounding box, got %v", i, s.Kind)
			}
		} else if s.Kind != Artboard {
			t.Fatalf("shape %d: expected artboard, got %v", i, s.Kind)
		}
		if s.X < 0 || s.X >= 1920 || s.Y < 0 || s.Y >= 1080 {
			t.Errorf("shape %d: position (%g, %g) outside the surface", i, s.X, s.Y)
		}
		if !inRange(s.Width, pop.Width) || !inRange(s.Height, pop.Height) {
			t.Errorf("shape %d: size %gx%g outside ranges", i, s.Width, s.Height)
		}
		if !inRange(s.Speed, pop.Speed) {
			t.Errorf("shape %d: speed %g outside %v", i, s.Speed, pop.Speed)
		}
		if s.Rotation < 0 || s.Rotation >= pop.RotationRange {
			t.Errorf("shape %d: rotation %g outside [0, %g)", i, s.Rotation, pop.RotationRange)
		}
		if s.VX != 0 || s.VY != s.Speed {
			t.Errorf("shape %d: expected straight-down velocity, got (%g, %g)", i, s.VX, s.VY)
		}
		if s.Spinning() {
			t.Errorf("shape %d: blueprint shapes must not spin", i)
		}
	}
}

func TestSeed_SameSourceSameScene(t *testing.T) {
	a := SeedPreset(newRand(7), 800, 600, Mesh())
	b := SeedPreset(newRand(7), 800, 600, Mesh())
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("shape %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSeed_ScriptedSourceUsesLowerBounds(t *testing.T) {
	pop := Population{
		Count:         1,
		Width:         Range{10, 20},
		Height:        Range{5, 15},
		Speed:         Range{1, 2},
		RotationRange: math.Pi,
		Heading:       down,
	}
	shapes := Seed(&scriptedRand{vals: []float64{0}}, 100, 100, Artboard, pop, 3)
	s := shapes[0]
	if s.X != 0 || s.Y != 0 || s.Width != 10 || s.Height != 5 || s.Speed != 1 || s.Rotation != 0 {
		t.Fatalf("expected lower bounds everywhere, got %+v", s)
	}
	if s.Index != 3 {
		t.Fatalf("expected index base to apply, got %d", s.Index)
	}
}

func TestSeed_ZeroSizedSurface(t *testing.T) {
	p := Blueprint()
	rng := newRand(3)
	shapes := SeedPreset(rng, 0, 0, p)
	if len(shapes) != p.Size() {
		t.Fatalf("expected %d shapes, got %d", p.Size(), len(shapes))
	}
	for i := range shapes {
		if shapes[i].X != 0 || shapes[i].Y != 0 {
			t.Fatalf("shape %d: expected origin on empty surface, got (%g, %g)", i, shapes[i].X, shapes[i].Y)
		}
	}
	for frame := 0; frame < 500; frame++ {
		AdvanceAll(shapes, 0, 0, p.Motion, float64(frame)/60, rng)
	}
	for i, s := range shapes {
		if math.IsNaN(s.X) || math.IsNaN(s.Y) || math.IsInf(s.X, 0) || math.IsInf(s.Y, 0) {
			t.Fatalf("shape %d: non-finite position (%g, %g)", i, s.X, s.Y)
		}
	}
}

func TestAdvance_StaysWithinMargins(t *testing.T) {
	for _, p := range []Preset{Blueprint(), Mesh()} {
		t.Run(p.Name, func(t *testing.T) {
			const w, h = 640.0, 480.0
			rng := newRand(11)
			shapes := SeedPreset(rng, w, h, p)
			for frame := 0; frame < 5000; frame++ {
				AdvanceAll(shapes, w, h, p.Motion, float64(frame)/60, rng)
				for i := range shapes {
					s := &shapes[i]
					mx, my := s.Margins()
					if s.Y < -my || s.Y > h+my {
						t.Fatalf("frame %d shape %d: y=%g escaped [%g, %g]", frame, i, s.Y, -my, h+my)
					}
					if s.X < -mx || s.X > w+mx {
						t.Fatalf("frame %d shape %d: x=%g escaped [%g, %g]", frame, i, s.X, -mx, w+mx)
					}
				}
			}
		})
	}
}

func TestAdvance_WrapMovesBackPastOppositeEdge(t *testing.T) {
	const h = 1000.0
	s := Shape{Width: 50, Height: 100, Speed: 3, VY: 3}
	frames := int(math.Ceil((h + s.Height) / s.Speed))
	rng := newRand(5)

	wrapped := false
	for i := 0; i < frames; i++ {
		before := s.Y
		if s.Advance(500, h, Motion{Wrap: WrapVertical}, 0, rng) {
			wrapped = true
			if s.Y >= before-h {
				t.Fatalf("expected post-wrap y %g < pre-wrap y %g minus %g", s.Y, before, h)
			}
		}
	}
	if !wrapped {
		t.Fatalf("expected a wrap within %d frames, y=%g", frames, s.Y)
	}
}

func TestAdvance_EightArtboardsScenario(t *testing.T) {
	pop := Population{
		Count:   8,
		Width:   Range{80, 200},
		Height:  Range{100, 100},
		Speed:   Range{1, 1},
		Heading: down,
	}
	rng := newRand(2024)
	shapes := Seed(rng, 1600, 1000, Artboard, pop, 0)
	wrapped := make([]bool, len(shapes))

	for frame := 0; frame < 1100; frame++ {
		for i := range shapes {
			if shapes[i].Advance(1600, 1000, Motion{Wrap: WrapVertical}, 0, rng) {
				wrapped[i] = true
			}
		}
	}
	for i, s := range shapes {
		if !wrapped[i] {
			t.Errorf("artboard %d never wrapped, y=%g", i, s.Y)
		}
		if s.Y < -100 || s.Y > 1100 {
			t.Errorf("artboard %d: y=%g outside [-100, 1100]", i, s.Y)
		}
	}
}

func TestAdvance_VerticalRespawnPicksNewColumn(t *testing.T) {
	s := Shape{X: 10, Y: 1099.5, Width: 20, Height: 100, VY: 1}
	rng := &scriptedRand{vals: []float64{0.25}}
	if !s.Advance(800, 1000, Motion{Wrap: WrapVertical}, 0, rng) {
		t.Fatalf("expected wrap")
	}
	if s.Y != -100 {
		t.Fatalf("expected respawn at -100, got %g", s.Y)
	}
	if s.X != 200 {
		t.Fatalf("expected new column 200, got %g", s.X)
	}
}

func TestAdvance_BothAxesKeepsOrthogonalCoordinate(t *testing.T) {
	s := Shape{X: 859, Y: 300, Width: 40, Height: 20, VX: 2}
	if !s.Advance(800, 600, Motion{Wrap: WrapBoth}, 0, nil) {
		t.Fatalf("expected wrap on x")
	}
	if s.X != -40 {
		t.Fatalf("expected x=-40, got %g", s.X)
	}
	if s.Y != 300 {
		t.Fatalf("expected y to stay 300, got %g", s.Y)
	}

	s = Shape{X: 100, Y: -19.5, Width: 40, Height: 20, VY: -1}
	if !s.Advance(800, 600, Motion{Wrap: WrapBoth}, 0, nil) {
		t.Fatalf("expected wrap on y")
	}
	if s.Y != 620 || s.X != 100 {
		t.Fatalf("expected (100, 620), got (%g, %g)", s.X, s.Y)
	}
}

func TestAdvance_OnlyPositionAndRotationChange(t *testing.T) {
	p := Mesh()
	rng := newRand(9)
	shapes := SeedPreset(rng, 1280, 720, p)
	before := make([]Shape, len(shapes))
	copy(before, shapes)

	for frame := 0; frame < 300; frame++ {
		AdvanceAll(shapes, 1280, 720, p.Motion, float64(frame)/60, rng)
	}
	for i := range shapes {
		a, b := before[i], shapes[i]
		if a.Width != b.Width || a.Height != b.Height || a.Speed != b.Speed ||
			a.RotationRate != b.RotationRate || a.VX != b.VX || a.VY != b.VY ||
			a.Opacity != b.Opacity || a.Index != b.Index || a.Kind != b.Kind {
			t.Fatalf("shape %d: immutable field changed: %+v -> %+v", i, a, b)
		}
	}
}

func TestMargins(t *testing.T) {
	s := Shape{Width: 40, Height: 20}
	if mx, my := s.Margins(); mx != 40 || my != 20 {
		t.Fatalf("expected (40, 20), got (%g, %g)", mx, my)
	}

	// A quarter turn makes the half extents (10, 20); the size floor wins.
	s.Rotation = math.Pi / 2
	if mx, my := s.Margins(); math.Abs(mx-40) > 1e-9 || math.Abs(my-20) > 1e-9 {
		t.Fatalf("expected (40, 20) after quarter turn, got (%g, %g)", mx, my)
	}

	// A long thin shape turned upright needs more than its height.
	thin := Shape{Width: 300, Height: 10, Rotation: math.Pi / 2}
	if _, my := thin.Margins(); math.Abs(my-150) > 1e-9 {
		t.Fatalf("expected half extent 150 for upright thin shape, got %g", my)
	}

	s.RotationRate = 0.01
	half := math.Hypot(40, 20) / 2
	if mx, my := s.Margins(); mx != 40 || my != half {
		t.Fatalf("expected (40, %g) for spinning shape, got (%g, %g)", half, mx, my)
	}
}

func TestAdvance_RotatedBlueprintScenario(t *testing.T) {
	pop := Blueprint().Artboards
	pop.Height = Range{100, 100}
	pop.Speed = Range{1, 1}
	const w, h = 1600.0, 1000.0

	for seed := uint64(1); seed <= 50; seed++ {
		rng := newRand(seed)
		shapes := Seed(rng, w, h, Artboard, pop, 0)
		wrapped := make([]bool, len(shapes))

		for frame := 0; frame < 1100; frame++ {
			for i := range shapes {
				if shapes[i].Advance(w, h, Motion{Wrap: WrapVertical}, 0, rng) {
					wrapped[i] = true
				}
				if y := shapes[i].Y; y < -100 || y > 1100 {
					t.Fatalf("seed %d frame %d artboard %d: y=%g outside [-100, 1100]", seed, frame, i, y)
				}
			}
		}
		for i, s := range shapes {
			if !wrapped[i] {
				t.Errorf("seed %d: artboard %d (rotation %g) never wrapped, y=%g", seed, i, s.Rotation, s.Y)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	for _, name := range PresetNames() {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %q: %v", name, err)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("preset %q invalid: %v", name, err)
		}
	}
	if _, err := Lookup("nope"); err == nil {
		t.Fatalf("expected unknown preset error")
	}
}

func TestPopulationValidate(t *testing.T) {
	p := Blueprint().Artboards
	p.Width = Range{50, 10}
	if err := p.Validate(); err == nil {
		t.Fatalf("expected inverted range to fail")
	}
	p = Blueprint().Artboards
	p.Height.Min = 0
	if err := p.Validate(); err == nil {
		t.Fatalf("expected zero size to fail")
	}
}
