package scene

import (
	"fmt"
	"math"
	"sort"
)

// Preset is a complete population and motion description for one look.
type Preset struct {
	Name          string
	Artboards     Population
	BoundingBoxes Population
	Motion        Motion
}

const (
	PresetBlueprint = "blueprint"
	PresetMesh      = "mesh"
)

var down = Range{Min: math.Pi / 2, Max: math.Pi / 2}

// Blueprint is the wireframe look: shapes fall straight down at fixed angles
// and respawn in a new column.
func Blueprint() Preset {
	return Preset{
		Name: PresetBlueprint,
		Artboards: Population{
			Count:         8,
			Width:         Range{80, 200},
			Height:        Range{60, 160},
			Speed:         Range{0.1, 0.4},
			RotationRange: math.Pi / 6,
			Heading:       down,
		},
		BoundingBoxes: Population{
			Count:         12,
			Width:         Range{30, 80},
			Height:        Range{30, 80},
			Speed:         Range{0.15, 0.55},
			RotationRange: math.Pi / 4,
			Heading:       down,
		},
		Motion: Motion{Wrap: WrapVertical},
	}
}

// Mesh is the richer look: shapes drift in any direction, spin slowly and
// wobble, wrapping on both axes.
func Mesh() Preset {
	return Preset{
		Name: PresetMesh,
		Artboards: Population{
			Count:         6,
			Width:         Range{120, 260},
			Height:        Range{90, 200},
			Speed:         Range{0.15, 0.35},
			RotationRange: math.Pi / 8,
			RotationRate:  Range{-0.0015, 0.0015},
			Heading:       Range{0, 2 * math.Pi},
		},
		BoundingBoxes: Population{
			Count:         10,
			Width:         Range{30, 90},
			Height:        Range{30, 90},
			Speed:         Range{0.2, 0.5},
			RotationRange: math.Pi / 4,
			RotationRate:  Range{-0.003, 0.003},
			Heading:       Range{0, 2 * math.Pi},
		},
		Motion: Motion{
			Wrap:           WrapBoth,
			DriftAmplitude: 0.25,
			DriftFrequency: 0.6,
		},
	}
}

var presets = map[string]func() Preset{
	PresetBlueprint: Blueprint,
	PresetMesh:      Mesh,
}

// Lookup returns a fresh copy of the named preset.
func Lookup(name string) (Preset, error) {
	fn, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (available: %v)", name, PresetNames())
	}
	return fn(), nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p Preset) Size() int {
	return p.Artboards.Count + p.BoundingBoxes.Count
}

func (p Preset) Validate() error {
	if err := p.Artboards.Validate(); err != nil {
		return fmt.Errorf("artboards: %w", err)
	}
	if err := p.BoundingBoxes.Validate(); err != nil {
		return fmt.Errorf("bounding boxes: %w", err)
	}
	if p.Motion.DriftAmplitude < 0 {
		return fmt.Errorf("%w: drift amplitude must not be negative", ErrInvalidPopulation)
	}
	return nil
}
