package background

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"artboard-wallpaper/internal/engine2D"
	"artboard-wallpaper/internal/scene"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

type ArtboardLook int

const (
	// LookOutline draws a stroked frame with square corner handles.
	LookOutline ArtboardLook = iota
	// LookGradient fills a rounded rectangle with a palette gradient.
	LookGradient
)

type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	// OverlayLinear washes the surface diagonally from the first palette
	// colour through transparent to the second.
	OverlayLinear
	// OverlayRadial tints the surface from the centre outwards.
	OverlayRadial
)

type ArtboardStyle struct {
	Look        ArtboardLook
	Outline     engine2D.Stroke
	HandleSize  float64
	HandleColor gg.RGBA
	Radius      float64
	// GradientAlpha is the alpha of the leading gradient stop.
	GradientAlpha float64
}

type BoxStyle struct {
	Outline engine2D.Stroke
	Cross   engine2D.Stroke
}

type Style struct {
	// Background fills the surface after each clear. Transparent skips it.
	Background gg.RGBA
	// Opacity applies to the grid, guides and shapes as one layer.
	Opacity float64

	GridPitch  float64
	GridStroke engine2D.Stroke

	// Guides are fractions of the surface at which alignment lines are drawn
	// on both axes.
	Guides      []float64
	GuideStroke engine2D.Stroke

	Artboard ArtboardStyle
	Box      BoxStyle

	// Palette colours are cycled by shape index.
	Palette []gg.RGBA

	Overlay      OverlayKind
	OverlayAlpha float64

	// Parallax is the largest pointer-driven shift in pixels.
	Parallax float64
}

var (
	figma     = OKLCH(0.68, 0.28, 295, 1)
	coral     = OKLCH(0.72, 0.24, 10, 1)
	tangerine = OKLCH(0.76, 0.22, 40, 1)
)

// DefaultPalette is the site's purple, coral and tangerine.
func DefaultPalette() []gg.RGBA {
	return []gg.RGBA{figma, coral, tangerine}
}

func BlueprintStyle() Style {
	return Style{
		Opacity:    0.4,
		GridPitch:  60,
		GridStroke: engine2D.Stroke{Color: rgba(168, 85, 247, 0.03), Width: 1},
		Artboard: ArtboardStyle{
			Look:        LookOutline,
			Outline:     engine2D.Stroke{Color: rgba(168, 85, 247, 0.08), Width: 2},
			HandleSize:  8,
			HandleColor: rgba(168, 85, 247, 0.12),
		},
		Box: BoxStyle{
			Outline: engine2D.Stroke{Color: rgba(251, 146, 60, 0.1), Width: 1.5, Dash: []float64{4, 4}},
			Cross:   engine2D.Stroke{Color: rgba(236, 72, 153, 0.08), Width: 1},
		},
		Palette:      DefaultPalette(),
		Overlay:      OverlayLinear,
		OverlayAlpha: 0.05,
	}
}

func MeshStyle() Style {
	s := BlueprintStyle()
	s.Guides = []float64{0.382, 0.618}
	s.GuideStroke = engine2D.Stroke{Color: rgba(236, 72, 153, 0.05), Width: 1, Dash: []float64{8, 6}}
	s.Artboard.Look = LookGradient
	s.Artboard.Radius = 10
	s.Artboard.GradientAlpha = 0.14
	s.Artboard.Outline = engine2D.Stroke{Color: rgba(168, 85, 247, 0.06), Width: 1}
	s.Overlay = OverlayRadial
	s.OverlayAlpha = 0.08
	s.Parallax = 12
	return s
}

// StyleFor returns the default look that goes with a preset.
func StyleFor(presetName string) Style {
	if presetName == scene.PresetMesh {
		return MeshStyle()
	}
	return BlueprintStyle()
}

func (s Style) Validate() error {
	if len(s.Palette) == 0 {
		return fmt.Errorf("palette must not be empty")
	}
	if s.GridPitch < 0 {
		return fmt.Errorf("grid pitch must not be negative")
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("opacity %g outside [0, 1]", s.Opacity)
	}
	if s.OverlayAlpha < 0 || s.OverlayAlpha > 1 {
		return fmt.Errorf("overlay alpha %g outside [0, 1]", s.OverlayAlpha)
	}
	for _, g := range s.Guides {
		if g <= 0 || g >= 1 {
			return fmt.Errorf("guide ratio %g outside (0, 1)", g)
		}
	}
	return nil
}

// PaletteColor returns the colour assigned to a shape index.
func (s Style) PaletteColor(index int) gg.RGBA {
	if len(s.Palette) == 0 {
		return gg.Transparent
	}
	return s.Palette[index%len(s.Palette)]
}

func rgba(r, g, b uint8, a float64) gg.RGBA {
	return gg.RGBA{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: a}
}

// OKLCH converts an OKLCH colour, clamped into sRGB.
func OKLCH(l, c, h, alpha float64) gg.RGBA {
	col := colorful.OkLch(l, c, h).Clamped()
	return gg.RGBA{R: col.R, G: col.G, B: col.B, A: alpha}
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa" and
// "oklch(L C H)" or "oklch(L C H / A)" with L in [0, 1] or a percentage and H
// in degrees.
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "oklch(") && strings.HasSuffix(s, ")"):
		return parseOKLCH(strings.TrimSuffix(strings.TrimPrefix(s, "oklch("), ")"))
	}
	return gg.RGBA{}, fmt.Errorf("unsupported colour %q", s)
}

func parseHex(s string) (gg.RGBA, error) {
	alpha := 1.0
	switch len(s) {
	case 4:
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return gg.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	default:
		return gg.RGBA{}, fmt.Errorf("colour %q: bad hex length", s)
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return gg.RGBA{R: col.R, G: col.G, B: col.B, A: alpha}, nil
}

func parseOKLCH(body string) (gg.RGBA, error) {
	alpha := 1.0
	if main, a, ok := strings.Cut(body, "/"); ok {
		v, err := parseComponent(a)
		if err != nil {
			return gg.RGBA{}, fmt.Errorf("oklch alpha: %w", err)
		}
		alpha = v
		body = main
	}
	fields := strings.Fields(body)
	if len(fields) != 3 {
		return gg.RGBA{}, fmt.Errorf("oklch(%s): expected 3 components", body)
	}
	var v [3]float64
	for i, f := range fields {
		n, err := parseComponent(f)
		if err != nil {
			return gg.RGBA{}, fmt.Errorf("oklch(%s): %w", body, err)
		}
		v[i] = n
	}
	if v[0] < 0 || v[0] > 1 || v[1] < 0 || alpha < 0 || alpha > 1 {
		return gg.RGBA{}, fmt.Errorf("oklch(%s): component out of range", body)
	}
	return OKLCH(v[0], v[1], math.Mod(v[2], 360), alpha), nil
}

func parseComponent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return v / 100, err
	}
	return strconv.ParseFloat(s, 64)
}
