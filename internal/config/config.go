package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"artboard-wallpaper/internal/background"
	"artboard-wallpaper/internal/engine2D"
	"artboard-wallpaper/internal/scene"

	"github.com/gogpu/gg"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PopulationConfig overrides one kind of shape. Unset fields keep the preset
// value. Angles are in degrees.
type PopulationConfig struct {
	SizeMin       *Size    `yaml:"size_min,omitempty"`
	SizeMax       *Size    `yaml:"size_max,omitempty"`
	SpeedMin      *float64 `yaml:"speed_min,omitempty"`
	SpeedMax      *float64 `yaml:"speed_max,omitempty"`
	RotationRange *float64 `yaml:"rotation_range,omitempty"`
	// RotationRate is the largest spin per frame; shapes draw from
	// [-rate, rate].
	RotationRate *float64 `yaml:"rotation_rate,omitempty"`
}

type SceneConfig struct {
	ArtboardCount    *int             `yaml:"artboard_count,omitempty"`
	BoundingBoxCount *int             `yaml:"bounding_box_count,omitempty"`
	Artboards        PopulationConfig `yaml:"artboards,omitempty"`
	BoundingBoxes    PopulationConfig `yaml:"bounding_boxes,omitempty"`

	GridPitch      *float64  `yaml:"grid_pitch,omitempty"`
	Palette        []string  `yaml:"palette,omitempty"`
	Guides         []float64 `yaml:"guides,omitempty"`
	OverlayAlpha   *float64  `yaml:"overlay_alpha,omitempty"`
	DriftAmplitude *float64  `yaml:"drift_amplitude,omitempty"`
	DriftFrequency *float64  `yaml:"drift_frequency,omitempty"`
	Parallax       *float64  `yaml:"parallax,omitempty"`
}

type BackdropConfig struct {
	// Path is a PNG/JPEG/WebP/BMP/.tex file, or an entry name inside Pkg.
	Path     string        `yaml:"path,omitempty"`
	Pkg      string        `yaml:"pkg,omitempty"`
	TileSize float64       `yaml:"tile_size"`
	Period   time.Duration `yaml:"period"`
	Opacity  float64       `yaml:"opacity"`
}

type Config struct {
	Preset  string  `yaml:"preset"`
	FPS     int     `yaml:"fps"`
	Opacity float64 `yaml:"opacity"`
	// Seed fixes the random source; zero seeds from the clock.
	Seed     uint64         `yaml:"seed,omitempty"`
	Backdrop BackdropConfig `yaml:"backdrop"`
	Scene    SceneConfig    `yaml:"scene,omitempty"`
}

const (
	DefaultFPS     = 60
	DefaultOpacity = 0.4
)

func DefaultConfig() *Config {
	return &Config{
		Preset:  scene.PresetBlueprint,
		FPS:     DefaultFPS,
		Opacity: DefaultOpacity,
		Backdrop: BackdropConfig{
			TileSize: 800,
			Period:   20 * time.Second,
			Opacity:  0.1,
		},
	}
}

func (c *Config) Validate() error {
	if _, err := scene.Lookup(c.Preset); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("%w: fps %d outside [1, 240]", ErrInvalid, c.FPS)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("%w: opacity %g outside [0, 1]", ErrInvalid, c.Opacity)
	}
	if b := c.Backdrop; b.Path != "" {
		if b.TileSize != 0 && b.TileSize < engine2D.MinTileSize {
			return fmt.Errorf("%w: backdrop.tile_size %g below %d (0 uses the texture width)", ErrInvalid, b.TileSize, engine2D.MinTileSize)
		}
		if b.Period < 0 {
			return fmt.Errorf("%w: backdrop.period must not be negative", ErrInvalid)
		}
		if b.Opacity < 0 || b.Opacity > 1 {
			return fmt.Errorf("%w: backdrop.opacity %g outside [0, 1]", ErrInvalid, b.Opacity)
		}
	}
	if _, err := c.ScenePreset(); err != nil {
		return err
	}
	if _, err := c.Style(); err != nil {
		return err
	}
	return nil
}

// ScenePreset resolves the named preset with the scene overrides applied.
func (c *Config) ScenePreset() (scene.Preset, error) {
	p, err := scene.Lookup(c.Preset)
	if err != nil {
		return scene.Preset{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	s := c.Scene
	if s.ArtboardCount != nil {
		p.Artboards.Count = *s.ArtboardCount
	}
	if s.BoundingBoxCount != nil {
		p.BoundingBoxes.Count = *s.BoundingBoxCount
	}
	applyPopulation(&p.Artboards, s.Artboards)
	applyPopulation(&p.BoundingBoxes, s.BoundingBoxes)
	if s.DriftAmplitude != nil {
		p.Motion.DriftAmplitude = *s.DriftAmplitude
	}
	if s.DriftFrequency != nil {
		p.Motion.DriftFrequency = *s.DriftFrequency
	}
	if err := p.Validate(); err != nil {
		return scene.Preset{}, fmt.Errorf("%w: scene: %v", ErrInvalid, err)
	}
	return p, nil
}

func applyPopulation(p *scene.Population, o PopulationConfig) {
	if o.SizeMin != nil {
		p.Width.Min, p.Height.Min = o.SizeMin.Width, o.SizeMin.Height
	}
	if o.SizeMax != nil {
		p.Width.Max, p.Height.Max = o.SizeMax.Width, o.SizeMax.Height
	}
	if o.SpeedMin != nil {
		p.Speed.Min = *o.SpeedMin
	}
	if o.SpeedMax != nil {
		p.Speed.Max = *o.SpeedMax
	}
	if o.RotationRange != nil {
		p.RotationRange = radians(*o.RotationRange)
	}
	if o.RotationRate != nil {
		r := math.Abs(radians(*o.RotationRate))
		p.RotationRate = scene.Range{Min: -r, Max: r}
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Style resolves the look for the preset with the overrides applied.
func (c *Config) Style() (background.Style, error) {
	st := background.StyleFor(c.Preset)
	st.Opacity = c.Opacity
	s := c.Scene
	if s.GridPitch != nil {
		st.GridPitch = *s.GridPitch
	}
	if len(s.Palette) > 0 {
		palette := make([]gg.RGBA, 0, len(s.Palette))
		for i, entry := range s.Palette {
			col, err := background.ParseColor(entry)
			if err != nil {
				return background.Style{}, fmt.Errorf("%w: scene.palette[%d]: %v", ErrInvalid, i, err)
			}
			palette = append(palette, col)
		}
		st.Palette = palette
	}
	if s.Guides != nil {
		st.Guides = s.Guides
	}
	if s.OverlayAlpha != nil {
		st.OverlayAlpha = *s.OverlayAlpha
	}
	if s.Parallax != nil {
		st.Parallax = *s.Parallax
	}
	if err := st.Validate(); err != nil {
		return background.Style{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return st, nil
}
