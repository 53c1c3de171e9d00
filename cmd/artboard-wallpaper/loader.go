package main

import (
	"image"
	"time"

	"artboard-wallpaper/internal/background"
	"artboard-wallpaper/internal/config"
	"artboard-wallpaper/internal/convert"
	"artboard-wallpaper/internal/debug"
	"artboard-wallpaper/internal/utils"

	"golang.org/x/exp/rand"
)

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cfg *config.Config, f *cliFlags, set map[string]bool) {
	if set["preset"] {
		cfg.Preset = f.preset
	}
	if set["fps"] {
		cfg.FPS = f.fps
	}
	if set["seed"] {
		cfg.Seed = f.seed
	}
	if set["backdrop"] {
		cfg.Backdrop.Path = f.backdrop
	}
	if set["pkg"] {
		cfg.Backdrop.Pkg = f.pkg
	}
}

func buildOptions(cfg *config.Config, debugMode bool) (background.Options, error) {
	preset, err := cfg.ScenePreset()
	if err != nil {
		return background.Options{}, err
	}
	style, err := cfg.Style()
	if err != nil {
		return background.Options{}, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	utils.Debug("Random seed %d", seed)

	opts := background.Options{
		Preset:   preset,
		Style:    style,
		Rand:     rand.New(rand.NewSource(seed)),
		Backdrop: loadBackdrop(cfg.Backdrop),
		Debug:    debug.NewDebugOverlay(),
	}
	opts.Debug.ShowBoundingBoxes = debugMode
	return opts, nil
}

// loadBackdrop returns nil when no backdrop is configured or it cannot be
// read. A missing backdrop never stops the wallpaper.
func loadBackdrop(b config.BackdropConfig) *background.Backdrop {
	if b.Path == "" {
		return nil
	}

	var img image.Image
	var err error
	if b.Pkg != "" {
		img, err = convert.LoadPkgImage(b.Pkg, b.Path)
	} else {
		path := utils.FindTextureFile(b.Path)
		if path == "" {
			utils.Warn("Backdrop %s not found, continuing without it", b.Path)
			return nil
		}
		img, err = convert.LoadImage(path)
	}
	if err != nil {
		utils.Warn("Failed to load backdrop %s: %v", b.Path, err)
		return nil
	}

	bounds := img.Bounds()
	utils.Info("Backdrop %s loaded (%dx%d)", b.Path, bounds.Dx(), bounds.Dy())
	return &background.Backdrop{
		Image:    img,
		TileSize: b.TileSize,
		Period:   b.Period,
		Opacity:  b.Opacity,
	}
}
