package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"artboard-wallpaper/internal/config"
	"artboard-wallpaper/internal/output"
	"artboard-wallpaper/internal/utils"

	"github.com/gogpu/gg"
)

type cliFlags struct {
	configPath string
	preset     string
	backend    string
	width      int
	height     int
	fps        int
	frames     int
	out        string
	seed       uint64
	backdrop   string
	pkg        string
	fbDevice   string
	scaling    string
	assets     string
	debug      bool
	logLevel   string
	dumpConfig bool
}

func parseFlags() (*cliFlags, map[string]bool) {
	f := &cliFlags{}
	flag.StringVar(&f.configPath, "config", "", "Path to a YAML config (default: search for config.yaml)")
	flag.StringVar(&f.preset, "preset", "", "Scene preset: blueprint or mesh")
	flag.StringVar(&f.backend, "backend", "window", "Host: window, desktop, framebuffer or png")
	flag.IntVar(&f.width, "width", 1280, "Canvas width for window, framebuffer and png hosts")
	flag.IntVar(&f.height, "height", 720, "Canvas height for window, framebuffer and png hosts")
	flag.IntVar(&f.fps, "fps", 0, "Frames per second (default from config)")
	flag.IntVar(&f.frames, "frames", 120, "Frames to render with -backend png")
	flag.StringVar(&f.out, "out", "frames", "Output directory for -backend png")
	flag.Uint64Var(&f.seed, "seed", 0, "Random seed (0 seeds from the clock)")
	flag.StringVar(&f.backdrop, "backdrop", "", "Backdrop texture (png, jpg, webp, bmp or .tex)")
	flag.StringVar(&f.pkg, "pkg", "", "Read -backdrop from inside this scene.pkg")
	flag.StringVar(&f.fbDevice, "fb", output.DefaultDevice, "Framebuffer device for -backend framebuffer")
	flag.StringVar(&f.scaling, "scaling", "fill", "Framebuffer scaling: fit, fill or stretch")
	flag.StringVar(&f.assets, "assets", "", "Extra directory searched for textures and config")
	flag.BoolVar(&f.debug, "debug", false, "Enable debug logging and bounding boxes")
	flag.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flag.BoolVar(&f.dumpConfig, "dump-config", false, "Print the effective config as YAML and exit")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set
}

func setupLogging(f *cliFlags) error {
	level, err := utils.ParseLevel(f.logLevel)
	if err != nil {
		return err
	}
	utils.CurrentLevel = level
	if f.debug {
		utils.CurrentLevel = utils.LevelDebug
	}
	utils.AssetsDir = f.assets
	gg.SetLogger(utils.NewSlogLogger("gg"))
	return nil
}

func main() {
	f, set := parseFlags()
	if err := setupLogging(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, source, err := config.Load(f.configPath)
	if err != nil {
		utils.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	if source != "" {
		utils.Info("Loaded config from %s", source)
	}
	applyFlags(cfg, f, set)
	if err := cfg.Validate(); err != nil {
		utils.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	if f.dumpConfig {
		data, err := cfg.Marshal()
		if err != nil {
			utils.Error("Failed to render config: %v", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	opts, err := buildOptions(cfg, f.debug)
	if err != nil {
		utils.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	utils.Info("--- Artboard Wallpaper (%s, %s) ---", cfg.Preset, f.backend)

	switch f.backend {
	case "window":
		runWindow(ctx, opts, cfg.FPS, windowOptions{width: f.width, height: f.height})
	case "desktop":
		runWindow(ctx, opts, cfg.FPS, windowOptions{width: f.width, height: f.height, desktop: true})
	case "framebuffer":
		mode, err := output.ParseScaleMode(f.scaling)
		if err != nil {
			utils.Error("%v", err)
			os.Exit(1)
		}
		size := [2]int{}
		if set["width"] || set["height"] {
			size = [2]int{f.width, f.height}
		}
		err = runFramebuffer(ctx, opts, cfg.FPS, f.fbDevice, mode, size)
		exitOnError(err)
	case "png":
		err = runPNG(ctx, opts, cfg.FPS, f.out, f.frames, f.width, f.height)
		exitOnError(err)
	default:
		utils.Error("Unknown backend %q (want window, desktop, framebuffer or png)", f.backend)
		os.Exit(2)
	}
}

func exitOnError(err error) {
	if err == nil || err == context.Canceled {
		return
	}
	utils.Error("%v", err)
	os.Exit(1)
}
