package main

import (
	"context"
	"time"

	"artboard-wallpaper/internal/background"
	"artboard-wallpaper/internal/engine2D"
	"artboard-wallpaper/internal/utils"
	"artboard-wallpaper/internal/x11"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type windowOptions struct {
	width, height int
	// desktop sizes an undecorated window to the X11 root and follows
	// screen changes.
	desktop bool
}

type Window struct {
	opts    background.Options
	fps     int
	desktop bool

	x       *x11.Connection
	resizes <-chan x11.Size
	rootW   int
	rootH   int

	signal   *engine2D.ResizeSignal
	frames   *engine2D.FrameLoop
	animator *background.Animator
}

func runWindow(ctx context.Context, opts background.Options, fps int, wo windowOptions) {
	rl.SetTraceLogCallback(utils.RaylibLogCallback)

	window := &Window{opts: opts, fps: fps, desktop: wo.desktop}
	width, height := wo.width, wo.height

	flags := uint32(rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if wo.desktop {
		if err := window.connectX11(ctx); err != nil {
			utils.Warn("Desktop mode unavailable, opening a normal window: %v", err)
			window.desktop = false
		} else {
			width, height = window.rootW, window.rootH
			flags |= rl.FlagWindowUndecorated
		}
	}
	if !window.desktop {
		flags |= rl.FlagWindowResizable
	}

	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(width), int32(height), "Artboard Wallpaper")
	defer rl.CloseWindow()
	if window.desktop {
		rl.SetWindowPosition(0, 0)
	}

	window.Run(ctx)

	if window.x != nil {
		window.x.Close()
	}
}

func (window *Window) connectX11(ctx context.Context) error {
	conn, err := x11.Connect()
	if err != nil {
		return err
	}
	w, h, err := conn.RootSize()
	if err != nil {
		conn.Close()
		return err
	}
	window.x = conn
	window.rootW, window.rootH = w, h

	if monitors, err := conn.Monitors(); err == nil {
		for _, m := range monitors {
			utils.Debug("Monitor %s: %dx%d+%d+%d", m.Name, m.Width, m.Height, m.X, m.Y)
		}
	}

	resizes, err := conn.WatchResize(ctx)
	if err != nil {
		utils.Warn("Not following screen changes: %v", err)
	} else {
		window.resizes = resizes
	}
	return nil
}

func (window *Window) Run(ctx context.Context) {
	canvas, err := engine2D.NewRaylibCanvas()
	if err != nil {
		utils.Warn("No drawable canvas: %v", err)
	}

	window.signal = engine2D.NewResizeSignal(rl.GetScreenWidth(), rl.GetScreenHeight())
	window.frames = engine2D.NewFrameLoop()

	opts := window.opts
	opts.Pointer = window.pointer
	if canvas == nil {
		window.animator = background.New(nil, window.signal, window.frames, opts)
	} else {
		window.animator = background.New(canvas, window.signal, window.frames, opts)
	}
	window.animator.Mount()
	defer window.animator.Unmount()

	rl.SetTargetFPS(int32(window.fps))

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		window.Update()

		rl.BeginDrawing()
		window.frames.Tick(time.Now())
		rl.EndDrawing()
	}
}

// Update delivers resizes and input ahead of the frame callbacks.
func (window *Window) Update() {
	if window.resizes != nil {
		if size, ok := x11.Drain(window.resizes); ok {
			window.rootW, window.rootH = size.Width, size.Height
			rl.SetWindowSize(size.Width, size.Height)
			window.signal.Dispatch(size.Width, size.Height)
		}
	}
	if rl.IsWindowResized() {
		window.signal.Dispatch(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	if rl.IsKeyPressed(rl.KeyF8) {
		if window.opts.Debug != nil {
			window.opts.Debug.Toggle()
		}
	}
}

// pointer reads the global X11 pointer on the desktop, where the wallpaper
// never has focus, and raylib's mouse otherwise.
func (window *Window) pointer() (float64, float64, bool) {
	if window.x != nil {
		x, y, err := window.x.GlobalPointer()
		if err != nil {
			return 0, 0, false
		}
		nx, ny := x11.Normalize(x, y, window.rootW, window.rootH)
		return nx, ny, true
	}
	if !rl.IsCursorOnScreen() {
		return 0, 0, false
	}
	m := rl.GetMousePosition()
	nx, ny := x11.Normalize(int(m.X), int(m.Y), rl.GetScreenWidth(), rl.GetScreenHeight())
	return nx, ny, true
}
