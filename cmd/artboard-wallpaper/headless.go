package main

import (
	"context"
	"fmt"
	"time"

	"artboard-wallpaper/internal/background"
	"artboard-wallpaper/internal/engine2D"
	"artboard-wallpaper/internal/output"
	"artboard-wallpaper/internal/utils"
)

// runFramebuffer renders with the software canvas and blits every frame to
// the framebuffer. A zero size renders at the device resolution.
func runFramebuffer(ctx context.Context, opts background.Options, fps int, device string, mode output.ScaleMode, size [2]int) error {
	sink, err := output.OpenFramebuffer(device, mode)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", device, err)
	}
	defer sink.Close()

	w, h := size[0], size[1]
	if w <= 0 || h <= 0 {
		b := sink.Bounds()
		w, h = b.Dx(), b.Dy()
	}

	canvas := engine2D.NewGGCanvas(w, h)
	defer canvas.Close()

	return runHeadless(ctx, canvas, opts, fps, func(now time.Time) (bool, error) {
		return false, sink.WriteFrame(canvas.Image())
	})
}

// runPNG renders frames into dir as fast as fps allows, then stops.
func runPNG(ctx context.Context, opts background.Options, fps int, dir string, frames, width, height int) error {
	if frames <= 0 {
		return fmt.Errorf("-frames must be positive, got %d", frames)
	}
	seq, err := output.NewPNGSequence(dir, frames)
	if err != nil {
		return err
	}
	defer seq.Close()

	canvas := engine2D.NewGGCanvas(width, height)
	defer canvas.Close()

	return runHeadless(ctx, canvas, opts, fps, func(now time.Time) (bool, error) {
		if err := seq.WriteCanvas(canvas); err != nil {
			return true, err
		}
		return seq.Done(), nil
	})
}

// runHeadless mounts an animator on a fixed-size software canvas and calls
// emit after each frame until it reports done or fails.
func runHeadless(ctx context.Context, canvas *engine2D.GGCanvas, opts background.Options, fps int, emit func(now time.Time) (bool, error)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, h := canvas.Size()
	viewport := engine2D.NewResizeSignal(w, h)
	frames := engine2D.NewFrameLoop()

	animator := background.New(canvas, viewport, frames, opts)
	animator.Mount()
	defer animator.Unmount()
	if animator.State() != background.Running {
		return fmt.Errorf("animator did not start")
	}

	var emitErr error
	err := frames.Run(ctx, fps, nil, func(now time.Time) {
		if err := canvas.Err(); err != nil {
			utils.Warn("Canvas error: %v", err)
		}
		done, err := emit(now)
		if err != nil {
			emitErr = err
			cancel()
			return
		}
		if done {
			cancel()
		}
	})
	if emitErr != nil {
		return emitErr
	}
	utils.Info("Rendered %d frames", animator.Frames())
	if err == context.Canceled {
		return nil
	}
	return err
}
