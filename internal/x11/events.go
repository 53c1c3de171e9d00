package x11

import (
	"context"
	"fmt"

	"github.com/jezek/xgb/randr"
)

// Size is a root window size in pixels.
type Size struct {
	Width, Height int
}

// WatchResize delivers root size changes until ctx is done or the connection
// closes. The channel keeps only the latest size, so a slow reader never
// blocks the event goroutine.
func (c *Connection) WatchResize(ctx context.Context) (<-chan Size, error) {
	if err := c.initRandr(); err != nil {
		return nil, err
	}
	if err := randr.SelectInputChecked(c.conn, c.root, randr.NotifyMaskScreenChange).Check(); err != nil {
		return nil, fmt.Errorf("select screen change events: %w", err)
	}

	out := make(chan Size, 1)
	go func() {
		defer close(out)
		for {
			ev, xerr := c.conn.WaitForEvent()
			if ev == nil && xerr == nil {
				return
			}
			if xerr != nil {
				c.log.Warn("X error while watching resizes: %v", xerr)
				continue
			}
			sc, ok := ev.(randr.ScreenChangeNotifyEvent)
			if !ok {
				continue
			}
			size := Size{Width: int(sc.Width), Height: int(sc.Height)}
			c.log.Debug("Screen changed to %dx%d", size.Width, size.Height)
			select {
			case <-ctx.Done():
				return
			default:
			}
			offerLatest(out, size)
		}
	}()
	return out, nil
}

// offerLatest replaces any unread value in ch with v.
func offerLatest(ch chan Size, v Size) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Drain returns the newest pending size, if any, without blocking.
func Drain(ch <-chan Size) (Size, bool) {
	var last Size
	got := false
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				return last, got
			}
			last, got = s, true
		default:
			return last, got
		}
	}
}

// Normalize maps a pointer position inside a w x h area to [-1, 1] on both
// axes, clamping outside it.
func Normalize(x, y, w, h int) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	nx := float64(x)/float64(w)*2 - 1
	ny := float64(y)/float64(h)*2 - 1
	return clampUnit(nx), clampUnit(ny)
}

func clampUnit(v float64) float64 {
	switch {
	case v < -1:
		return -1
	case v > 1:
		return 1
	}
	return v
}
