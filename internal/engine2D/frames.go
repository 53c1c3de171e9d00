package engine2D

import (
	"context"
	"time"
)

// FrameFunc receives the frame timestamp.
type FrameFunc func(now time.Time)

type FrameID uint64

// FrameScheduler runs a callback once on the next frame.
type FrameScheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// FrameLoop is a single-threaded FrameScheduler. Callbacks registered during
// a Tick run on the following Tick, never the current one.
type FrameLoop struct {
	next    FrameID
	pending []pendingFrame
}

type pendingFrame struct {
	id FrameID
	fn FrameFunc
}

func NewFrameLoop() *FrameLoop { return &FrameLoop{} }

func (l *FrameLoop) RequestFrame(fn FrameFunc) FrameID {
	l.next++
	l.pending = append(l.pending, pendingFrame{id: l.next, fn: fn})
	return l.next
}

func (l *FrameLoop) CancelFrame(id FrameID) {
	for i, p := range l.pending {
		if p.id == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// Pending reports how many callbacks wait for the next Tick.
func (l *FrameLoop) Pending() int { return len(l.pending) }

// Tick runs every callback queued before the call and returns how many ran.
func (l *FrameLoop) Tick(now time.Time) int {
	batch := l.pending
	l.pending = nil
	for _, p := range batch {
		p.fn(now)
	}
	return len(batch)
}

// Run ticks at fps until ctx is done. before runs ahead of each tick and is
// where hosts deliver queued input; after runs once the tick's callbacks
// return. Run returns when a tick finds nothing scheduled.
func (l *FrameLoop) Run(ctx context.Context, fps int, before func(), after func(now time.Time)) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if before != nil {
				before()
			}
			if l.Tick(now) == 0 {
				return nil
			}
			if after != nil {
				after(now)
			}
		}
	}
}
