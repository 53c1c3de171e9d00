package engine2D

import (
	"sync"

	"artboard-wallpaper/internal/utils"
)

// Viewport is the host region the surface fills.
type Viewport interface {
	Size() (width, height int)
	// OnResize registers fn and returns the function that removes it.
	OnResize(fn func(width, height int)) (release func())
}

// ResizeSignal fans a resize out to registered listeners. Hosts call
// Dispatch between frames.
type ResizeSignal struct {
	mu        sync.Mutex
	width     int
	height    int
	next      int
	listeners map[int]func(int, int)
}

func NewResizeSignal(width, height int) *ResizeSignal {
	return &ResizeSignal{width: width, height: height, listeners: map[int]func(int, int){}}
}

func (s *ResizeSignal) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *ResizeSignal) OnResize(fn func(int, int)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Listeners reports how many callbacks are registered.
func (s *ResizeSignal) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *ResizeSignal) Dispatch(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	fns := make([]func(int, int), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(width, height)
	}
}

// Surface keeps a canvas sized to its viewport.
type Surface struct {
	canvas   Canvas
	viewport Viewport
	release  func()
	width    int
	height   int
	log      utils.Logger
}

func NewSurface(canvas Canvas, viewport Viewport) *Surface {
	return &Surface{canvas: canvas, viewport: viewport, log: utils.Scope("surface")}
}

// Attach sizes the canvas to the viewport and starts following resizes.
// Calling it again while attached does nothing.
func (s *Surface) Attach() {
	if s.release != nil {
		return
	}
	s.resize(s.viewport.Size())
	s.release = s.viewport.OnResize(s.resize)
}

func (s *Surface) Detach() {
	if s.release == nil {
		return
	}
	s.release()
	s.release = nil
}

func (s *Surface) Attached() bool { return s.release != nil }

// Size returns the recorded pixel size, which is never below 1x1.
func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	s.width, s.height = width, height
	if err := s.canvas.Resize(width, height); err != nil {
		s.log.Warn("Resize to %dx%d failed: %v", width, height, err)
		return
	}
	s.log.Debug("Surface resized to %dx%d", width, height)
}
