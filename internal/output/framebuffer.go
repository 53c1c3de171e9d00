package output

import (
	"image"
	"image/color"

	"artboard-wallpaper/internal/utils"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"
)

const DefaultDevice = "/dev/fb0"

// Sink receives one finished frame per tick.
type Sink interface {
	WriteFrame(img image.Image) error
	Close() error
}

// FramebufferSink blits frames to a Linux framebuffer device.
type FramebufferSink struct {
	dev     *fb.Device
	target  xdraw.Image
	mode    ScaleMode
	scaler  xdraw.Scaler
	scratch *image.RGBA
	log     utils.Logger
}

// OpenFramebuffer opens path (DefaultDevice when empty).
func OpenFramebuffer(path string, mode ScaleMode) (*FramebufferSink, error) {
	if path == "" {
		path = DefaultDevice
	}
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	s := newFramebufferSink(dev, mode)
	s.dev = dev
	b := dev.Bounds()
	s.log.Info("framebuffer %s open, bounds=%dx%d", path, b.Dx(), b.Dy())
	return s, nil
}

func newFramebufferSink(target xdraw.Image, mode ScaleMode) *FramebufferSink {
	return &FramebufferSink{
		target: target,
		mode:   mode,
		scaler: xdraw.ApproxBiLinear,
		log:    utils.Scope("fb"),
	}
}

// Bounds is the device size, used to size the canvas.
func (s *FramebufferSink) Bounds() image.Rectangle {
	return s.target.Bounds()
}

func (s *FramebufferSink) WriteFrame(img image.Image) error {
	dst := s.target.Bounds()
	src := img.Bounds()

	if src.Size() == dst.Size() {
		xdraw.Draw(s.target, dst, img, src.Min, xdraw.Src)
		return nil
	}

	// Compose off-device so letterbox bars and the frame land in one pass.
	if s.scratch == nil || s.scratch.Bounds() != dst {
		s.scratch = image.NewRGBA(dst)
	}
	xdraw.Draw(s.scratch, dst, image.NewUniform(color.Black), image.Point{}, xdraw.Src)
	rect := DestRect(src.Size(), dst, s.mode)
	s.scaler.Scale(s.scratch, rect, img, src, xdraw.Over, nil)
	xdraw.Draw(s.target, dst, s.scratch, dst.Min, xdraw.Src)
	return nil
}

func (s *FramebufferSink) Close() error {
	if s.dev != nil {
		s.dev.Close()
		s.dev = nil
	}
	return nil
}
