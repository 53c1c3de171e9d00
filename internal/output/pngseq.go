package output

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"artboard-wallpaper/internal/utils"
)

// PNGEncoder is satisfied by engine2D.GGCanvas.
type PNGEncoder interface {
	EncodePNG(w io.Writer) error
}

// PNGSequence writes numbered frames (frame_00001.png, ...) into a directory.
type PNGSequence struct {
	Dir   string
	Limit int // 0 means unlimited

	written int
	log     utils.Logger
}

func NewPNGSequence(dir string, limit int) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &PNGSequence{Dir: dir, Limit: limit, log: utils.Scope("png")}, nil
}

func (s *PNGSequence) Written() int { return s.written }

// Done reports whether Limit frames have been written.
func (s *PNGSequence) Done() bool { return s.Limit > 0 && s.written >= s.Limit }

func (s *PNGSequence) FramePath(n int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("frame_%05d.png", n))
}

func (s *PNGSequence) WriteFrame(img image.Image) error {
	return s.write(func(w io.Writer) error { return png.Encode(w, img) })
}

// WriteCanvas encodes straight from a canvas that can produce PNG itself.
func (s *PNGSequence) WriteCanvas(c PNGEncoder) error {
	return s.write(c.EncodePNG)
}

func (s *PNGSequence) write(encode func(io.Writer) error) error {
	if s.Done() {
		return nil
	}
	path := s.FramePath(s.written + 1)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := encode(bw); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.written++
	s.log.Debug("Wrote %s", path)
	return nil
}

func (s *PNGSequence) Close() error {
	s.log.Info("Wrote %d frame(s) to %s", s.written, s.Dir)
	return nil
}
