package engine2D

import (
	"image"

	"github.com/gogpu/gg"
)

type Op string

const (
	OpClear           Op = "clear"
	OpStrokeLine      Op = "stroke-line"
	OpStrokeRect      Op = "stroke-rect"
	OpFillRect        Op = "fill-rect"
	OpFillRoundedRect Op = "fill-rounded-rect"
	OpFillRadial      Op = "fill-radial"
	OpFillLinear      Op = "fill-linear"
	OpDrawTexture     Op = "draw-texture"
)

// Call is one recorded drawing operation with the translation in effect.
type Call struct {
	Op     Op
	X, Y   float64
	Stroke Stroke
}

// Recorder is a Canvas that keeps a log of draw calls instead of producing
// pixels.
type Recorder struct {
	Width, Height int
	Calls         []Call
	Resizes       int

	// Saves counts Save calls; Depth and LayerDepth must return to zero at the
	// end of every frame.
	Saves      int
	Depth      int
	LayerDepth int

	origin []Point
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height, origin: []Point{{}}}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) Resize(width, height int) error {
	r.Width, r.Height = width, height
	r.Resizes++
	return nil
}

func (r *Recorder) record(op Op, s Stroke) {
	o := r.origin[len(r.origin)-1]
	r.Calls = append(r.Calls, Call{Op: op, X: o.X, Y: o.Y, Stroke: s})
}

func (r *Recorder) Clear() { r.record(OpClear, Stroke{}) }

func (r *Recorder) Save() {
	r.Saves++
	r.Depth++
	r.origin = append(r.origin, r.origin[len(r.origin)-1])
}

func (r *Recorder) Restore() {
	if r.Depth == 0 {
		return
	}
	r.Depth--
	r.origin = r.origin[:len(r.origin)-1]
}

func (r *Recorder) Translate(x, y float64) {
	o := &r.origin[len(r.origin)-1]
	o.X += x
	o.Y += y
}

func (r *Recorder) Rotate(float64) {}

func (r *Recorder) PushLayer(float64) { r.LayerDepth++ }
func (r *Recorder) PopLayer()         { r.LayerDepth-- }

func (r *Recorder) StrokeLine(_, _, _, _ float64, s Stroke) { r.record(OpStrokeLine, s) }
func (r *Recorder) StrokeRect(_, _, _, _ float64, s Stroke) { r.record(OpStrokeRect, s) }

func (r *Recorder) FillRect(_, _, _, _ float64, c gg.RGBA) {
	r.record(OpFillRect, Stroke{Color: c})
}

func (r *Recorder) FillRoundedRect(_, _, _, _, _ float64, _ LinearGradient) {
	r.record(OpFillRoundedRect, Stroke{})
}

func (r *Recorder) FillRadial(_, _, _ float64, _ []gg.ColorStop) { r.record(OpFillRadial, Stroke{}) }
func (r *Recorder) FillLinear(LinearGradient)                   { r.record(OpFillLinear, Stroke{}) }

type recordedTexture struct{ w, h int }

func (t recordedTexture) Size() (int, int) { return t.w, t.h }
func (recordedTexture) Release()           {}

func (r *Recorder) LoadTexture(img image.Image) (Texture, error) {
	b := img.Bounds()
	return recordedTexture{b.Dx(), b.Dy()}, nil
}

func (r *Recorder) DrawTexture(Texture, float64, float64, float64, float64, float64) {
	r.record(OpDrawTexture, Stroke{})
}

// Count returns how many recorded calls used op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops the recorded calls and counters but keeps the size.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.Saves = 0
}
