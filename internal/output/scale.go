package output

import (
	"fmt"
	"image"
	"math"
)

type ScaleMode string

const (
	ScaleFit     ScaleMode = "fit"
	ScaleFill    ScaleMode = "fill"
	ScaleStretch ScaleMode = "stretch"
)

func ParseScaleMode(s string) (ScaleMode, error) {
	switch ScaleMode(s) {
	case ScaleFit, ScaleFill, ScaleStretch:
		return ScaleMode(s), nil
	case "":
		return ScaleFill, nil
	}
	return "", fmt.Errorf("unknown scaling mode %q (want fit, fill or stretch)", s)
}

// DestRect places a src-sized frame inside dst. Fit letterboxes, fill
// overflows and is clipped by dst, stretch ignores the aspect ratio.
func DestRect(src image.Point, dst image.Rectangle, mode ScaleMode) image.Rectangle {
	if src.X <= 0 || src.Y <= 0 || dst.Empty() {
		return image.Rectangle{}
	}
	if mode == ScaleStretch {
		return dst
	}

	scaleW := float64(dst.Dx()) / float64(src.X)
	scaleH := float64(dst.Dy()) / float64(src.Y)
	var scale float64
	if mode == ScaleFit {
		scale = math.Min(scaleW, scaleH)
	} else {
		scale = math.Max(scaleW, scaleH)
	}

	w := int(math.Round(float64(src.X) * scale))
	h := int(math.Round(float64(src.Y) * scale))
	offX := (dst.Dx() - w) / 2
	offY := (dst.Dy() - h) / 2
	min := dst.Min.Add(image.Pt(offX, offY))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(w, h))}
}
