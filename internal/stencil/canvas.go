package stencil

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Composition is the output of Composite.
type Composition struct {
	// Canvas is the white canvas with the scaled source pasted on it.
	Canvas *image.NRGBA

	// OriginalWidth and OriginalHeight are the source dimensions.
	OriginalWidth  int
	OriginalHeight int

	// Scale is the effective resize factor applied to the source
	// (fit scale times ScalePercent/100). Reported for display only.
	Scale float64

	// Placement is where the scaled source landed on the canvas. It is not
	// clipped, so it extends past the canvas when the scale exceeds 100%.
	Placement image.Rectangle
}

// Composite scales src to fit spec and centers it on a white canvas.
//
// The fit scale is min(W/w0, H/h0), multiplied by ScalePercent/100. The scaled
// size is rounded to whole pixels and resampled with a Lanczos filter.
// Centering offsets use floor division, so an odd leftover pixel goes to the
// bottom or right edge. Transparent source pixels composite over white.
//
// # Errors
//
//   - ErrInvalidSourceGeometry if src is nil or has zero area
//   - ErrInvalidCanvas if the canvas has zero area or ScalePercent <= 0
func Composite(src image.Image, spec CanvasSpec) (*Composition, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidSourceGeometry)
	}
	b := src.Bounds()
	w0, h0 := b.Dx(), b.Dy()
	if w0 <= 0 || h0 <= 0 {
		return nil, fmt.Errorf("%w: source is %dx%d", ErrInvalidSourceGeometry, w0, h0)
	}
	if spec.Width <= 0 || spec.Height <= 0 || spec.ScalePercent <= 0 {
		return nil, fmt.Errorf("%w: %dx%d at %g%%", ErrInvalidCanvas, spec.Width, spec.Height, spec.ScalePercent)
	}

	fit := math.Min(float64(spec.Width)/float64(w0), float64(spec.Height)/float64(h0))
	scale := fit * spec.ScalePercent / 100

	newW := max(1, int(math.Round(float64(w0)*scale)))
	newH := max(1, int(math.Round(float64(h0)*scale)))

	scaled := imaging.Resize(src, newW, newH, imaging.Lanczos)

	offset := image.Pt(floorDiv(spec.Width-newW, 2), floorDiv(spec.Height-newH, 2))
	canvas := imaging.New(spec.Width, spec.Height, color.White)
	canvas = imaging.Overlay(canvas, scaled, offset, 1.0)

	return &Composition{
		Canvas:         canvas,
		OriginalWidth:  w0,
		OriginalHeight: h0,
		Scale:          scale,
		Placement:      image.Rectangle{Min: offset, Max: offset.Add(image.Pt(newW, newH))},
	}, nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
