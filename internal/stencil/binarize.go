package stencil

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// Binarize converts a grayscale raster to a Bitmap using the given mode.
// The output always has the same dimensions as gray.
func Binarize(gray *image.Gray, mode Mode) (*Bitmap, error) {
	switch m := mode.(type) {
	case OrderedDither:
		return orderedDither(gray), nil
	case ErrorDiffusion:
		return errorDiffusion(gray, m.Serpentine), nil
	case HalftoneLattice:
		return halftoneLattice(gray, m), nil
	case nil:
		return nil, fmt.Errorf("%w: nil mode", ErrUnknownMode)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownMode, mode)
	}
}

// bayer8 is the classic dispersed 8x8 Bayer index matrix, values 0..63.
var bayer8 = [8][8]uint8{
	{0, 32, 8, 40, 2, 34, 10, 42},
	{48, 16, 56, 24, 50, 18, 58, 26},
	{12, 44, 4, 36, 14, 46, 6, 38},
	{60, 28, 52, 20, 62, 30, 54, 22},
	{3, 35, 11, 43, 1, 33, 9, 41},
	{51, 19, 59, 27, 49, 17, 57, 25},
	{15, 47, 7, 39, 13, 45, 5, 37},
	{63, 31, 55, 23, 61, 29, 53, 21},
}

// bayerThreshold maps a matrix entry onto the gray scale: (m+0.5)*4.
func bayerThreshold(m uint8) float64 {
	return (float64(m) + 0.5) * 4
}

// orderedDither keeps a pixel white when gray >= threshold(x mod 8, y mod 8).
func orderedDither(gray *image.Gray) *Bitmap {
	b := gray.Bounds()
	out := NewBitmap(b.Dx(), b.Dy())

	parallel.Line(out.height, func(start, end int) {
		for y := start; y < end; y++ {
			src := grayRow(gray, y)
			dst := out.pix[y*out.width : (y+1)*out.width]
			thresholds := &bayer8[y%8]
			for x, v := range src {
				if float64(v) < bayerThreshold(thresholds[x%8]) {
					dst[x] = Ink
				}
			}
		}
	})
	return out
}

// grayRow returns row y of g relative to its bounds.
func grayRow(g *image.Gray, y int) []uint8 {
	b := g.Bounds()
	off := g.PixOffset(b.Min.X, b.Min.Y+y)
	return g.Pix[off : off+b.Dx()]
}
