package stencil

import (
	"image"
	"image/color"
)

// Paper and Ink are the only two values a Bitmap pixel can hold.
const (
	Ink   uint8 = 0
	Paper uint8 = 255
)

// Bitmap is a binary raster. Every pixel is either Ink (0) or Paper (255).
//
// Bitmap implements image.Image with the gray color model, so it can be
// passed straight to an encoder. It is read-only outside this package.
type Bitmap struct {
	width  int
	height int
	pix    []uint8
}

// NewBitmap returns a width x height bitmap filled with Paper.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = Paper
	}
	return &Bitmap{width: width, height: height, pix: pix}
}

// Threshold binarizes any image: pixels whose gray level is below level become Ink.
// The result is anchored at (0,0) regardless of the source bounds.
func Threshold(img image.Image, level uint8) *Bitmap {
	b := img.Bounds()
	bm := NewBitmap(b.Dx(), b.Dy())
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			if g.Y < level {
				bm.pix[y*bm.width+x] = Ink
			}
		}
	}
	return bm
}

// Width returns the number of columns.
func (b *Bitmap) Width() int { return b.width }

// Height returns the number of rows.
func (b *Bitmap) Height() int { return b.height }

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model { return color.GrayModel }

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image. Points outside the bitmap read as Paper.
func (b *Bitmap) At(x, y int) color.Color {
	return color.Gray{Y: b.Value(x, y)}
}

// Value returns the raw pixel value at (x, y); Paper outside the bounds.
func (b *Bitmap) Value(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Paper
	}
	return b.pix[y*b.width+x]
}

// IsInk reports whether (x, y) is black.
func (b *Bitmap) IsInk(x, y int) bool {
	return b.Value(x, y) == Ink
}

// Values returns a copy of the pixel buffer in row-major order.
func (b *Bitmap) Values() []uint8 {
	out := make([]uint8, len(b.pix))
	copy(out, b.pix)
	return out
}

// Clone returns an independent copy.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{width: b.width, height: b.height, pix: b.Values()}
}

// InkCount returns the number of black pixels.
func (b *Bitmap) InkCount() int {
	n := 0
	for _, v := range b.pix {
		if v == Ink {
			n++
		}
	}
	return n
}

// Coverage returns the fraction of pixels that are ink, 0 for an empty bitmap.
func (b *Bitmap) Coverage() float64 {
	if len(b.pix) == 0 {
		return 0
	}
	return float64(b.InkCount()) / float64(len(b.pix))
}

// Gray returns the bitmap as a new *image.Gray.
func (b *Bitmap) Gray() *image.Gray {
	g := image.NewGray(b.Bounds())
	copy(g.Pix, b.pix)
	return g
}

// fillRect inks every pixel of [x0,x1) x [y0,y1) after clipping to the bitmap.
func (b *Bitmap) fillRect(x0, y0, x1, y1 int) {
	x0, x1 = max(0, x0), min(b.width, x1)
	y0, y1 = max(0, y0), min(b.height, y1)
	for y := y0; y < y1; y++ {
		row := b.pix[y*b.width : (y+1)*b.width]
		for x := x0; x < x1; x++ {
			row[x] = Ink
		}
	}
}
