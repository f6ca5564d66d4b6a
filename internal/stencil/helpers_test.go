package stencil

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage returns a w x h RGBA image filled with c.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// uniformGray returns a w x h gray raster filled with v.
func uniformGray(width, height int, v uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, width, height))
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

// gradientGray returns a horizontal ramp from black on the left to white on the right.
func gradientGray(width, height int) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.SetGray(x, y, color.Gray{Y: uint8(x * 255 / max(1, width-1))})
		}
	}
	return g
}

// assertBinary fails the test if any pixel of b is neither Ink nor Paper.
func assertBinary(t *testing.T, b *Bitmap) {
	t.Helper()
	for i, v := range b.Values() {
		if v != Ink && v != Paper {
			t.Fatalf("pixel %d has value %d, want 0 or 255", i, v)
		}
	}
}
