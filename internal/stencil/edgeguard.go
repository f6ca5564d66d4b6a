package stencil

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// ProtectEdges forces extra ink where dithering tends to lose dark detail.
//
// A pixel qualifies when gray <= Lo, or when its Sobel magnitude is at least
// Tau and gray < Hi. The qualifying mask is grown by DilateIterations rounds
// of 8-connected dilation and every masked pixel is set to Ink.
//
// The pass only ever turns Paper into Ink. bin is not modified; a new Bitmap
// is returned.
//
// # Errors
//
// ErrDimensionMismatch if bin and gray differ in size.
func ProtectEdges(bin *Bitmap, gray *image.Gray, p EdgeGuardParams) (*Bitmap, error) {
	gb := gray.Bounds()
	w, h := gb.Dx(), gb.Dy()
	if bin.width != w || bin.height != h {
		return nil, fmt.Errorf("%w: bitmap %dx%d, gray %dx%d", ErrDimensionMismatch, bin.width, bin.height, w, h)
	}

	mag := SobelMagnitude(gray)
	mask := make([]bool, w*h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			g := grayRow(gray, y)
			e := mag.Pix[y*mag.Stride : y*mag.Stride+w]
			for x := 0; x < w; x++ {
				mask[y*w+x] = g[x] <= p.Lo || (e[x] >= p.Tau && g[x] < p.Hi)
			}
		}
	})

	if p.DilateIterations > 0 {
		mask = Dilate(mask, w, h, p.DilateIterations)
	}

	out := bin.Clone()
	for i, set := range mask {
		if set {
			out.pix[i] = Ink
		}
	}
	return out, nil
}

// SobelMagnitude returns |Gx| + |Gy| clipped to 255. Border pixels, which lack
// a full 3x3 neighbourhood, are 0.
//
// Kernels:
//
//	Gx: -1 0 1    Gy: -1 -2 -1
//	    -2 0 2         0  0  0
//	    -1 0 1         1  2  1
func SobelMagnitude(gray *image.Gray) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w < 3 || h < 3 {
		return out
	}

	parallel.Line(h-2, func(start, end int) {
		for y := start + 1; y < end+1; y++ {
			up, mid, down := grayRow(gray, y-1), grayRow(gray, y), grayRow(gray, y+1)
			dst := out.Pix[y*out.Stride : y*out.Stride+w]
			for x := 1; x < w-1; x++ {
				gx := -int(up[x-1]) + int(up[x+1]) -
					2*int(mid[x-1]) + 2*int(mid[x+1]) -
					int(down[x-1]) + int(down[x+1])
				gy := -int(up[x-1]) - 2*int(up[x]) - int(up[x+1]) +
					int(down[x-1]) + 2*int(down[x]) + int(down[x+1])
				dst[x] = uint8(min(255, abs(gx)+abs(gy)))
			}
		}
	})
	return out
}

// Dilate grows a w x h row-major mask by n rounds of 8-connected dilation:
// each round a pixel becomes set if it or any neighbour was set in the
// previous round. The input is not modified.
func Dilate(mask []bool, w, h, n int) []bool {
	cur := make([]bool, len(mask))
	copy(cur, mask)
	next := make([]bool, len(mask))

	for round := 0; round < n; round++ {
		parallel.Line(h, func(start, end int) {
			for y := start; y < end; y++ {
				for x := 0; x < w; x++ {
					next[y*w+x] = neighbourhoodSet(cur, w, h, x, y)
				}
			}
		})
		cur, next = next, cur
	}
	return cur
}

func neighbourhoodSet(mask []bool, w, h, x, y int) bool {
	for ny := max(0, y-1); ny <= min(h-1, y+1); ny++ {
		for nx := max(0, x-1); nx <= min(w-1, x+1); nx++ {
			if mask[ny*w+nx] {
				return true
			}
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
