package stencil

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// ToGray converts an RGB canvas to luma: Y = round(0.299R + 0.587G + 0.114B).
// Alpha is ignored. The result is anchored at (0,0).
func ToGray(img *image.NRGBA) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := image.NewGray(image.Rect(0, 0, w, h))

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			off := img.PixOffset(b.Min.X, b.Min.Y+y)
			src := img.Pix[off : off+w*4]
			dst := gray.Pix[y*gray.Stride : y*gray.Stride+w]
			for x := range dst {
				i := x * 4
				yv := 0.299*float64(src[i]) + 0.587*float64(src[i+1]) + 0.114*float64(src[i+2])
				dst[x] = roundLevel(yv)
			}
		}
	})
	return gray
}

// ApplyToneCurve applies the contrast stretch followed by the gamma curve.
//
// With c clamped to [-100,100] and g clamped to [0.2,3.0]:
//
//	f        = 259(c+255) / (255(259-c))
//	adjusted = clip(f*(v-128)+128, 0, 255)
//	result   = round(255 * (adjusted/255)^g)
//
// The mapping depends only on the input level, so it is evaluated once per
// level into a lookup table.
func ApplyToneCurve(gray *image.Gray, p ToneParams) *image.Gray {
	lut := toneLUT(p)

	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			off := gray.PixOffset(b.Min.X, b.Min.Y+y)
			src := gray.Pix[off : off+w]
			dst := out.Pix[y*out.Stride : y*out.Stride+w]
			for x, v := range src {
				dst[x] = lut[v]
			}
		}
	})
	return out
}

func toneLUT(p ToneParams) [256]uint8 {
	p = p.Clamp()
	f := 259 * (p.Contrast + 255) / (255 * (259 - p.Contrast))

	var lut [256]uint8
	for v := range lut {
		adjusted := clampFloat(f*(float64(v)-128)+128, 0, 255)
		lut[v] = roundLevel(255 * math.Pow(adjusted/255, p.Gamma))
	}
	return lut
}

// roundLevel rounds half away from zero and clips to 0..255.
func roundLevel(v float64) uint8 {
	return uint8(clampFloat(math.Round(v), 0, 255))
}
