package stencil

import (
	"image"

	"github.com/makeworld-the-better-one/dither/v2"
)

// diffusionTap is one neighbour of an error diffusion kernel, expressed for a
// left-to-right scan.
type diffusionTap struct {
	dx, dy int
	weight float32
}

// floydSteinberg holds the 7/16, 3/16, 5/16, 1/16 taps.
var floydSteinberg = kernelTaps(dither.FloydSteinberg)

// kernelTaps flattens an error diffusion matrix into neighbour offsets. The
// current pixel is the right-most zero of the top row.
func kernelTaps(m dither.ErrorDiffusionMatrix) []diffusionTap {
	cur := 0
	for i, w := range m[0] {
		if w != 0 {
			break
		}
		cur = i
	}

	var taps []diffusionTap
	for dy, row := range m {
		for i, w := range row {
			if w == 0 {
				continue
			}
			taps = append(taps, diffusionTap{dx: i - cur, dy: dy, weight: float32(w)})
		}
	}
	return taps
}

// errorDiffusion binarizes with Floyd-Steinberg. Rows depend on their
// predecessor, so the scan is strictly sequential.
func errorDiffusion(gray *image.Gray, serpentine bool) *Bitmap {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewBitmap(w, h)

	acc := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x, v := range grayRow(gray, y) {
			acc[y*w+x] = float32(v)
		}
	}

	for y := 0; y < h; y++ {
		leftToRight := !serpentine || y%2 == 0
		for i := 0; i < w; i++ {
			x := i
			if !leftToRight {
				x = w - 1 - i
			}
			old := acc[y*w+x]
			var level float32 = 255
			if old < 128 {
				level = 0
				out.pix[y*w+x] = Ink
			}
			spreadError(acc, w, h, x, y, old-level, leftToRight)
		}
	}
	return out
}

// spreadError adds err to the unvisited neighbours of (x, y). Taps are
// mirrored for right-to-left rows; contributions outside the raster are dropped.
func spreadError(acc []float32, w, h, x, y int, err float32, leftToRight bool) {
	if err == 0 {
		return
	}
	for _, t := range floydSteinberg {
		dx := t.dx
		if !leftToRight {
			dx = -dx
		}
		nx, ny := x+dx, y+t.dy
		if nx < 0 || nx >= w || ny >= h {
			continue
		}
		acc[ny*w+nx] += err * t.weight
	}
}
