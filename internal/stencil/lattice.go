package stencil

import (
	"image"
	"math"
)

const (
	// dotFill is the largest dot diameter as a fraction of the cell.
	dotFill = 0.98
	// minDotRadius is the radius at or below which no ink is drawn.
	minDotRadius = 0.25
)

// latticeSampleOffsets are the cell-local offsets of the 3x3 sampling grid.
var latticeSampleOffsets = [3]float64{-0.35, 0, 0.35}

// lattice maps between lattice indices (i, j) and canvas coordinates:
//
//	x = cx + s(i cos t - j sin t)
//	y = cy + s(i sin t + j cos t)
type lattice struct {
	s, cos, sin, cx, cy float64
}

func (l lattice) toXY(i, j float64) (float64, float64) {
	return l.cx + l.s*(i*l.cos-j*l.sin), l.cy + l.s*(i*l.sin+j*l.cos)
}

func (l lattice) toIJ(x, y float64) (float64, float64) {
	dx, dy := x-l.cx, y-l.cy
	return (dx*l.cos + dy*l.sin) / l.s, (-dx*l.sin + dy*l.cos) / l.s
}

// dotRadius converts a mean gray level into a dot radius for cell size s.
// Ink area grows linearly with darkness.
func dotRadius(avg, s float64) float64 {
	darkness := 1 - avg/255
	return math.Sqrt(math.Max(0, darkness)) * (dotFill * s / 2)
}

// halftoneLattice renders one dot per cell of a rotated lattice centred on the
// raster. The lattice only decides where ink goes; the output keeps the
// dimensions of gray.
func halftoneLattice(gray *image.Gray, m HalftoneLattice) *Bitmap {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewBitmap(w, h)
	if w == 0 || h == 0 {
		return out
	}

	s := float64(clampInt(m.Cell, MinCell, MaxCell))
	theta := m.AngleDeg * math.Pi / 180
	l := lattice{s: s, cos: math.Cos(theta), sin: math.Sin(theta), cx: float64(w) / 2, cy: float64(h) / 2}

	// Cover all four canvas corners, padded by one cell against rotation gaps.
	iMin, jMin := math.Inf(1), math.Inf(1)
	iMax, jMax := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {float64(w), 0}, {0, float64(h)}, {float64(w), float64(h)}} {
		i, j := l.toIJ(c[0], c[1])
		iMin, iMax = math.Min(iMin, i), math.Max(iMax, i)
		jMin, jMax = math.Min(jMin, j), math.Max(jMax, j)
	}
	i0, i1 := int(math.Floor(iMin))-1, int(math.Ceil(iMax))+1
	j0, j1 := int(math.Floor(jMin))-1, int(math.Ceil(jMax))+1

	for J := j0; J <= j1; J++ {
		for I := i0; I <= i1; I++ {
			ci, cj := float64(I)+0.5, float64(J)+0.5
			cx, cy := l.toXY(ci, cj)
			if cx < -s || cx > float64(w)+s || cy < -s || cy > float64(h)+s {
				continue
			}

			var sum float64
			for _, dv := range latticeSampleOffsets {
				for _, du := range latticeSampleOffsets {
					sx, sy := l.toXY(ci+du, cj+dv)
					ix := clampInt(int(math.Round(sx)), 0, w-1)
					iy := clampInt(int(math.Round(sy)), 0, h-1)
					sum += float64(grayRow(gray, iy)[ix])
				}
			}

			r := dotRadius(sum/9, s)
			if r <= minDotRadius {
				continue
			}
			switch m.Shape {
			case ShapeSquare:
				out.drawSquare(cx, cy, math.Min(dotFill*s/2, r))
			case ShapeCross:
				out.drawCross(cx, cy, math.Max(1, r*0.9), dotFill*s)
			default:
				out.drawCircle(cx, cy, r)
			}
		}
	}
	return out
}

// drawCircle inks every pixel whose squared distance to (cx, cy) is at most r^2.
func (b *Bitmap) drawCircle(cx, cy, r float64) {
	r2 := r * r
	x0, x1 := max(0, int(cx-r)), min(b.width, int(cx+r)+1)
	y0, y1 := max(0, int(cy-r)), min(b.height, int(cy+r)+1)
	for y := y0; y < y1; y++ {
		dy := float64(y) - cy
		row := b.pix[y*b.width : (y+1)*b.width]
		for x := x0; x < x1; x++ {
			dx := float64(x) - cx
			if dx*dx+dy*dy <= r2 {
				row[x] = Ink
			}
		}
	}
}

// drawSquare inks an axis-aligned square of the given half side.
func (b *Bitmap) drawSquare(cx, cy, half float64) {
	b.fillRect(
		int(math.Round(cx-half)), int(math.Round(cy-half)),
		int(math.Round(cx+half)), int(math.Round(cy+half)),
	)
}

// drawCross inks a horizontal and a vertical bar of the given thickness and length.
func (b *Bitmap) drawCross(cx, cy, thick, length float64) {
	b.fillRect(int(cx-length/2), int(cy-thick/2), int(cx+length/2), int(cy+thick/2))
	b.fillRect(int(cx-thick/2), int(cy-length/2), int(cx+thick/2), int(cy+length/2))
}
