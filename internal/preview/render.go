package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/label-stencil-mcp/internal/stencil"
)

// Render produces the print preview for a finished stencil.
//
// The stencil is downsampled by spec.DownsampleRatio: each destination pixel
// averages its source window and is re-thresholded to either SubstrateGray
// (average above 128) or black. The band is resized to the label width with a
// Lanczos filter, preserving aspect ratio, and centered vertically. The pickup
// number is drawn when the top margin exceeds TextMinMargin. Finally both side
// edges are tinted with WarningColor at WarningAlpha.
func Render(bin *stencil.Bitmap, spec LabelSpec) (*image.NRGBA, error) {
	tint, err := spec.validate()
	if err != nil {
		return nil, err
	}
	if bin == nil {
		return nil, fmt.Errorf("%w: nil stencil", ErrStencilTooSmall)
	}

	down := downsample(bin, spec.DownsampleRatio, spec.SubstrateGray)
	dw, dh := down.Bounds().Dx(), down.Bounds().Dy()
	if dw == 0 || dh == 0 {
		return nil, fmt.Errorf("%w: %dx%d at ratio %g", ErrStencilTooSmall, bin.Width(), bin.Height(), spec.DownsampleRatio)
	}

	substrate := color.Gray{Y: spec.SubstrateGray}
	label := imaging.New(spec.Width, spec.Height, substrate)

	scaledH := max(1, int(float64(dh)*(float64(spec.Width)/float64(dw))))
	offsetY := int(float64(spec.Height-scaledH) / 2)

	band := imaging.Resize(down, spec.Width, scaledH, imaging.Lanczos)
	label = imaging.Paste(label, band, image.Pt(0, offsetY))

	textDrawn := false
	source := ""
	if offsetY > spec.TextMinMargin && spec.PickupNumber != "" {
		source = drawPickupNumber(label, spec)
		textDrawn = true
	}

	bandWidth := int(float64(spec.Width) * spec.WarningFraction)
	tintBands(label, bandWidth, tint, spec.WarningAlpha)

	if log := stencil.Logger(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("preview rendered",
			"stencil", fmt.Sprintf("%dx%d", bin.Width(), bin.Height()),
			"downsampled", fmt.Sprintf("%dx%d", dw, dh),
			"offset_y", offsetY,
			"pickup_number", textDrawn,
			"font", source,
			"band_width", bandWidth,
		)
	}
	return label, nil
}

// downsample shrinks bin by ratio, averaging each source window and mapping the
// average back onto two levels: substrate when above 128, otherwise 0.
func downsample(bin *stencil.Bitmap, ratio float64, substrate uint8) *image.Gray {
	w, h := bin.Width(), bin.Height()
	nw, nh := int(float64(w)/ratio), int(float64(h)/ratio)
	out := image.NewGray(image.Rect(0, 0, nw, nh))
	if nw == 0 || nh == 0 {
		return out
	}

	src := bin.Values()
	x0, x1 := windows(nw, w, ratio)
	y0, y1 := windows(nh, h, ratio)

	parallel.Line(nh, func(start, end int) {
		for dy := start; dy < end; dy++ {
			row := out.Pix[dy*out.Stride : dy*out.Stride+nw]
			for dx := range row {
				sum, count := 0, 0
				for sy := y0[dy]; sy < y1[dy]; sy++ {
					line := src[sy*w : (sy+1)*w]
					for sx := x0[dx]; sx < x1[dx]; sx++ {
						sum += int(line[sx])
						count++
					}
				}

				avg := 255.0
				if count > 0 {
					avg = float64(sum) / float64(count)
				}
				if avg > 128 {
					row[dx] = substrate
				}
			}
		}
	})
	return out
}

// windows returns, for each of n destination indices, the half-open source
// range [floor(d*ratio), ceil((d+1)*ratio)) clipped to limit.
func windows(n, limit int, ratio float64) (lo, hi []int) {
	lo = make([]int, n)
	hi = make([]int, n)
	for d := 0; d < n; d++ {
		lo[d] = min(limit, int(math.Floor(float64(d)*ratio)))
		hi[d] = min(limit, int(math.Ceil(float64(d+1)*ratio)))
	}
	return lo, hi
}

// drawPickupNumber prints spec.PickupNumber in black with its top-left corner at
// spec.TextOrigin and reports which font was used.
func drawPickupNumber(dst *image.NRGBA, spec LabelSpec) string {
	f, source := defaultFont()
	face, source := newFace(f, source, spec.FontSize)
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(spec.TextOrigin.X),
			Y: fixed.I(spec.TextOrigin.Y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(spec.PickupNumber)
	return source
}

// tintBands blends tint over the leftmost and rightmost width columns.
func tintBands(img *image.NRGBA, width int, tint colorful.Color, alpha float64) {
	if width <= 0 || alpha <= 0 {
		return
	}
	b := img.Bounds()
	w := b.Dx()
	width = min(width, w)
	right := max(width, w-width)

	blend := func(x, y int) {
		i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
		p := img.Pix[i : i+3 : i+3]
		base := colorful.Color{R: float64(p[0]) / 255, G: float64(p[1]) / 255, B: float64(p[2]) / 255}
		p[0], p[1], p[2] = base.BlendRgb(tint, alpha).RGB255()
	}

	parallel.Line(b.Dy(), func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				blend(x, y)
			}
			for x := right; x < w; x++ {
				blend(x, y)
			}
		}
	})
}
