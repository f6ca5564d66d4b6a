package preview

import (
	"errors"
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidLabel is returned for a label spec with a non-positive size or ratio.
	ErrInvalidLabel = errors.New("invalid label spec")

	// ErrStencilTooSmall is returned when the stencil downsamples to nothing.
	ErrStencilTooSmall = errors.New("stencil too small to preview")
)

// LabelSpec describes the physical label being simulated.
type LabelSpec struct {
	Width  int
	Height int

	// DownsampleRatio is slightly above 1 to mimic printer bleed.
	DownsampleRatio float64

	// SubstrateGray is the gray level of unprinted label stock.
	SubstrateGray uint8

	// WarningFraction is the width of each side band as a fraction of Width.
	WarningFraction float64
	WarningAlpha    float64
	WarningColor    string // hex, e.g. "#ff6464"

	// PickupNumber is printed in the top-left corner when the margin allows.
	PickupNumber  string
	TextMinMargin int
	FontSize      float64
	TextOrigin    image.Point // top-left corner of the text box
}

// DefaultLabel returns the 360x760 production label.
func DefaultLabel() LabelSpec {
	return LabelSpec{
		Width:           360,
		Height:          760,
		DownsampleRatio: 1.01,
		SubstrateGray:   234,
		WarningFraction: 0.06,
		WarningAlpha:    0.4,
		WarningColor:    "#ff6464",
		PickupNumber:    "8188",
		TextMinMargin:   30,
		FontSize:        56,
		TextOrigin:      image.Pt(30, 40),
	}
}

// validate checks the spec and returns the parsed warning colour.
func (s LabelSpec) validate() (colorful.Color, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return colorful.Color{}, fmt.Errorf("%w: size %dx%d", ErrInvalidLabel, s.Width, s.Height)
	}
	if s.DownsampleRatio <= 0 {
		return colorful.Color{}, fmt.Errorf("%w: downsample ratio %g", ErrInvalidLabel, s.DownsampleRatio)
	}
	if s.WarningFraction < 0 || s.WarningFraction > 0.5 {
		return colorful.Color{}, fmt.Errorf("%w: warning fraction %g", ErrInvalidLabel, s.WarningFraction)
	}
	tint, err := colorful.Hex(s.WarningColor)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: warning color %q: %v", ErrInvalidLabel, s.WarningColor, err)
	}
	return tint, nil
}
