package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/label-stencil-mcp/internal/stencil"
)

// stencilThreshold splits gray levels when a stencil file is read back.
const stencilThreshold = 128

// LoadStencil reads a previously written stencil image and returns it as a
// Bitmap. Pixels darker than mid-gray become ink, so a file that went through
// a lossy round trip still loads as a clean two-level raster.
func LoadStencil(cache *ImageCache, path string) (*stencil.Bitmap, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return stencil.Threshold(img, stencilThreshold), nil
}

// ValidationResult reports whether an image file is ready to upload as a stencil.
type ValidationResult struct {
	Valid bool `json:"valid"`

	Width          int `json:"width"`
	Height         int `json:"height"`
	ExpectedWidth  int `json:"expected_width"`
	ExpectedHeight int `json:"expected_height"`

	// TwoLevel is true when every pixel is opaque pure black or pure white.
	TwoLevel bool `json:"two_level"`

	// DistinctLevels counts the gray levels present.
	DistinctLevels int `json:"distinct_levels"`

	InkCoverage float64 `json:"ink_coverage"`

	// Reasons lists every failed check; empty when Valid.
	Reasons []string `json:"reasons,omitempty"`
}

// ValidateStencil checks that the file at path has exactly the expected canvas
// size and holds only pure black and pure white opaque pixels.
func ValidateStencil(cache *ImageCache, path string, width, height int) (*ValidationResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	result := &ValidationResult{
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		ExpectedWidth:  width,
		ExpectedHeight: height,
	}

	if result.Width != width || result.Height != height {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("size is %dx%d, want %dx%d", result.Width, result.Height, width, height))
	}

	levels, translucent := grayLevels(img)
	result.DistinctLevels = len(levels)
	result.TwoLevel = !translucent
	for v := range levels {
		if v != stencil.Ink && v != stencil.Paper {
			result.TwoLevel = false
			break
		}
	}
	if translucent {
		result.Reasons = append(result.Reasons, "image has transparent pixels")
	}
	if !result.TwoLevel && !translucent {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("image has %d gray levels, want only black and white", result.DistinctLevels))
	}

	result.InkCoverage = stencil.Threshold(img, stencilThreshold).Coverage()
	result.Valid = len(result.Reasons) == 0
	return result, nil
}

// grayLevels returns the set of gray values in img and whether any pixel is
// not fully opaque.
func grayLevels(img image.Image) (map[uint8]struct{}, bool) {
	levels := make(map[uint8]struct{})
	translucent := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			if _, _, _, a := c.RGBA(); a != 0xffff {
				translucent = true
			}
			levels[color.GrayModel.Convert(c).(color.Gray).Y] = struct{}{}
		}
	}
	return levels, translucent
}
