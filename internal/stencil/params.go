package stencil

import "math"

// Production canvas size in pixels.
const (
	DefaultCanvasWidth  = 596
	DefaultCanvasHeight = 832
)

// Tone parameter bounds. Out-of-range values are clamped, not rejected.
const (
	MinContrast = -100.0
	MaxContrast = 100.0
	MinGamma    = 0.2
	MaxGamma    = 3.0
)

// Lattice cell bounds in pixels.
const (
	MinCell = 2
	MaxCell = 60
)

// CanvasSpec describes the fixed output canvas and the user scale.
type CanvasSpec struct {
	Width  int
	Height int

	// ScalePercent multiplies the fit-to-canvas scale. The supported range is
	// 25-300; rejecting values outside it is the caller's job.
	ScalePercent float64
}

// DefaultCanvas returns the production 596x832 canvas at 100% scale.
func DefaultCanvas() CanvasSpec {
	return CanvasSpec{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight, ScalePercent: 100}
}

// ToneParams controls the contrast stretch and gamma curve.
type ToneParams struct {
	Contrast float64 // -100..100
	Gamma    float64 // 0.2..3.0
}

// Clamp returns a copy with both fields forced into their documented bounds.
func (p ToneParams) Clamp() ToneParams {
	return ToneParams{
		Contrast: clampFloat(p.Contrast, MinContrast, MaxContrast),
		Gamma:    clampFloat(p.Gamma, MinGamma, MaxGamma),
	}
}

// EdgeGuardParams configures ProtectEdges.
type EdgeGuardParams struct {
	// Lo forces ink on any pixel at or below this gray level.
	Lo uint8
	// Hi bounds the gray level of edge pixels that get forced to ink.
	Hi uint8
	// Tau is the minimum Sobel magnitude for a pixel to count as an edge.
	Tau uint8
	// DilateIterations grows the ink mask by this many 8-connected rounds.
	DilateIterations int
}

// DefaultEdgeGuard returns lo=40, hi=120, tau=60 with no dilation.
func DefaultEdgeGuard() EdgeGuardParams {
	return EdgeGuardParams{Lo: 40, Hi: 120, Tau: 60, DilateIterations: 0}
}

// Params is the complete parameter set for Process.
type Params struct {
	Canvas CanvasSpec
	Tone   ToneParams
	Mode   Mode

	// EdgeGuard enables the edge protection pass when non-nil.
	EdgeGuard *EdgeGuardParams
}

// DefaultParams returns the production defaults: 596x832 at 100%, neutral tone,
// ordered dithering and no edge protection.
func DefaultParams() Params {
	return Params{
		Canvas: DefaultCanvas(),
		Tone:   ToneParams{Contrast: 0, Gamma: 1.0},
		Mode:   OrderedDither{},
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
