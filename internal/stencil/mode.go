package stencil

import (
	"fmt"
	"strings"
)

// Mode selects a binarization strategy. The set of implementations is closed:
// OrderedDither, ErrorDiffusion and HalftoneLattice.
type Mode interface {
	fmt.Stringer
	isMode()
}

// OrderedDither thresholds each pixel against the 8x8 Bayer matrix.
type OrderedDither struct{}

// ErrorDiffusion is Floyd-Steinberg error diffusion.
type ErrorDiffusion struct {
	// Serpentine scans odd rows right to left.
	Serpentine bool
}

// HalftoneLattice draws one dot per cell of a rotated square lattice.
type HalftoneLattice struct {
	Cell     int     // lattice spacing in pixels, clamped to 2..60
	AngleDeg float64 // lattice rotation in degrees
	Shape    Shape
}

func (OrderedDither) isMode()   {}
func (ErrorDiffusion) isMode()  {}
func (HalftoneLattice) isMode() {}

func (OrderedDither) String() string { return "ordered" }

func (m ErrorDiffusion) String() string {
	if m.Serpentine {
		return "diffusion(serpentine)"
	}
	return "diffusion"
}

func (m HalftoneLattice) String() string {
	return fmt.Sprintf("lattice(cell=%d, angle=%g, shape=%s)", m.Cell, m.AngleDeg, m.Shape)
}

// Shape is the dot shape drawn in each lattice cell.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeCross
)

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeCross:
		return "cross"
	default:
		return "circle"
	}
}

// ParseShape maps "circle", "square" or "cross" to a Shape. Empty means circle.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "circle":
		return ShapeCircle, nil
	case "square":
		return ShapeSquare, nil
	case "cross":
		return ShapeCross, nil
	default:
		return ShapeCircle, fmt.Errorf("unknown dot shape: %q", name)
	}
}

// ModeSettings carries the per-variant options consulted by ParseMode.
type ModeSettings struct {
	Serpentine bool
	Cell       int
	AngleDeg   float64
	Shape      Shape
}

// ParseMode builds a Mode from its parameter-surface name.
//
// Recognised names:
//   - "ordered", "bayer": OrderedDither
//   - "diffusion", "fs": ErrorDiffusion using s.Serpentine
//   - "lattice": HalftoneLattice using s.Cell, s.AngleDeg and s.Shape
//   - "circle", "square", "cross": HalftoneLattice with that shape
func ParseMode(name string, s ModeSettings) (Mode, error) {
	lattice := HalftoneLattice{Cell: s.Cell, AngleDeg: s.AngleDeg, Shape: s.Shape}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ordered", "bayer":
		return OrderedDither{}, nil
	case "diffusion", "fs", "floyd-steinberg":
		return ErrorDiffusion{Serpentine: s.Serpentine}, nil
	case "lattice", "halftone":
		return lattice, nil
	case "circle":
		lattice.Shape = ShapeCircle
		return lattice, nil
	case "square":
		lattice.Shape = ShapeSquare
		return lattice, nil
	case "cross":
		lattice.Shape = ShapeCross
		return lattice, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}
