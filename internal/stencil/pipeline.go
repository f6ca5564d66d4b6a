package stencil

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"
)

// Result is the output of Process.
type Result struct {
	// Bitmap is the final stencil, exactly the canvas size.
	Bitmap *Bitmap

	// Gray is the tone-mapped grayscale canvas the bitmap was derived from.
	Gray *image.Gray

	OriginalWidth  int
	OriginalHeight int

	// Scale is the effective resize factor, for display.
	Scale float64

	// Placement is the unclipped rectangle the source occupies on the canvas.
	Placement image.Rectangle
}

// Process runs the full pipeline: composite, grayscale, tone curve,
// binarization and, when p.EdgeGuard is set, edge protection.
//
// Any stage failure aborts the call; no partial result is returned.
//
// # Errors
//
//   - ErrInvalidSourceGeometry for a nil or zero-area source
//   - ErrInvalidCanvas for a zero-area canvas or non-positive scale
//   - ErrUnknownMode for a nil or foreign Mode
func Process(src image.Image, p Params) (*Result, error) {
	start := time.Now()

	comp, err := Composite(src, p.Canvas)
	if err != nil {
		return nil, fmt.Errorf("failed to composite source: %w", err)
	}
	composited := time.Now()

	gray := ApplyToneCurve(ToGray(comp.Canvas), p.Tone)
	toned := time.Now()

	bin, err := Binarize(gray, p.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to binarize: %w", err)
	}
	binarized := time.Now()

	if p.EdgeGuard != nil {
		bin, err = ProtectEdges(bin, gray, *p.EdgeGuard)
		if err != nil {
			return nil, fmt.Errorf("failed to protect edges: %w", err)
		}
	}

	if log := Logger(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("stencil processed",
			"mode", p.Mode.String(),
			"canvas", fmt.Sprintf("%dx%d", bin.width, bin.height),
			"source", fmt.Sprintf("%dx%d", comp.OriginalWidth, comp.OriginalHeight),
			"scale", comp.Scale,
			"edge_guard", p.EdgeGuard != nil,
			"coverage", bin.Coverage(),
			"composite", composited.Sub(start),
			"tone", toned.Sub(composited),
			"binarize", binarized.Sub(toned),
			"total", time.Since(start),
		)
	}

	return &Result{
		Bitmap:         bin,
		Gray:           gray,
		OriginalWidth:  comp.OriginalWidth,
		OriginalHeight: comp.OriginalHeight,
		Scale:          comp.Scale,
		Placement:      comp.Placement,
	}, nil
}
