package stencil

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestComposite_Dimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		percent       float64
	}{
		{"landscape", 640, 480, 100},
		{"portrait", 300, 900, 100},
		{"square small", 10, 10, 100},
		{"minimum scale", 640, 480, 25},
		{"maximum scale", 640, 480, 300},
		{"exact canvas", 596, 832, 100},
		{"one pixel", 1, 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := createInMemoryImage(tt.width, tt.height, color.RGBA{90, 120, 200, 255})
			spec := DefaultCanvas()
			spec.ScalePercent = tt.percent

			comp, err := Composite(src, spec)
			if err != nil {
				t.Fatalf("Composite failed: %v", err)
			}
			got := comp.Canvas.Bounds()
			if got.Dx() != 596 || got.Dy() != 832 {
				t.Errorf("canvas: got %dx%d, want 596x832", got.Dx(), got.Dy())
			}
			if comp.OriginalWidth != tt.width || comp.OriginalHeight != tt.height {
				t.Errorf("original: got %dx%d, want %dx%d", comp.OriginalWidth, comp.OriginalHeight, tt.width, tt.height)
			}
		})
	}
}

func TestComposite_ScaleAndCenter(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantPlacement image.Rectangle
	}{
		// fit 5.96 -> 596x298, leftover 534 split evenly
		{"width limited even", 100, 50, image.Rect(0, 267, 596, 565)},
		// fit 5.96 -> 596x197, leftover 635: odd pixel goes to the bottom
		{"width limited odd", 100, 33, image.Rect(0, 317, 596, 514)},
		// fit 8.32 -> 416x832
		{"height limited", 50, 100, image.Rect(90, 0, 506, 832)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := createInMemoryImage(tt.width, tt.height, color.Black)
			comp, err := Composite(src, DefaultCanvas())
			if err != nil {
				t.Fatalf("Composite failed: %v", err)
			}
			p := comp.Placement
			if p != tt.wantPlacement {
				t.Fatalf("placement: got %v, want %v", p, tt.wantPlacement)
			}
			if p.Dx() != 596 && p.Dy() != 832 {
				t.Errorf("neither dimension fills the canvas: %v", p)
			}

			left, right := p.Min.X, 596-p.Max.X
			top, bottom := p.Min.Y, 832-p.Max.Y
			if d := right - left; d != 0 && d != 1 {
				t.Errorf("horizontal centering: left %d, right %d", left, right)
			}
			if d := bottom - top; d != 0 && d != 1 {
				t.Errorf("vertical centering: top %d, bottom %d", top, bottom)
			}
		})
	}
}

func TestComposite_PlacementMatchesPastedRegion(t *testing.T) {
	src := createInMemoryImage(100, 33, color.Black)
	comp, err := Composite(src, DefaultCanvas())
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	// Bounding box of every non-white pixel.
	bbox := image.Rectangle{}
	first := true
	c := comp.Canvas
	for y := 0; y < 832; y++ {
		for x := 0; x < 596; x++ {
			if c.NRGBAAt(x, y).R == 255 {
				continue
			}
			pt := image.Rect(x, y, x+1, y+1)
			if first {
				bbox, first = pt, false
			} else {
				bbox = bbox.Union(pt)
			}
		}
	}

	if bbox != comp.Placement {
		t.Errorf("pasted region %v, reported placement %v", bbox, comp.Placement)
	}
}

func TestComposite_RealScale(t *testing.T) {
	src := createInMemoryImage(100, 50, color.White)
	spec := DefaultCanvas()
	spec.ScalePercent = 50

	comp, err := Composite(src, spec)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if math.Abs(comp.Scale-2.98) > 1e-9 {
		t.Errorf("Scale: got %v, want 2.98", comp.Scale)
	}
	if comp.Placement.Dx() != 298 || comp.Placement.Dy() != 149 {
		t.Errorf("scaled size: got %dx%d, want 298x149", comp.Placement.Dx(), comp.Placement.Dy())
	}
}

func TestComposite_Oversized(t *testing.T) {
	src := createInMemoryImage(100, 50, color.Black)
	spec := DefaultCanvas()
	spec.ScalePercent = 200

	comp, err := Composite(src, spec)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if comp.Placement.Min.X != -298 {
		t.Errorf("left offset: got %d, want -298", comp.Placement.Min.X)
	}
	if b := comp.Canvas.Bounds(); b.Dx() != 596 || b.Dy() != 832 {
		t.Errorf("canvas: got %dx%d, want 596x832", b.Dx(), b.Dy())
	}
	// Source covers the full width but not the top band.
	if got := comp.Canvas.NRGBAAt(0, 416); got.R != 0 {
		t.Errorf("center row should be covered, got %v", got)
	}
	if got := comp.Canvas.NRGBAAt(300, 10); got.R != 255 {
		t.Errorf("top band should stay white, got %v", got)
	}
}

func TestComposite_TransparentSourceIsWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	comp, err := Composite(src, DefaultCanvas())
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	got := comp.Canvas.NRGBAAt(298, 416)
	if got.R != 255 || got.G != 255 || got.B != 255 || got.A != 255 {
		t.Errorf("transparent source: got %v, want opaque white", got)
	}
}

func TestComposite_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     image.Image
		spec    CanvasSpec
		wantErr error
	}{
		{"nil source", nil, DefaultCanvas(), ErrInvalidSourceGeometry},
		{"zero width", image.NewNRGBA(image.Rect(0, 0, 0, 10)), DefaultCanvas(), ErrInvalidSourceGeometry},
		{"zero height", image.NewNRGBA(image.Rect(0, 0, 10, 0)), DefaultCanvas(), ErrInvalidSourceGeometry},
		{"zero canvas", createInMemoryImage(4, 4, color.White), CanvasSpec{Width: 0, Height: 10, ScalePercent: 100}, ErrInvalidCanvas},
		{"zero scale", createInMemoryImage(4, 4, color.White), CanvasSpec{Width: 10, Height: 10}, ErrInvalidCanvas},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, err := Composite(tt.src, tt.spec)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error: got %v, want %v", err, tt.wantErr)
			}
			if comp != nil {
				t.Error("expected nil composition on error")
			}
		})
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{3, 2, 1},
		{4, 2, 2},
		{-1, 2, -1},
		{-3, 2, -2},
		{-4, 2, -2},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
