package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/label-stencil-mcp/internal/stencil"
)

// writeStencil processes a flat gray source and writes the resulting stencil.
func writeStencil(t *testing.T, width, height int) (string, *stencil.Bitmap) {
	t.Helper()
	src := image.NewUniform(color.Gray{Y: 100})
	p := stencil.DefaultParams()
	p.Canvas = stencil.CanvasSpec{Width: width, Height: height, ScalePercent: 100}

	res, err := stencil.Process(&boundedImage{src, image.Rect(0, 0, 30, 40)}, p)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "stencil.png")
	if err := WritePNG(path, res.Bitmap); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	return path, res.Bitmap
}

// boundedImage gives an infinite image finite bounds.
type boundedImage struct {
	image.Image
	r image.Rectangle
}

func (b *boundedImage) Bounds() image.Rectangle { return b.r }

func TestLoadStencil_RoundTrip(t *testing.T) {
	path, want := writeStencil(t, 60, 80)

	got, err := LoadStencil(NewImageCache(), path)
	if err != nil {
		t.Fatalf("LoadStencil failed: %v", err)
	}
	if got.Width() != 60 || got.Height() != 80 {
		t.Fatalf("size: got %dx%d", got.Width(), got.Height())
	}
	gv, wv := got.Values(), want.Values()
	for i := range wv {
		if gv[i] != wv[i] {
			t.Fatalf("pixel %d: got %d, want %d", i, gv[i], wv[i])
		}
	}
}

func TestValidateStencil(t *testing.T) {
	cache := NewImageCache()

	t.Run("valid", func(t *testing.T) {
		path, bm := writeStencil(t, 60, 80)
		res, err := ValidateStencil(cache, path, 60, 80)
		if err != nil {
			t.Fatalf("ValidateStencil failed: %v", err)
		}
		if !res.Valid || !res.TwoLevel || len(res.Reasons) != 0 {
			t.Errorf("expected valid stencil, got %+v", res)
		}
		if res.InkCoverage != bm.Coverage() {
			t.Errorf("coverage: got %v, want %v", res.InkCoverage, bm.Coverage())
		}
	})

	t.Run("wrong size", func(t *testing.T) {
		path, _ := writeStencil(t, 60, 80)
		res, err := ValidateStencil(cache, path, 596, 832)
		if err != nil {
			t.Fatalf("ValidateStencil failed: %v", err)
		}
		if res.Valid {
			t.Error("60x80 should not validate against 596x832")
		}
		if len(res.Reasons) != 1 || !strings.Contains(res.Reasons[0], "60x80") {
			t.Errorf("reasons: %v", res.Reasons)
		}
	})

	t.Run("gray levels", func(t *testing.T) {
		path := createTestImageWithPattern(t, 20, 20)
		defer os.Remove(path)

		res, err := ValidateStencil(cache, path, 20, 20)
		if err != nil {
			t.Fatalf("ValidateStencil failed: %v", err)
		}
		if res.Valid || res.TwoLevel {
			t.Errorf("colour pattern should not validate: %+v", res)
		}
		if res.DistinctLevels != 4 {
			t.Errorf("distinct levels: got %d, want 4", res.DistinctLevels)
		}
	})

	t.Run("transparent", func(t *testing.T) {
		path := createTestImage(t, 10, 10, color.NRGBA{0, 0, 0, 0})
		defer os.Remove(path)

		res, err := ValidateStencil(cache, path, 10, 10)
		if err != nil {
			t.Fatalf("ValidateStencil failed: %v", err)
		}
		if res.Valid || res.TwoLevel {
			t.Errorf("transparent image should not validate: %+v", res)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ValidateStencil(cache, "/nonexistent/stencil.png", 10, 10); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestEncodePNG(t *testing.T) {
	bm := stencil.NewBitmap(12, 7)
	enc, err := EncodePNG(bm)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if enc.Width != 12 || enc.Height != 7 || enc.MimeType != "image/png" {
		t.Errorf("unexpected result: %+v", enc)
	}
	// base64 of the PNG signature
	if !strings.HasPrefix(enc.ImageBase64, "iVBORw0KGgo") {
		t.Errorf("payload is not a base64 PNG: %.16s", enc.ImageBase64)
	}
}

func TestWritePNG_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := WritePNG(path, stencil.NewBitmap(5, 5)); err != nil {
		t.Fatalf("first WritePNG failed: %v", err)
	}
	if err := WritePNG(path, stencil.NewBitmap(9, 3)); err != nil {
		t.Fatalf("second WritePNG failed: %v", err)
	}
	dims, err := GetDimensions(NewImageCache(), path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 9 || dims.Height != 3 {
		t.Errorf("got %dx%d, want 9x3", dims.Width, dims.Height)
	}
}
