package preview

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// systemFonts lists the faces tried for the pickup number, most preferred first.
var systemFonts = []string{
	"/System/Library/Fonts/Helvetica.ttc",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

const embeddedFontName = "goregular"

var (
	fontOnce   sync.Once
	cachedFont *opentype.Font
	fontSource string
)

// defaultFont returns the first usable system font, falling back to the
// embedded Go Regular face. The result is loaded once per process.
func defaultFont() (*opentype.Font, string) {
	fontOnce.Do(func() {
		cachedFont, fontSource = loadFont(systemFonts)
	})
	return cachedFont, fontSource
}

// loadFont tries each candidate path in order and returns the parsed font and
// where it came from. A nil font means even the embedded face failed to parse.
func loadFont(candidates []string) (*opentype.Font, string) {
	for _, path := range candidates {
		f, err := parseFontFile(path)
		if err != nil {
			continue
		}
		return f, path
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, "basicfont"
	}
	return f, embeddedFontName
}

// parseFontFile reads a TrueType/OpenType file or the first face of a collection.
func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}

	if strings.EqualFold(path[max(0, len(path)-4):], ".ttc") {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font collection: %w", err)
		}
		if coll.NumFonts() == 0 {
			return nil, fmt.Errorf("font collection %s is empty", path)
		}
		return coll.Font(0)
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return f, nil
}

// newFace builds a face of the given pixel size and reports its source. It
// never fails: without a parsed font it returns the fixed 7x13 bitmap face.
func newFace(f *opentype.Font, source string, size float64) (font.Face, string) {
	if f != nil && size > 0 {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face, source
		}
	}
	return basicfont.Face7x13, "basicfont"
}
