package text

import (
	"fmt"
	"os"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font is a parsed TrueType or OpenType font.
//
// Collections (.ttc/.otc) are accepted; only the first font in the
// collection is used.
type Font struct {
	sf   *opentype.Font
	buf  sfnt.Buffer
	name string
}

// LoadFont parses font data. The data is not retained after parsing
// beyond what the parser keeps internally, so callers must not modify it.
func LoadFont(data []byte) (*Font, error) {
	return loadFont("", data)
}

// LoadFontFile reads and parses the font at path.
func LoadFontFile(path string) (*Font, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the caller
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	return loadFont(path, data)
}

func loadFont(path string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, &FontLoadError{Path: path, Err: ErrEmptyFontData}
	}

	// ParseCollection also accepts a single font as a one-element collection.
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	if coll.NumFonts() == 0 {
		return nil, &FontLoadError{Path: path, Err: fmt.Errorf("collection has no fonts")}
	}
	sf, err := coll.Font(0)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}

	f := &Font{sf: sf}
	if name, err := sf.Name(&f.buf, sfnt.NameIDFull); err == nil {
		f.name = name
	}
	return f, nil
}

// Name returns the full font name, or "" if the font does not have one.
func (f *Font) Name() string {
	return f.name
}

// UnitsPerEm returns the number of font units per em.
func (f *Font) UnitsPerEm() int {
	return int(f.sf.UnitsPerEm())
}

// ScaleForPixelHeight returns the factor that converts font units to
// pixels when the em square is pixelHeight pixels tall.
func (f *Font) ScaleForPixelHeight(pixelHeight float64) float64 {
	upem := f.UnitsPerEm()
	if upem <= 0 {
		return 0
	}
	return pixelHeight / float64(upem)
}

// HasGlyph reports whether the font maps r to a real glyph.
func (f *Font) HasGlyph(r rune) bool {
	idx, err := f.sf.GlyphIndex(&f.buf, r)
	return err == nil && idx != 0
}
