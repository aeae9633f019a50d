package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNilFont is returned when a nil *Font is rasterized.
	ErrNilFont = errors.New("text: nil font")

	// ErrInvalidSize is returned for a non-positive pixel height or atlas dimension.
	ErrInvalidSize = errors.New("text: invalid size")

	// ErrAtlasOverflow reports that the atlas ran out of room before every
	// printable ASCII glyph was packed. It is never returned by a build;
	// it is what AtlasImage.Err reports for a partial atlas.
	ErrAtlasOverflow = errors.New("text: atlas overflow")

	// ErrAtlasDestroyed is returned when a destroyed FontAtlas is used.
	ErrAtlasDestroyed = errors.New("text: atlas destroyed")
)

// FontLoadError is returned when font data cannot be read or parsed.
type FontLoadError struct {
	// Path is the file the data came from, empty for in-memory data.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *FontLoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("text: load font %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("text: load font: %v", e.Err)
}

func (e *FontLoadError) Unwrap() error {
	return e.Err
}
