package text

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/ungrund"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// AtlasImage is the CPU side of a font atlas: the coverage bitmap and the
// metrics of every glyph packed into it. It is immutable once returned by
// Rasterize and safe to share between goroutines.
type AtlasImage struct {
	// Bitmap holds one byte of antialiased coverage per pixel.
	Bitmap *image.Alpha

	// Glyphs maps printable ASCII codes to their atlas rectangles.
	Glyphs GlyphTable

	// PixelHeight is the requested em height in pixels.
	PixelHeight float64

	// Scale converts font units to pixels (PixelHeight / units per em).
	Scale float64

	// Overflow is set when packing stopped before the last printable code.
	Overflow bool

	// Missing counts printable codes the font has no glyph for. They are
	// left out of Glyphs rather than packed as the font's .notdef box, so
	// drawing them emits nothing (see WithMissingGlyphAdvance).
	Missing int

	margin         int
	missingAdvance float32
}

// Width returns the bitmap width in pixels.
func (a *AtlasImage) Width() int { return a.Bitmap.Rect.Dx() }

// Height returns the bitmap height in pixels.
func (a *AtlasImage) Height() int { return a.Bitmap.Rect.Dy() }

// Packed returns the number of glyphs in the atlas.
func (a *AtlasImage) Packed() int { return a.Glyphs.Len() }

// Margin returns the padding used when packing.
func (a *AtlasImage) Margin() int { return a.margin }

// Err returns ErrAtlasOverflow for a partial atlas and nil otherwise.
func (a *AtlasImage) Err() error {
	if a.Overflow {
		return ErrAtlasOverflow
	}
	return nil
}

// Rasterize renders the printable ASCII glyphs of f at pixelHeight pixels
// per em and packs them into a width×height coverage bitmap.
//
// Glyphs are placed in code order. If the bitmap runs out of room the
// glyphs packed so far are kept, the rest are left out of the table, a
// warning is logged and Overflow is set; this is not an error.
func Rasterize(f *Font, pixelHeight float64, width, height int, opts ...Option) (*AtlasImage, error) {
	cfg := newAtlasConfig(opts)
	if err := validateBuild(pixelHeight, width, height, cfg); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNilFont
	}

	face, err := opentype.NewFace(f.sf, &opentype.FaceOptions{
		Size:    pixelHeight,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, &FontLoadError{Err: fmt.Errorf("create face: %w", err)}
	}
	defer func() {
		_ = face.Close()
	}()

	a := &AtlasImage{
		Bitmap:         image.NewAlpha(image.Rect(0, 0, width, height)),
		PixelHeight:    pixelHeight,
		Scale:          f.ScaleForPixelHeight(pixelHeight),
		margin:         cfg.margin,
		missingAdvance: cfg.missingAdvance,
	}
	packer := newRowPacker(width, height, cfg.margin)

	for code := FirstCode; code <= LastCode; code++ {
		r := rune(code)
		if !f.HasGlyph(r) {
			a.Missing++
			continue
		}

		dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			a.Missing++
			continue
		}

		x, y, ok := packer.place(dr.Dx(), dr.Dy())
		if !ok {
			a.Overflow = true
			ungrund.Logger().Warn("text: font atlas too small, glyphs omitted",
				"first_missing", string(r),
				"packed", a.Glyphs.Len(),
				"width", width,
				"height", height,
				"pixel_height", pixelHeight)
			break
		}

		if !dr.Empty() {
			sr := image.Rectangle{Min: maskp, Max: maskp.Add(dr.Size())}
			draw.Copy(a.Bitmap, image.Pt(x, y), mask, sr, draw.Src, nil)
		}

		a.Glyphs.set(GlyphMetrics{
			Code:     byte(code),
			Rect:     Rect{X0: x, Y0: y, X1: x + dr.Dx(), Y1: y + dr.Dy()},
			BearingX: float32(dr.Min.X),
			BearingY: float32(dr.Min.Y),
			Advance:  fixedToFloat32(advance),
		})
	}

	ungrund.Logger().Debug("text: atlas rasterized",
		"packed", a.Glyphs.Len(),
		"missing", a.Missing,
		"utilization", packer.Utilization())
	return a, nil
}

func validateBuild(pixelHeight float64, width, height int, cfg atlasConfig) error {
	switch {
	case math.IsNaN(pixelHeight) || math.IsInf(pixelHeight, 0) || pixelHeight <= 0:
		return fmt.Errorf("%w: pixel height %v", ErrInvalidSize, pixelHeight)
	case width <= 0 || height <= 0:
		return fmt.Errorf("%w: atlas %dx%d", ErrInvalidSize, width, height)
	case cfg.margin < 0:
		return fmt.Errorf("%w: margin %d", ErrInvalidSize, cfg.margin)
	}
	return nil
}

// fixedToFloat32 converts fixed.Int26_6 to float32.
func fixedToFloat32(x fixed.Int26_6) float32 {
	return float32(x) / 64.0
}
