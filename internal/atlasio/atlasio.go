// Package atlasio writes and reads font atlases on disk: the coverage
// bitmap as a grayscale PNG and the glyph table as a TOML manifest.
package atlasio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/draw"

	"github.com/gogpu/ungrund/text"
)

// I/O errors.
var (
	// ErrEmptyData is returned when a PNG or manifest is empty.
	ErrEmptyData = errors.New("atlasio: empty data")

	// ErrBadGlyph is returned when a manifest entry is outside the
	// printable ASCII range or its rectangle is outside the atlas.
	ErrBadGlyph = errors.New("atlasio: invalid glyph entry")
)

// Manifest is the on-disk description of an atlas bitmap.
type Manifest struct {
	Font        string  `toml:"font"`
	PixelHeight float64 `toml:"pixel_height"`
	Scale       float64 `toml:"scale"`
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Margin      int     `toml:"margin"`
	Overflow    bool    `toml:"overflow"`
	Missing     int     `toml:"missing"`
	Image       string  `toml:"image,omitempty"`
	Glyphs      []Glyph `toml:"glyph"`
}

// Glyph is one manifest entry.
type Glyph struct {
	Code     int     `toml:"code"`
	Char     string  `toml:"char"`
	X0       int     `toml:"x0"`
	Y0       int     `toml:"y0"`
	X1       int     `toml:"x1"`
	Y1       int     `toml:"y1"`
	BearingX float32 `toml:"bearing_x"`
	BearingY float32 `toml:"bearing_y"`
	Advance  float32 `toml:"advance"`
}

// NewManifest describes img. fontName is informational.
func NewManifest(img *text.AtlasImage, fontName string) Manifest {
	m := Manifest{
		Font:        fontName,
		PixelHeight: img.PixelHeight,
		Scale:       img.Scale,
		Width:       img.Width(),
		Height:      img.Height(),
		Margin:      img.Margin(),
		Overflow:    img.Overflow,
		Missing:     img.Missing,
		Glyphs:      make([]Glyph, 0, img.Packed()),
	}
	img.Glyphs.Each(func(g text.GlyphMetrics) {
		m.Glyphs = append(m.Glyphs, Glyph{
			Code:     int(g.Code),
			Char:     string(rune(g.Code)),
			X0:       g.Rect.X0,
			Y0:       g.Rect.Y0,
			X1:       g.Rect.X1,
			Y1:       g.Rect.Y1,
			BearingX: g.BearingX,
			BearingY: g.BearingY,
			Advance:  g.Advance,
		})
	})
	return m
}

// Validate checks that every entry is printable ASCII and lies inside the
// atlas bounds.
func (m *Manifest) Validate() error {
	for _, g := range m.Glyphs {
		if g.Code < text.FirstCode || g.Code > text.LastCode {
			return fmt.Errorf("%w: code %d", ErrBadGlyph, g.Code)
		}
		if g.X0 < 0 || g.Y0 < 0 || g.X1 < g.X0 || g.Y1 < g.Y0 || g.X1 > m.Width || g.Y1 > m.Height {
			return fmt.Errorf("%w: %q rect (%d,%d)-(%d,%d) outside %dx%d",
				ErrBadGlyph, g.Char, g.X0, g.Y0, g.X1, g.Y1, m.Width, m.Height)
		}
	}
	return nil
}

// EncodeManifest writes m as TOML.
func EncodeManifest(w io.Writer, m Manifest) error {
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("atlasio: encode manifest: %w", err)
	}
	return nil
}

// SaveManifest writes m to path.
func SaveManifest(path string, m Manifest) error {
	var buf bytes.Buffer
	if err := EncodeManifest(&buf, m); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("atlasio: write manifest: %w", err)
	}
	return nil
}

// DecodeManifest parses a TOML manifest and validates it.
func DecodeManifest(data []byte) (Manifest, error) {
	if len(data) == 0 {
		return Manifest{}, ErrEmptyData
	}
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return Manifest{}, fmt.Errorf("atlasio: decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Manifest{}, fmt.Errorf("atlasio: read manifest: %w", err)
	}
	return DecodeManifest(data)
}

// EncodePNG encodes the coverage bitmap as an 8-bit grayscale PNG.
func EncodePNG(w io.Writer, bitmap *image.Alpha) error {
	gray := image.NewGray(bitmap.Rect)
	if bitmap.Stride == gray.Stride {
		copy(gray.Pix, bitmap.Pix)
	} else {
		draw.Draw(gray, gray.Rect, bitmap, bitmap.Rect.Min, draw.Src)
	}
	if err := png.Encode(w, gray); err != nil {
		return fmt.Errorf("atlasio: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the coverage bitmap as a PNG file.
func SavePNG(path string, bitmap *image.Alpha) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("atlasio: create file: %w", err)
	}

	if err := EncodePNG(f, bitmap); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// DecodePNG reads a PNG back into a coverage bitmap. Color images are
// reduced to their luminance.
func DecodePNG(r io.Reader) (*image.Alpha, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("atlasio: decode PNG: %w", err)
	}
	b := img.Bounds()
	out := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], g.Pix[y*g.Stride:y*g.Stride+b.Dx()])
		}
		return out, nil
	}
	gray := image.NewGray(out.Rect)
	draw.Draw(gray, gray.Rect, img, b.Min, draw.Src)
	copy(out.Pix, gray.Pix)
	return out, nil
}

// LoadPNG loads a coverage bitmap from path.
func LoadPNG(path string) (*image.Alpha, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("atlasio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodePNG(f)
}
