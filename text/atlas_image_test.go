package text

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

func loadGoRegular(t testing.TB) *Font {
	t.Helper()
	f, err := LoadFont(goregular.TTF)
	if err != nil {
		t.Fatalf("LoadFont(goregular) failed: %v", err)
	}
	return f
}

func rasterizeGoRegular(t testing.TB, px float64, w, h int, opts ...Option) *AtlasImage {
	t.Helper()
	img, err := Rasterize(loadGoRegular(t), px, w, h, opts...)
	if err != nil {
		t.Fatalf("Rasterize(%v, %d, %d) failed: %v", px, w, h, err)
	}
	return img
}

func TestLoadFont(t *testing.T) {
	f := loadGoRegular(t)
	if f.Name() == "" {
		t.Error("Name() is empty for Go Regular")
	}
	if f.UnitsPerEm() != 2048 {
		t.Errorf("UnitsPerEm() = %d, want 2048", f.UnitsPerEm())
	}
	if got, want := f.ScaleForPixelHeight(32), 32.0/2048.0; got != want {
		t.Errorf("ScaleForPixelHeight(32) = %v, want %v", got, want)
	}
	if !f.HasGlyph('A') {
		t.Error("HasGlyph('A') = false")
	}
	if f.HasGlyph('\U0001F600') {
		t.Error("HasGlyph(emoji) = true")
	}
}

func TestLoadFontErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"nil", nil, ErrEmptyFontData},
		{"empty", []byte{}, ErrEmptyFontData},
		{"garbage", []byte("definitely not a font file"), nil},
		{"truncated", goregular.TTF[:64], nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := LoadFont(tt.data)
			if f != nil {
				t.Error("LoadFont returned a font for bad data")
			}
			var loadErr *FontLoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("error = %v, want *FontLoadError", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadFontFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gomono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFontFile(path)
	if err != nil {
		t.Fatalf("LoadFontFile failed: %v", err)
	}
	if f.Name() == "" {
		t.Error("Name() is empty")
	}

	missing := filepath.Join(dir, "missing.ttf")
	_, err = LoadFontFile(missing)
	var loadErr *FontLoadError
	if !errors.As(err, &loadErr) || loadErr.Path != missing {
		t.Errorf("LoadFontFile(missing) error = %v, want *FontLoadError for %s", err, missing)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error does not wrap os.ErrNotExist: %v", err)
	}
}

func TestRasterizeAllPrintableASCII(t *testing.T) {
	img := rasterizeGoRegular(t, 32, 512, 512)

	if img.Packed() != GlyphCount {
		t.Errorf("Packed() = %d, want %d", img.Packed(), GlyphCount)
	}
	if img.Overflow || img.Err() != nil {
		t.Errorf("Overflow = %v, Err() = %v; want false, nil", img.Overflow, img.Err())
	}
	if img.Missing != 0 {
		t.Errorf("Missing = %d, want 0", img.Missing)
	}
	if img.Width() != 512 || img.Height() != 512 {
		t.Errorf("size = %dx%d, want 512x512", img.Width(), img.Height())
	}
	if img.Margin() != DefaultMargin {
		t.Errorf("Margin() = %d, want %d", img.Margin(), DefaultMargin)
	}
	if want := 32.0 / 2048.0; img.Scale != want {
		t.Errorf("Scale = %v, want %v", img.Scale, want)
	}
	for code := byte(FirstCode); code <= LastCode; code++ {
		if _, ok := img.Glyphs.Lookup(code); !ok {
			t.Errorf("code %d (%q) not packed", code, code)
		}
	}
}

func TestRasterizeRectsDisjointAndInBounds(t *testing.T) {
	sizes := []struct {
		px   float64
		w, h int
	}{
		{32, 512, 512},
		{12, 128, 128},
		{48, 256, 256}, // overflows
		{64, 300, 200}, // overflows
		{20, 1024, 64},
	}
	for _, s := range sizes {
		img := rasterizeGoRegular(t, s.px, s.w, s.h)

		var rects []Rect
		img.Glyphs.Each(func(g GlyphMetrics) {
			r := g.Rect
			if r.X0 < 0 || r.Y0 < 0 || r.X1 > s.w || r.Y1 > s.h {
				t.Errorf("%vpx %dx%d: glyph %q rect %+v out of bounds", s.px, s.w, s.h, g.Code, r)
			}
			rects = append(rects, r)
		})
		for i := range rects {
			for j := i + 1; j < len(rects); j++ {
				if rects[i].Overlaps(rects[j]) {
					t.Errorf("%vpx %dx%d: rects %+v and %+v overlap", s.px, s.w, s.h, rects[i], rects[j])
				}
			}
		}
	}
}

func TestRasterizeMarginBetweenGlyphs(t *testing.T) {
	img := rasterizeGoRegular(t, 24, 512, 512)

	var rects []Rect
	img.Glyphs.Each(func(g GlyphMetrics) {
		if !g.Rect.Empty() {
			rects = append(rects, g.Rect)
		}
	})
	for i := range rects {
		grown := Rect{
			X0: rects[i].X0 - DefaultMargin, Y0: rects[i].Y0 - DefaultMargin,
			X1: rects[i].X1 + DefaultMargin, Y1: rects[i].Y1 + DefaultMargin,
		}
		if grown.X0 < 0 || grown.Y0 < 0 || grown.X1 > 512 || grown.Y1 > 512 {
			t.Errorf("rect %+v closer than the margin to the edge", rects[i])
		}
		for j := range rects {
			if i != j && grown.Overlaps(rects[j]) {
				t.Errorf("rects %+v and %+v closer than the margin", rects[i], rects[j])
			}
		}
	}
}

func TestRasterizeRectMatchesGlyphMask(t *testing.T) {
	const px = 32
	f := loadGoRegular(t)
	img, err := Rasterize(f, px, 512, 512)
	if err != nil {
		t.Fatal(err)
	}

	face, err := opentype.NewFace(f.sf, &opentype.FaceOptions{Size: px, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	img.Glyphs.Each(func(g GlyphMetrics) {
		dr, _, _, advance, ok := face.Glyph(fixed.Point26_6{}, rune(g.Code))
		if !ok {
			t.Errorf("glyph %q: face has no glyph", g.Code)
			return
		}
		if g.Rect.W() != dr.Dx() || g.Rect.H() != dr.Dy() {
			t.Errorf("glyph %q: rect %dx%d, mask %dx%d", g.Code, g.Rect.W(), g.Rect.H(), dr.Dx(), dr.Dy())
		}
		if g.BearingX != float32(dr.Min.X) || g.BearingY != float32(dr.Min.Y) {
			t.Errorf("glyph %q: bearing (%v, %v), want (%d, %d)", g.Code, g.BearingX, g.BearingY, dr.Min.X, dr.Min.Y)
		}
		if g.Advance != float32(advance)/64 {
			t.Errorf("glyph %q: advance %v, want %v", g.Code, g.Advance, float32(advance)/64)
		}
	})
}

func TestRasterizeCoverageStaysInRects(t *testing.T) {
	img := rasterizeGoRegular(t, 32, 512, 512)

	owned := make([]bool, len(img.Bitmap.Pix))
	img.Glyphs.Each(func(g GlyphMetrics) {
		for y := g.Rect.Y0; y < g.Rect.Y1; y++ {
			for x := g.Rect.X0; x < g.Rect.X1; x++ {
				owned[img.Bitmap.PixOffset(x, y)] = true
			}
		}
	})
	for i, a := range img.Bitmap.Pix {
		if a != 0 && !owned[i] {
			t.Fatalf("coverage %d at offset %d lies outside every glyph rect", a, i)
		}
	}

	g, _ := img.Glyphs.Lookup('A')
	var sum int
	for y := g.Rect.Y0; y < g.Rect.Y1; y++ {
		for x := g.Rect.X0; x < g.Rect.X1; x++ {
			sum += int(img.Bitmap.AlphaAt(x, y).A)
		}
	}
	if sum == 0 {
		t.Error("glyph 'A' rasterized no coverage")
	}

	space, ok := img.Glyphs.Lookup(' ')
	if !ok || !space.Rect.Empty() || space.Advance <= 0 {
		t.Errorf("space = %+v, %v; want empty rect with positive advance", space, ok)
	}
}

func TestRasterizeIdempotent(t *testing.T) {
	a := rasterizeGoRegular(t, 32, 512, 512)
	b := rasterizeGoRegular(t, 32, 512, 512)

	if a.Glyphs != b.Glyphs {
		t.Error("glyph tables differ between identical builds")
	}
	if !bytes.Equal(a.Bitmap.Pix, b.Bitmap.Pix) {
		t.Error("bitmaps differ between identical builds")
	}
}

func TestRasterizeTinyAtlas(t *testing.T) {
	tests := []struct {
		w, h      int
		maxPacked int
	}{
		{1, 1, 0},
		{4, 4, 1}, // the empty space glyph still fits
		{8, 8, 1},
	}
	for _, tt := range tests {
		img := rasterizeGoRegular(t, 32, tt.w, tt.h)
		if img.Packed() > tt.maxPacked {
			t.Errorf("%dx%d: Packed() = %d, want <= %d", tt.w, tt.h, img.Packed(), tt.maxPacked)
		}
		if !img.Overflow || !errors.Is(img.Err(), ErrAtlasOverflow) {
			t.Errorf("%dx%d: Overflow = %v, Err() = %v", tt.w, tt.h, img.Overflow, img.Err())
		}
	}
}

func TestRasterizeOverflowKeepsPrefix(t *testing.T) {
	img := rasterizeGoRegular(t, 32, 128, 128)

	if !img.Overflow {
		t.Fatal("32px glyphs fit a 128x128 atlas; test needs a smaller atlas")
	}
	n := img.Packed()
	if n == 0 || n >= GlyphCount {
		t.Fatalf("Packed() = %d, want a partial atlas", n)
	}
	for i := 0; i < GlyphCount; i++ {
		_, ok := img.Glyphs.Lookup(byte(FirstCode + i))
		if want := i < n; ok != want {
			t.Errorf("code %d packed = %v, want %v", FirstCode+i, ok, want)
		}
	}
}

func TestRasterizeCustomMargin(t *testing.T) {
	img := rasterizeGoRegular(t, 16, 256, 256, WithMargin(0))

	first, ok := img.Glyphs.Lookup(' ')
	if !ok || first.Rect.X0 != 0 || first.Rect.Y0 != 0 {
		t.Errorf("first glyph at (%d, %d), want (0, 0) with no margin", first.Rect.X0, first.Rect.Y0)
	}
	if img.Margin() != 0 {
		t.Errorf("Margin() = %d, want 0", img.Margin())
	}
}

func TestRasterizeInvalidInput(t *testing.T) {
	f := loadGoRegular(t)
	tests := []struct {
		name string
		font *Font
		px   float64
		w, h int
		opts []Option
		want error
	}{
		{"zero height px", f, 0, 64, 64, nil, ErrInvalidSize},
		{"negative px", f, -8, 64, 64, nil, ErrInvalidSize},
		{"NaN px", f, math.NaN(), 64, 64, nil, ErrInvalidSize},
		{"inf px", f, math.Inf(1), 64, 64, nil, ErrInvalidSize},
		{"zero width", f, 16, 0, 64, nil, ErrInvalidSize},
		{"negative height", f, 16, 64, -1, nil, ErrInvalidSize},
		{"negative margin", f, 16, 64, 64, []Option{WithMargin(-1)}, ErrInvalidSize},
		{"nil font", nil, 16, 64, 64, nil, ErrNilFont},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Rasterize(tt.font, tt.px, tt.w, tt.h, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if img != nil {
				t.Error("Rasterize returned an image for invalid input")
			}
		})
	}
}

func BenchmarkRasterize(b *testing.B) {
	f := loadGoRegular(b)
	for b.Loop() {
		if _, err := Rasterize(f, 32, 512, 512); err != nil {
			b.Fatal(err)
		}
	}
}
