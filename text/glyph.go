package text

// Printable ASCII range covered by every atlas.
const (
	FirstCode  = 32
	LastCode   = 126
	GlyphCount = LastCode - FirstCode + 1
)

// Rect is a pixel rectangle in the atlas bitmap, half-open on the max side.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// W returns the rectangle width.
func (r Rect) W() int { return r.X1 - r.X0 }

// H returns the rectangle height.
func (r Rect) H() int { return r.Y1 - r.Y0 }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Overlaps reports whether r and o share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// GlyphMetrics describes one packed glyph.
//
// Bearing is the offset from the pen position on the baseline to the
// top-left corner of the glyph bitmap, with y growing downward (so BearingY
// is negative for glyphs that rise above the baseline).
type GlyphMetrics struct {
	Code     byte
	Rect     Rect
	BearingX float32
	BearingY float32
	Advance  float32
}

// GlyphTable maps printable ASCII codes to their metrics. Lookup is a
// direct array index offset by FirstCode.
type GlyphTable struct {
	glyphs  [GlyphCount]GlyphMetrics
	present [GlyphCount]bool
	n       int
}

// Lookup returns the metrics for code and whether it was packed.
func (t *GlyphTable) Lookup(code byte) (GlyphMetrics, bool) {
	if code < FirstCode || code > LastCode {
		return GlyphMetrics{}, false
	}
	i := int(code) - FirstCode
	return t.glyphs[i], t.present[i]
}

// Len returns the number of packed glyphs.
func (t *GlyphTable) Len() int {
	return t.n
}

// Each calls fn for every packed glyph in ascending code order.
func (t *GlyphTable) Each(fn func(GlyphMetrics)) {
	for i := range t.glyphs {
		if t.present[i] {
			fn(t.glyphs[i])
		}
	}
}

func (t *GlyphTable) set(m GlyphMetrics) {
	i := int(m.Code) - FirstCode
	if !t.present[i] {
		t.n++
	}
	t.glyphs[i] = m
	t.present[i] = true
}
