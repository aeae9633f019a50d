package text

// rowPacker places rectangles left to right in rows, top to bottom.
//
// It keeps a single cursor: the next free origin and the height of the
// tallest rectangle in the current row. A rectangle that would cross the
// right edge starts a new row below the tallest one. The first rectangle
// that cannot fit below the last row marks the packer full, and every later
// placement fails, so a partial atlas always holds a prefix of the input.
type rowPacker struct {
	width     int // Total width of the atlas
	height    int // Total height of the atlas
	margin    int // Gap between rectangles and around the edge
	x         int // Next free x in the current row
	y         int // Top of the current row
	rowHeight int // Tallest rectangle in the current row
	full      bool

	// Tracking for utilization
	usedArea int
	placed   int
}

// newRowPacker creates a packer for a width×height area.
func newRowPacker(width, height, margin int) *rowPacker {
	return &rowPacker{
		width:  width,
		height: height,
		margin: margin,
		x:      margin,
		y:      margin,
	}
}

// place reserves a w×h rectangle and returns its top-left corner, or
// ok=false once the area is exhausted. Zero-sized rectangles still consume
// one margin of horizontal space.
func (p *rowPacker) place(w, h int) (x, y int, ok bool) {
	if p.full {
		return -1, -1, false
	}

	// Wrap to a new row if this one is too narrow.
	if p.x+w+p.margin > p.width {
		p.x = p.margin
		p.y += p.rowHeight + p.margin
		p.rowHeight = 0
	}

	// Out of vertical space, or wider than the whole atlas.
	if p.y+h+p.margin > p.height || p.x+w+p.margin > p.width {
		p.full = true
		return -1, -1, false
	}

	x, y = p.x, p.y
	p.x += w + p.margin
	if h > p.rowHeight {
		p.rowHeight = h
	}
	p.usedArea += w * h
	p.placed++
	return x, y, true
}

// Full reports whether a placement has failed.
func (p *rowPacker) Full() bool {
	return p.full
}

// Placed returns the number of successful placements.
func (p *rowPacker) Placed() int {
	return p.placed
}

// Utilization returns the fraction of the area covered by placed rectangles.
func (p *rowPacker) Utilization() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.width*p.height)
}
