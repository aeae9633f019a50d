package text

// Viewport is the size in pixels of the target the text is drawn to.
type Viewport struct {
	Width, Height float32
}

// AppendText appends the quads for s to dst, with the pen starting at
// pixel (x, y) on the baseline. Pixel coordinates have their origin at the
// top-left of the viewport and grow downward; the vertices are emitted in
// normalized device coordinates. It returns the extended slice.
//
// Text is consumed byte by byte and every drawn glyph emits VerticesPerGlyph
// vertices. Bytes with no glyph in the atlas produce no vertices. Blank
// glyphs such as space have an empty atlas rectangle: they move the pen by
// their advance but emit no vertices, so len(dst) grows by fewer than
// VerticesPerGlyph*len(s). A non-positive viewport appends nothing.
func (a *AtlasImage) AppendText(dst []Vertex, s string, x, y float32, vp Viewport, c Color) []Vertex {
	if vp.Width <= 0 || vp.Height <= 0 {
		return dst
	}
	ndcX := x/vp.Width*2 - 1
	ndcY := 1 - y/vp.Height*2
	return a.appendQuads(dst, s, ndcX, ndcY, 2/vp.Width, 2/vp.Height, c)
}

// AppendTextNDC appends the quads for s to dst, with the pen starting at
// (x, y) in normalized device coordinates. pixelScale is the size of one
// atlas pixel in NDC units on both axes. Unmapped bytes and blank glyphs
// are handled as in AppendText.
func (a *AtlasImage) AppendTextNDC(dst []Vertex, s string, x, y, pixelScale float32, c Color) []Vertex {
	return a.appendQuads(dst, s, x, y, pixelScale, pixelScale, c)
}

// MeasureText returns the horizontal advance of s in pixels.
func (a *AtlasImage) MeasureText(s string) float32 {
	var w float32
	for i := 0; i < len(s); i++ {
		g, ok := a.Glyphs.Lookup(s[i])
		if !ok {
			w += a.missingAdvance
			continue
		}
		w += g.Advance
	}
	return w
}

// appendQuads emits two triangles per visible glyph. sx and sy convert
// atlas pixels into the target space; the target's y axis points up.
func (a *AtlasImage) appendQuads(dst []Vertex, s string, penX, penY, sx, sy float32, c Color) []Vertex {
	if len(s) == 0 {
		return dst
	}
	invW := 1 / float32(a.Width())
	invH := 1 / float32(a.Height())
	col := c.array()

	for i := 0; i < len(s); i++ {
		g, ok := a.Glyphs.Lookup(s[i])
		if !ok {
			penX += a.missingAdvance * sx
			continue
		}
		if g.Rect.Empty() {
			penX += g.Advance * sx
			continue
		}

		x0 := penX + g.BearingX*sx
		y0 := penY - g.BearingY*sy
		x1 := x0 + float32(g.Rect.W())*sx
		y1 := y0 - float32(g.Rect.H())*sy

		u0 := float32(g.Rect.X0) * invW
		v0 := float32(g.Rect.Y0) * invH
		u1 := float32(g.Rect.X1) * invW
		v1 := float32(g.Rect.Y1) * invH

		dst = append(dst,
			Vertex{Position: [2]float32{x0, y0}, UV: [2]float32{u0, v0}, Color: col},
			Vertex{Position: [2]float32{x1, y0}, UV: [2]float32{u1, v0}, Color: col},
			Vertex{Position: [2]float32{x0, y1}, UV: [2]float32{u0, v1}, Color: col},

			Vertex{Position: [2]float32{x0, y1}, UV: [2]float32{u0, v1}, Color: col},
			Vertex{Position: [2]float32{x1, y0}, UV: [2]float32{u1, v0}, Color: col},
			Vertex{Position: [2]float32{x1, y1}, UV: [2]float32{u1, v1}, Color: col},
		)

		penX += g.Advance * sx
	}
	return dst
}
