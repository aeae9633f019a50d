// Package text builds bitmap font atlases and turns strings into textured
// quads.
//
// An atlas covers the printable ASCII range (codes 32 through 126). Glyphs
// are rasterized with golang.org/x/image at a fixed pixel height and
// packed row by row into a single-channel bitmap, with a margin of
// DefaultMargin pixels around each glyph:
//
//	f, err := text.LoadFontFile("DejaVuSans.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img, err := text.Rasterize(f, 32, 512, 512)
//
// The same build uploaded to the GPU gives a FontAtlas that owns the R8
// texture, its sampler, a bind group and an alpha-blended pipeline for the
// surface format:
//
//	atlas, err := text.NewFontAtlas(ctx, fontData, 32, 512, 512)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer atlas.Destroy()
//
//	verts = atlas.AppendText(verts[:0], "Score: 42", 10, 40,
//	    text.Viewport{Width: 800, Height: 600}, text.White)
//	_ = vb.Write(verts)
//	_ = vb.Draw(pass, atlas)
//
// Text is processed byte by byte with no shaping, kerning or bidi.
// Bytes outside the atlas are skipped.
package text
