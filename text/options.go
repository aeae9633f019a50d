package text

// DefaultMargin is the gap in pixels kept around every glyph in the atlas.
const DefaultMargin = 2

// Option configures atlas construction.
type Option func(*atlasConfig)

// atlasConfig holds configuration for Rasterize and NewFontAtlas.
type atlasConfig struct {
	margin         int
	missingAdvance float32
	spirv          bool
	label          string
}

// defaultAtlasConfig returns the default atlas configuration.
func defaultAtlasConfig() atlasConfig {
	return atlasConfig{
		margin: DefaultMargin,
		label:  "ungrund_text",
	}
}

func newAtlasConfig(opts []Option) atlasConfig {
	cfg := defaultAtlasConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMargin sets the padding between packed glyphs and the atlas edge.
// Negative values are rejected by the build with ErrInvalidSize.
func WithMargin(px int) Option {
	return func(c *atlasConfig) {
		c.margin = px
	}
}

// WithMissingGlyphAdvance sets how far, in pixels, the pen moves for a byte
// that has no glyph in the atlas. The default 0 renders missing glyphs as
// nothing at all.
func WithMissingGlyphAdvance(px float32) Option {
	return func(c *atlasConfig) {
		c.missingAdvance = px
	}
}

// WithSPIRV makes NewFontAtlas hand the device SPIR-V compiled from the
// embedded WGSL with naga, for backends that do not accept WGSL directly.
func WithSPIRV(enabled bool) Option {
	return func(c *atlasConfig) {
		c.spirv = enabled
	}
}

// WithLabel sets the prefix of every GPU object label created by NewFontAtlas.
func WithLabel(label string) Option {
	return func(c *atlasConfig) {
		c.label = label
	}
}
