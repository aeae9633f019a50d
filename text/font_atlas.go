package text

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/ungrund"
	"github.com/gogpu/ungrund/render"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/text.wgsl
var textShaderSource string

// ShaderSource returns the WGSL source of the text pipeline.
func ShaderSource() string {
	return textShaderSource
}

// FontAtlas is a rasterized font uploaded to the GPU together with the
// pipeline and bind group that draw it.
//
// Every GPU object is owned by the atlas and released by Destroy in one
// teardown. The glyph data is immutable, so AppendText and friends may be
// called from any goroutine; Draw and Destroy belong to the render thread.
type FontAtlas struct {
	device hal.Device
	image  *AtlasImage
	label  string
	format gputypes.TextureFormat

	texture    hal.Texture
	view       hal.TextureView
	sampler    hal.Sampler
	bindLayout hal.BindGroupLayout
	bindGroup  hal.BindGroup
	pipeLayout hal.PipelineLayout
	shader     hal.ShaderModule
	pipeline   hal.RenderPipeline
}

// NewFontAtlas parses fontData, rasterizes its printable ASCII glyphs at
// pixelHeight into a width×height atlas and uploads it for drawing into
// ctx's surface format.
//
// A font that cannot be parsed yields a *FontLoadError. A GPU failure
// yields a *render.GPUResourceError after every object created so far has
// been released. An atlas too small for all glyphs is not an error; see
// Rasterize.
func NewFontAtlas(ctx *render.Context, fontData []byte, pixelHeight float64, width, height int, opts ...Option) (*FontAtlas, error) {
	if err := validateBuild(pixelHeight, width, height, newAtlasConfig(opts)); err != nil {
		return nil, err
	}
	f, err := LoadFont(fontData)
	if err != nil {
		return nil, err
	}
	img, err := Rasterize(f, pixelHeight, width, height, opts...)
	if err != nil {
		return nil, err
	}
	return NewFontAtlasFromImage(ctx, img, opts...)
}

// NewFontAtlasFromImage uploads an already rasterized atlas. Only the GPU
// options (WithLabel, WithSPIRV) are used; the image keeps its own packing
// settings.
func NewFontAtlasFromImage(ctx *render.Context, img *AtlasImage, opts ...Option) (_ *FontAtlas, err error) {
	if ctx == nil || ctx.Device == nil || ctx.Queue == nil {
		return nil, render.ErrNilContext
	}
	if img == nil || img.Bitmap == nil {
		return nil, fmt.Errorf("%w: nil atlas image", ErrInvalidSize)
	}
	cfg := newAtlasConfig(opts)

	a := &FontAtlas{
		device: ctx.Device,
		image:  img,
		label:  cfg.label,
		format: ctx.Format,
	}
	defer func() {
		if err != nil {
			a.Destroy()
		}
	}()

	if err := a.createTexture(ctx.Queue); err != nil {
		return nil, err
	}
	if err := a.createBindGroup(); err != nil {
		return nil, err
	}
	if err := a.createPipeline(cfg.spirv); err != nil {
		return nil, err
	}

	ungrund.Logger().Info("text: font atlas built",
		"label", a.label,
		"width", img.Width(),
		"height", img.Height(),
		"glyphs", img.Packed(),
		"overflow", img.Overflow)
	return a, nil
}

// Image returns the CPU side of the atlas.
func (a *FontAtlas) Image() *AtlasImage { return a.image }

// Glyphs returns the glyph table.
func (a *FontAtlas) Glyphs() *GlyphTable { return &a.image.Glyphs }

// Width returns the atlas width in pixels.
func (a *FontAtlas) Width() int { return a.image.Width() }

// Height returns the atlas height in pixels.
func (a *FontAtlas) Height() int { return a.image.Height() }

// Scale returns the font-unit-to-pixel scale the atlas was built with.
func (a *FontAtlas) Scale() float64 { return a.image.Scale }

// Format returns the color target format of the pipeline.
func (a *FontAtlas) Format() gputypes.TextureFormat { return a.format }

// Pipeline returns the text render pipeline, or nil after Destroy.
func (a *FontAtlas) Pipeline() hal.RenderPipeline { return a.pipeline }

// BindGroup returns the bind group exposing the atlas texture (binding 0)
// and sampler (binding 1), or nil after Destroy.
func (a *FontAtlas) BindGroup() hal.BindGroup { return a.bindGroup }

// AppendText appends the quads for s at pixel (x, y). See AtlasImage.AppendText.
func (a *FontAtlas) AppendText(dst []Vertex, s string, x, y float32, vp Viewport, c Color) []Vertex {
	return a.image.AppendText(dst, s, x, y, vp, c)
}

// AppendTextNDC appends the quads for s at NDC (x, y). See AtlasImage.AppendTextNDC.
func (a *FontAtlas) AppendTextNDC(dst []Vertex, s string, x, y, pixelScale float32, c Color) []Vertex {
	return a.image.AppendTextNDC(dst, s, x, y, pixelScale, c)
}

// MeasureText returns the horizontal advance of s in pixels.
func (a *FontAtlas) MeasureText(s string) float32 {
	return a.image.MeasureText(s)
}

// Bind sets the atlas pipeline and bind group on pass.
func (a *FontAtlas) Bind(pass hal.RenderPassEncoder) error {
	if a.pipeline == nil {
		return ErrAtlasDestroyed
	}
	pass.SetPipeline(a.pipeline)
	pass.SetBindGroup(0, a.bindGroup, nil)
	return nil
}

// Destroy releases every GPU object of the atlas in reverse creation
// order. Safe to call multiple times.
func (a *FontAtlas) Destroy() {
	if a.device == nil {
		return
	}
	if a.pipeline != nil {
		a.device.DestroyRenderPipeline(a.pipeline)
		a.pipeline = nil
	}
	if a.shader != nil {
		a.device.DestroyShaderModule(a.shader)
		a.shader = nil
	}
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
		a.pipeLayout = nil
	}
	if a.bindGroup != nil {
		a.device.DestroyBindGroup(a.bindGroup)
		a.bindGroup = nil
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
		a.bindLayout = nil
	}
	if a.sampler != nil {
		a.device.DestroySampler(a.sampler)
		a.sampler = nil
	}
	if a.view != nil {
		a.device.DestroyTextureView(a.view)
		a.view = nil
	}
	if a.texture != nil {
		a.device.DestroyTexture(a.texture)
		a.texture = nil
	}
}

// createTexture creates the R8 atlas texture, uploads the bitmap once and
// creates the view and sampler over it.
func (a *FontAtlas) createTexture(queue hal.Queue) error {
	w := uint32(a.image.Width())  //nolint:gosec // atlas size validated positive
	h := uint32(a.image.Height()) //nolint:gosec // atlas size validated positive

	tex, err := a.device.CreateTexture(&hal.TextureDescriptor{
		Label:         a.label + "_atlas",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return &render.GPUResourceError{Op: "create atlas texture", Err: err}
	}
	a.texture = tex

	queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  a.texture,
			MipLevel: 0,
		},
		a.image.Bitmap.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(a.image.Bitmap.Stride), //nolint:gosec // stride equals width
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	view, err := a.device.CreateTextureView(a.texture, &hal.TextureViewDescriptor{
		Label:         a.label + "_atlas_view",
		Format:        gputypes.TextureFormatR8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return &render.GPUResourceError{Op: "create atlas view", Err: err}
	}
	a.view = view

	sampler, err := a.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        a.label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return &render.GPUResourceError{Op: "create atlas sampler", Err: err}
	}
	a.sampler = sampler
	return nil
}

// createBindGroup exposes the texture and sampler to the fragment stage.
func (a *FontAtlas) createBindGroup() error {
	layout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: a.label + "_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return &render.GPUResourceError{Op: "create bind group layout", Err: err}
	}
	a.bindLayout = layout

	group, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  a.label + "_bind_group",
		Layout: a.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{
				TextureView: a.view.NativeHandle(),
			}},
			{Binding: 1, Resource: gputypes.SamplerBinding{
				Sampler: a.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return &render.GPUResourceError{Op: "create bind group", Err: err}
	}
	a.bindGroup = group
	return nil
}

// createPipeline builds the alpha-blended text pipeline targeting the
// surface format.
func (a *FontAtlas) createPipeline(spirv bool) error {
	if textShaderSource == "" {
		return &render.GPUResourceError{Op: "create text shader", Err: errors.New("shader source is empty")}
	}

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            a.label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return &render.GPUResourceError{Op: "create pipeline layout", Err: err}
	}
	a.pipeLayout = pipeLayout

	source := hal.ShaderSource{WGSL: textShaderSource}
	if spirv {
		words, err := compileSPIRV(textShaderSource)
		if err != nil {
			return &render.GPUResourceError{Op: "compile text shader", Err: err}
		}
		source = hal.ShaderSource{SPIRV: words}
	}
	shader, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  a.label + "_shader",
		Source: source,
	})
	if err != nil {
		return &render.GPUResourceError{Op: "create text shader", Err: err}
	}
	a.shader = shader

	blend := gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorZero,
			Operation: gputypes.BlendOperationAdd,
		},
	}
	pipeline, err := a.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  a.label + "_pipeline",
		Layout: a.pipeLayout,
		Vertex: hal.VertexState{
			Module:     a.shader,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{VertexLayout()},
		},
		Fragment: &hal.FragmentState{
			Module:     a.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    a.format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return &render.GPUResourceError{Op: "create text pipeline", Err: err}
	}
	a.pipeline = pipeline
	return nil
}

// compileSPIRV compiles WGSL to SPIR-V words.
// SPIR-V is little-endian 32-bit words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("naga: %w", err)
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
