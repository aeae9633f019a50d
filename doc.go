// Package ungrund is a small convenience layer over the gogpu WebGPU HAL for
// 2D demos and simple games.
//
// # Overview
//
// ungrund takes care of the boilerplate between "I have a device and a
// window surface" and "I can draw text and quads":
//
//   - render: the per-frame lifecycle (acquire surface texture, record,
//     submit, present) as a small state machine.
//   - text: a fixed ASCII font atlas packed into a single R8 texture, plus a
//     quad generator that turns strings into vertex data.
//   - app: the render loop, input dispatch and explicit platform init/teardown.
//
// # Quick Start
//
//	ctx, err := render.NewContext(device, queue, surface, gputypes.TextureFormatBGRA8Unorm)
//	if err != nil { ... }
//	atlas, err := text.NewFontAtlas(ctx, fontData, 32, 512, 512)
//	if err != nil { ... }
//	defer atlas.Destroy()
//	vb, err := text.NewVertexBuffer(ctx, 1024)
//	if err != nil { ... }
//	defer vb.Destroy()
//
//	mgr, err := render.NewManager(ctx)
//	if err != nil { ... }
//	var verts []text.Vertex
//	_, err = mgr.Do(func(f *render.Frame) error {
//	    verts = atlas.AppendText(verts[:0], "Hello", 50, 50, text.Viewport{Width: 800, Height: 600}, text.White)
//	    if err := vb.Write(verts); err != nil {
//	        return err
//	    }
//	    pass := f.BeginPass(&gputypes.Color{A: 1})
//	    defer pass.End()
//	    return vb.Draw(pass, atlas)
//	})
//
// # Logging
//
// ungrund is silent by default. Use [SetLogger] to route diagnostics to any
// slog.Handler.
//
// # Coordinate System
//
// Pixel placement uses the usual window convention:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Vertices are emitted in normalized device coordinates (Y up).
package ungrund

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
