// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render drives the per-frame lifecycle on top of a host-provided
// GPU device and window surface.
//
// # Key Principle
//
// render RECEIVES the device, queue and surface from the host application,
// it does NOT create them. A [Context] only borrows these objects; the
// [Manager] owns nothing but the transient resources of the frame in flight.
//
// # Frame Lifecycle
//
//	Idle → Acquiring → Recording → Submitting → Presented → Idle
//
// [Manager.BeginFrame] acquires the next surface texture, creates a color
// view over it and opens a command encoder. [Manager.EndFrame] finishes the
// encoder, submits the command buffer, presents the surface texture and
// releases the view, encoder and command buffer in that order.
//
// A surface that cannot hand out a texture (lost, outdated, timed out) is not
// an error: BeginFrame returns a nil frame and the loop simply tries again on
// the next iteration.
//
// # Usage
//
//	mgr, err := render.NewManager(ctx)
//	if err != nil { ... }
//	for running {
//	    window.PollEvents()
//	    _, err := mgr.Do(func(f *render.Frame) error {
//	        pass := f.BeginPass(&gputypes.Color{R: 0.1, G: 0.1, B: 0.15, A: 1})
//	        defer pass.End()
//	        // record draws ...
//	        return nil
//	    })
//	    if err != nil { ... }
//	}
//
// # Thread Safety
//
// A Manager is driven from the single render thread. It has no locks; the
// state machine rejects out-of-order calls instead.
package render
