// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// State is a position in the frame lifecycle.
type State uint8

const (
	// StateIdle means no frame is open; BeginFrame is allowed.
	StateIdle State = iota

	// StateAcquiring means the surface texture is being acquired.
	StateAcquiring

	// StateRecording means a frame is open and commands may be recorded.
	StateRecording

	// StateSubmitting means the command buffer is being finished and submitted.
	StateSubmitting

	// StatePresented means the surface texture was handed to the presentation engine.
	StatePresented
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAcquiring:
		return "Acquiring"
	case StateRecording:
		return "Recording"
	case StateSubmitting:
		return "Submitting"
	case StatePresented:
		return "Presented"
	default:
		return "Unknown"
	}
}

// Frame is one open iteration of the render loop.
//
// A Frame owns its color view and command encoder until it is passed to
// Manager.EndFrame. After that every accessor returns nil; holding on to a
// Frame past EndFrame is harmless but useless.
type Frame struct {
	seq     uint64
	format  gputypes.TextureFormat
	texture hal.Texture
	view    hal.TextureView
	encoder hal.CommandEncoder
}

// Seq returns the 1-based sequence number of the frame within its manager.
func (f *Frame) Seq() uint64 { return f.seq }

// Texture returns the acquired surface texture.
func (f *Frame) Texture() hal.Texture { return f.texture }

// View returns the color view over the surface texture.
func (f *Frame) View() hal.TextureView { return f.view }

// Encoder returns the open command encoder (the frame's recording scope).
func (f *Frame) Encoder() hal.CommandEncoder { return f.encoder }

// Format returns the surface texture format.
func (f *Frame) Format() gputypes.TextureFormat { return f.format }

// Open reports whether the frame has not been ended yet.
func (f *Frame) Open() bool { return f.encoder != nil }

// BeginPass starts a render pass targeting the frame's color view.
// With a non-nil clear color the target is cleared first, otherwise the
// previous contents are loaded. The caller must End the returned pass
// before the frame is ended.
func (f *Frame) BeginPass(clear *gputypes.Color) hal.RenderPassEncoder {
	att := hal.RenderPassColorAttachment{
		View:    f.view,
		LoadOp:  gputypes.LoadOpLoad,
		StoreOp: gputypes.StoreOpStore,
	}
	if clear != nil {
		att.LoadOp = gputypes.LoadOpClear
		att.ClearValue = *clear
	}
	return f.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "ungrund_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{att},
	})
}

// close drops every handle so a stale Frame cannot be used to record.
func (f *Frame) close() {
	f.texture = nil
	f.view = nil
	f.encoder = nil
}
