// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/ungrund"
	"github.com/gogpu/wgpu/hal"
)

// Stats counts frame outcomes since the manager was created.
type Stats struct {
	// Presented is the number of frames submitted and presented.
	Presented uint64

	// Skipped is the number of BeginFrame calls that got no surface texture.
	Skipped uint64

	// Failed is the number of frames aborted by a GPU error.
	Failed uint64
}

// Manager runs the frame lifecycle state machine for one Context.
//
// At most one Frame is open at a time. BeginFrame and EndFrame must be
// strictly paired on the render thread; Do wraps the pair so the frame is
// always ended, even if the drawing callback fails or panics.
type Manager struct {
	ctx     *Context
	state   State
	current *Frame
	seq     uint64
	stats   Stats
}

// NewManager creates a manager for ctx. The context is borrowed.
func NewManager(ctx *Context) (*Manager, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	return &Manager{ctx: ctx}, nil
}

// Context returns the borrowed context.
func (m *Manager) Context() *Context { return m.ctx }

// State returns the current lifecycle state.
func (m *Manager) State() State { return m.state }

// Current returns the open frame, or nil when idle.
func (m *Manager) Current() *Frame { return m.current }

// Stats returns the frame counters.
func (m *Manager) Stats() Stats { return m.stats }

// BeginFrame acquires the next surface texture and opens a frame.
//
// It is only valid while idle; otherwise ErrFrameInProgress is returned and
// the open frame is left untouched. If the surface has no texture to give,
// BeginFrame returns (nil, nil): the caller skips this iteration and tries
// again on the next one. A GPU failure after acquisition releases whatever
// was created, hands the texture back to the surface and returns a
// *GPUResourceError.
func (m *Manager) BeginFrame() (*Frame, error) {
	if m.state != StateIdle {
		return nil, fmt.Errorf("%w (state %s)", ErrFrameInProgress, m.state)
	}

	m.state = StateAcquiring
	texture, err := m.ctx.Surface.AcquireTexture()
	if err != nil || texture == nil {
		m.state = StateIdle
		m.skip(err)
		return nil, nil
	}

	device := m.ctx.Device
	view, err := device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label: "ungrund_frame_view",
	})
	if err != nil {
		return nil, m.abortAcquired(texture, nil, &GPUResourceError{Op: "create frame view", Err: err})
	}

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "ungrund_frame_encoder",
	})
	if err != nil {
		return nil, m.abortAcquired(texture, view, &GPUResourceError{Op: "create command encoder", Err: err})
	}
	if err := encoder.BeginEncoding("ungrund_frame"); err != nil {
		encoder.DiscardEncoding()
		return nil, m.abortAcquired(texture, view, &GPUResourceError{Op: "begin encoding", Err: err})
	}

	m.seq++
	f := &Frame{
		seq:     m.seq,
		format:  m.ctx.Format,
		texture: texture,
		view:    view,
		encoder: encoder,
	}
	m.current = f
	m.state = StateRecording

	ungrund.Logger().Debug("render: frame begun", "seq", f.seq)
	return f, nil
}

// EndFrame finishes, submits and presents the open frame, then releases its
// view, encoder and command buffer. The manager is idle afterwards whatever
// the outcome.
//
// Submission does not wait for the GPU. A presentation failure is a surface
// problem and is absorbed like a failed acquisition; only recording and
// submission failures are returned.
func (m *Manager) EndFrame(f *Frame) error {
	if m.state != StateRecording || m.current == nil {
		return fmt.Errorf("%w (state %s)", ErrNoFrame, m.state)
	}
	if f != m.current {
		return ErrForeignFrame
	}

	m.state = StateSubmitting
	cmdBuf, err := f.encoder.EndEncoding()
	if err != nil {
		f.encoder.DiscardEncoding()
		m.ctx.Surface.DiscardTexture(f.texture)
		m.release(f, nil)
		m.stats.Failed++
		return &GPUResourceError{Op: "finish recording", Err: err}
	}

	if _, err := m.ctx.Queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		m.ctx.Surface.DiscardTexture(f.texture)
		m.release(f, cmdBuf)
		m.stats.Failed++
		return &GPUResourceError{Op: "submit", Err: err}
	}

	m.state = StatePresented
	presentErr := m.ctx.Surface.Present(f.texture)
	seq := f.seq
	m.release(f, cmdBuf)

	if presentErr != nil {
		m.skip(presentErr)
		return nil
	}
	m.stats.Presented++
	ungrund.Logger().Debug("render: frame presented", "seq", seq)
	return nil
}

// Do runs one complete frame: BeginFrame, fn, EndFrame. It reports whether
// a frame was presented. When the surface has no texture fn is not called
// and Do returns (false, nil).
//
// The frame is ended even if fn returns an error or panics; fn's error and
// any EndFrame error are joined.
func (m *Manager) Do(fn func(*Frame) error) (presented bool, err error) {
	f, err := m.BeginFrame()
	if err != nil || f == nil {
		return false, err
	}

	before := m.stats.Presented
	defer func() {
		endErr := m.EndFrame(f)
		err = errors.Join(err, endErr)
		presented = m.stats.Presented > before
	}()

	return false, fn(f)
}

// release frees the frame's transient resources in order: view, encoder,
// command buffer. It always returns the manager to idle.
func (m *Manager) release(f *Frame, cmdBuf hal.CommandBuffer) {
	if f.view != nil {
		m.ctx.Device.DestroyTextureView(f.view)
	}
	f.close()
	if cmdBuf != nil {
		m.ctx.Device.FreeCommandBuffer(cmdBuf)
	}
	m.current = nil
	m.state = StateIdle
}

// abortAcquired undoes a partially opened frame.
func (m *Manager) abortAcquired(texture hal.Texture, view hal.TextureView, err error) error {
	if view != nil {
		m.ctx.Device.DestroyTextureView(view)
	}
	m.ctx.Surface.DiscardTexture(texture)
	m.state = StateIdle
	m.stats.Failed++
	ungrund.Logger().Warn("render: frame aborted", "err", err)
	return err
}

// skip records an iteration without a usable surface texture and lets the
// surface rebuild itself when it says it is lost or outdated.
func (m *Manager) skip(err error) {
	m.stats.Skipped++
	if err == nil {
		err = ErrSurfaceUnavailable
	}
	ungrund.Logger().Debug("render: no surface texture", "err", err)

	if !isRecoverableSurfaceError(err) {
		return
	}
	rc, ok := m.ctx.Surface.(Reconfigurer)
	if !ok {
		return
	}
	if rerr := rc.Reconfigure(); rerr != nil {
		ungrund.Logger().Warn("render: surface reconfigure failed", "err", rerr)
	}
}
