// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/ungrund"
	"github.com/gogpu/ungrund/render"
)

// ErrNilArgument is returned by Run when the window, manager or renderer is nil.
var ErrNilArgument = errors.New("app: nil argument")

// Window is the host window Run polls each iteration.
type Window interface {
	// ShouldClose reports whether the user asked to close the window.
	ShouldClose() bool

	// PollEvents processes pending window events, dispatching input.
	PollEvents()

	// Size returns the framebuffer size in pixels.
	Size() (width, height int)
}

// FrameContext is what a FrameRenderer gets for one frame.
type FrameContext struct {
	// Frame is the open frame to record into.
	Frame *render.Frame

	// Index counts rendered frames from zero.
	Index uint64

	// Delta is the time since the previous rendered frame (since Run
	// started for the first one).
	Delta time.Duration

	// Elapsed is the time since Run started.
	Elapsed time.Duration

	// Width and Height are the framebuffer size in pixels.
	Width, Height int
}

// FrameRenderer records the commands of one frame.
type FrameRenderer interface {
	RenderFrame(fc *FrameContext) error
}

// RendererFunc adapts a function to FrameRenderer.
type RendererFunc func(fc *FrameContext) error

// RenderFrame calls f.
func (f RendererFunc) RenderFrame(fc *FrameContext) error {
	return f(fc)
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	now       func() time.Time
	maxFrames uint64
}

// WithClock replaces time.Now as the loop's time source.
func WithClock(now func() time.Time) RunOption {
	return func(c *runConfig) {
		c.now = now
	}
}

// WithMaxFrames stops Run after n rendered frames. Zero means no limit.
func WithMaxFrames(n uint64) RunOption {
	return func(c *runConfig) {
		c.maxFrames = n
	}
}

// Run drives the render loop until the window closes, ctx is done or the
// renderer fails. Each iteration polls window events, begins a frame,
// hands it to r and ends it. Iterations where the surface has no texture
// are skipped without calling r.
//
// Run returns nil when the window closes or the frame limit is reached,
// ctx.Err() on cancellation, and the renderer's or manager's error
// otherwise. The frame open during a failure is always ended first.
func Run(ctx context.Context, win Window, mgr *render.Manager, r FrameRenderer, opts ...RunOption) error {
	if win == nil || mgr == nil || r == nil {
		return ErrNilArgument
	}
	cfg := runConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	log := ungrund.Logger()
	start := cfg.now()
	last := start
	var rendered uint64

	log.Debug("app: loop started")
	defer func() {
		st := mgr.Stats()
		log.Debug("app: loop stopped",
			"rendered", rendered,
			"presented", st.Presented,
			"skipped", st.Skipped,
			"failed", st.Failed)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if win.ShouldClose() {
			return nil
		}
		if cfg.maxFrames > 0 && rendered >= cfg.maxFrames {
			return nil
		}

		win.PollEvents()

		index := rendered
		_, err := mgr.Do(func(f *render.Frame) error {
			now := cfg.now()
			w, h := win.Size()
			fc := &FrameContext{
				Frame:   f,
				Index:   index,
				Delta:   now.Sub(last),
				Elapsed: now.Sub(start),
				Width:   w,
				Height:  h,
			}
			last = now
			rendered++
			return r.RenderFrame(fc)
		})
		if err != nil {
			return fmt.Errorf("app: frame %d: %w", index, err)
		}
	}
}
