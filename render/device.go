// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider. Hosts that also
// expose their HAL objects (HalDevice/HalQueue) can be turned into a
// [Context] with [ContextFromProvider].
type DeviceHandle = gpucontext.DeviceProvider

// Surface is the presentable side of a window, supplied by the host.
//
// AcquireTexture returns the next texture to render into. Any error is
// treated as "no frame this iteration"; hosts should return (or wrap)
// ErrSurfaceLost, ErrSurfaceOutdated or ErrSurfaceTimeout where they can.
//
// Present queues the acquired texture for display. DiscardTexture gives an
// acquired texture back without presenting it, used when a frame fails
// before submission.
type Surface interface {
	AcquireTexture() (hal.Texture, error)
	Present(texture hal.Texture) error
	DiscardTexture(texture hal.Texture)
}

// Reconfigurer is implemented by surfaces that can rebuild their swapchain
// after ErrSurfaceLost or ErrSurfaceOutdated.
type Reconfigurer interface {
	Reconfigure() error
}

// Context bundles the borrowed GPU objects a frame needs. Nothing in a
// Context is owned or destroyed by this package.
type Context struct {
	// Device creates views and command encoders.
	Device hal.Device

	// Queue receives the finished command buffers.
	Queue hal.Queue

	// Surface yields presentable textures.
	Surface Surface

	// Format is the surface's configured texture format. Pipelines that
	// draw into frames must target this format.
	Format gputypes.TextureFormat
}

// NewContext validates and bundles the host's GPU objects.
func NewContext(device hal.Device, queue hal.Queue, surface Surface, format gputypes.TextureFormat) (*Context, error) {
	c := &Context{
		Device:  device,
		Queue:   queue,
		Surface: surface,
		Format:  format,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ContextFromProvider builds a Context from a gpucontext.DeviceProvider.
// The provider must also implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue, which is how gogpu exposes its HAL
// objects. The surface format is taken from the provider.
func ContextFromProvider(provider DeviceHandle, surface Surface) (*Context, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return nil, ErrNilContext
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("render: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("render: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("render: provider HalQueue is not hal.Queue")
	}
	return NewContext(device, queue, surface, provider.SurfaceFormat())
}

// Validate reports ErrNilContext if any borrowed object is missing.
func (c *Context) Validate() error {
	if c == nil {
		return ErrNilContext
	}
	switch {
	case c.Device == nil:
		return fmt.Errorf("%w: nil device", ErrNilContext)
	case c.Queue == nil:
		return fmt.Errorf("%w: nil queue", ErrNilContext)
	case c.Surface == nil:
		return fmt.Errorf("%w: nil surface", ErrNilContext)
	case c.Format == gputypes.TextureFormatUndefined:
		return fmt.Errorf("%w: undefined surface format", ErrNilContext)
	}
	return nil
}
