// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// eventLog records resource events in order across the test doubles.
type eventLog struct {
	events []string
}

func (l *eventLog) add(e string) { l.events = append(l.events, e) }

// trackingDevice wraps a noop device and counts the per-frame resources.
type trackingDevice struct {
	hal.Device
	log *eventLog

	viewsCreated    int
	viewsDestroyed  int
	encodersCreated int
	encodersClosed  int
	cmdBufsFreed    int

	failView    bool
	failEncoder bool
	failBegin   bool
	failFinish  bool
}

func (d *trackingDevice) CreateTextureView(texture hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	if d.failView {
		return nil, errors.New("view creation refused")
	}
	v, err := d.Device.CreateTextureView(texture, desc)
	if err == nil {
		d.viewsCreated++
		d.log.add("create view")
	}
	return v, err
}

func (d *trackingDevice) DestroyTextureView(view hal.TextureView) {
	d.viewsDestroyed++
	d.log.add("destroy view")
	d.Device.DestroyTextureView(view)
}

func (d *trackingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	if d.failEncoder {
		return nil, errors.New("encoder creation refused")
	}
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	d.encodersCreated++
	d.log.add("create encoder")
	return &trackingEncoder{CommandEncoder: enc, dev: d}, nil
}

func (d *trackingDevice) FreeCommandBuffer(cmdBuffer hal.CommandBuffer) {
	d.cmdBufsFreed++
	d.log.add("free command buffer")
	d.Device.FreeCommandBuffer(cmdBuffer)
}

// live reports how many frame resources are still outstanding: views not
// destroyed plus recording scopes neither finished nor discarded.
func (d *trackingDevice) live() int {
	return (d.viewsCreated - d.viewsDestroyed) + (d.encodersCreated - d.encodersClosed)
}

// trackingEncoder records when the recording scope is finished or discarded.
type trackingEncoder struct {
	hal.CommandEncoder
	dev *trackingDevice
}

func (e *trackingEncoder) BeginEncoding(label string) error {
	if e.dev.failBegin {
		return errors.New("begin refused")
	}
	return e.CommandEncoder.BeginEncoding(label)
}

func (e *trackingEncoder) EndEncoding() (hal.CommandBuffer, error) {
	if e.dev.failFinish {
		return nil, errors.New("finish refused")
	}
	cmdBuf, err := e.CommandEncoder.EndEncoding()
	if err == nil {
		e.dev.encodersClosed++
		e.dev.log.add("finish")
	}
	return cmdBuf, err
}

func (e *trackingEncoder) DiscardEncoding() {
	e.dev.encodersClosed++
	e.dev.log.add("discard encoder")
	e.CommandEncoder.DiscardEncoding()
}

// trackingQueue records submissions without touching the backend.
type trackingQueue struct {
	hal.Queue
	log        *eventLog
	submits    int
	failSubmit bool
}

func (q *trackingQueue) Submit(cmdBuffers []hal.CommandBuffer) (uint64, error) {
	if q.failSubmit {
		return 0, errors.New("submit refused")
	}
	q.submits += len(cmdBuffers)
	q.log.add("submit")
	return 0, nil
}

// fakeSurface hands out one texture and scripts acquisition failures.
type fakeSurface struct {
	log         *eventLog
	texture     hal.Texture
	acquireErrs []error
	presentErr  error

	acquires     int
	presents     int
	discards     int
	reconfigures int
}

func (s *fakeSurface) AcquireTexture() (hal.Texture, error) {
	s.acquires++
	if len(s.acquireErrs) > 0 {
		err := s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return s.texture, nil
}

func (s *fakeSurface) Present(texture hal.Texture) error {
	s.presents++
	s.log.add("present")
	return s.presentErr
}

func (s *fakeSurface) DiscardTexture(texture hal.Texture) {
	s.discards++
	s.log.add("discard")
}

// reconfigurableSurface adds Reconfigurer to fakeSurface.
type reconfigurableSurface struct {
	*fakeSurface
}

func (s reconfigurableSurface) Reconfigure() error {
	s.reconfigures++
	return nil
}

// fixture bundles the doubles for one test.
type fixture struct {
	log     *eventLog
	device  *trackingDevice
	queue   *trackingQueue
	surface *fakeSurface
	ctx     *Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "fake_surface_texture",
		Size:          hal.Extent3D{Width: 64, Height: 64, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	t.Cleanup(func() { device.DestroyTexture(tex) })

	log := &eventLog{}
	f := &fixture{
		log:     log,
		device:  &trackingDevice{Device: device, log: log},
		queue:   &trackingQueue{Queue: queue, log: log},
		surface: &fakeSurface{log: log, texture: tex},
	}
	f.ctx = &Context{
		Device:  f.device,
		Queue:   f.queue,
		Surface: f.surface,
		Format:  gputypes.TextureFormatBGRA8Unorm,
	}
	return f
}

func (f *fixture) manager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(f.ctx)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}
