// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
)

// Surface errors. Hosts return these (or errors wrapping them) from
// Surface.AcquireTexture so the manager can tell which recovery applies.
// All of them are transient from the manager's point of view.
var (
	// ErrSurfaceUnavailable is the generic "no texture this iteration" error.
	ErrSurfaceUnavailable = errors.New("render: surface texture unavailable")

	// ErrSurfaceLost is returned when the surface must be recreated.
	ErrSurfaceLost = errors.New("render: surface lost")

	// ErrSurfaceOutdated is returned when the surface no longer matches the window.
	ErrSurfaceOutdated = errors.New("render: surface outdated")

	// ErrSurfaceTimeout is returned when acquisition timed out.
	ErrSurfaceTimeout = errors.New("render: surface acquire timeout")
)

// Lifecycle errors.
var (
	// ErrNilContext is returned when a Manager is created without a usable Context.
	ErrNilContext = errors.New("render: context is nil or incomplete")

	// ErrFrameInProgress is returned by BeginFrame when a frame is already open.
	ErrFrameInProgress = errors.New("render: frame already in progress")

	// ErrNoFrame is returned by EndFrame when no frame is open.
	ErrNoFrame = errors.New("render: no frame in progress")

	// ErrForeignFrame is returned by EndFrame for a frame that is not the open one.
	ErrForeignFrame = errors.New("render: frame does not belong to the open frame")
)

// GPUResourceError reports a failed GPU object creation or command operation.
type GPUResourceError struct {
	// Op names the failed operation (e.g. "create frame view").
	Op string

	// Err is the underlying HAL error.
	Err error
}

func (e *GPUResourceError) Error() string {
	return fmt.Sprintf("render: %s: %v", e.Op, e.Err)
}

func (e *GPUResourceError) Unwrap() error { return e.Err }

// isRecoverableSurfaceError reports whether the surface should be
// reconfigured before the next acquisition.
func isRecoverableSurfaceError(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated)
}
