// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/ungrund"
)

// Platform lifecycle errors.
var (
	// ErrAlreadyInitialized is returned by Init when the platform is up.
	ErrAlreadyInitialized = errors.New("app: platform already initialized")

	// ErrNotInitialized is returned by Terminate before a successful Init.
	ErrNotInitialized = errors.New("app: platform not initialized")

	// ErrNilSystem is returned by Init for a nil System.
	ErrNilSystem = errors.New("app: nil system")
)

// System is the process-wide windowing library.
type System interface {
	// Init brings the library up. It is called once per Init.
	Init() error

	// Terminate releases everything Init acquired.
	Terminate() error
}

// platform is the explicit process-wide state guarded by Init and Terminate.
var platform struct {
	mu  sync.Mutex
	sys System
}

// Init initializes sys as the process's windowing system. It must be called
// exactly once by the application before any window is created, and paired
// with Terminate. A second Init without Terminate fails with
// ErrAlreadyInitialized.
func Init(sys System) error {
	if sys == nil {
		return ErrNilSystem
	}
	platform.mu.Lock()
	defer platform.mu.Unlock()

	if platform.sys != nil {
		return ErrAlreadyInitialized
	}
	if err := sys.Init(); err != nil {
		return fmt.Errorf("app: init platform: %w", err)
	}
	platform.sys = sys
	ungrund.Logger().Info("app: platform initialized")
	return nil
}

// Terminate tears down the system passed to Init. The platform counts as
// terminated even if the system reports an error, so Init may be called
// again afterwards.
func Terminate() error {
	platform.mu.Lock()
	defer platform.mu.Unlock()

	if platform.sys == nil {
		return ErrNotInitialized
	}
	sys := platform.sys
	platform.sys = nil
	if err := sys.Terminate(); err != nil {
		return fmt.Errorf("app: terminate platform: %w", err)
	}
	ungrund.Logger().Info("app: platform terminated")
	return nil
}

// Initialized reports whether Init has succeeded without a later Terminate.
func Initialized() bool {
	platform.mu.Lock()
	defer platform.mu.Unlock()
	return platform.sys != nil
}
