// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import "github.com/gogpu/gpucontext"

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	// MouseButtonLeft is the primary button.
	MouseButtonLeft MouseButton = iota

	// MouseButtonRight is the secondary button.
	MouseButtonRight

	// MouseButtonMiddle is the wheel button.
	MouseButtonMiddle
)

// String returns the button name.
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "Left"
	case MouseButtonRight:
		return "Right"
	case MouseButtonMiddle:
		return "Middle"
	default:
		return "Unknown"
	}
}

// KeyHandler consumes keyboard events. Repeats arrive as pressed=true.
type KeyHandler interface {
	HandleKey(key gpucontext.Key, mods gpucontext.Modifiers, pressed bool)
}

// KeyHandlerFunc adapts a function to KeyHandler.
type KeyHandlerFunc func(key gpucontext.Key, mods gpucontext.Modifiers, pressed bool)

// HandleKey calls f.
func (f KeyHandlerFunc) HandleKey(key gpucontext.Key, mods gpucontext.Modifiers, pressed bool) {
	f(key, mods, pressed)
}

// MouseMoveHandler consumes cursor motion in window pixels.
type MouseMoveHandler interface {
	HandleMouseMove(x, y float64)
}

// MouseMoveHandlerFunc adapts a function to MouseMoveHandler.
type MouseMoveHandlerFunc func(x, y float64)

// HandleMouseMove calls f.
func (f MouseMoveHandlerFunc) HandleMouseMove(x, y float64) {
	f(x, y)
}

// MouseButtonHandler consumes mouse button presses and releases.
type MouseButtonHandler interface {
	HandleMouseButton(button MouseButton, pressed bool)
}

// MouseButtonHandlerFunc adapts a function to MouseButtonHandler.
type MouseButtonHandlerFunc func(button MouseButton, pressed bool)

// HandleMouseButton calls f.
func (f MouseButtonHandlerFunc) HandleMouseButton(button MouseButton, pressed bool) {
	f(button, pressed)
}

// Input routes window events to the registered handlers and remembers the
// current key, button and cursor state for polling.
//
// The window layer calls the Dispatch methods from its event callbacks,
// which run inside Window.PollEvents on the render thread. Input is not
// safe for concurrent use.
type Input struct {
	key    KeyHandler
	move   MouseMoveHandler
	button MouseButtonHandler

	keys    map[gpucontext.Key]bool
	buttons [3]bool
	x, y    float64
}

// NewInput creates an empty dispatcher. The zero Input is also ready to use.
func NewInput() *Input {
	return &Input{keys: make(map[gpucontext.Key]bool)}
}

// SetKeyHandler registers h for key events; nil unregisters.
func (in *Input) SetKeyHandler(h KeyHandler) { in.key = h }

// SetMouseMoveHandler registers h for cursor motion; nil unregisters.
func (in *Input) SetMouseMoveHandler(h MouseMoveHandler) { in.move = h }

// SetMouseButtonHandler registers h for button events; nil unregisters.
func (in *Input) SetMouseButtonHandler(h MouseButtonHandler) { in.button = h }

// DispatchKey records the key state and forwards the event.
func (in *Input) DispatchKey(key gpucontext.Key, mods gpucontext.Modifiers, pressed bool) {
	if pressed {
		if in.keys == nil {
			in.keys = make(map[gpucontext.Key]bool)
		}
		in.keys[key] = true
	} else {
		delete(in.keys, key)
	}
	if in.key != nil {
		in.key.HandleKey(key, mods, pressed)
	}
}

// DispatchMouseMove records the cursor position and forwards the event.
func (in *Input) DispatchMouseMove(x, y float64) {
	in.x, in.y = x, y
	if in.move != nil {
		in.move.HandleMouseMove(x, y)
	}
}

// DispatchMouseButton records the button state and forwards the event.
// Buttons other than left, right and middle are ignored.
func (in *Input) DispatchMouseButton(button MouseButton, pressed bool) {
	if int(button) >= len(in.buttons) {
		return
	}
	in.buttons[button] = pressed
	if in.button != nil {
		in.button.HandleMouseButton(button, pressed)
	}
}

// KeyDown reports whether key is currently held.
func (in *Input) KeyDown(key gpucontext.Key) bool {
	return in.keys[key]
}

// ButtonDown reports whether button is currently held.
func (in *Input) ButtonDown(button MouseButton) bool {
	if int(button) >= len(in.buttons) {
		return false
	}
	return in.buttons[button]
}

// MousePosition returns the last cursor position in window pixels.
func (in *Input) MousePosition() (x, y float64) {
	return in.x, in.y
}
