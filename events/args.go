// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"strings"
)

// Buttons is a mouse button.
type Buttons int32 //enums:enum

const (
	NoButton Buttons = iota
	Left
	Middle
	Right
)

func (b Buttons) String() string {
	switch b {
	case Left:
		return "Left"
	case Middle:
		return "Middle"
	case Right:
		return "Right"
	}
	return "NoButton"
}

// Modifiers are the modifier keys held during an event.
type Modifiers int32 //enums:bitflag

const (
	Shift Modifiers = 1 << iota
	Control
	Alt
	Command
)

// Has returns whether all of the given modifiers are set.
func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

func (m Modifiers) String() string {
	var s []string
	for _, f := range []struct {
		m  Modifiers
		nm string
	}{{Shift, "Shift"}, {Control, "Control"}, {Alt, "Alt"}, {Command, "Command"}} {
		if m.Has(f.m) {
			s = append(s, f.nm)
		}
	}
	return strings.Join(s, "|")
}

// MouseArgs are the fields common to mouse events.
type MouseArgs struct {
	X, Y      float64
	Button    Buttons
	Modifiers Modifiers
}

func (ma MouseArgs) String() string {
	return fmt.Sprintf("{Button: %v, Pos: (%g, %g), Mods: %v}", ma.Button, ma.X, ma.Y, ma.Modifiers)
}

// KeyboardArgs are the fields common to keyboard events.
type KeyboardArgs struct {
	Key       string
	Modifiers Modifiers
	IsRepeat  bool
}

// Touch is a single touch point.
type Touch struct {
	X, Y           float64
	Identifier     int64
	DeltaX, DeltaY float64
}

// The argument structs of each event type.
type (
	ClickArgs          struct{ Mouse MouseArgs }
	DoubleClickArgs    struct{ Mouse MouseArgs }
	MouseDownArgs      struct{ Mouse MouseArgs }
	MouseUpArgs        struct{ Mouse MouseArgs }
	MouseMoveArgs      struct{ Mouse MouseArgs }
	MouseOverArgs      struct{ Mouse MouseArgs }
	MouseOutArgs       struct{ Mouse MouseArgs }
	ContextMenuArgs    struct{ Mouse MouseArgs }
	KeyDownArgs        struct{ Keyboard KeyboardArgs }
	KeyUpArgs          struct{ Keyboard KeyboardArgs }
	KeyPressArgs       struct{ Keyboard KeyboardArgs }
	TouchStartArgs     struct{ Touches []Touch }
	TouchMoveArgs      struct{ Touches []Touch }
	TouchEndArgs       struct{ Touches []Touch }
	CheckboxChangeArgs struct{ Checked bool }
	TextInputArgs      struct{ Text string }
	TextboxChangeArgs  struct{ Text string }
	TextboxInputArgs   struct{ Text string }
	ButtonClickArgs    struct{}
)

// WheelArgs is the argument of a [Wheel] event.
type WheelArgs struct {
	X, Y           float64
	DeltaX, DeltaY float64
	Modifiers      Modifiers
}

// ScrollArgs is the argument of a [Scroll] event.
type ScrollArgs struct {
	DeltaX, DeltaY float64
}

// ClapArgs is the argument of a [Clap] event.
type ClapArgs struct {
	X, Y float64
}

// DropArgs is the argument of a [Drop] event.
type DropArgs struct {
	X, Y     float64
	Name     string
	MimeType string
	Data     []byte
}

// Event is an event being dispatched: its type, its argument, if any,
// and whether a handler has requested that the host skip its default
// behavior for it.
type Event struct {
	Type Types
	Args any

	cancelled bool
}

// New returns a new event of the given type and argument.
func New(typ Types, args any) *Event {
	return &Event{Type: typ, Args: args}
}

// PreventDefault marks the event so the host skips its default behavior.
func (ev *Event) PreventDefault() { ev.cancelled = true }

// Cancelled returns whether [Event.PreventDefault] has been called.
func (ev *Event) Cancelled() bool { return ev.cancelled }

func (ev *Event) String() string {
	if ev.Args == nil {
		return ev.Type.String()
	}
	return fmt.Sprintf("%v%+v", ev.Type, ev.Args)
}
