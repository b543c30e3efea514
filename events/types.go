// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the event types that handlers can be
// registered for, and the argument structs delivered with them.
package events

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Types is the type of an event. Handlers are registered per type.
// The names follow the standard
// [JavaScript Event](https://developer.mozilla.org/en-US/docs/Web/Events)
// names where one exists, plus the lifecycle events Mount and Tick.
type Types int32 //enums:enum

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// Mount is sent once to a node, after it is first built and
	// attached to the tree. It has no argument.
	Mount

	// Tick is sent to every active node on every engine tick.
	// It has no argument.
	Tick

	// Click represents a MouseDown followed by MouseUp on the same node.
	Click

	// DoubleClick represents two Click events in rapid succession.
	DoubleClick

	// MouseDown happens when a mouse button is pressed over a node.
	MouseDown

	// MouseUp happens when a mouse button is released over a node.
	MouseUp

	// MouseMove happens when the mouse moves over a node.
	MouseMove

	// MouseOver happens when the mouse moves onto a node.
	MouseOver

	// MouseOut happens when the mouse moves off a node.
	MouseOut

	// Wheel happens when the mouse wheel is scrolled over a node.
	Wheel

	// Scroll happens when a scrolling container is translated.
	Scroll

	// Clap is either a Click or a single finger tap.
	Clap

	// KeyDown happens when a key is pressed.
	KeyDown

	// KeyUp happens when a key is released.
	KeyUp

	// KeyPress happens when a key that produces a character is pressed.
	KeyPress

	// TouchStart happens when a touch begins over a node.
	TouchStart

	// TouchMove happens when a touch point moves.
	TouchMove

	// TouchEnd happens when a touch ends.
	TouchEnd

	// ContextMenu happens on a right click requesting a context menu.
	ContextMenu

	// Drop happens when a file is dropped onto a node.
	Drop

	// CheckboxChange happens when a checkbox primitive is toggled.
	CheckboxChange

	// TextInput happens when text is entered into a text primitive.
	TextInput

	// TextboxChange happens when a textbox primitive value is committed.
	TextboxChange

	// TextboxInput happens on each edit of a textbox primitive.
	TextboxInput

	// ButtonClick happens when a button primitive is clicked.
	ButtonClick
)

var typeNames = [...]string{"UnknownType", "Mount", "Tick", "Click", "DoubleClick",
	"MouseDown", "MouseUp", "MouseMove", "MouseOver", "MouseOut", "Wheel", "Scroll",
	"Clap", "KeyDown", "KeyUp", "KeyPress", "TouchStart", "TouchMove", "TouchEnd",
	"ContextMenu", "Drop", "CheckboxChange", "TextInput", "TextboxChange",
	"TextboxInput", "ButtonClick"}

// TypesValues returns all possible values for the type Types.
func TypesValues() []Types {
	vals := make([]Types, len(typeNames))
	for i := range vals {
		vals[i] = Types(i)
	}
	return vals
}

// String returns the string representation of this Types value.
func (i Types) String() string {
	if i < 0 || int(i) >= len(typeNames) {
		return fmt.Sprintf("Types(%d)", int32(i))
	}
	return typeNames[i]
}

// SetString sets the Types value from its string representation,
// and returns an error if the string is invalid. The camel case name,
// the snake case name used in manifests ("double_click"), and the
// lowercase name are all accepted.
func (i *Types) SetString(s string) error {
	s = strings.TrimSpace(s)
	camel := strcase.ToCamel(s)
	for j, nm := range typeNames {
		if nm == camel || strings.EqualFold(nm, s) {
			*i = Types(j)
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid value for type Types", s)
}

// Parse returns the event type with the given name.
func Parse(name string) (Types, error) {
	var t Types
	err := t.SetString(name)
	return t, err
}

// ManifestName returns the snake case name of the type, as written
// in manifests.
func (i Types) ManifestName() string { return strcase.ToSnake(i.String()) }

// MarshalText implements the [encoding.TextMarshaler] interface.
func (i Types) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (i *Types) UnmarshalText(text []byte) error { return i.SetString(string(text)) }

// HasArgs returns whether events of this type carry an argument.
func (i Types) HasArgs() bool {
	return i != Mount && i != Tick && i != UnknownType
}
