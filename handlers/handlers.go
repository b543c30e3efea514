// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package handlers provides event handlers, the per-component tables
// of handler functions, and the per-node registries that map event
// types to ordered lists of handlers.
package handlers

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/base/suggest"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/events"
	"cogentcore.org/weave/props"
	"cogentcore.org/weave/value"
)

var (
	// ErrDowncast is the invariant violated when a handler receives a
	// properties blob or argument of a type it does not accept.
	ErrDowncast = errors.New("handlers: downcast failed")

	// ErrUnknownFunc is returned for a handler function name that is
	// not in a [Table].
	ErrUnknownFunc = errors.New("handlers: unknown handler function")
)

// Context is the ambient context passed to a handler.
type Context struct {
	// Event is the event being dispatched.
	Event *events.Event

	// Props are the properties of the node the handler runs on.
	Props *props.Bundle

	// Common are the common properties of the node.
	Common *props.Bundle

	// Container are the properties of the component instance whose
	// template declares the node, or nil for the root. Handlers bound
	// inline in a template use them to update the state of that instance.
	Container *props.Bundle

	// Path is the path of the node, for logging.
	Path string

	// Frame is the number of engine ticks so far.
	Frame uint64
}

// Arena returns the arena of the node properties.
func (c *Context) Arena() *cell.Arena { return c.Props.Arena() }

// Value returns the current value of the named property of the node.
func (c *Context) Value(name string) value.Value { return c.Props.Value(name) }

// SetValue sets the named property of the node.
func (c *Context) SetValue(name string, v value.Value) error { return c.Props.SetValue(name, v) }

// PreventDefault asks the host to skip its default behavior for the event.
func (c *Context) PreventDefault() {
	if c.Event != nil {
		c.Event.PreventDefault()
	}
}

// Handler is a named function that handles an event. It accepts the
// properties blob of the node and the event argument as erased values
// and downcasts them to the types its function expects.
type Handler struct {
	// Name is the name of the handler function.
	Name string

	invoke func(ctx *Context, props, arg any)
}

// Invoke calls the handler.
func (h Handler) Invoke(ctx *Context, props, arg any) {
	h.invoke(ctx, props, arg)
}

// nilable returns whether nil is a valid value of T.
func nilable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func downcast[T any](handler, what string, x any) T {
	var zero T
	if x == nil && nilable[T]() {
		return zero
	}
	t, ok := x.(T)
	if !ok {
		errors.Invariant(fmt.Errorf("%w: handler %q expects %s of type %T, got %T", ErrDowncast, handler, what, zero, x))
	}
	return t
}

// New returns a new handler for events with an argument of type A,
// on nodes with a properties blob of type P.
func New[P, A any](name string, fn func(ctx *Context, p P, a A)) Handler {
	return Handler{Name: name, invoke: func(ctx *Context, props, arg any) {
		fn(ctx, downcast[P](name, "properties", props), downcast[A](name, "argument", arg))
	}}
}

// NewNoArg returns a new handler that ignores the event argument,
// on nodes with a properties blob of type P.
func NewNoArg[P any](name string, fn func(ctx *Context, p P)) Handler {
	return Handler{Name: name, invoke: func(ctx *Context, props, arg any) {
		fn(ctx, downcast[P](name, "properties", props))
	}}
}

// Table is the set of handler functions of a component, by name.
type Table struct {
	funcs map[string]Handler
}

// NewTable returns a new table of the given handlers.
func NewTable(hs ...Handler) *Table {
	t := &Table{funcs: map[string]Handler{}}
	for _, h := range hs {
		t.Add(h)
	}
	return t
}

// Add adds the handler, replacing any of the same name.
func (t *Table) Add(h Handler) *Table {
	t.funcs[h.Name] = h
	return t
}

// Func returns the handler function with the given name.
func (t *Table) Func(name string) (Handler, error) {
	if t != nil {
		if h, ok := t.funcs[name]; ok {
			return h, nil
		}
	}
	return Handler{}, fmt.Errorf("%w: %q%s", ErrUnknownFunc, name, suggest.Hint(name, t.Names()))
}

// Names returns the sorted function names.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.funcs))
}
