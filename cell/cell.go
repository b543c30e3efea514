// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"fmt"
	"reflect"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/value"
)

// Cell is a typed view of a cell in an [Arena]. It is a small value
// type that can be copied freely; all copies refer to the same cell.
type Cell[T any] struct {
	arena  *Arena
	handle Handle
}

func newEntry[T any](name string) *entry {
	return &entry{
		name: name,
		typ:  reflect.TypeFor[T](),
		fromValue: func(v value.Value) (any, error) {
			return value.To[T](v)
		},
	}
}

// NewLiteral returns a new literal cell holding v.
func NewLiteral[T any](a *Arena, v T, name string) Cell[T] {
	e := newEntry[T](name)
	e.val = v
	return Cell[T]{arena: a, handle: a.alloc(e)}
}

// NewComputed returns a new computed cell whose value is the result of
// fn. fn is first called on the first read, and called again on a read
// only when the version of one of the given dependencies has changed.
// The dependencies are fixed for the life of the cell.
func NewComputed[T any](a *Arena, fn func() T, deps []Handle, name string) Cell[T] {
	e := newEntry[T](name)
	e.compute = func() any { return fn() }
	e.deps = append([]Handle(nil), deps...)
	e.depVersions = make([]uint64, len(deps))
	for _, d := range deps {
		a.mustLookup(d)
	}
	return Cell[T]{arena: a, handle: a.alloc(e)}
}

// Typed returns the typed view of an erased handle, which must refer to
// a live cell of type T.
func Typed[T any](a *Arena, h Handle) (Cell[T], error) {
	e, err := a.lookup(h)
	if err != nil {
		return Cell[T]{}, err
	}
	if want := reflect.TypeFor[T](); e.typ != want {
		return Cell[T]{}, fmt.Errorf("%w: %q is %v, not %v", ErrType, e.name, e.typ, want)
	}
	return Cell[T]{arena: a, handle: h}, nil
}

// Get returns the current value. A computed cell is recomputed first
// if it has never been read or any dependency has changed.
func (c Cell[T]) Get() T {
	v, _ := c.arena.get(c.handle).(T)
	return v
}

// Set sets the value of a literal cell and bumps its version.
// Setting a computed cell is an invariant violation.
func (c Cell[T]) Set(v T) {
	e := c.arena.mustLookup(c.handle)
	if e.compute != nil {
		errors.Invariant(fmt.Errorf("%w: %q", ErrComputedSet, e.name))
	}
	e.val = v
	e.version++
}

// Version returns the current version of the cell, without refreshing it.
func (c Cell[T]) Version() uint64 { return c.arena.Version(c.handle) }

// Handle returns the erased handle of the cell.
func (c Cell[T]) Handle() Handle { return c.handle }

// Name returns the debug name of the cell.
func (c Cell[T]) Name() string { return c.arena.Name(c.handle) }

// Arena returns the arena that owns the cell.
func (c Cell[T]) Arena() *Arena { return c.arena }

// IsValid returns whether the cell was created by an arena.
func (c Cell[T]) IsValid() bool { return c.arena != nil && c.handle.IsValid() }
