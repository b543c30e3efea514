// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scope provides the scope chain used to resolve the names
// referenced by expressions to the cells that back them.
package scope

import (
	"fmt"
	"maps"
	"slices"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/base/suggest"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/value"
)

// ErrUnresolved is the invariant violated when a name that an expression
// references is not bound in any enclosing frame.
var ErrUnresolved = errors.New("scope: unresolved symbol")

// Frame is one lexical scope: a set of name bindings plus a parent
// frame. A Frame is immutable once created, so the computed cells built
// in it can keep and share it safely. Frame implements [expr.Scope].
type Frame struct {
	arena    *cell.Arena
	parent   *Frame
	bindings map[string]cell.Handle
	depth    int
}

// Iteration describes the reserved bindings of one iteration of a
// repeat: the element and, optionally, its 0-based index.
type Iteration struct {
	// Elem is the name the element is bound to.
	Elem string

	// ElemCell is the cell holding the element.
	ElemCell cell.Handle

	// Index is the name the index is bound to, if any.
	Index string

	// IndexCell is the cell holding the index.
	IndexCell cell.Handle
}

// NewRoot returns a new root frame with the given bindings, which are
// copied.
func NewRoot(a *cell.Arena, bindings map[string]cell.Handle) *Frame {
	return &Frame{arena: a, bindings: maps.Clone(bindings)}
}

// Push returns a new child frame of f with the given bindings, which
// shadow any bindings of the same names in f and its ancestors.
func (f *Frame) Push(bindings map[string]cell.Handle) *Frame {
	return &Frame{arena: f.arena, parent: f, bindings: maps.Clone(bindings), depth: f.depth + 1}
}

// PushIteration returns a new child frame binding the element and
// index of one iteration.
func (f *Frame) PushIteration(it Iteration) *Frame {
	b := map[string]cell.Handle{}
	if it.Elem != "" {
		b[it.Elem] = it.ElemCell
	}
	if it.Index != "" {
		b[it.Index] = it.IndexCell
	}
	return f.Push(b)
}

// Parent returns the parent frame, or nil for a root.
func (f *Frame) Parent() *Frame { return f.parent }

// Arena returns the arena of the cells the frame binds.
func (f *Frame) Arena() *cell.Arena { return f.arena }

// Depth returns the number of frames above f; 0 for a root.
func (f *Frame) Depth() int { return f.depth }

// Resolve returns the cell bound to the name in the innermost frame
// that binds it, starting at f.
func (f *Frame) Resolve(name string) (cell.Handle, bool) {
	for fr := f; fr != nil; fr = fr.parent {
		if h, ok := fr.bindings[name]; ok {
			return h, true
		}
	}
	return cell.Handle{}, false
}

// Handle is [Frame.Resolve], for [expr.Scope].
func (f *Frame) Handle(name string) (cell.Handle, bool) { return f.Resolve(name) }

// MustResolve is [Frame.Resolve] where an unbound name is an invariant
// violation.
func (f *Frame) MustResolve(name string) cell.Handle {
	h, ok := f.Resolve(name)
	if !ok {
		errors.Invariant(fmt.Errorf("%w: %q%s", ErrUnresolved, name, suggest.Hint(name, f.Names())))
	}
	return h
}

// Value returns the current value of the cell bound to the name,
// refreshing it if it is computed.
func (f *Frame) Value(name string) value.Value {
	return f.arena.Value(f.MustResolve(name))
}

// Names returns all visible names, innermost first, with shadowed
// names listed once.
func (f *Frame) Names() []string {
	var names []string
	seen := map[string]bool{}
	for fr := f; fr != nil; fr = fr.parent {
		local := slices.Sorted(maps.Keys(fr.bindings))
		for _, n := range local {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

// Local returns the names bound directly by f.
func (f *Frame) Local() []string {
	return slices.Sorted(maps.Keys(f.bindings))
}

func (f *Frame) String() string {
	return fmt.Sprintf("scope.Frame{depth: %d, names: %v}", f.depth, f.Local())
}
