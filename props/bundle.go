// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package props provides property bundles: the ordered, type-erased
// sets of property cells that every instance node owns, along with the
// common properties shared by all nodes.
package props

import (
	"fmt"
	"iter"
	"strings"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/base/keylist"
	"cogentcore.org/weave/base/suggest"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/value"
)

// ErrMissing is returned for a property name not in a bundle.
var ErrMissing = errors.New("props: no such property")

// Property is one entry of a [Bundle].
type Property struct {
	// Name is the property name.
	Name string

	// Kind is the declared kind of the property. Values written to the
	// property are coerced to it.
	Kind value.Kinds

	// Handle is the cell backing the property. It holds a [value.Value].
	Handle cell.Handle

	// Owned is whether the bundle owns the cell and must release it.
	// Two-way bound properties alias a cell owned elsewhere.
	Owned bool
}

// Bundle is an ordered set of properties backed by cells in one arena.
type Bundle struct {
	arena *cell.Arena
	props *keylist.List[string, *Property]
}

// NewBundle returns a new empty bundle on the arena.
func NewBundle(a *cell.Arena) *Bundle {
	return &Bundle{arena: a, props: keylist.New[string, *Property]()}
}

// Arena returns the arena of the bundle cells.
func (b *Bundle) Arena() *cell.Arena { return b.arena }

// Set adds the property, replacing any property of the same name in
// place. It returns the replaced property, if any, so that the caller
// can release its cell.
func (b *Bundle) Set(p Property) *Property {
	old, _ := b.props.AtTry(p.Name)
	b.props.Set(p.Name, &p)
	return old
}

// SetLiteral sets the named property to a new owned literal cell
// holding v coerced to the kind.
func (b *Bundle) SetLiteral(name string, kind value.Kinds, v value.Value) (*Property, error) {
	cv, err := value.Coerce(v, kind)
	if err != nil {
		return nil, fmt.Errorf("props.Bundle.SetLiteral %q: %w", name, err)
	}
	c := cell.NewLiteral(b.arena, cv, name)
	return b.Set(Property{Name: name, Kind: kind, Handle: c.Handle(), Owned: true}), nil
}

// Get returns the named property.
func (b *Bundle) Get(name string) (*Property, bool) {
	if b == nil {
		return nil, false
	}
	return b.props.AtTry(name)
}

// Handle returns the cell backing the named property.
func (b *Bundle) Handle(name string) (cell.Handle, bool) {
	p, ok := b.Get(name)
	if !ok {
		return cell.Handle{}, false
	}
	return p.Handle, true
}

// Kind returns the declared kind of the named property, or [value.Null].
func (b *Bundle) Kind(name string) value.Kinds {
	p, ok := b.Get(name)
	if !ok {
		return value.Null
	}
	return p.Kind
}

// Value returns the current value of the named property, or null if
// the bundle has no such property.
func (b *Bundle) Value(name string) value.Value {
	p, ok := b.Get(name)
	if !ok {
		return value.Value{}
	}
	return b.arena.Value(p.Handle)
}

// SetValue writes v, coerced to the declared kind, to the literal cell
// backing the named property.
func (b *Bundle) SetValue(name string, v value.Value) error {
	p, ok := b.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q%s", ErrMissing, name, suggest.Hint(name, b.Names()))
	}
	cv, err := value.Coerce(v, p.Kind)
	if err != nil {
		return fmt.Errorf("props.Bundle.SetValue %q: %w", name, err)
	}
	return b.arena.SetValue(p.Handle, cv)
}

// Names returns the property names in order.
func (b *Bundle) Names() []string {
	if b == nil {
		return nil
	}
	return b.props.Keys
}

// Len returns the number of properties.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return b.props.Len()
}

// All returns an iterator over the properties in order.
func (b *Bundle) All() iter.Seq[*Property] {
	return func(yield func(*Property) bool) {
		if b == nil {
			return
		}
		for _, p := range b.props.All() {
			if !yield(p) {
				return
			}
		}
	}
}

// Owned returns the handles of the cells the bundle owns.
func (b *Bundle) Owned() []cell.Handle {
	var hs []cell.Handle
	for p := range b.All() {
		if p.Owned {
			hs = append(hs, p.Handle)
		}
	}
	return hs
}

// Bindings returns the property handles by name, for a scope frame.
func (b *Bundle) Bindings() map[string]cell.Handle {
	m := make(map[string]cell.Handle, b.Len())
	for p := range b.All() {
		m[p.Name] = p.Handle
	}
	return m
}

// Snapshot returns the current values of all properties as an object.
func (b *Bundle) Snapshot() *value.ObjectValue {
	o := value.NewObject("")
	for p := range b.All() {
		o.Set(p.Name, b.arena.Value(p.Handle))
	}
	return o
}

func (b *Bundle) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, p := range b.props.Values {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", p.Name, b.arena.Value(p.Handle))
	}
	sb.WriteString("}")
	return sb.String()
}
