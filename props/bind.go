// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"fmt"
	"reflect"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/value"
)

// ErrBind is returned by [Bind] for a struct it cannot bind.
var ErrBind = errors.New("props: cannot bind struct")

// Prop is a typed view of a property cell, for use as a field of a
// properties struct filled by [Bind].
type Prop[T any] struct {
	arena  *cell.Arena
	handle cell.Handle
	kind   value.Kinds
}

type binder interface {
	bind(a *cell.Arena, p *Property)
}

func (p *Prop[T]) bind(a *cell.Arena, pr *Property) {
	p.arena, p.handle, p.kind = a, pr.Handle, pr.Kind
}

// Get returns the current value of the property as a T. A value that
// cannot be converted is an invariant violation.
func (p Prop[T]) Get() T {
	v := p.arena.Value(p.handle)
	cv, err := value.Coerce(v, value.KindOf[T]())
	if err == nil {
		var r T
		if r, err = value.To[T](cv); err == nil {
			return r
		}
	}
	errors.Invariant(fmt.Errorf("%w: property %q: %w", value.ErrDowncast, p.arena.Name(p.handle), err))
	var zero T
	return zero
}

// Value returns the current value of the property.
func (p Prop[T]) Value() value.Value { return p.arena.Value(p.handle) }

// Set sets the property, which must be backed by a literal cell.
func (p Prop[T]) Set(v T) error {
	cv, err := value.Coerce(value.From(v), p.kind)
	if err != nil {
		return err
	}
	return p.arena.SetValue(p.handle, cv)
}

// Handle returns the handle of the property cell.
func (p Prop[T]) Handle() cell.Handle { return p.handle }

// IsBound returns whether the property has been bound by [Bind].
func (p Prop[T]) IsBound() bool { return p.arena != nil }

// Bind returns a new T, which must be a struct, with each field of
// type [Prop] tagged `prop:"name"` bound to the named property of the
// bundle. Fields without a tag are left alone, and a tag of "-" skips
// the field.
func Bind[T any](b *Bundle) (*T, error) {
	t := new(T)
	rv := reflect.ValueOf(t).Elem()
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T is not a struct", ErrBind, *t)
	}
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		name, ok := f.Tag.Lookup("prop")
		if !ok || name == "-" {
			continue
		}
		var bd binder
		if f.IsExported() {
			bd, _ = rv.Field(i).Addr().Interface().(binder)
		}
		if bd == nil {
			return nil, fmt.Errorf("%w: field %s.%s is not an exported Prop", ErrBind, rt.Name(), f.Name)
		}
		p, ok := b.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q for field %s.%s", ErrMissing, name, rt.Name(), f.Name)
		}
		bd.bind(b.arena, p)
	}
	return t, nil
}
