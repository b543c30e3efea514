// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"

	"cogentcore.org/weave/base/keylist"
)

// RangeValue is the half-open integer range [Start, End).
// It is stored in [Range] values.
type RangeValue struct {
	Start int
	End   int
}

// Len returns the number of integers in the range, which is 0
// for an empty or inverted range.
func (r RangeValue) Len() int { return max(r.End-r.Start, 0) }

// At returns the i-th integer of the range.
func (r RangeValue) At(i int) int { return r.Start + i }

func (r RangeValue) String() string { return fmt.Sprintf("%d..%d", r.Start, r.End) }

// ObjectValue is a set of named fields in declaration order,
// optionally tagged with a type name. It is stored in [Object] values.
type ObjectValue struct {
	// Type is the optional name of the type of the object.
	Type string

	fields *keylist.List[string, Value]
}

// NewObject returns a new empty object of the given type.
func NewObject(typ string) *ObjectValue {
	return &ObjectValue{Type: typ, fields: keylist.New[string, Value]()}
}

// Set sets the named field, adding it at the end if it is new.
// It returns the object for chaining during construction.
func (o *ObjectValue) Set(name string, v Value) *ObjectValue {
	o.fields.Set(name, v)
	return o
}

// Field returns the named field and whether it exists.
func (o *ObjectValue) Field(name string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	idx := o.fields.IndexByKey(name)
	if idx < 0 {
		return Value{}, false
	}
	return o.fields.Values[idx], true
}

// Names returns the field names in order.
func (o *ObjectValue) Names() []string {
	if o == nil {
		return nil
	}
	return o.fields.Keys
}

// Len returns the number of fields.
func (o *ObjectValue) Len() int {
	if o == nil {
		return 0
	}
	return o.fields.Len()
}

// Equal returns whether the objects have the same type and equal
// fields in the same order.
func (o *ObjectValue) Equal(p *ObjectValue) bool {
	if o == nil || p == nil {
		return o.Len() == p.Len()
	}
	if o.Len() != p.Len() || o.Type != p.Type {
		return false
	}
	for i, k := range o.fields.Keys {
		if p.fields.Keys[i] != k || !o.fields.Values[i].Equal(p.fields.Values[i]) {
			return false
		}
	}
	return true
}

func (o *ObjectValue) String() string {
	var b strings.Builder
	b.WriteString(o.Type)
	b.WriteString("{")
	for i, k := range o.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(o.fields.Values[i].String())
	}
	b.WriteString("}")
	return b.String()
}
