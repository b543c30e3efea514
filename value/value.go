// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value provides the dynamically typed [Value] that flows
// through properties, expressions and handler arguments, along with
// the domain value types [Size], [Rotation], [Range] and [Object].
package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrDowncast is returned when a [Value] is read as a kind it does not hold.
var ErrDowncast = errors.New("value: downcast failed")

// ErrMismatch is returned when a [Value] cannot be coerced to a kind.
var ErrMismatch = errors.New("value: type mismatch")

// Tolerance is the absolute tolerance used for float equality.
const Tolerance = 1e-6

// Value is a tagged union over the [Kinds]. The zero Value is [Null].
// Values are immutable; List and Object contents must not be modified
// after construction.
type Value struct {
	kind Kinds
	i    int64
	f    float64
	s    string
	x    any
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// BoolOf returns a [Bool] value.
func BoolOf(b bool) Value {
	v := Value{kind: Bool}
	if b {
		v.i = 1
	}
	return v
}

// IntOf returns an [Int] value.
func IntOf(i int64) Value { return Value{kind: Int, i: i} }

// FloatOf returns a [Float] value.
func FloatOf(f float64) Value { return Value{kind: Float, f: f} }

// StringOf returns a [String] value.
func StringOf(s string) Value { return Value{kind: String, s: s} }

// SizeOf returns a [Size] value.
func SizeOf(s SizeValue) Value { return Value{kind: Size, x: s} }

// RotationOf returns a [Rotation] value.
func RotationOf(r RotationValue) Value { return Value{kind: Rotation, x: r} }

// ListOf returns a [List] value holding the given elements.
func ListOf(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: List, x: elems}
}

// RangeOf returns a [Range] value over [start, end).
func RangeOf(start, end int) Value { return Value{kind: Range, x: RangeValue{Start: start, End: end}} }

// ObjectOf returns an [Object] value.
func ObjectOf(o *ObjectValue) Value {
	if o == nil {
		o = NewObject("")
	}
	return Value{kind: Object, x: o}
}

// OpaqueOf wraps an arbitrary Go value.
func OpaqueOf(x any) Value { return Value{kind: Opaque, x: x} }

// Kind returns the kind of the value.
func (v Value) Kind() Kinds { return v.kind }

// IsNull returns whether the value is [Null].
func (v Value) IsNull() bool { return v.kind == Null }

func (v Value) downcastErr(want Kinds) error {
	return fmt.Errorf("%w: have %s, want %s", ErrDowncast, v.kind, want)
}

// AsBool returns the value as a bool.
func (v Value) AsBool() (bool, error) {
	if v.kind != Bool {
		return false, v.downcastErr(Bool)
	}
	return v.i != 0, nil
}

// AsInt returns the value as an int64. Float values with no
// fractional part are accepted.
func (v Value) AsInt() (int64, error) {
	switch v.kind {
	case Int:
		return v.i, nil
	case Float:
		if v.f == math.Trunc(v.f) {
			return int64(v.f), nil
		}
	}
	return 0, v.downcastErr(Int)
}

// AsFloat returns the value as a float64. Int values are widened.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case Float:
		return v.f, nil
	case Int:
		return float64(v.i), nil
	}
	return 0, v.downcastErr(Float)
}

// AsString returns the value as a string.
func (v Value) AsString() (string, error) {
	if v.kind != String {
		return "", v.downcastErr(String)
	}
	return v.s, nil
}

// AsSize returns the value as a [SizeValue].
func (v Value) AsSize() (SizeValue, error) {
	if v.kind != Size {
		return SizeValue{}, v.downcastErr(Size)
	}
	return v.x.(SizeValue), nil
}

// AsRotation returns the value as a [RotationValue].
func (v Value) AsRotation() (RotationValue, error) {
	if v.kind != Rotation {
		return RotationValue{}, v.downcastErr(Rotation)
	}
	return v.x.(RotationValue), nil
}

// AsList returns the elements of a [List] value.
// The returned slice must not be modified.
func (v Value) AsList() ([]Value, error) {
	if v.kind != List {
		return nil, v.downcastErr(List)
	}
	return v.x.([]Value), nil
}

// AsRange returns the value as a [RangeValue].
func (v Value) AsRange() (RangeValue, error) {
	if v.kind != Range {
		return RangeValue{}, v.downcastErr(Range)
	}
	return v.x.(RangeValue), nil
}

// AsObject returns the value as an [ObjectValue].
func (v Value) AsObject() (*ObjectValue, error) {
	if v.kind != Object {
		return nil, v.downcastErr(Object)
	}
	return v.x.(*ObjectValue), nil
}

// AsOpaque returns the Go value wrapped by an [Opaque] value.
func (v Value) AsOpaque() (any, error) {
	if v.kind != Opaque {
		return nil, v.downcastErr(Opaque)
	}
	return v.x, nil
}

// Len returns the number of elements of a [List] or [Range],
// the number of fields of an [Object], and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case List:
		return len(v.x.([]Value))
	case Range:
		return v.x.(RangeValue).Len()
	case Object:
		return v.x.(*ObjectValue).Len()
	}
	return 0
}

// Truthy returns whether the value counts as true in a condition:
// true, non-zero numbers, non-empty strings and collections.
func (v Value) Truthy() bool {
	switch v.kind {
	case Bool, Int:
		return v.i != 0
	case Float:
		return v.f != 0
	case String:
		return v.s != ""
	case List, Range, Object:
		return v.Len() > 0
	case Opaque:
		return v.x != nil
	}
	return false
}

// Equal returns whether two values are equal. Numbers compare by
// value across [Int] and [Float], with floats equal within [Tolerance].
func (v Value) Equal(o Value) bool {
	if v.kind.IsNumeric() && o.kind.IsNumeric() {
		if v.kind == Int && o.kind == Int {
			return v.i == o.i
		}
		a, _ := v.AsFloat()
		b, _ := o.AsFloat()
		return math.Abs(a-b) <= Tolerance
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.i == o.i
	case String:
		return v.s == o.s
	case Size:
		return v.x.(SizeValue).Equal(o.x.(SizeValue))
	case Rotation:
		return v.x.(RotationValue).Equal(o.x.(RotationValue))
	case Range:
		return v.x.(RangeValue) == o.x.(RangeValue)
	case List:
		a, b := v.x.([]Value), o.x.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case Object:
		return v.x.(*ObjectValue).Equal(o.x.(*ObjectValue))
	}
	return v.x == o.x
}

// String returns a readable representation of the value, in the
// same syntax accepted by [Parse] for scalar kinds.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.i != 0)
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case String:
		return v.s
	case Size:
		return v.x.(SizeValue).String()
	case Rotation:
		return v.x.(RotationValue).String()
	case Range:
		return v.x.(RangeValue).String()
	case List:
		elems := v.x.([]Value)
		strs := make([]string, len(elems))
		for i, e := range elems {
			strs[i] = e.String()
		}
		return "[" + strings.Join(strs, ", ") + "]"
	case Object:
		return v.x.(*ObjectValue).String()
	}
	return fmt.Sprintf("%v", v.x)
}

// GoString implements [fmt.GoStringer], including the kind.
func (v Value) GoString() string {
	return v.kind.String() + "(" + v.String() + ")"
}

// Clone returns a deep copy of the value. List and Object contents are
// copied; opaque values are shared.
func (v Value) Clone() Value {
	switch v.kind {
	case List:
		elems := v.x.([]Value)
		cp := make([]Value, len(elems))
		for i, e := range elems {
			cp[i] = e.Clone()
		}
		return ListOf(cp...)
	case Object:
		o := v.x.(*ObjectValue)
		cp := NewObject(o.Type)
		for k, f := range o.fields.All() {
			cp.Set(k, f.Clone())
		}
		return ObjectOf(cp)
	}
	return v
}
