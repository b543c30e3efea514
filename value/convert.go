// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// From wraps a Go value. Go numeric types become [Int] or [Float],
// slices of values or of any become [List], string keyed maps become
// [Object] with sorted field names, and unrecognized types are [Opaque].
func From(x any) Value {
	switch x := x.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case bool:
		return BoolOf(x)
	case int:
		return NumberOf(x)
	case int8:
		return NumberOf(x)
	case int16:
		return NumberOf(x)
	case int32:
		return NumberOf(x)
	case int64:
		return NumberOf(x)
	case uint:
		return NumberOf(x)
	case uint8:
		return NumberOf(x)
	case uint16:
		return NumberOf(x)
	case uint32:
		return NumberOf(x)
	case uint64:
		return NumberOf(x)
	case float32:
		return NumberOf(x)
	case float64:
		return NumberOf(x)
	case string:
		return StringOf(x)
	case SizeValue:
		return SizeOf(x)
	case RotationValue:
		return RotationOf(x)
	case RangeValue:
		return Value{kind: Range, x: x}
	case *ObjectValue:
		return ObjectOf(x)
	case []Value:
		return ListOf(x...)
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = From(e)
		}
		return ListOf(elems...)
	case map[string]any:
		o := NewObject("")
		keys := maps.Keys(x)
		slices.Sort(keys)
		for _, k := range keys {
			o.Set(k, From(x[k]))
		}
		return ObjectOf(o)
	}
	return OpaqueOf(x)
}

// Interface returns the Go representation of the value: nil, bool,
// int64, float64, string, [SizeValue], [RotationValue], [RangeValue],
// []any, map[string]any, or the wrapped opaque value.
func (v Value) Interface() any {
	switch v.kind {
	case Null:
		return nil
	case Bool:
		return v.i != 0
	case Int:
		return v.i
	case Float:
		return v.f
	case String:
		return v.s
	case List:
		elems := v.x.([]Value)
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = e.Interface()
		}
		return out
	case Object:
		o := v.x.(*ObjectValue)
		out := make(map[string]any, o.Len())
		for k, f := range o.fields.All() {
			out[k] = f.Interface()
		}
		return out
	}
	return v.x
}

// To returns the value as the Go type T. T may be any type returned by
// one of the As methods, a Go numeric type, [Value] itself, or the type
// wrapped by an [Opaque] value. It returns an error wrapping
// [ErrDowncast] if the value does not hold a T.
func To[T any](v Value) (T, error) {
	var zero T
	var r any
	var err error
	switch any(zero).(type) {
	case Value:
		r = v
	case bool:
		r, err = v.AsBool()
	case int:
		r, err = toNumber[int](v)
	case int32:
		r, err = toNumber[int32](v)
	case int64:
		r, err = v.AsInt()
	case int8:
		r, err = toNumber[int8](v)
	case int16:
		r, err = toNumber[int16](v)
	case uint:
		r, err = toNumber[uint](v)
	case uint8:
		r, err = toNumber[uint8](v)
	case uint16:
		r, err = toNumber[uint16](v)
	case uint32:
		r, err = toNumber[uint32](v)
	case uint64:
		r, err = toNumber[uint64](v)
	case float32:
		r, err = toNumber[float32](v)
	case float64:
		r, err = v.AsFloat()
	case string:
		r, err = v.AsString()
	case SizeValue:
		r, err = v.AsSize()
	case RotationValue:
		r, err = v.AsRotation()
	case RangeValue:
		r, err = v.AsRange()
	case []Value:
		r, err = v.AsList()
	case *ObjectValue:
		r, err = v.AsObject()
	default:
		if v.kind == Opaque {
			if t, ok := v.x.(T); ok {
				return t, nil
			}
		}
		return zero, fmt.Errorf("%w: have %s, want %T", ErrDowncast, v.kind, zero)
	}
	if err != nil {
		return zero, err
	}
	return r.(T), nil
}

func toNumber[T Number](v Value) (any, error) { return ToNumber[T](v) }

// Must returns the value as a T, panicking if it does not hold one.
func Must[T any](v Value) T {
	t, err := To[T](v)
	if err != nil {
		panic(err)
	}
	return t
}

// Coerce converts the value to the given kind at the boundary between
// literal or expression results and typed properties. [Null] and
// [Opaque] targets accept anything. Ints widen to floats, integral
// floats narrow to ints, numbers become pixel sizes or degree
// rotations, strings are parsed as sizes or rotations, percent sizes
// become turn rotations and ranges expand to lists. Anything else
// returns an error wrapping [ErrMismatch].
func Coerce(v Value, kind Kinds) (Value, error) {
	if v.kind == kind || v.kind == Null || kind == Null || kind == Opaque {
		return v, nil
	}
	mismatch := func() (Value, error) {
		return Value{}, fmt.Errorf("%w: cannot coerce %s %q to %s", ErrMismatch, v.kind, v.String(), kind)
	}
	switch kind {
	case Float:
		if v.kind == Int {
			return FloatOf(float64(v.i)), nil
		}
	case Int:
		if v.kind == Float && v.f == math.Trunc(v.f) {
			return IntOf(int64(v.f)), nil
		}
	case Size:
		switch v.kind {
		case Int, Float:
			f, _ := v.AsFloat()
			return SizeOf(Px(f)), nil
		case String:
			s, err := ParseSize(v.s)
			if err != nil {
				return mismatch()
			}
			return SizeOf(s), nil
		}
	case Rotation:
		switch v.kind {
		case Int, Float:
			f, _ := v.AsFloat()
			return RotationOf(Deg(f)), nil
		case String:
			r, err := ParseRotation(v.s)
			if err != nil {
				return mismatch()
			}
			return RotationOf(r), nil
		case Size:
			if s := v.x.(SizeValue); s.Units == Percent {
				return RotationOf(TurnPct(s.Percent)), nil
			}
		}
	case List:
		if v.kind == Range {
			r := v.x.(RangeValue)
			elems := make([]Value, r.Len())
			for i := range elems {
				elems[i] = IntOf(int64(r.At(i)))
			}
			return ListOf(elems...), nil
		}
	case String:
		switch v.kind {
		case Size, Rotation:
			return StringOf(v.String()), nil
		}
	}
	return mismatch()
}

// Parse parses the text of a literal: true and false, integers, floats,
// sizes ("10px", "50%"), rotations ("45deg", "1.2rad"), ranges ("0..5"),
// quoted strings, and the empty text or "null". Any other text is
// returned as an unquoted [String].
func Parse(text string) Value {
	s := strings.TrimSpace(text)
	switch s {
	case "", "null":
		return Value{}
	case "true":
		return BoolOf(true)
	case "false":
		return BoolOf(false)
	}
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		if s[0] == '"' {
			if uq, err := strconv.Unquote(s); err == nil {
				return StringOf(uq)
			}
		}
		return StringOf(s[1 : len(s)-1])
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntOf(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatOf(f)
	}
	if a, b, ok := strings.Cut(s, ".."); ok {
		start, err1 := strconv.Atoi(strings.TrimSpace(a))
		end, err2 := strconv.Atoi(strings.TrimSpace(b))
		if err1 == nil && err2 == nil {
			return RangeOf(start, end)
		}
	}
	switch {
	case strings.HasSuffix(s, "px"), strings.HasSuffix(s, "%"):
		if sz, err := ParseSize(s); err == nil {
			return SizeOf(sz)
		}
	case strings.HasSuffix(s, "deg"), strings.HasSuffix(s, "rad"):
		if r, err := ParseRotation(s); err == nil {
			return RotationOf(r)
		}
	}
	return StringOf(s)
}

// FromLiteral converts a literal decoded from a manifest. Strings are
// interpreted by [Parse], so that "10px" is a [Size]; other values are
// converted by [From].
func FromLiteral(x any) Value {
	switch x := x.(type) {
	case string:
		return Parse(x)
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = FromLiteral(e)
		}
		return ListOf(elems...)
	case map[string]any:
		o := NewObject("")
		keys := maps.Keys(x)
		slices.Sort(keys)
		for _, k := range keys {
			o.Set(k, FromLiteral(x[k]))
		}
		return ObjectOf(o)
	}
	return From(x)
}

// KindOf returns the kind of value that [To] converts to the Go type T.
// [Value] and unrecognized types return [Opaque], which accepts anything.
func KindOf[T any]() Kinds {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int
	case float32, float64:
		return Float
	case string:
		return String
	case SizeValue:
		return Size
	case RotationValue:
		return Rotation
	case RangeValue:
		return Range
	case []Value:
		return List
	case *ObjectValue:
		return Object
	}
	return Opaque
}
