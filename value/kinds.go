// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"
)

// Kinds are the kinds of [Value]. Each kind corresponds to exactly
// one concrete Go representation; [Opaque] holds anything else.
type Kinds int32 //enums:enum

const (
	// Null is the absence of a value. It is the zero [Value], and
	// it coerces to every other kind (an unset optional property).
	Null Kinds = iota

	// Bool is a boolean.
	Bool

	// Int is a signed integer, stored as an int64.
	Int

	// Float is a floating point number, stored as a float64.
	Float

	// String is a string.
	String

	// Size is a [Size]: pixels, percent of parent bounds, or both.
	Size

	// Rotation is a [Rotation]: degrees, radians or percent of a turn.
	Rotation

	// List is an ordered list of values.
	List

	// Range is a half-open integer [Range].
	Range

	// Object is an [Object]: ordered named fields, optionally typed.
	Object

	// Opaque is any other Go value.
	Opaque
)

var kindNames = [...]string{"null", "bool", "int", "float", "string", "size", "rotation", "list", "range", "object", "opaque"}

// KindsValues returns all possible values for the type Kinds.
func KindsValues() []Kinds {
	vals := make([]Kinds, len(kindNames))
	for i := range vals {
		vals[i] = Kinds(i)
	}
	return vals
}

// String returns the lowercase name of the kind.
func (k Kinds) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kinds(%d)", int32(k))
	}
	return kindNames[k]
}

// SetString sets the kind from its name, case insensitive.
// The name "number" is accepted as [Float].
func (k *Kinds) SetString(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "number" || s == "numeric" {
		*k = Float
		return nil
	}
	for i, nm := range kindNames {
		if nm == s {
			*k = Kinds(i)
			return nil
		}
	}
	return fmt.Errorf("value.Kinds.SetString: %q is not a valid kind", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kinds) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kinds) UnmarshalText(text []byte) error { return k.SetString(string(text)) }

// IsNumeric returns whether the kind is [Int] or [Float].
func (k Kinds) IsNumeric() bool { return k == Int || k == Float }
