// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RotationUnits are the units of a [RotationValue].
type RotationUnits int32 //enums:enum

const (
	// Degrees is an angle in degrees.
	Degrees RotationUnits = iota

	// Radians is an angle in radians.
	Radians

	// Turn is a percentage of a full turn.
	Turn
)

// RotationValue is an angle. It is stored in [Rotation] values.
type RotationValue struct {
	Units  RotationUnits
	Amount float64
}

// Deg returns a rotation of the given number of degrees.
func Deg(d float64) RotationValue { return RotationValue{Units: Degrees, Amount: d} }

// Rad returns a rotation of the given number of radians.
func Rad(r float64) RotationValue { return RotationValue{Units: Radians, Amount: r} }

// TurnPct returns a rotation of the given percentage of a full turn.
func TurnPct(p float64) RotationValue { return RotationValue{Units: Turn, Amount: p} }

// Radians returns the angle in radians.
func (r RotationValue) Radians() float64 {
	switch r.Units {
	case Degrees:
		return r.Amount * math.Pi / 180
	case Turn:
		return r.Amount / 100 * 2 * math.Pi
	}
	return r.Amount
}

// Degrees returns the angle in degrees.
func (r RotationValue) Degrees() float64 {
	switch r.Units {
	case Radians:
		return r.Amount * 180 / math.Pi
	case Turn:
		return r.Amount / 100 * 360
	}
	return r.Amount
}

// Equal returns whether the two rotations describe the same angle
// within [Tolerance] radians.
func (r RotationValue) Equal(o RotationValue) bool {
	return math.Abs(r.Radians()-o.Radians()) <= Tolerance
}

func (r RotationValue) String() string {
	a := strconv.FormatFloat(r.Amount, 'g', -1, 64)
	switch r.Units {
	case Radians:
		return a + "rad"
	case Turn:
		return a + "%"
	}
	return a + "deg"
}

// ParseRotation parses a rotation such as "45deg", "1.2rad", "25%"
// or a bare number, which is taken as degrees.
func ParseRotation(s string) (RotationValue, error) {
	s = strings.TrimSpace(s)
	num, units := s, Degrees
	switch {
	case strings.HasSuffix(s, "deg"):
		num = strings.TrimSuffix(s, "deg")
	case strings.HasSuffix(s, "rad"):
		num, units = strings.TrimSuffix(s, "rad"), Radians
	case strings.HasSuffix(s, "%"):
		num, units = strings.TrimSuffix(s, "%"), Turn
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return RotationValue{}, fmt.Errorf("value.ParseRotation: invalid rotation %q", s)
	}
	return RotationValue{Units: units, Amount: f}, nil
}

// MarshalText implements [encoding.TextMarshaler].
func (r RotationValue) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (r *RotationValue) UnmarshalText(text []byte) error {
	v, err := ParseRotation(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
