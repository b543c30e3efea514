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

// SizeUnits are the units of a [SizeValue].
type SizeUnits int32 //enums:enum

const (
	// Pixels is an absolute number of pixels.
	Pixels SizeUnits = iota

	// Percent is a percentage of the parent bound.
	Percent

	// Combined is a number of pixels plus a percentage of the parent bound.
	Combined
)

// SizeValue is a length along one axis. It is stored in [Size] values.
type SizeValue struct {
	Units   SizeUnits
	Pixels  float64
	Percent float64
}

// Px returns a size of the given number of pixels.
func Px(px float64) SizeValue { return SizeValue{Units: Pixels, Pixels: px} }

// Pct returns a size of the given percentage of the parent bound.
func Pct(pct float64) SizeValue { return SizeValue{Units: Percent, Percent: pct} }

// PxPct returns a combined size.
func PxPct(px, pct float64) SizeValue {
	return SizeValue{Units: Combined, Pixels: px, Percent: pct}
}

// Evaluate returns the size in pixels, given the parent bound in pixels.
func (s SizeValue) Evaluate(bound float64) float64 {
	switch s.Units {
	case Percent:
		return bound * s.Percent / 100
	case Combined:
		return s.Pixels + bound*s.Percent/100
	}
	return s.Pixels
}

// Add returns the sum of two sizes, combining units as needed.
func (s SizeValue) Add(o SizeValue) SizeValue {
	r := SizeValue{Pixels: s.Pixels + o.Pixels, Percent: s.Percent + o.Percent}
	switch {
	case r.Percent == 0:
		r.Units = Pixels
	case r.Pixels == 0 && s.Units != Combined && o.Units != Combined:
		r.Units = Percent
	default:
		r.Units = Combined
	}
	return r
}

// Scale returns the size multiplied by f.
func (s SizeValue) Scale(f float64) SizeValue {
	s.Pixels *= f
	s.Percent *= f
	return s
}

// Equal returns whether the sizes are equal within [Tolerance].
func (s SizeValue) Equal(o SizeValue) bool {
	return s.Units == o.Units && math.Abs(s.Pixels-o.Pixels) <= Tolerance &&
		math.Abs(s.Percent-o.Percent) <= Tolerance
}

func (s SizeValue) String() string {
	ff := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
	switch s.Units {
	case Percent:
		return ff(s.Percent) + "%"
	case Combined:
		return ff(s.Pixels) + "px+" + ff(s.Percent) + "%"
	}
	return ff(s.Pixels) + "px"
}

// ParseSize parses a size such as "10px", "50%", "10px+50%" or a bare
// number, which is taken as pixels.
func ParseSize(s string) (SizeValue, error) {
	s = strings.TrimSpace(s)
	if px, pct, ok := strings.Cut(s, "+"); ok && px != "" {
		a, err := ParseSize(px)
		if err != nil {
			return SizeValue{}, err
		}
		b, err := ParseSize(pct)
		if err != nil {
			return SizeValue{}, err
		}
		return PxPct(a.Pixels+b.Pixels, a.Percent+b.Percent), nil
	}
	var num string
	units := Pixels
	switch {
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "%"):
		num = strings.TrimSuffix(s, "%")
		units = Percent
	default:
		num = s
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return SizeValue{}, fmt.Errorf("value.ParseSize: invalid size %q", s)
	}
	if units == Percent {
		return Pct(f), nil
	}
	return Px(f), nil
}

// MarshalText implements [encoding.TextMarshaler].
func (s SizeValue) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *SizeValue) UnmarshalText(text []byte) error {
	v, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
