// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Number is the set of Go numeric types convertible to and from [Value].
type Number interface {
	constraints.Integer | constraints.Float
}

// ErrDivideByZero is returned by integer [Div] and [Rem] with a zero divisor.
var ErrDivideByZero = errors.New("value: integer division by zero")

// NumberOf returns an [Int] value for integer types and a [Float]
// value for floating point types.
func NumberOf[T Number](n T) Value {
	switch any(n).(type) {
	case float32, float64:
		return FloatOf(float64(n))
	}
	return IntOf(int64(n))
}

// ToNumber returns a numeric value converted to the numeric type T.
// Float values converted to an integer type must be integral.
func ToNumber[T Number](v Value) (T, error) {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		f, err := v.AsFloat()
		return T(f), err
	}
	i, err := v.AsInt()
	return T(i), err
}

type arith struct {
	name string
	i    func(a, b int64) (int64, error)
	f    func(a, b float64) float64
}

func (op *arith) apply(a, b Value) (Value, error) {
	if !a.kind.IsNumeric() || !b.kind.IsNumeric() {
		return Value{}, fmt.Errorf("%w: %s %s %s", ErrMismatch, a.kind, op.name, b.kind)
	}
	if a.kind == Int && b.kind == Int {
		r, err := op.i(a.i, b.i)
		if err != nil {
			return Value{}, err
		}
		return IntOf(r), nil
	}
	x, _ := a.AsFloat()
	y, _ := b.AsFloat()
	return FloatOf(op.f(x, y)), nil
}

var (
	addOp = &arith{"+",
		func(a, b int64) (int64, error) { return a + b, nil },
		func(a, b float64) float64 { return a + b }}
	subOp = &arith{"-",
		func(a, b int64) (int64, error) { return a - b, nil },
		func(a, b float64) float64 { return a - b }}
	mulOp = &arith{"*",
		func(a, b int64) (int64, error) { return a * b, nil },
		func(a, b float64) float64 { return a * b }}
	divOp = &arith{"/",
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, ErrDivideByZero
			}
			return a / b, nil
		},
		func(a, b float64) float64 { return a / b }}
	remOp = &arith{"%",
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, ErrDivideByZero
			}
			return a % b, nil
		},
		math.Mod}
)

// Add returns a + b. Two [Int] operands yield an Int and any [Float]
// operand yields a Float. Two [Size] operands are also accepted.
func Add(a, b Value) (Value, error) {
	if a.kind == Size && b.kind == Size {
		return SizeOf(a.x.(SizeValue).Add(b.x.(SizeValue))), nil
	}
	return addOp.apply(a, b)
}

// Sub returns a - b, following the same rules as [Add].
func Sub(a, b Value) (Value, error) {
	if a.kind == Size && b.kind == Size {
		return SizeOf(a.x.(SizeValue).Add(b.x.(SizeValue).Scale(-1))), nil
	}
	return subOp.apply(a, b)
}

// Mul returns a * b. A [Size] multiplied by a number is scaled.
func Mul(a, b Value) (Value, error) {
	if a.kind == Size && b.kind.IsNumeric() {
		f, _ := b.AsFloat()
		return SizeOf(a.x.(SizeValue).Scale(f)), nil
	}
	return mulOp.apply(a, b)
}

// Div returns a / b. Integer division truncates toward zero.
func Div(a, b Value) (Value, error) { return divOp.apply(a, b) }

// Rem returns the remainder of a / b.
func Rem(a, b Value) (Value, error) { return remOp.apply(a, b) }

// Neg returns -a for numeric, [Size] and [Rotation] values.
func Neg(a Value) (Value, error) {
	switch a.kind {
	case Int:
		return IntOf(-a.i), nil
	case Float:
		return FloatOf(-a.f), nil
	case Size:
		return SizeOf(a.x.(SizeValue).Scale(-1)), nil
	case Rotation:
		r := a.x.(RotationValue)
		r.Amount = -r.Amount
		return RotationOf(r), nil
	}
	return Value{}, fmt.Errorf("%w: -%s", ErrMismatch, a.kind)
}

// Compare returns -1, 0 or 1 comparing two numeric values,
// with floats equal within [Tolerance].
func Compare(a, b Value) (int, error) {
	if !a.kind.IsNumeric() || !b.kind.IsNumeric() {
		return 0, fmt.Errorf("%w: cannot compare %s with %s", ErrMismatch, a.kind, b.kind)
	}
	if a.Equal(b) {
		return 0, nil
	}
	if a.kind == Int && b.kind == Int {
		if a.i < b.i {
			return -1, nil
		}
		return 1, nil
	}
	x, _ := a.AsFloat()
	y, _ := b.AsFloat()
	if x < y {
		return -1, nil
	}
	return 1, nil
}
