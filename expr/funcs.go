// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import "cogentcore.org/weave/value"

// Ident returns an evaluator for an expression that is a single identifier.
func Ident(name string) Evaluator {
	return func(s Scope) (value.Value, error) {
		return s.Value(name), nil
	}
}

// Const returns an evaluator for a constant expression.
func Const(v value.Value) Evaluator {
	return func(s Scope) (value.Value, error) {
		return v, nil
	}
}

// Unary returns an evaluator applying f to the value of the named binding.
func Unary(name string, f func(v value.Value) (value.Value, error)) Evaluator {
	return func(s Scope) (value.Value, error) {
		return f(s.Value(name))
	}
}

// Binary returns an evaluator applying f to the values of two bindings,
// such as [value.Add] or [value.Mul].
func Binary(a, b string, f func(x, y value.Value) (value.Value, error)) Evaluator {
	return func(s Scope) (value.Value, error) {
		return f(s.Value(a), s.Value(b))
	}
}

// Not returns an evaluator for the logical negation of a binding,
// using [value.Value.Truthy].
func Not(name string) Evaluator {
	return func(s Scope) (value.Value, error) {
		return value.BoolOf(!s.Value(name).Truthy()), nil
	}
}
