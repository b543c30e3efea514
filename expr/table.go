// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr provides the expression [Table]: the mapping from the
// ids assigned to expressions in a manifest to the Go functions that
// evaluate them against a [Scope].
package expr

import (
	"fmt"
	"log/slog"
	"strconv"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/value"
)

var (
	// ErrDuplicate is returned when an id is registered twice.
	ErrDuplicate = errors.New("expr: duplicate expression id")

	// ErrSealed is returned when registering into a sealed table.
	ErrSealed = errors.New("expr: table is sealed")

	// ErrUnknown is returned when evaluating an id that is not registered.
	ErrUnknown = errors.New("expr: unknown expression id")

	// ErrTypeMismatch is the invariant violated when an expression
	// result cannot be coerced to the type its use requires.
	ErrTypeMismatch = errors.New("expr: type mismatch")

	// ErrUnresolved is the invariant violated when a declared
	// dependency of an expression is not bound in its scope.
	ErrUnresolved = errors.New("expr: unresolved dependency")
)

// ID identifies an expression. Ids are assigned once per distinct
// expression and never reused for a different expression.
type ID uint32

func (id ID) String() string { return "expr#" + strconv.FormatUint(uint64(id), 10) }

// Scope is the lexical environment an expression is evaluated in.
type Scope interface {
	// Value returns the current value of the named binding, refreshing
	// it if it is computed. An unbound name is an invariant violation.
	Value(name string) value.Value

	// Handle returns the cell bound to the name, if any.
	Handle(name string) (cell.Handle, bool)
}

// Evaluator evaluates one expression in a scope.
type Evaluator func(s Scope) (value.Value, error)

// Table maps expression ids to evaluators. It is filled once and then
// [Table.Seal]ed, after which it is read only and may be shared.
type Table struct {
	evals  map[ID]Evaluator
	sealed bool
}

// NewTable returns a new empty table.
func NewTable() *Table {
	return &Table{evals: map[ID]Evaluator{}}
}

// Register adds the evaluator for the given id.
func (t *Table) Register(id ID, eval Evaluator) error {
	if t.sealed {
		return fmt.Errorf("%w: registering %v", ErrSealed, id)
	}
	if _, has := t.evals[id]; has {
		return fmt.Errorf("%w: %v", ErrDuplicate, id)
	}
	t.evals[id] = eval
	return nil
}

// MustRegister is [Table.Register] that panics on error,
// for use in static table initialization.
func (t *Table) MustRegister(id ID, eval Evaluator) *Table {
	errors.Must(t.Register(id, eval))
	return t
}

// Seal marks the table as complete.
func (t *Table) Seal() {
	if !t.sealed {
		slog.Debug("expr.Table.Seal", "expressions", len(t.evals))
	}
	t.sealed = true
}

// IsSealed returns whether the table has been sealed.
func (t *Table) IsSealed() bool { return t.sealed }

// Has returns whether the id is registered.
func (t *Table) Has(id ID) bool {
	_, has := t.evals[id]
	return has
}

// Len returns the number of registered expressions.
func (t *Table) Len() int { return len(t.evals) }

// Evaluate evaluates the expression with the given id in the scope.
// The result is dynamically typed; see [EvaluateAs].
func (t *Table) Evaluate(id ID, s Scope) (value.Value, error) {
	eval, ok := t.evals[id]
	if !ok {
		return value.Value{}, fmt.Errorf("%w: %v", ErrUnknown, id)
	}
	v, err := eval(s)
	if err != nil {
		return value.Value{}, fmt.Errorf("evaluating %v: %w", id, err)
	}
	return v, nil
}

// EvaluateKind evaluates the expression and coerces the result to the
// given kind. Any failure is an invariant violation, since ids and
// result types are fixed when the manifest is compiled.
func EvaluateKind(t *Table, id ID, s Scope, kind value.Kinds) value.Value {
	v, err := t.Evaluate(id, s)
	errors.Invariant(err)
	cv, err := value.Coerce(v, kind)
	if err != nil {
		errors.Invariant(fmt.Errorf("%w: %v: %w", ErrTypeMismatch, id, err))
	}
	return cv
}

// EvaluateAs evaluates the expression and converts the result to T,
// with the same invariants as [EvaluateKind].
func EvaluateAs[T any](t *Table, id ID, s Scope) T {
	v := EvaluateKind(t, id, s, value.KindOf[T]())
	r, err := value.To[T](v)
	if err != nil {
		errors.Invariant(fmt.Errorf("%w: %v: %w", ErrTypeMismatch, id, err))
	}
	return r
}

// resolveDeps returns the handles bound to the dependency names.
func resolveDeps(id ID, s Scope, deps []string) []cell.Handle {
	hs := make([]cell.Handle, len(deps))
	for i, d := range deps {
		h, ok := s.Handle(d)
		if !ok {
			errors.Invariant(fmt.Errorf("%w: %v depends on %q", ErrUnresolved, id, d))
		}
		hs[i] = h
	}
	return hs
}

// Computed returns a computed cell that evaluates the expression in the
// scope s, depending on the cells bound to the given names in s. The
// scope is retained for the life of the cell.
func Computed[T any](a *cell.Arena, t *Table, id ID, s Scope, deps []string) cell.Cell[T] {
	hs := resolveDeps(id, s, deps)
	return cell.NewComputed(a, func() T {
		return EvaluateAs[T](t, id, s)
	}, hs, id.String())
}

// ComputedKind returns a type-erased computed cell whose result is
// coerced to the given kind. It is otherwise the same as [Computed].
func ComputedKind(a *cell.Arena, t *Table, id ID, s Scope, deps []string, kind value.Kinds) cell.Cell[value.Value] {
	hs := resolveDeps(id, s, deps)
	return cell.NewComputed(a, func() value.Value {
		return EvaluateKind(t, id, s, kind)
	}, hs, id.String())
}
