// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buildtest provides a small program for testing the packages
// that build and run instance trees: a Counter component whose template
// uses every kind of template node, a Card component with slots, the
// Rectangle and Text primitives, and the expressions of the program.
package buildtest

import (
	_ "embed"
	"fmt"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/component"
	"cogentcore.org/weave/events"
	"cogentcore.org/weave/expr"
	"cogentcore.org/weave/handlers"
	"cogentcore.org/weave/manifest"
	"cogentcore.org/weave/props"
	"cogentcore.org/weave/value"
)

//go:embed counter.yaml
var counterYAML []byte

// RectangleProps are the properties of a Rectangle.
type RectangleProps struct {
	Fill   props.Prop[string]      `prop:"fill"`
	Stroke props.Prop[value.Value] `prop:"stroke"`
}

// TextProps are the properties of a Text.
type TextProps struct {
	Text props.Prop[string] `prop:"text"`
}

// CounterProps are the properties of a Counter.
type CounterProps struct {
	Count props.Prop[int]    `prop:"count"`
	Show  props.Prop[bool]   `prop:"show"`
	Label props.Prop[string] `prop:"label"`
}

// Fixture is the test program, with counters of the handler calls.
type Fixture struct {
	Manifest   *manifest.Manifest
	Components *component.Registry
	Table      *expr.Table

	// Mounts is the number of times a Counter was mounted.
	Mounts int

	// Ticks is the number of tick events a Counter received.
	Ticks int

	// Clicks is the number of times the Counter button was clicked.
	Clicks int
}

// New returns a new fixture.
func New() (*Fixture, error) {
	m, err := manifest.DecodeBytes(counterYAML, manifest.YAML)
	if err != nil {
		return nil, err
	}
	f := &Fixture{Manifest: m, Table: Expressions()}
	f.Components = component.NewRegistry()
	errors.Must(f.Components.Add(component.For[RectangleProps]("Rectangle")))
	errors.Must(f.Components.Add(component.For[TextProps]("Text")))
	errors.Must(f.Components.Add(component.For[CounterProps]("Counter",
		handlers.NewNoArg("mounted", func(ctx *handlers.Context, p *CounterProps) {
			f.Mounts++
		}),
		handlers.NewNoArg("ticked", func(ctx *handlers.Context, p *CounterProps) {
			f.Ticks++
		}),
		handlers.New("increment", func(ctx *handlers.Context, p *RectangleProps, a events.ClickArgs) {
			f.Clicks++
			n, err := ctx.Container.Value("count").AsInt()
			errors.Must(err)
			errors.Must(ctx.Container.SetValue("count", value.IntOf(n+1)))
		}),
	)))
	if err := f.Components.FromManifest(m); err != nil {
		return nil, err
	}
	return f, nil
}

// Must returns a new fixture, panicking on error.
func Must() *Fixture {
	return errors.Must1(New())
}

// Expressions returns the sealed expression table of the program.
func Expressions() *expr.Table {
	t := expr.NewTable()
	t.MustRegister(1, func(s expr.Scope) (value.Value, error) {
		n, err := s.Value("count").AsInt()
		if err != nil {
			return value.Value{}, err
		}
		if n > 3 {
			return value.StringOf("blue"), nil
		}
		return value.StringOf("red"), nil
	}).MustRegister(2, expr.Ident("show")).MustRegister(3, func(s expr.Scope) (value.Value, error) {
		n, err := s.Value("count").AsInt()
		if err != nil {
			return value.Value{}, err
		}
		return value.RangeOf(2, 2+int(n)), nil
	}).MustRegister(4, expr.Ident("items")).MustRegister(5, func(s expr.Scope) (value.Value, error) {
		item, err := s.Value("item").AsString()
		if err != nil {
			return value.Value{}, err
		}
		return value.StringOf(fmt.Sprintf("%s:%v", item, s.Value("i"))), nil
	}).MustRegister(6, func(s expr.Scope) (value.Value, error) {
		return value.StringOf(fmt.Sprintf("row %v", s.Value("i"))), nil
	}).MustRegister(7, expr.Const(value.IntOf(0))).
		MustRegister(8, expr.Const(value.IntOf(1))).
		MustRegister(9, expr.Const(value.IntOf(2)))
	t.Seal()
	return t
}
