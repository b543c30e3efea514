// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handlers

import (
	"testing"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/events"
	"cogentcore.org/weave/props"
	"cogentcore.org/weave/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterProps struct {
	Count props.Prop[int] `prop:"count"`
}

func newContext(t *testing.T) (*Context, *counterProps) {
	a := cell.NewArena()
	b := props.NewBundle(a)
	_, err := b.SetLiteral("count", value.Int, value.IntOf(0))
	require.NoError(t, err)
	p, err := props.Bind[counterProps](b)
	require.NoError(t, err)
	return &Context{Props: b, Path: "/main"}, p
}

func TestDispatchOrder(t *testing.T) {
	ctx, p := newContext(t)
	var order []string
	r := NewRegistry()
	r.Register(events.Click, New("first", func(ctx *Context, p *counterProps, a events.ClickArgs) {
		order = append(order, "first")
		assert.Equal(t, events.Left, a.Mouse.Button)
		errors.Log(p.Count.Set(p.Count.Get() + 1))
	}))
	r.Register(events.Mount, NewNoArg("mounted", func(ctx *Context, p *counterProps) {
		order = append(order, "mounted")
	}))
	r.Register(events.Click, NewNoArg("second", func(ctx *Context, p *counterProps) {
		order = append(order, "second")
		ctx.PreventDefault()
	}))

	assert.Equal(t, []events.Types{events.Click, events.Mount}, r.Events())
	assert.Equal(t, 2, r.Len(events.Click))

	ev := events.New(events.Click, events.ClickArgs{Mouse: events.MouseArgs{Button: events.Left}})
	n := r.Dispatch(ev, ctx, p)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.True(t, ev.Cancelled())
	assert.Equal(t, "1", ctx.Value("count").String())

	assert.Equal(t, 0, r.Dispatch(events.New(events.KeyDown, events.KeyDownArgs{}), ctx, p))
}

func TestDowncastFailure(t *testing.T) {
	ctx, p := newContext(t)
	h := New("bad", func(ctx *Context, p *counterProps, a events.ScrollArgs) {})
	var err error
	func() {
		defer func() { err = errors.Recover(recover(), err) }()
		h.Invoke(ctx, p, events.ClickArgs{})
	}()
	assert.ErrorIs(t, err, ErrDowncast)

	err = nil
	func() {
		defer func() { err = errors.Recover(recover(), err) }()
		h.Invoke(ctx, "not props", events.ScrollArgs{})
	}()
	assert.ErrorIs(t, err, ErrDowncast)
}

func TestCloneMerge(t *testing.T) {
	var calls []string
	mk := func(name string) Handler {
		return NewNoArg(name, func(ctx *Context, p any) { calls = append(calls, name) })
	}
	declared := NewRegistry()
	declared.Register(events.Tick, mk("declared"))

	inline := NewRegistry()
	inline.Register(events.Tick, mk("inline"))
	inline.Register(events.Click, mk("clicked"))

	merged := declared.Clone()
	merged.Merge(inline)
	assert.Equal(t, 1, declared.Len(events.Tick))
	assert.Equal(t, 2, merged.Len(events.Tick))
	assert.Equal(t, []events.Types{events.Tick, events.Click}, merged.Events())

	ctx, _ := newContext(t)
	merged.Dispatch(events.New(events.Tick, nil), ctx, nil)
	assert.Equal(t, []string{"declared", "inline"}, calls)
}

func TestTable(t *testing.T) {
	tb := NewTable(NewNoArg("increment", func(ctx *Context, p any) {}))
	h, err := tb.Func("increment")
	require.NoError(t, err)
	assert.Equal(t, "increment", h.Name)

	_, err = tb.Func("incremnt")
	assert.ErrorIs(t, err, ErrUnknownFunc)
	assert.ErrorContains(t, err, `did you mean "increment"?`)

	var nilTable *Table
	_, err = nilTable.Func("x")
	assert.ErrorIs(t, err, ErrUnknownFunc)
}
