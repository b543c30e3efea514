// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build_test

import (
	"testing"

	"cogentcore.org/weave/build"
	"cogentcore.org/weave/build/buildtest"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/component"
	"cogentcore.org/weave/events"
	"cogentcore.org/weave/expr"
	"cogentcore.org/weave/handlers"
	"cogentcore.org/weave/props"
	"cogentcore.org/weave/tree"
	"cogentcore.org/weave/value"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCounter(t *testing.T) (*buildtest.Fixture, *build.Traverser, *tree.Node) {
	t.Helper()
	fx := buildtest.Must()
	tr := build.New(fx.Manifest, fx.Components, fx.Table, cell.NewArena())
	root, err := tr.Build(fx.Manifest.Main)
	require.NoError(t, err)
	return fx, tr, root
}

func text(t *testing.T, n *tree.Node) string {
	t.Helper()
	require.Equal(t, "Text", n.Type)
	s, err := n.Props.Value("text").AsString()
	require.NoError(t, err)
	return s
}

func find(t *testing.T, n *tree.Node, path string) *tree.Node {
	t.Helper()
	k := n.FindPath(path)
	require.NotNil(t, k, "no node at %q under %v", path, n)
	return k
}

func TestBuild(t *testing.T) {
	_, _, root := newCounter(t)
	assert.Equal(t, "/counter", root.Path())
	assert.Equal(t, tree.Identity{Component: "Counter", TemplateNode: -1}, root.Identity)
	assert.False(t, root.Primitive)
	var names []string
	for _, k := range root.Children {
		names = append(names, k.Name)
	}
	assert.Equal(t, []string{"rectangle-0", "if-1", "for-3", "card-6"}, names)

	rect := root.Child(0)
	assert.Equal(t, tree.Identity{Component: "Counter", TemplateNode: 0}, rect.Identity)
	assert.Same(t, root, rect.Container)
	assert.True(t, rect.Primitive)
	assert.Equal(t, "button", rect.UserID())
	assert.True(t, value.SizeOf(value.Pct(50)).Equal(rect.Common.Value(props.Width)))
	assert.Equal(t, "red", rect.Props.Value("fill").String())
	assert.Equal(t, 1, rect.Handlers.Len(events.Click))
	assert.Equal(t, 1, root.Handlers.Len(events.Mount))

	rp, ok := rect.Blob.(*buildtest.RectangleProps)
	require.True(t, ok)
	assert.Equal(t, "red", rp.Fill.Get())
	_, ok = root.Blob.(*buildtest.CounterProps)
	assert.True(t, ok)

	card := root.Child(3)
	_, ok = card.Blob.(*props.Bundle)
	assert.True(t, ok, "generic factories pass the bundle itself")
}

func TestRepeatRange(t *testing.T) {
	_, _, root := newCounter(t)
	rep := find(t, root, "for-3")
	require.Equal(t, tree.Repeat, rep.Kind)
	require.Len(t, rep.Children, 3)
	var rows []string
	for _, item := range rep.Children {
		assert.Equal(t, tree.Item, item.Kind)
		rows = append(rows, text(t, item.Child(1)))
	}
	assert.Equal(t, []string{"row 2", "row 3", "row 4"}, rows)
}

func TestRepeatInnermostIndex(t *testing.T) {
	_, _, root := newCounter(t)
	inner := find(t, root, "for-3/item-1/for-4")
	require.Len(t, inner.Children, 3)
	var got []string
	for _, item := range inner.Children {
		got = append(got, text(t, item.Child(0)))
	}
	assert.Equal(t, []string{"a:0", "b:1", "c:2"}, got)
}

func TestRegenerate(t *testing.T) {
	_, tr, root := newCounter(t)
	rep := find(t, root, "for-3")
	rect := root.Child(0)
	assert.False(t, tr.NeedsRegenerate(rep))
	cells := tr.Arena.Len()

	old := rep.Child(0)
	require.NoError(t, root.Props.SetValue("count", value.IntOf(5)))
	assert.Equal(t, "blue", rect.Props.Value("fill").String())
	assert.True(t, tr.NeedsRegenerate(rep))
	require.NoError(t, tr.Regenerate(rep))
	assert.False(t, tr.NeedsRegenerate(rep))
	assert.True(t, old.IsDestroyed())
	require.Len(t, rep.Children, 5)
	assert.Equal(t, "row 6", text(t, find(t, rep, "item-4/text-10")))
	assert.Greater(t, tr.Arena.Len(), cells)

	require.NoError(t, root.Props.SetValue("count", value.IntOf(3)))
	require.NoError(t, tr.Regenerate(rep))
	assert.Equal(t, cells, tr.Arena.Len())

	inner := find(t, rep, "item-0/for-4")
	require.NoError(t, root.Props.SetValue("items", value.ListOf(value.StringOf("x"))))
	assert.True(t, tr.NeedsRegenerate(inner))
	require.NoError(t, tr.Regenerate(inner))
	require.Len(t, inner.Children, 1)
	assert.Equal(t, "x:0", text(t, inner.Child(0).Child(0)))

	require.NoError(t, root.Props.SetValue("items", value.ListOf()))
	require.NoError(t, tr.Regenerate(inner))
	assert.Empty(t, inner.Children)

	assert.ErrorIs(t, tr.Regenerate(rect), build.ErrNotRepeat)
	assert.False(t, tr.NeedsRegenerate(rect))
}

func TestMaxRepeatItems(t *testing.T) {
	fx := buildtest.Must()
	tr := build.New(fx.Manifest, fx.Components, fx.Table, cell.NewArena())
	tr.MaxRepeatItems = 2
	root, err := tr.Build("Counter")
	require.NoError(t, err)
	assert.Len(t, find(t, root, "for-3").Children, 2)
	assert.Len(t, find(t, root, "for-3/item-0/for-4").Children, 2)
}

func TestConditionalToggle(t *testing.T) {
	_, tr, root := newCounter(t)
	cond := find(t, root, "if-1")
	content := cond.Child(0)
	assert.True(t, cond.IsActive())
	assert.Len(t, cond.RenderChildren(), 1)
	cells := tr.Arena.Len()

	require.NoError(t, root.Props.SetValue("show", value.BoolOf(false)))
	assert.False(t, cond.IsActive())
	assert.Empty(t, cond.RenderChildren())
	assert.Same(t, content, cond.Child(0))
	assert.False(t, content.IsDestroyed())
	assert.Equal(t, "visible", text(t, content))
	assert.Equal(t, cells, tr.Arena.Len())
	assert.Equal(t, "3", root.Props.Value("count").String())

	require.NoError(t, root.Props.SetValue("show", value.BoolOf(true)))
	assert.Len(t, cond.RenderChildren(), 1)
}

func TestBuildTwiceIdentical(t *testing.T) {
	_, _, a := newCounter(t)
	_, _, b := newCounter(t)
	if diff := cmp.Diff(a.Shape(), b.Shape()); diff != "" {
		t.Errorf("builds differ (-first +second):\n%s", diff)
	}
}

func TestSlots(t *testing.T) {
	_, _, root := newCounter(t)
	card := find(t, root, "card-6")
	require.Len(t, card.SlotChildren, 2)
	assert.Same(t, root, card.SlotChildren[0].Container, "slot children belong to the use site")

	slot1 := find(t, card, "frame-0/slot-1")
	slot2 := find(t, card, "frame-0/slot-2")
	slot3 := find(t, card, "frame-0/slot-3")
	assert.Same(t, card, slot1.Container)

	assert.Equal(t, "slotted", slot1.Projected().UserID())
	assert.Equal(t, "rectangle-8", slot2.Projected().Name)
	assert.Nil(t, slot3.Projected())
	assert.Empty(t, slot3.RenderChildren())

	require.NoError(t, root.Props.SetValue("show", value.BoolOf(false)))
	assert.Equal(t, "rectangle-8", slot1.Projected().Name)
	assert.Nil(t, slot2.Projected())
}

func TestBind(t *testing.T) {
	_, tr, root := newCounter(t)
	rect := find(t, root, "card-6/rectangle-8")
	p, ok := rect.Props.Get("fill")
	require.True(t, ok)
	label, _ := root.Props.Handle("label")
	assert.Equal(t, label, p.Handle)
	assert.False(t, p.Owned)
	assert.Equal(t, "counter", rect.Props.Value("fill").String())

	require.NoError(t, rect.Props.SetValue("fill", value.StringOf("green")))
	assert.Equal(t, "green", root.Props.Value("label").String())

	card := find(t, root, "card-6")
	card.Destroy()
	assert.True(t, tr.Arena.Alive(label))
}

func TestBlock(t *testing.T) {
	_, _, root := newCounter(t)
	o, err := root.Child(0).Props.Value("stroke").AsObject()
	require.NoError(t, err)
	assert.Equal(t, "Stroke", o.Type)
	assert.Equal(t, []string{"width", "color"}, o.Names())
	c, _ := o.Field("color")
	assert.Equal(t, "blue", c.String())
	w, _ := o.Field("width")
	assert.True(t, value.SizeOf(value.Px(1)).Equal(w), "width %v", w)
}

func TestHandlers(t *testing.T) {
	fx, _, root := newCounter(t)
	rect := root.Child(0)
	ctx := &handlers.Context{Props: rect.Props, Common: rect.Common, Container: rect.Container.Props, Path: rect.Path()}
	n := rect.Handlers.Dispatch(events.New(events.Click, events.ClickArgs{}), ctx, rect.Blob)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, fx.Clicks)
	assert.Equal(t, "4", root.Props.Value("count").String())
	assert.Equal(t, "blue", rect.Props.Value("fill").String())

	ctx = &handlers.Context{Props: root.Props, Common: root.Common}
	root.Handlers.Dispatch(events.New(events.Mount, nil), ctx, root.Blob)
	assert.Equal(t, 1, fx.Mounts)
}

func TestDestroyReleasesAll(t *testing.T) {
	_, tr, root := newCounter(t)
	require.NoError(t, root.Props.SetValue("count", value.IntOf(4)))
	require.NoError(t, tr.Regenerate(find(t, root, "for-3")))
	root.Destroy()
	assert.Equal(t, 0, tr.Arena.Len())
}

func TestBuildErrors(t *testing.T) {
	fx := buildtest.Must()
	tr := build.New(fx.Manifest, fx.Components, fx.Table, cell.NewArena())
	_, err := tr.Build("Nope")
	assert.ErrorIs(t, err, component.ErrUnknown)

	tr.Table = expr.NewTable()
	_, err = tr.Build("Counter")
	assert.ErrorIs(t, err, expr.ErrUnknown)
	assert.Equal(t, 0, tr.Arena.Len())
}

func TestRebuild(t *testing.T) {
	_, tr, root := newCounter(t)
	old := root.Child(0)
	nn, err := tr.Rebuild(old)
	require.NoError(t, err)
	assert.True(t, old.IsDestroyed())
	assert.Same(t, nn, root.Child(0))
	assert.Same(t, root, nn.Parent)
	assert.Equal(t, old.Identity, nn.Identity)
	assert.Equal(t, "button", nn.UserID())

	slotted := find(t, root, "card-6/rectangle-8")
	nn, err = tr.Rebuild(slotted)
	require.NoError(t, err)
	assert.Same(t, nn, find(t, root, "card-6").SlotChildren[1])

	row := find(t, root, "for-3/item-2/text-10")
	nn, err = tr.Rebuild(row)
	require.NoError(t, err)
	assert.Equal(t, "row 4", text(t, nn))

	_, err = tr.Rebuild(find(t, root, "for-3/item-0"))
	assert.ErrorIs(t, err, build.ErrNotRebuildable)

	nr, err := tr.Rebuild(root)
	require.NoError(t, err)
	assert.True(t, root.IsDestroyed())
	assert.Equal(t, tree.Component, nr.Kind)
	assert.Len(t, nr.Children, 4)
}
