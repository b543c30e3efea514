// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scope

import (
	"testing"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveShadowing(t *testing.T) {
	a := cell.NewArena()
	outerI := cell.NewLiteral(a, value.IntOf(1), "i")
	count := cell.NewLiteral(a, value.IntOf(10), "count")
	root := NewRoot(a, map[string]cell.Handle{"i": outerI.Handle(), "count": count.Handle()})

	innerI := cell.NewLiteral(a, value.IntOf(2), "i")
	elem := cell.NewLiteral(a, value.StringOf("x"), "item")
	inner := root.PushIteration(Iteration{Elem: "item", ElemCell: elem.Handle(), Index: "i", IndexCell: innerI.Handle()})

	h, ok := inner.Resolve("i")
	require.True(t, ok)
	assert.Equal(t, innerI.Handle(), h)
	assert.Equal(t, "2", inner.Value("i").String())
	assert.Equal(t, "1", root.Value("i").String())
	assert.Equal(t, "10", inner.Value("count").String())
	assert.Equal(t, 1, inner.Depth())
	assert.Same(t, root, inner.Parent())

	_, ok = root.Resolve("item")
	assert.False(t, ok)

	assert.Equal(t, []string{"i", "item", "count"}, inner.Names())
}

func TestUnresolved(t *testing.T) {
	a := cell.NewArena()
	c := cell.NewLiteral(a, value.IntOf(1), "count")
	root := NewRoot(a, map[string]cell.Handle{"count": c.Handle()})

	var err error
	func() {
		defer func() { err = errors.Recover(recover(), err) }()
		root.MustResolve("cuont")
	}()
	assert.ErrorIs(t, err, ErrUnresolved)
	assert.ErrorContains(t, err, `did you mean "count"?`)
}

func TestFrameImmutable(t *testing.T) {
	a := cell.NewArena()
	x := cell.NewLiteral(a, 1, "x")
	b := map[string]cell.Handle{"x": x.Handle()}
	root := NewRoot(a, b)
	delete(b, "x")
	_, ok := root.Resolve("x")
	assert.True(t, ok)
}
