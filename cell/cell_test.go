// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"testing"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral(t *testing.T) {
	a := NewArena()
	c := NewLiteral(a, 3, "x")
	assert.Equal(t, 3, c.Get())
	assert.Equal(t, uint64(0), c.Version())
	assert.Equal(t, "x", c.Name())

	c.Get()
	assert.Equal(t, uint64(0), c.Version())

	c.Set(7)
	assert.Equal(t, 7, c.Get())
	assert.Equal(t, uint64(1), c.Version())
	assert.False(t, a.IsComputed(c.Handle()))
}

func TestComputedMemo(t *testing.T) {
	a := NewArena()
	x := NewLiteral(a, 2, "x")
	calls := 0
	sq := NewComputed(a, func() int {
		calls++
		return x.Get() * x.Get()
	}, []Handle{x.Handle()}, "sq")

	assert.Equal(t, 0, calls)
	assert.Equal(t, 4, sq.Get())
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(1), sq.Version())

	assert.Equal(t, 4, sq.Get())
	assert.Equal(t, 4, sq.Get())
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(1), sq.Version())

	x.Set(5)
	assert.Equal(t, 25, sq.Get())
	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(2), sq.Version())
}

func TestComputedChain(t *testing.T) {
	a := NewArena()
	x := NewLiteral(a, 1, "x")
	unrelated := NewLiteral(a, "a", "unrelated")
	var dcalls, qcalls int
	double := NewComputed(a, func() int { dcalls++; return x.Get() * 2 }, []Handle{x.Handle()}, "double")
	quad := NewComputed(a, func() int { qcalls++; return double.Get() * 2 }, []Handle{double.Handle()}, "quad")

	assert.Equal(t, 4, quad.Get())
	assert.Equal(t, 1, dcalls)
	assert.Equal(t, 1, qcalls)

	unrelated.Set("b")
	assert.Equal(t, 4, quad.Get())
	assert.Equal(t, 1, qcalls)

	x.Set(3)
	assert.Equal(t, 12, quad.Get())
	assert.Equal(t, 2, dcalls)
	assert.Equal(t, 2, qcalls)

	assert.Equal(t, uint64(1), x.Version())
	assert.Equal(t, uint64(2), a.Refresh(quad.Handle()))
}

func TestComputedSet(t *testing.T) {
	a := NewArena()
	c := NewComputed(a, func() int { return 1 }, nil, "one")
	assert.PanicsWithError(t, "invariant violation: cell: cannot set a computed cell: \"one\"", func() {
		c.Set(2)
	})
	assert.Panics(t, func() { a.SetValue(c.Handle(), value.IntOf(2)) })
}

func TestCycle(t *testing.T) {
	a := NewArena()
	var self Cell[int]
	self = NewComputed(a, func() int { return self.Get() + 1 }, nil, "self")
	defer func() {
		err := errors.Recover(recover(), nil)
		assert.ErrorIs(t, err, ErrCycle)
	}()
	self.Get()
	t.Fatal("expected a cycle panic")
}

func TestErased(t *testing.T) {
	a := NewArena()
	w := NewLiteral(a, value.SizeOf(value.Px(10)), "width")
	n := NewLiteral(a, 1.5, "n")

	assert.Equal(t, "10px", a.Value(w.Handle()).String())
	assert.Equal(t, value.Float, a.Value(n.Handle()).Kind())

	require.NoError(t, a.SetValue(n.Handle(), value.IntOf(2)))
	assert.Equal(t, 2.0, n.Get())
	assert.Equal(t, uint64(1), n.Version())

	assert.Error(t, a.SetValue(n.Handle(), value.StringOf("x")))

	tn, err := Typed[float64](a, n.Handle())
	require.NoError(t, err)
	assert.Equal(t, 2.0, tn.Get())

	_, err = Typed[int](a, n.Handle())
	assert.ErrorIs(t, err, ErrType)
}

func TestRelease(t *testing.T) {
	a := NewArena()
	x := NewLiteral(a, 1, "x")
	y := NewComputed(a, func() int { return x.Get() + 1 }, []Handle{x.Handle()}, "y")
	assert.Equal(t, 2, a.Len())

	require.NoError(t, a.Release(y.Handle(), x.Handle()))
	assert.Equal(t, 0, a.Len())
	assert.False(t, a.Alive(x.Handle()))
	assert.ErrorIs(t, a.Release(x.Handle()), ErrReleased)
	assert.Panics(t, func() { x.Get() })

	z := NewLiteral(a, 9, "z")
	assert.NotEqual(t, x.Handle(), z.Handle())
	assert.False(t, a.Alive(x.Handle()))
	assert.Equal(t, 9, z.Get())
	assert.Equal(t, 1, a.Len())
}
