// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"testing"

	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommon(t *testing.T) {
	a := cell.NewArena()
	b := NewCommon(a)
	assert.Equal(t, len(Common), b.Len())
	assert.Equal(t, len(Common), a.Len())
	assert.True(t, b.Value(Width).IsNull())
	assert.Equal(t, value.Size, b.Kind(Width))
	assert.Equal(t, value.Rotation, b.Kind(Rotate))
	assert.Len(t, b.Owned(), len(Common))
	assert.True(t, IsCommon("anchor_y"))
	assert.False(t, IsCommon("count"))

	require.NoError(t, b.SetValue(Width, value.StringOf("50%")))
	assert.Equal(t, "50%", b.Value(Width).String())
	require.NoError(t, b.SetValue(Rotate, value.IntOf(90)))
	assert.Equal(t, "90deg", b.Value(Rotate).String())

	err := b.SetValue("widht", value.IntOf(1))
	assert.ErrorIs(t, err, ErrMissing)
	assert.ErrorContains(t, err, `did you mean "width"?`)
}

func TestDefaultsNotShared(t *testing.T) {
	defs := []Def{
		{Name: "items", Kind: value.List, Default: value.ListOf(value.IntOf(1), value.IntOf(2))},
		{Name: "count", Kind: value.Int, Default: value.IntOf(3)},
	}
	cp := CloneDefs(defs)
	require.Len(t, cp, 2)
	assert.Equal(t, "items", cp[0].Name)
	assert.True(t, defs[0].Default.Equal(cp[0].Default))

	a := cell.NewArena()
	b1 := NewDefaults(a, defs)
	b2 := NewDefaults(a, defs)
	h1, _ := b1.Handle("count")
	h2, _ := b2.Handle("count")
	assert.NotEqual(t, h1, h2)

	require.NoError(t, b1.SetValue("count", value.IntOf(9)))
	assert.Equal(t, "9", b1.Value("count").String())
	assert.Equal(t, "3", b2.Value("count").String())
	assert.Equal(t, []string{"items", "count"}, b1.Names())
	assert.Equal(t, "{items: [1, 2], count: 9}", b1.String())
}

func TestSetReplaces(t *testing.T) {
	a := cell.NewArena()
	b := NewBundle(a)
	old, err := b.SetLiteral("n", value.Float, value.IntOf(1))
	require.NoError(t, err)
	assert.Nil(t, old)
	assert.Equal(t, value.Float, b.Value("n").Kind())

	other := cell.NewLiteral(a, value.FloatOf(2), "shared")
	old = b.Set(Property{Name: "n", Kind: value.Float, Handle: other.Handle()})
	require.NotNil(t, old)
	assert.True(t, old.Owned)
	assert.Empty(t, b.Owned())
	assert.Equal(t, "2", b.Value("n").String())

	_, err = b.SetLiteral("flag", value.Bool, value.StringOf("x"))
	assert.ErrorIs(t, err, value.ErrMismatch)
}

type rectProps struct {
	Width Prop[value.SizeValue] `prop:"width"`
	Count Prop[int]             `prop:"count"`
	Label Prop[string]          `prop:"label"`
	Note  string
}

func TestBind(t *testing.T) {
	a := cell.NewArena()
	b := NewCommon(a)
	_, err := b.SetLiteral("count", value.Int, value.IntOf(4))
	require.NoError(t, err)
	_, err = b.SetLiteral("label", value.String, value.StringOf("hi"))
	require.NoError(t, err)
	require.NoError(t, b.SetValue(Width, value.StringOf("10px")))

	p, err := Bind[rectProps](b)
	require.NoError(t, err)
	assert.True(t, p.Width.IsBound())
	assert.Equal(t, 10.0, p.Width.Get().Evaluate(100))
	assert.Equal(t, 4, p.Count.Get())
	assert.Equal(t, "hi", p.Label.Get())

	require.NoError(t, p.Count.Set(5))
	assert.Equal(t, "5", b.Value("count").String())

	type missing struct {
		Nope Prop[int] `prop:"nope"`
	}
	_, err = Bind[missing](b)
	assert.ErrorIs(t, err, ErrMissing)

	type bad struct {
		Count int `prop:"count"`
	}
	_, err = Bind[bad](b)
	assert.ErrorIs(t, err, ErrBind)

	_, err = Bind[int](b)
	assert.ErrorIs(t, err, ErrBind)
}
