// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDowncast(t *testing.T) {
	v := IntOf(5)
	i, err := v.AsInt()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), i)

	f, err := v.AsFloat()
	assert.NoError(t, err)
	assert.Equal(t, 5.0, f)

	_, err = v.AsString()
	assert.ErrorIs(t, err, ErrDowncast)

	_, err = FloatOf(2.5).AsInt()
	assert.ErrorIs(t, err, ErrDowncast)

	n, err := To[int](FloatOf(3))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	s, err := To[SizeValue](SizeOf(Px(10)))
	assert.NoError(t, err)
	assert.Equal(t, Px(10), s)

	type point struct{ X, Y int }
	p, err := To[point](OpaqueOf(point{1, 2}))
	assert.NoError(t, err)
	assert.Equal(t, point{1, 2}, p)

	_, err = To[point](IntOf(1))
	assert.ErrorIs(t, err, ErrDowncast)

	assert.Panics(t, func() { Must[bool](StringOf("x")) })
}

func TestNumeric(t *testing.T) {
	r, err := Add(IntOf(2), IntOf(3))
	require.NoError(t, err)
	assert.Equal(t, Int, r.Kind())
	assert.Equal(t, "5", r.String())

	r, err = Add(IntOf(2), FloatOf(0.5))
	require.NoError(t, err)
	assert.Equal(t, Float, r.Kind())
	assert.True(t, r.Equal(FloatOf(2.5)))

	r, err = Div(IntOf(7), IntOf(2))
	require.NoError(t, err)
	assert.True(t, r.Equal(IntOf(3)))

	_, err = Div(IntOf(1), IntOf(0))
	assert.ErrorIs(t, err, ErrDivideByZero)

	r, err = Rem(FloatOf(7.5), IntOf(2))
	require.NoError(t, err)
	assert.True(t, r.Equal(FloatOf(1.5)))

	_, err = Mul(StringOf("a"), IntOf(2))
	assert.ErrorIs(t, err, ErrMismatch)

	r, err = Neg(SizeOf(Pct(50)))
	require.NoError(t, err)
	assert.Equal(t, "-50%", r.String())

	c, err := Compare(IntOf(1), FloatOf(1.0000001))
	require.NoError(t, err)
	assert.Equal(t, 0, c)
	c, err = Compare(IntOf(1), FloatOf(2))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	assert.True(t, FloatOf(0.1+0.2).Equal(FloatOf(0.3)))
	assert.False(t, IntOf(1).Equal(StringOf("1")))

	x, err := ToNumber[float32](IntOf(4))
	require.NoError(t, err)
	assert.Equal(t, float32(4), x)
	assert.Equal(t, Float, NumberOf(float32(1)).Kind())
	assert.Equal(t, Int, NumberOf(uint8(1)).Kind())
}

func TestSize(t *testing.T) {
	s, err := ParseSize("10px")
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.Evaluate(200))

	s, err = ParseSize("50%")
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.Evaluate(200))

	s, err = ParseSize("10px+50%")
	require.NoError(t, err)
	assert.Equal(t, Combined, s.Units)
	assert.Equal(t, 110.0, s.Evaluate(200))

	s, err = ParseSize("12")
	require.NoError(t, err)
	assert.Equal(t, Px(12), s)

	_, err = ParseSize("wide")
	assert.Error(t, err)

	sum := Px(10).Add(Pct(20))
	assert.Equal(t, Combined, sum.Units)
	assert.Equal(t, "10px+20%", sum.String())
}

func TestRotation(t *testing.T) {
	r, err := ParseRotation("180deg")
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, r.Radians(), 1e-9)

	r, err = ParseRotation("25%")
	require.NoError(t, err)
	assert.InDelta(t, 90, r.Degrees(), 1e-9)

	r, err = ParseRotation("1.5rad")
	require.NoError(t, err)
	assert.Equal(t, Radians, r.Units)
	assert.True(t, Deg(90).Equal(Rad(math.Pi/2)))
}

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want Value
	}{
		{"", NullValue()},
		{"true", BoolOf(true)},
		{"42", IntOf(42)},
		{"-1.5", FloatOf(-1.5)},
		{"10px", SizeOf(Px(10))},
		{"50%", SizeOf(Pct(50))},
		{"45deg", RotationOf(Deg(45))},
		{"2..5", RangeOf(2, 5)},
		{`"hello"`, StringOf("hello")},
		{"'5'", StringOf("5")},
		{"blue", StringOf("blue")},
	}
	for _, tt := range tests {
		got := Parse(tt.text)
		assert.Equal(t, tt.want.Kind(), got.Kind(), tt.text)
		assert.True(t, tt.want.Equal(got), "%s: got %#v", tt.text, got)
	}
}

func TestCoerce(t *testing.T) {
	v, err := Coerce(IntOf(3), Float)
	require.NoError(t, err)
	assert.Equal(t, Float, v.Kind())

	v, err = Coerce(FloatOf(3), Int)
	require.NoError(t, err)
	assert.Equal(t, Int, v.Kind())

	_, err = Coerce(FloatOf(3.5), Int)
	assert.ErrorIs(t, err, ErrMismatch)

	v, err = Coerce(IntOf(20), Size)
	require.NoError(t, err)
	assert.True(t, v.Equal(SizeOf(Px(20))))

	v, err = Coerce(StringOf("30%"), Size)
	require.NoError(t, err)
	assert.True(t, v.Equal(SizeOf(Pct(30))))

	v, err = Coerce(SizeOf(Pct(50)), Rotation)
	require.NoError(t, err)
	r := Must[RotationValue](v)
	assert.InDelta(t, 180, r.Degrees(), 1e-9)

	v, err = Coerce(RangeOf(2, 5), List)
	require.NoError(t, err)
	assert.Equal(t, "[2, 3, 4]", v.String())

	_, err = Coerce(StringOf("x"), Bool)
	assert.ErrorIs(t, err, ErrMismatch)

	v, err = Coerce(NullValue(), Size)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestFrom(t *testing.T) {
	v := From(map[string]any{"b": 2, "a": []any{"x", 1.5}})
	assert.Equal(t, Object, v.Kind())
	o := Must[*ObjectValue](v)
	assert.Equal(t, []string{"a", "b"}, o.Names())
	assert.Equal(t, map[string]any{"a": []any{"x", 1.5}, "b": int64(2)}, v.Interface())

	assert.Equal(t, "2px", FromLiteral("2px").String())
	assert.Equal(t, String, From("2px").Kind())
	assert.Equal(t, Opaque, From(struct{}{}).Kind())
	assert.Equal(t, 3, RangeOf(2, 5).Len())
	assert.Equal(t, 0, RangeOf(5, 2).Len())
}

func TestTruthy(t *testing.T) {
	assert.False(t, NullValue().Truthy())
	assert.False(t, IntOf(0).Truthy())
	assert.True(t, FloatOf(0.1).Truthy())
	assert.False(t, StringOf("").Truthy())
	assert.True(t, ListOf(IntOf(1)).Truthy())
	assert.False(t, RangeOf(3, 3).Truthy())
}

func TestJSON(t *testing.T) {
	o := NewObject("").Set("z", IntOf(1)).Set("a", SizeOf(Px(5)))
	b, err := json.Marshal(ListOf(ObjectOf(o), BoolOf(true)))
	require.NoError(t, err)
	assert.Equal(t, `[{"z":1,"a":"5px"},true]`, string(b))

	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"n": 3, "f": 1.5, "w": "50%"}`), &v))
	obj := Must[*ObjectValue](v)
	n, _ := obj.Field("n")
	assert.Equal(t, Int, n.Kind())
	f, _ := obj.Field("f")
	assert.Equal(t, Float, f.Kind())
	w, _ := obj.Field("w")
	assert.True(t, w.Equal(SizeOf(Pct(50))))
}

func TestYAML(t *testing.T) {
	src := `
width: 10px
count: 3
name: "10px"
items: [1, 2.5, true]
`
	var v Value
	require.NoError(t, yaml.Unmarshal([]byte(src), &v))
	obj := Must[*ObjectValue](v)
	assert.Equal(t, []string{"width", "count", "name", "items"}, obj.Names())
	w, _ := obj.Field("width")
	assert.Equal(t, Size, w.Kind())
	nm, _ := obj.Field("name")
	assert.Equal(t, String, nm.Kind())
	items, _ := obj.Field("items")
	assert.Equal(t, "[1, 2.5, true]", items.String())

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	var back Value
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.True(t, v.Equal(back), string(out))
}

func TestKinds(t *testing.T) {
	var k Kinds
	require.NoError(t, k.SetString("Rotation"))
	assert.Equal(t, Rotation, k)
	require.NoError(t, k.SetString("number"))
	assert.Equal(t, Float, k)
	assert.Error(t, k.SetString("banana"))
	assert.Len(t, KindsValues(), 11)
	assert.Equal(t, "opaque", Opaque.String())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Int, KindOf[int]())
	assert.Equal(t, Float, KindOf[float32]())
	assert.Equal(t, Size, KindOf[SizeValue]())
	assert.Equal(t, Opaque, KindOf[Value]())
	assert.Equal(t, Opaque, KindOf[error]())
}
