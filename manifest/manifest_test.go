// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"bytes"
	"testing"

	"cogentcore.org/weave/expr"
	"cogentcore.org/weave/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkCounter(t *testing.T, m *Manifest) {
	t.Helper()
	assert.Equal(t, "Main", m.Main)
	require.Len(t, m.Components, 2)
	rect := m.Components["Rect"]
	assert.True(t, rect.Primitive)
	assert.Equal(t, "Rect", rect.ID)
	assert.Equal(t, value.String, rect.Properties[0].Kind)
	assert.Equal(t, "red", rect.Properties[0].DefaultValue().String())

	main := m.Components["Main"]
	require.Len(t, main.Properties, 2)
	assert.Equal(t, value.Int, main.Properties[0].Kind)
	assert.True(t, main.Properties[0].DefaultValue().Equal(value.IntOf(3)))
	assert.True(t, main.Properties[1].DefaultValue().Equal(value.BoolOf(true)))
	assert.Equal(t, []HandlerBinding{{Event: "mount", Func: "init"}}, main.Handlers)

	tm := main.Template
	assert.Equal(t, []int{0, 1}, tm.Roots)
	n0 := tm.Node(0)
	require.NotNil(t, n0)
	assert.Equal(t, ComponentNode, n0.Kind)
	assert.Equal(t, "Rect", n0.Type)
	require.Len(t, n0.Settings, 2)
	assert.True(t, n0.Settings[0].LiteralValue(value.Size).Equal(value.SizeOf(value.Pct(50))))
	assert.Equal(t, &Expression{ID: expr.ID(1), Deps: []string{"count"}}, n0.Settings[1].Expression)

	n1 := tm.Node(1)
	require.NotNil(t, n1)
	assert.Equal(t, RepeatNode, n1.Kind)
	assert.Equal(t, expr.ID(2), n1.RangeSource.ID)
	assert.Nil(t, n1.ListSource)
	assert.Equal(t, "i", n1.Elem)
	assert.Equal(t, []int{2}, n1.Children)
	assert.Nil(t, tm.Node(7))
}

func TestOpen(t *testing.T) {
	for _, fn := range []string{"testdata/counter.toml", "testdata/counter.yaml", "testdata/counter.json"} {
		t.Run(fn, func(t *testing.T) {
			m, err := Open(fn)
			require.NoError(t, err)
			checkCounter(t, m)
		})
	}
	_, err := Open("testdata/counter.txt")
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	m, err := Open("testdata/counter.yaml")
	require.NoError(t, err)
	for _, f := range []Formats{TOML, YAML, JSON} {
		t.Run(f.String(), func(t *testing.T) {
			var b bytes.Buffer
			require.NoError(t, m.Encode(&b, f))
			m2, err := Decode(&b, f)
			require.NoError(t, err, b.String())
			checkCounter(t, m2)
		})
	}
}

func TestValidate(t *testing.T) {
	m := &Manifest{
		Engine: "^9.0",
		Main:   "Mian",
		Components: map[string]*Component{
			"Main": {Template: &Template{
				Roots: []int{0, 5},
				Nodes: []*Node{
					{ID: 0, Kind: RepeatNode, Elem: "x",
						ListSource: &Expression{ID: 1}, RangeSource: &Expression{ID: 2}},
					{ID: 1, Kind: ConditionalNode, Children: []int{2}},
					{ID: 2, Type: "Main", Children: []int{1},
						Settings: []Setting{{Name: "a", Literal: 1, Bind: "b"}}},
					{ID: 3, Kind: SlotNode},
				},
			}},
		},
	}
	err := m.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, ErrIncompatible)
	msg := err.Error()
	assert.Contains(t, msg, "does not satisfy")
	assert.Contains(t, msg, `main component "Mian" not found (did you mean "Main"?)`)
	assert.Contains(t, msg, "refers to missing node 5")
	assert.Contains(t, msg, "exactly one of list_source and range_source")
	assert.Contains(t, msg, "conditional node has no condition")
	assert.Contains(t, msg, "slot node has no slot_index")
	assert.Contains(t, msg, `setting "a" needs exactly one`)
	assert.Contains(t, msg, "node 1 is unreachable")
	assert.Contains(t, msg, "node 3 is unreachable")
}

func TestNodeKinds(t *testing.T) {
	var k NodeKinds
	require.NoError(t, k.SetString("Conditional"))
	assert.Equal(t, ConditionalNode, k)
	require.NoError(t, k.SetString("for"))
	assert.Equal(t, RepeatNode, k)
	require.NoError(t, k.SetString(""))
	assert.Equal(t, ComponentNode, k)
	assert.Error(t, k.SetString("loop"))
}

func TestCheckEngine(t *testing.T) {
	assert.NoError(t, CheckEngine(">= 0.3, < 1"))
	assert.ErrorIs(t, CheckEngine("^1"), ErrIncompatible)
	assert.ErrorIs(t, CheckEngine("not a version"), ErrInvalid)
}
