// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest defines the compiled manifest that an engine
// instantiates: the components of a program, their property
// definitions and handler bindings, and their templates.
package manifest

import (
	"fmt"
	"strings"

	"cogentcore.org/weave/expr"
	"cogentcore.org/weave/value"
	"github.com/iancoleman/strcase"
)

// Manifest is a compiled program.
type Manifest struct {

	// Engine is a semantic version constraint on the engine,
	// such as "^0.4", checked by [Manifest.Validate].
	Engine string `toml:"engine" yaml:"engine" json:"engine"`

	// Main is the id of the root component.
	Main string `toml:"main" yaml:"main" json:"main"`

	// Components are the components of the program, by id.
	Components map[string]*Component `toml:"components" yaml:"components" json:"components"`

	// Types are the user defined object types, by name, used by
	// block settings.
	Types map[string]*Type `toml:"types,omitempty" yaml:"types,omitempty" json:"types,omitempty"`
}

// Component is a component definition.
type Component struct {

	// ID is the id of the component, set from its key in
	// [Manifest.Components] by [Manifest.Validate].
	ID string `toml:"-" yaml:"-" json:"-"`

	// Primitive is whether the component is implemented by the host
	// rather than by a template.
	Primitive bool `toml:"primitive,omitempty" yaml:"primitive,omitempty" json:"primitive,omitempty"`

	// Properties are the properties of the component, in addition to
	// the common properties.
	Properties []PropertyDef `toml:"properties,omitempty" yaml:"properties,omitempty" json:"properties,omitempty"`

	// Handlers bind events to handler functions of the component,
	// and run on every instance of it.
	Handlers []HandlerBinding `toml:"handlers,omitempty" yaml:"handlers,omitempty" json:"handlers,omitempty"`

	// Template is the template of a non-primitive component.
	Template *Template `toml:"template,omitempty" yaml:"template,omitempty" json:"template,omitempty"`
}

// PropertyDef defines a property of a component or a field of a type.
type PropertyDef struct {
	Name string      `toml:"name" yaml:"name" json:"name"`
	Kind value.Kinds `toml:"kind" yaml:"kind" json:"kind"`

	// Default is the literal default value, which is null if unset.
	Default any `toml:"default,omitempty" yaml:"default,omitempty" json:"default,omitempty"`
}

// DefaultValue returns the default as a [value.Value].
func (pd *PropertyDef) DefaultValue() value.Value {
	return literalValue(pd.Default, pd.Kind)
}

// HandlerBinding binds an event to a handler function by name.
type HandlerBinding struct {

	// Event is the event name, such as "click" or "mount".
	Event string `toml:"event" yaml:"event" json:"event"`

	// Func is the name of the handler function in the handler table
	// of the component that declares the template.
	Func string `toml:"func" yaml:"func" json:"func"`
}

// Type is a user defined object type.
type Type struct {
	Fields []PropertyDef `toml:"fields" yaml:"fields" json:"fields"`
}

// Template is the template of a component: a tree of template nodes
// referred to by id.
type Template struct {

	// Roots are the ids of the top level nodes, in order.
	Roots []int `toml:"roots" yaml:"roots" json:"roots"`

	// Nodes are all of the nodes of the template.
	Nodes []*Node `toml:"nodes" yaml:"nodes" json:"nodes"`

	index map[int]*Node
}

// Node returns the node with the given id, or nil.
func (t *Template) Node(id int) *Node {
	if t == nil {
		return nil
	}
	if t.index == nil {
		t.reindex()
	}
	return t.index[id]
}

func (t *Template) reindex() {
	t.index = make(map[int]*Node, len(t.Nodes))
	for _, n := range t.Nodes {
		t.index[n.ID] = n
	}
}

// NodeKinds are the kinds of template nodes.
type NodeKinds int32 //enums:enum

const (
	// ComponentNode is an instance of a component.
	ComponentNode NodeKinds = iota

	// ConditionalNode shows its children while its condition is true.
	ConditionalNode

	// RepeatNode repeats its children for each item of a list or range.
	RepeatNode

	// SlotNode projects a slot child of the containing component.
	SlotNode
)

var nodeKindNames = [...]string{"component", "conditional", "repeat", "slot"}

func (k NodeKinds) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return fmt.Sprintf("NodeKinds(%d)", int32(k))
	}
	return nodeKindNames[k]
}

// SetString sets the kind from its name in any case, with "if" and
// "for" accepted as the keywords for conditional and repeat nodes.
func (k *NodeKinds) SetString(s string) error {
	s = strcase.ToSnake(strings.TrimSpace(s))
	switch s {
	case "", "component_node":
		*k = ComponentNode
		return nil
	case "if", "conditional_node":
		*k = ConditionalNode
		return nil
	case "for", "repeat_node":
		*k = RepeatNode
		return nil
	case "slot_node":
		*k = SlotNode
		return nil
	}
	for i, nm := range nodeKindNames {
		if nm == s {
			*k = NodeKinds(i)
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid value for type NodeKinds", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (k NodeKinds) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *NodeKinds) UnmarshalText(text []byte) error { return k.SetString(string(text)) }

// Node is a template node.
type Node struct {

	// ID is the id of the node, unique within its template.
	ID int `toml:"id" yaml:"id" json:"id"`

	// Kind is the kind of the node.
	Kind NodeKinds `toml:"kind,omitempty" yaml:"kind,omitempty" json:"kind,omitempty"`

	// Type is the id of the component a component node instantiates.
	Type string `toml:"type,omitempty" yaml:"type,omitempty" json:"type,omitempty"`

	// Settings are the inline property settings.
	Settings []Setting `toml:"settings,omitempty" yaml:"settings,omitempty" json:"settings,omitempty"`

	// Handlers are the inline handler bindings, which run after those
	// declared by the component.
	Handlers []HandlerBinding `toml:"handlers,omitempty" yaml:"handlers,omitempty" json:"handlers,omitempty"`

	// Children are the ids of the child nodes, in order.
	Children []int `toml:"children,omitempty" yaml:"children,omitempty" json:"children,omitempty"`

	// Condition is the boolean expression of a conditional node.
	Condition *Expression `toml:"condition,omitempty" yaml:"condition,omitempty" json:"condition,omitempty"`

	// ListSource is the list expression of a repeat node.
	ListSource *Expression `toml:"list_source,omitempty" yaml:"list_source,omitempty" json:"list_source,omitempty"`

	// RangeSource is the range expression of a repeat node.
	RangeSource *Expression `toml:"range_source,omitempty" yaml:"range_source,omitempty" json:"range_source,omitempty"`

	// Elem is the name the current element of a repeat node is bound to.
	Elem string `toml:"elem,omitempty" yaml:"elem,omitempty" json:"elem,omitempty"`

	// Index is the optional name the current index of a repeat node
	// is bound to.
	Index string `toml:"index,omitempty" yaml:"index,omitempty" json:"index,omitempty"`

	// SlotIndex is the integer expression of a slot node.
	SlotIndex *Expression `toml:"slot_index,omitempty" yaml:"slot_index,omitempty" json:"slot_index,omitempty"`
}

// Setting is an inline property setting. Exactly one of Literal,
// Expression, Bind and Block is set.
type Setting struct {
	Name string `toml:"name" yaml:"name" json:"name"`

	// Literal is a literal value.
	Literal any `toml:"literal,omitempty" yaml:"literal,omitempty" json:"literal,omitempty"`

	// Expression is an expression, evaluated in the scope of the
	// component that declares the template.
	Expression *Expression `toml:"expression,omitempty" yaml:"expression,omitempty" json:"expression,omitempty"`

	// Bind is the name of a property of the declaring component that
	// this property is two-way bound to.
	Bind string `toml:"bind,omitempty" yaml:"bind,omitempty" json:"bind,omitempty"`

	// Block is a nested block of settings that builds an object.
	Block []Setting `toml:"block,omitempty" yaml:"block,omitempty" json:"block,omitempty"`

	// BlockType is the optional [Type] of the object a block builds.
	BlockType string `toml:"block_type,omitempty" yaml:"block_type,omitempty" json:"block_type,omitempty"`
}

// LiteralValue returns the literal as a value of the given kind. String
// literals for string properties are taken verbatim; others are parsed
// by [value.Parse].
func (s *Setting) LiteralValue(kind value.Kinds) value.Value {
	return literalValue(s.Literal, kind)
}

func literalValue(x any, kind value.Kinds) value.Value {
	if str, ok := x.(string); ok && kind == value.String {
		return value.StringOf(str)
	}
	return value.FromLiteral(x)
}

// count returns how many of the alternatives are set.
func (s *Setting) count() int {
	n := 0
	if s.Literal != nil {
		n++
	}
	if s.Expression != nil {
		n++
	}
	if s.Bind != "" {
		n++
	}
	if s.Block != nil {
		n++
	}
	return n
}

// Expression refers to a compiled expression and the names it reads.
type Expression struct {

	// ID is the id of the expression in the expression table.
	ID expr.ID `toml:"id" yaml:"id" json:"id"`

	// Deps are the names of the bindings the expression depends on.
	Deps []string `toml:"deps,omitempty" yaml:"deps,omitempty" json:"deps,omitempty"`
}
