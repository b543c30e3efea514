// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides the instance tree: the runtime nodes built from
// the templates of a manifest, with walking, paths, slot projection and
// teardown.
package tree

import (
	"fmt"
	"log/slog"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/handlers"
	"cogentcore.org/weave/props"
	"cogentcore.org/weave/scope"
	"cogentcore.org/weave/value"
)

// Kinds are the kinds of instance nodes.
type Kinds int32 //enums:enum

const (
	// Component is an instance of a component.
	Component Kinds = iota

	// Conditional renders its children while its condition is true.
	Conditional

	// Repeat has one [Item] child per item of its source.
	Repeat

	// Slot renders the slot child of its container at its index.
	Slot

	// Item is one iteration of a [Repeat], holding the iteration
	// bindings and the content built for them.
	Item
)

var kindNames = [...]string{"Component", "Conditional", "Repeat", "Slot", "Item"}

func (k Kinds) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kinds(%d)", int32(k))
	}
	return kindNames[k]
}

// IsControlFlow returns whether nodes of the kind are invisible to
// slots, which see their active children instead.
func (k Kinds) IsControlFlow() bool {
	return k == Conditional || k == Repeat || k == Item
}

// Identity identifies the template node a node was built from.
type Identity struct {

	// Component is the id of the component whose template declares
	// the node, or the main component id for the root.
	Component string

	// TemplateNode is the id of the template node, or -1 for the root.
	TemplateNode int
}

func (id Identity) String() string { return fmt.Sprintf("%s#%d", id.Component, id.TemplateNode) }

// Node is an instance node. Nodes exclusively own their children, their
// slot children and the cells in their property bundles and control
// flow state; [Node.Destroy] releases all of them.
type Node struct {

	// Name is the name of the node, unique among its siblings.
	Name string

	// Kind is the kind of the node.
	Kind Kinds

	// Type is the component id of a [Component] node.
	Type string

	// Primitive is whether a [Component] node is a host primitive.
	Primitive bool

	// Identity is the template node the node was built from.
	Identity Identity

	// Parent is the parent node, or nil for the root.
	Parent *Node

	// Children are the child nodes in template order, which is paint order.
	Children []*Node

	// SlotChildren are the nodes given to a [Component] node at its use
	// site, to be projected by the slots of its template.
	SlotChildren []*Node

	// Container is the component instance whose template the node was
	// built from, or nil for the root and for use site slot children of
	// the root.
	Container *Node

	// Common is the bundle of common properties of a [Component] node.
	Common *props.Bundle

	// Props is the bundle of properties specific to the component.
	Props *props.Bundle

	// Blob is the properties blob passed to handlers.
	Blob any

	// Handlers are the handlers of a [Component] node.
	Handlers *handlers.Registry

	// Frame is the scope the expressions of the node were built in.
	Frame *scope.Frame

	// TemplateFrame is the scope the template of a non-primitive
	// [Component] node is built in: its own property bindings.
	TemplateFrame *scope.Frame

	// Condition is the condition of a [Conditional] node.
	Condition cell.Cell[bool]

	// ListSource is the list source of a [Repeat] node, if any.
	ListSource cell.Cell[[]value.Value]

	// RangeSource is the range source of a [Repeat] node, if any.
	RangeSource cell.Cell[value.RangeValue]

	// Elem and Index are the binding names of a [Repeat] node.
	Elem, Index string

	// SourceVersion is the version of the source of a [Repeat] node
	// when its children were last generated.
	SourceVersion uint64

	// SlotIndex is the index of a [Slot] node.
	SlotIndex cell.Cell[int]

	// Mounted is whether the mount event has been dispatched to the node.
	Mounted bool

	arena     *cell.Arena
	owned     []cell.Handle
	destroyed bool
}

// New returns a new node of the given kind using the given arena.
func New(a *cell.Arena, kind Kinds, name string) *Node {
	return &Node{arena: a, Kind: kind, Name: name}
}

// Arena returns the arena of the cells of the node.
func (n *Node) Arena() *cell.Arena { return n.arena }

// Own records cells that the node owns and releases on [Node.Destroy],
// in addition to those in its property bundles.
func (n *Node) Own(hs ...cell.Handle) {
	n.owned = append(n.owned, hs...)
}

// String implements the [fmt.Stringer] interface by returning the path of the node.
func (n *Node) String() string {
	if n == nil {
		return "nil"
	}
	return n.Path()
}

// LogValue implements [slog.LogValuer].
func (n *Node) LogValue() slog.Value {
	return slog.StringValue(n.String())
}

// AddChild adds the given child at the end of the children.
func (n *Node) AddChild(kid *Node) {
	kid.Parent = n
	n.Children = append(n.Children, kid)
}

// AddSlotChild adds the given node at the end of the slot children.
func (n *Node) AddSlotChild(kid *Node) {
	kid.Parent = n
	n.SlotChildren = append(n.SlotChildren, kid)
}

// HasChildren returns whether the node has any children.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// NumChildren returns the number of children of the node.
func (n *Node) NumChildren() int { return len(n.Children) }

// Child returns the child at the given index, or nil if it is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// IndexInParent returns the index of the node in the children of its
// parent, or -1 if it is not a child of its parent (such as a root,
// or a slot child).
func (n *Node) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// DeleteChildren destroys and removes all of the children.
func (n *Node) DeleteChildren() {
	kids := n.Children
	n.Children = nil
	for _, kid := range kids {
		kid.Destroy()
	}
}

// Destroy recursively destroys the node, its children and slot children,
// and releases all of the cells they own. The node must not be used
// afterward. Destroying a node twice does nothing.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	n.destroyed = true
	n.DeleteChildren()
	slots := n.SlotChildren
	n.SlotChildren = nil
	for _, kid := range slots {
		kid.Destroy()
	}
	hs := n.owned
	hs = append(hs, n.Props.Owned()...)
	hs = append(hs, n.Common.Owned()...)
	if n.arena != nil && len(hs) > 0 {
		errors.Log(n.arena.Release(hs...))
	}
	n.owned = nil
}

// IsDestroyed returns whether [Node.Destroy] has been called.
func (n *Node) IsDestroyed() bool { return n.destroyed }

// UserID returns the value of the common id property, or "".
func (n *Node) UserID() string {
	if n.Common == nil {
		return ""
	}
	s, _ := n.Common.Value(props.ID).AsString()
	return s
}

// IsActive returns whether a [Conditional] node is showing its children,
// reading its condition. Other nodes are always active.
func (n *Node) IsActive() bool {
	if n.Kind != Conditional {
		return true
	}
	return n.Condition.Get()
}

// Source returns the source cell of a [Repeat] node, and false for
// other nodes.
func (n *Node) Source() (cell.Handle, bool) {
	switch {
	case n.Kind != Repeat:
		return cell.Handle{}, false
	case n.ListSource.IsValid():
		return n.ListSource.Handle(), true
	case n.RangeSource.IsValid():
		return n.RangeSource.Handle(), true
	}
	return cell.Handle{}, false
}

// SourceItems returns the current items of the source of a [Repeat]
// node: the list elements, or the integers of the range.
func (n *Node) SourceItems() []value.Value {
	switch {
	case n.ListSource.IsValid():
		return n.ListSource.Get()
	case n.RangeSource.IsValid():
		r := n.RangeSource.Get()
		items := make([]value.Value, r.Len())
		for i := range items {
			items[i] = value.IntOf(int64(r.At(i)))
		}
		return items
	}
	return nil
}
