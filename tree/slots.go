// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

// FlattenedSlotChildren returns the slot children of a component
// instance as its slots see them: control flow nodes are replaced by
// the flattened children they currently show, so an inactive
// [Conditional] contributes nothing and a [Repeat] contributes the
// content of each of its items in order.
func (n *Node) FlattenedSlotChildren() []*Node {
	var flat []*Node
	for _, kid := range n.SlotChildren {
		flat = flatten(flat, kid)
	}
	return flat
}

func flatten(flat []*Node, n *Node) []*Node {
	if !n.Kind.IsControlFlow() {
		return append(flat, n)
	}
	if !n.IsActive() {
		return flat
	}
	for _, kid := range n.Children {
		flat = flatten(flat, kid)
	}
	return flat
}

// Projected returns the node a [Slot] node currently renders: the
// flattened slot child of its container at its index. It returns nil
// for an index out of range, for a slot outside of any component
// instance, and for other kinds of nodes.
func (n *Node) Projected() *Node {
	if n.Kind != Slot || n.Container == nil {
		return nil
	}
	i := n.SlotIndex.Get()
	flat := n.Container.FlattenedSlotChildren()
	if i < 0 || i >= len(flat) {
		return nil
	}
	return flat[i]
}

// RenderChildren returns the nodes rendered below the node, in paint
// order: the children of an active node, none for an inactive
// [Conditional], and the projected node for a [Slot].
func (n *Node) RenderChildren() []*Node {
	switch {
	case n.Kind == Slot:
		if p := n.Projected(); p != nil {
			return []*Node{p}
		}
		return nil
	case !n.IsActive():
		return nil
	}
	return n.Children
}

// WalkRender calls enter on the node and each node rendered below it in
// paint order, and exit after the nodes rendered below a node. It does
// not descend into a node for which enter returns [Break], and exit is
// not called for it.
func (n *Node) WalkRender(enter func(n *Node) bool, exit func(n *Node)) {
	if !enter(n) {
		return
	}
	for _, kid := range n.RenderChildren() {
		kid.WalkRender(enter, exit)
	}
	if exit != nil {
		exit(n)
	}
}
