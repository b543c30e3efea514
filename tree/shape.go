// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"strings"
)

// Shape is the structure of an instance subtree, independent of the
// cells that back it: two builds of the same manifest have equal shapes.
type Shape struct {
	Name       string
	Kind       Kinds
	Type       string   `json:",omitempty"`
	Identity   Identity
	Properties []string `json:",omitempty"`
	Events     []string `json:",omitempty"`
	Children   []Shape  `json:",omitempty"`
	Slots      []Shape  `json:",omitempty"`
}

// Shape returns the shape of the subtree at the node.
func (n *Node) Shape() Shape {
	s := Shape{Name: n.Name, Kind: n.Kind, Type: n.Type, Identity: n.Identity}
	s.Properties = append(s.Properties, n.Common.Names()...)
	s.Properties = append(s.Properties, n.Props.Names()...)
	for _, ev := range n.Handlers.Events() {
		s.Events = append(s.Events, fmt.Sprintf("%v:%d", ev, n.Handlers.Len(ev)))
	}
	for _, kid := range n.Children {
		s.Children = append(s.Children, kid.Shape())
	}
	for _, kid := range n.SlotChildren {
		s.Slots = append(s.Slots, kid.Shape())
	}
	return s
}

// Dump returns an indented listing of the subtree at the node, one
// node per line, for debugging.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b, 0, "")
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int, prefix string) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(prefix)
	b.WriteString(n.Name)
	switch n.Kind {
	case Component:
		if n.Primitive {
			b.WriteString(" (primitive)")
		}
		if n.Props.Len() > 0 {
			b.WriteString(" ")
			b.WriteString(n.Props.String())
		}
	case Conditional:
		fmt.Fprintf(b, " if=%v", n.IsActive())
	case Repeat:
		fmt.Fprintf(b, " items=%d", len(n.Children))
	case Slot:
		fmt.Fprintf(b, " slot=%d", n.SlotIndex.Get())
	}
	b.WriteString("\n")
	for _, kid := range n.Children {
		kid.dump(b, depth+1, "")
	}
	for _, kid := range n.SlotChildren {
		kid.dump(b, depth+1, "> ")
	}
}
