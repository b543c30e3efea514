// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"strconv"
	"strings"
)

// EscapePathName returns a name that replaces any / with \\
func EscapePathName(name string) string {
	return strings.ReplaceAll(name, "/", `\\`)
}

// UnescapePathName returns a name that replaces any \\ with /
func UnescapePathName(name string) string {
	return strings.ReplaceAll(name, `\\`, "/")
}

// Path returns the path to the node from the root, using the names of
// the nodes separated by / delimiters. Slot children appear in the path
// of the component instance they were given to.
func (n *Node) Path() string {
	if n.Parent != nil {
		return n.Parent.Path() + "/" + EscapePathName(n.Name)
	}
	return "/" + EscapePathName(n.Name)
}

// PathFrom returns the path to the node from the given ancestor, which
// excludes the name of the ancestor and the leading slash: in the tree
// a/b/c/d/e, d.PathFrom(b) is c/d.
func (n *Node) PathFrom(parent *Node) string {
	if n == parent {
		return ""
	}
	if n.Parent == nil || n.Parent == parent {
		return EscapePathName(n.Name)
	}
	return n.Parent.PathFrom(parent) + "/" + EscapePathName(n.Name)
}

// FindPath returns the node at the given path from the node, in the
// format produced by [Node.PathFrom], searching the children and then
// the slot children at each level. An element of the form [i] selects
// the child at index i, counting from the end if negative. It returns
// nil if there is no node at the path.
func (n *Node) FindPath(path string) *Node {
	cur := n
	for _, pe := range strings.Split(strings.Trim(strings.TrimSpace(path), "\""), "/") {
		if len(pe) == 0 {
			continue
		}
		cur = findPathChild(cur, UnescapePathName(pe))
		if cur == nil {
			return nil
		}
	}
	return cur
}

// findPathChild finds the child with the given path element for [Node.FindPath].
func findPathChild(n *Node, child string) *Node {
	if child[0] == '[' && child[len(child)-1] == ']' {
		idx, err := strconv.Atoi(child[1 : len(child)-1])
		if err != nil {
			return nil
		}
		if idx < 0 {
			idx = len(n.Children) + idx
		}
		return n.Child(idx)
	}
	if kid := ChildByName(n.Children, child); kid != nil {
		return kid
	}
	return ChildByName(n.SlotChildren, child)
}

// ChildByName returns the node with the given name in the given slice,
// or nil if there is none.
func ChildByName(nodes []*Node, name string) *Node {
	for _, k := range nodes {
		if k.Name == name {
			return k
		}
	}
	return nil
}
