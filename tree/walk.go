// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// WalkUp calls the given function on the node and all of its parents.
// It stops walking if the function returns [Break] and keeps walking if
// it returns [Continue]. It returns whether walking was finished.
func (n *Node) WalkUp(fun func(n *Node) bool) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if !fun(cur) {
			return false
		}
		if cur.Parent == cur {
			break
		}
	}
	return true
}

// WalkUpParent is like [Node.WalkUp], but it does not call the
// function on the node itself.
func (n *Node) WalkUpParent(fun func(n *Node) bool) bool {
	if n.Parent == nil {
		return true
	}
	return n.Parent.WalkUp(fun)
}

// WalkUpContainer calls the given function on the container of the node
// and all of its containers in turn: the component instances whose
// templates the node is nested in, innermost first.
func (n *Node) WalkUpContainer(fun func(n *Node) bool) bool {
	for cur := n.Container; cur != nil; cur = cur.Container {
		if !fun(cur) {
			return false
		}
	}
	return true
}

// WalkDown strategy: https://stackoverflow.com/questions/5278580/non-recursive-depth-first-search-algorithm

// WalkDown calls the given function on the node and all of its
// descendants in depth-first order, visiting the slot children of a
// node after its children. It stops walking the current branch of the
// tree if the function returns [Break] and keeps walking if it returns
// [Continue]. It is non-recursive.
func (n *Node) WalkDown(fun func(n *Node) bool) {
	tm := map[*Node]int{} // traversal map
	start := n
	cur := start
	tm[cur] = -1
outer:
	for {
		// fun can destroy the node, so it is checked after.
		if fun(cur) && !cur.destroyed {
			if nxt := cur.owned0(); nxt != nil {
				tm[cur] = 0
				cur = nxt
				tm[cur] = -1
				continue
			}
		}
		tm[cur] = cur.numOwned()
		// ascent branch: move to the right and then up
		for {
			curChild := tm[cur]
			if curChild+1 < cur.numOwned() {
				curChild++
				tm[cur] = curChild
				cur = cur.ownedAt(curChild)
				tm[cur] = -1
				continue outer
			}
			delete(tm, cur)
			if cur == start {
				break outer
			}
			parent := cur.Parent
			if parent == nil || parent == cur {
				break outer
			}
			cur = parent
		}
	}
}

// WalkDownPost iterates in a depth-first manner over the descendants like
// [Node.WalkDown], calling shouldContinue on each node to test whether
// its branch should be processed, and then calling the given function
// after all of the children of a node have been iterated over, so that
// deeper nodes come first.
func (n *Node) WalkDownPost(shouldContinue func(n *Node) bool, fun func(n *Node) bool) {
	tm := map[*Node]int{} // traversal map
	start := n
	cur := start
	tm[cur] = -1
outer:
	for {
		if shouldContinue(cur) {
			if nxt := cur.owned0(); nxt != nil {
				tm[cur] = 0
				cur = nxt
				tm[cur] = -1
				continue
			}
		} else {
			tm[cur] = cur.numOwned()
		}
		for {
			curChild := tm[cur]
			if curChild+1 < cur.numOwned() {
				curChild++
				tm[cur] = curChild
				cur = cur.ownedAt(curChild)
				tm[cur] = -1
				continue outer
			}
			fun(cur)
			delete(tm, cur)
			if cur == start {
				break outer
			}
			parent := cur.Parent
			if parent == nil || parent == cur {
				break outer
			}
			cur = parent
		}
	}
}

// WalkDownBreadth calls the given function on the node and all of its
// descendants in breadth-first order. It stops walking the current
// branch of the tree if the function returns [Break].
func (n *Node) WalkDownBreadth(fun func(n *Node) bool) {
	queue := []*Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if fun(cur) {
			for i := range cur.numOwned() {
				queue = append(queue, cur.ownedAt(i))
			}
		}
	}
}

// numOwned returns the number of children and slot children.
func (n *Node) numOwned() int { return len(n.Children) + len(n.SlotChildren) }

// ownedAt returns the child at the given index in the concatenation of
// the children and the slot children.
func (n *Node) ownedAt(i int) *Node {
	if i < len(n.Children) {
		return n.Children[i]
	}
	return n.SlotChildren[i-len(n.Children)]
}

// owned0 returns the first owned node, or nil.
func (n *Node) owned0() *Node {
	if n.numOwned() == 0 {
		return nil
	}
	return n.ownedAt(0)
}
