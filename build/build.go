// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package build provides the [Traverser], which instantiates the
// templates of a manifest into trees of [tree.Node]s, and regenerates
// and rebuilds parts of those trees.
package build

import (
	"fmt"
	"log/slog"
	"strconv"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/component"
	"cogentcore.org/weave/expr"
	"cogentcore.org/weave/manifest"
	"cogentcore.org/weave/props"
	"cogentcore.org/weave/scope"
	"cogentcore.org/weave/tree"
	"cogentcore.org/weave/value"
	"github.com/iancoleman/strcase"
)

var (
	// ErrNoTemplateNode is the invariant violated when a template refers
	// to a node id it does not contain.
	ErrNoTemplateNode = errors.New("build: no template node")

	// ErrNotRepeat is returned when regenerating a node that is not a repeat.
	ErrNotRepeat = errors.New("build: not a repeat node")

	// ErrNotRebuildable is returned when rebuilding a node that has no
	// template node of its own.
	ErrNotRebuildable = errors.New("build: node cannot be rebuilt")
)

// Traverser instantiates templates. It has no state of its own beyond
// its configuration between calls.
type Traverser struct {

	// Manifest is the manifest whose templates are instantiated.
	Manifest *manifest.Manifest

	// Components are the component factories, by id.
	Components *component.Registry

	// Table is the expression table of the manifest.
	Table *expr.Table

	// Arena is the arena all cells are allocated in.
	Arena *cell.Arena

	// MaxRepeatItems is the maximum number of items generated for a
	// repeat, with 0 for no limit. Excess items are dropped with a warning.
	MaxRepeatItems int

	// pending are the nodes created by the current operation,
	// which are destroyed if it fails.
	pending []*tree.Node
}

// New returns a new traverser.
func New(m *manifest.Manifest, reg *component.Registry, table *expr.Table, a *cell.Arena) *Traverser {
	return &Traverser{Manifest: m, Components: reg, Table: table, Arena: a}
}

// site is where a template node is being instantiated.
type site struct {

	// frame is the scope expressions are built in.
	frame *scope.Frame

	// container is the component instance whose template is being
	// built, or nil for the use site of the root.
	container *tree.Node

	// declarer is the component whose template declares the nodes,
	// whose handler table resolves inline handler bindings.
	declarer *component.Factory
}

func (s *site) template() *manifest.Template {
	if s.declarer == nil {
		return nil
	}
	return s.declarer.Template
}

// Build builds the tree of an instance of the component with the given
// id, which is normally the main component of the manifest. Invariant
// violations during construction are returned as errors, after the
// partially built tree has been destroyed.
func (t *Traverser) Build(id string) (root *tree.Node, err error) {
	f, err := t.Components.Factory(id)
	if err != nil {
		return nil, err
	}
	err = t.guard(func() {
		root = t.instantiate(f, nil, &site{}, tree.Identity{Component: id, TemplateNode: -1})
	})
	if err != nil {
		return nil, fmt.Errorf("build %q: %w", id, err)
	}
	slog.Info("build.Traverser.Build", "component", id, "cells", t.Arena.Len())
	return root, nil
}

// guard runs fn, converting an invariant violation into an error and
// destroying every node created by fn if there is one.
func (t *Traverser) guard(fn func()) (err error) {
	t.pending = nil
	defer func() {
		err = errors.Recover(recover(), err)
		if err != nil {
			for _, n := range t.pending {
				n.Destroy()
			}
		}
		t.pending = nil
	}()
	fn()
	return nil
}

// newNode returns a new node, recording it as pending.
func (t *Traverser) newNode(kind tree.Kinds, name string, s *site, id tree.Identity) *tree.Node {
	n := tree.New(t.Arena, kind, name)
	n.Identity = id
	n.Container = s.container
	n.Frame = s.frame
	t.pending = append(t.pending, n)
	return n
}

// node builds the template node with the given id at the site.
func (t *Traverser) node(id int, s *site) *tree.Node {
	mn := s.template().Node(id)
	if mn == nil {
		errors.Invariant(fmt.Errorf("%w: %d in component %q", ErrNoTemplateNode, id, s.declarer.ID))
	}
	ident := tree.Identity{Component: s.declarer.ID, TemplateNode: id}
	switch mn.Kind {
	case manifest.ConditionalNode:
		return t.conditional(mn, s, ident)
	case manifest.RepeatNode:
		return t.repeat(mn, s, ident)
	case manifest.SlotNode:
		return t.slot(mn, s, ident)
	}
	f, err := t.Components.Factory(mn.Type)
	errors.Invariant(err)
	return t.instantiate(f, mn, s, ident)
}

// children builds the template nodes with the given ids at the site
// and adds them to n.
func (t *Traverser) children(n *tree.Node, ids []int, s *site) {
	for _, id := range ids {
		n.AddChild(t.node(id, s))
	}
}

// instantiate builds an instance of the component of f, used at the
// template node mn (nil for the root) at the site.
func (t *Traverser) instantiate(f *component.Factory, mn *manifest.Node, s *site, ident tree.Identity) *tree.Node {
	name := strcase.ToKebab(f.ID)
	if mn != nil {
		name += "-" + strconv.Itoa(mn.ID)
	}
	n := t.newNode(tree.Component, name, s, ident)
	n.Type = f.ID
	n.Primitive = f.Primitive

	// the children given at the use site come first: they are the
	// children of a primitive, and the slot children of anything else.
	if mn != nil {
		for _, id := range mn.Children {
			kid := t.node(id, s)
			if f.Primitive {
				n.AddChild(kid)
			} else {
				n.AddSlotChild(kid)
			}
		}
	}

	n.Common = props.NewCommon(t.Arena)
	n.Props = f.Defaults(t.Arena)
	if mn != nil {
		for i := range mn.Settings {
			t.applySetting(n, &mn.Settings[i], s)
		}
	}
	blob, err := f.PropsBlob(n.Props)
	errors.Invariant(err)
	n.Blob = blob

	hs, err := f.DeclaredHandlers()
	errors.Invariant(err)
	if mn != nil && len(mn.Handlers) > 0 {
		inline, err := s.declarer.Resolve(mn.Handlers)
		errors.Invariant(err)
		hs.Merge(inline)
	}
	n.Handlers = hs

	if !f.Primitive && f.Template != nil {
		bindings := n.Common.Bindings()
		for name, h := range n.Props.Bindings() {
			bindings[name] = h
		}
		n.TemplateFrame = scope.NewRoot(t.Arena, bindings)
		ts := &site{frame: n.TemplateFrame, container: n, declarer: f}
		t.children(n, f.Template.Roots, ts)
	}
	return n
}

// conditional builds a conditional node.
func (t *Traverser) conditional(mn *manifest.Node, s *site, ident tree.Identity) *tree.Node {
	n := t.newNode(tree.Conditional, "if-"+strconv.Itoa(mn.ID), s, ident)
	t.children(n, mn.Children, s)
	n.Condition = expr.Computed[bool](t.Arena, t.Table, mn.Condition.ID, s.frame, mn.Condition.Deps)
	n.Own(n.Condition.Handle())
	return n
}

// slot builds a slot node.
func (t *Traverser) slot(mn *manifest.Node, s *site, ident tree.Identity) *tree.Node {
	n := t.newNode(tree.Slot, "slot-"+strconv.Itoa(mn.ID), s, ident)
	n.SlotIndex = expr.Computed[int](t.Arena, t.Table, mn.SlotIndex.ID, s.frame, mn.SlotIndex.Deps)
	n.Own(n.SlotIndex.Handle())
	return n
}

// repeat builds a repeat node and generates its items.
func (t *Traverser) repeat(mn *manifest.Node, s *site, ident tree.Identity) *tree.Node {
	n := t.newNode(tree.Repeat, "for-"+strconv.Itoa(mn.ID), s, ident)
	n.Elem, n.Index = mn.Elem, mn.Index
	if mn.ListSource != nil {
		n.ListSource = expr.Computed[[]value.Value](t.Arena, t.Table, mn.ListSource.ID, s.frame, mn.ListSource.Deps)
		n.Own(n.ListSource.Handle())
	} else {
		n.RangeSource = expr.Computed[value.RangeValue](t.Arena, t.Table, mn.RangeSource.ID, s.frame, mn.RangeSource.Deps)
		n.Own(n.RangeSource.Handle())
	}
	t.generate(n, mn, s)
	return n
}

// generate builds one item child of the repeat node n per item of its
// source, with the content of the template node mn.
func (t *Traverser) generate(n *tree.Node, mn *manifest.Node, s *site) {
	items := n.SourceItems()
	src, _ := n.Source()
	n.SourceVersion = t.Arena.Version(src)
	if t.MaxRepeatItems > 0 && len(items) > t.MaxRepeatItems {
		slog.Warn("build.Traverser.generate: too many repeat items", "node", n, "items", len(items), "max", t.MaxRepeatItems)
		items = items[:t.MaxRepeatItems]
	}
	for k := range items {
		item := t.newNode(tree.Item, "item-"+strconv.Itoa(k), s, n.Identity)
		elem := t.elemCell(n, k)
		index := cell.NewLiteral(t.Arena, value.IntOf(int64(k)), n.Index)
		item.Own(elem.Handle(), index.Handle())
		item.Frame = s.frame.PushIteration(scope.Iteration{
			Elem: n.Elem, ElemCell: elem.Handle(),
			Index: n.Index, IndexCell: index.Handle(),
		})
		t.children(item, mn.Children, &site{frame: item.Frame, container: s.container, declarer: s.declarer})
		n.AddChild(item)
	}
	slog.Debug("build.Traverser.generate", "node", n, "items", len(items))
}

// elemCell returns a cell reading the item at position k of the source
// of the repeat node n, which follows the source without copying it.
func (t *Traverser) elemCell(n *tree.Node, k int) cell.Cell[value.Value] {
	src, _ := n.Source()
	name := n.Elem
	if n.ListSource.IsValid() {
		list := n.ListSource
		return cell.NewComputed(t.Arena, func() value.Value {
			items := list.Get()
			if k >= len(items) {
				return value.NullValue()
			}
			return items[k]
		}, []cell.Handle{src}, name)
	}
	rng := n.RangeSource
	return cell.NewComputed(t.Arena, func() value.Value {
		return value.IntOf(int64(rng.Get().At(k)))
	}, []cell.Handle{src}, name)
}

// NeedsRegenerate returns whether the source of the repeat node n has
// changed since its items were generated, refreshing the source.
func (t *Traverser) NeedsRegenerate(n *tree.Node) bool {
	src, ok := n.Source()
	if !ok {
		return false
	}
	return t.Arena.Refresh(src) != n.SourceVersion
}

// Regenerate replaces all of the items of the repeat node n with new
// ones for the current items of its source.
func (t *Traverser) Regenerate(n *tree.Node) error {
	if n.Kind != tree.Repeat {
		return fmt.Errorf("%w: %v", ErrNotRepeat, n)
	}
	s, mn, err := t.siteOf(n)
	if err != nil {
		return err
	}
	return t.guard(func() {
		n.DeleteChildren()
		t.generate(n, mn, s)
	})
}

// Rebuild builds a new node from the template node of n, in the same
// scope and container, and replaces n with it in its parent, destroying
// n. The root is rebuilt with [Traverser.Build]. Item nodes cannot be
// rebuilt; rebuild their repeat instead.
func (t *Traverser) Rebuild(n *tree.Node) (*tree.Node, error) {
	if n.Kind == tree.Item {
		return nil, fmt.Errorf("%w: %v", ErrNotRebuildable, n)
	}
	if n.Identity.TemplateNode < 0 {
		nn, err := t.Build(n.Type)
		if err != nil {
			return nil, err
		}
		n.Destroy()
		return nn, nil
	}
	s, mn, err := t.siteOf(n)
	if err != nil {
		return nil, err
	}
	var nn *tree.Node
	err = t.guard(func() {
		nn = t.node(mn.ID, s)
	})
	if err != nil {
		return nil, err
	}
	if p := n.Parent; p != nil {
		nn.Parent = p
		replace(p.Children, n, nn)
		replace(p.SlotChildren, n, nn)
	}
	n.Destroy()
	slog.Debug("build.Traverser.Rebuild", "node", nn)
	return nn, nil
}

func replace(nodes []*tree.Node, old, nn *tree.Node) {
	for i, k := range nodes {
		if k == old {
			nodes[i] = nn
		}
	}
}

// siteOf returns the site that the node n was built at, and its template node.
func (t *Traverser) siteOf(n *tree.Node) (*site, *manifest.Node, error) {
	f, err := t.Components.Factory(n.Identity.Component)
	if err != nil {
		return nil, nil, err
	}
	mn := f.Template.Node(n.Identity.TemplateNode)
	if mn == nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNoTemplateNode, n.Identity)
	}
	return &site{frame: n.Frame, container: n.Container, declarer: f}, mn, nil
}
