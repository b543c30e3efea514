// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"fmt"
	"slices"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/base/suggest"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/expr"
	"cogentcore.org/weave/manifest"
	"cogentcore.org/weave/props"
	"cogentcore.org/weave/tree"
	"cogentcore.org/weave/value"
)

// applySetting overrides the default of the property of n named by the
// setting st, used at the site s. Common properties take precedence
// over component properties of the same name.
func (t *Traverser) applySetting(n *tree.Node, st *manifest.Setting, s *site) {
	b := n.Common
	if _, ok := b.Get(st.Name); !ok {
		b = n.Props
	}
	p, ok := b.Get(st.Name)
	if !ok {
		names := slices.Concat(n.Common.Names(), n.Props.Names())
		errors.Invariant(fmt.Errorf("%w: %q of %q%s", props.ErrMissing, st.Name, n.Type, suggest.Hint(st.Name, names)))
	}
	h, owned := t.settingCell(n, st, p.Kind, s)
	old := b.Set(props.Property{Name: st.Name, Kind: p.Kind, Handle: h, Owned: owned})
	if old != nil && old.Owned {
		errors.Log(t.Arena.Release(old.Handle))
	}
}

// settingCell returns the cell for the value of the setting st of the
// given kind, and whether n owns it. A literal becomes a literal cell,
// an expression a computed cell in the scope of the site, and a block a
// computed object cell over the cells of its own settings. A binding
// aliases the bound cell, which n does not own.
func (t *Traverser) settingCell(n *tree.Node, st *manifest.Setting, kind value.Kinds, s *site) (cell.Handle, bool) {
	switch {
	case st.Bind != "":
		h := s.frame.MustResolve(st.Bind)
		if bk := t.Arena.Value(h).Kind(); !compatible(bk, kind) {
			errors.Invariant(fmt.Errorf("%w: %q bound to %q: %v is not %v", expr.ErrTypeMismatch, st.Name, st.Bind, bk, kind))
		}
		return h, false
	case st.Expression != nil:
		c := expr.ComputedKind(t.Arena, t.Table, st.Expression.ID, s.frame, st.Expression.Deps, kind)
		return c.Handle(), true
	case st.Block != nil:
		return t.blockCell(n, st, s).Handle(), true
	}
	v, err := value.Coerce(st.LiteralValue(kind), kind)
	if err != nil {
		errors.Invariant(fmt.Errorf("%w: literal %q: %w", expr.ErrTypeMismatch, st.Name, err))
	}
	return cell.NewLiteral(t.Arena, v, st.Name).Handle(), true
}

// compatible returns whether a cell currently holding a value of kind
// have can back a property of kind want.
func compatible(have, want value.Kinds) bool {
	switch {
	case have == want, have == value.Null, want == value.Opaque:
		return true
	case have.IsNumeric() && want.IsNumeric():
		return true
	}
	return false
}

// field is one field of a block object.
type field struct {
	name   string
	handle cell.Handle
}

// blockCell returns a computed cell holding the object built by the
// block setting st. The fields default to those of the block type, if
// any, and the cells of the settings of the block are owned by n.
func (t *Traverser) blockCell(n *tree.Node, st *manifest.Setting, s *site) cell.Cell[value.Value] {
	var defs []manifest.PropertyDef
	if st.BlockType != "" && t.Manifest != nil {
		if typ := t.Manifest.Types[st.BlockType]; typ != nil {
			defs = typ.Fields
		}
	}
	kindOf := func(name string) value.Kinds {
		i := slices.IndexFunc(defs, func(d manifest.PropertyDef) bool { return d.Name == name })
		if i < 0 {
			return value.Null
		}
		return defs[i].Kind
	}

	var fields []field
	var deps []cell.Handle
	for i := range st.Block {
		sub := &st.Block[i]
		kind := kindOf(sub.Name)
		if sub.Block != nil && kind == value.Null {
			kind = value.Object
		}
		h, owned := t.settingCell(n, sub, kind, s)
		if owned {
			n.Own(h)
		}
		fields = append(fields, field{sub.Name, h})
		deps = append(deps, h)
	}

	a := t.Arena
	typ := st.BlockType
	return cell.NewComputed(a, func() value.Value {
		o := value.NewObject(typ)
		for _, d := range defs {
			o.Set(d.Name, d.DefaultValue())
		}
		for _, f := range fields {
			o.Set(f.name, a.Value(f.handle))
		}
		return value.ObjectOf(o)
	}, deps, st.Name)
}
