// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"fmt"
	"maps"
	"slices"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/base/suggest"
	"cogentcore.org/weave/events"
	"github.com/Masterminds/semver/v3"
)

// EngineVersion is the version of the engine that manifests are
// checked against.
const EngineVersion = "0.4.0"

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("manifest: invalid")

// ErrIncompatible is returned for a manifest that requires another
// version of the engine.
var ErrIncompatible = errors.New("manifest: incompatible engine version")

// Validate checks the manifest for structural errors and fills in the
// ids of its components. It returns all of the problems found, joined.
func (m *Manifest) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	if m.Engine != "" {
		if err := CheckEngine(m.Engine); err != nil {
			errs = append(errs, err)
		}
	}
	ids := slices.Sorted(maps.Keys(m.Components))
	if _, ok := m.Components[m.Main]; !ok {
		add("main component %q not found%s", m.Main, suggest.Hint(m.Main, ids))
	}
	for _, id := range ids {
		c := m.Components[id]
		if c == nil {
			add("component %q is empty", id)
			continue
		}
		c.ID = id
		m.validateComponent(c, add)
	}
	for name, t := range m.Types {
		if t == nil {
			add("type %q is empty", name)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CheckEngine returns an error if [EngineVersion] does not satisfy the
// engine version constraint.
func CheckEngine(constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("%w: engine constraint %q: %w", ErrInvalid, constraint, err)
	}
	v := semver.MustParse(EngineVersion)
	if ok, reasons := c.Validate(v); !ok {
		return fmt.Errorf("%w: %s does not satisfy %q: %w", ErrIncompatible, v, constraint, errors.Join(reasons...))
	}
	return nil
}

func validateHandlers(where string, hs []HandlerBinding, add func(string, ...any)) {
	for _, h := range hs {
		if _, err := events.Parse(h.Event); err != nil {
			add("%s: handler %q: %v", where, h.Func, err)
		}
		if h.Func == "" {
			add("%s: handler for %q has no function", where, h.Event)
		}
	}
}

func (m *Manifest) validateComponent(c *Component, add func(string, ...any)) {
	where := fmt.Sprintf("component %q", c.ID)
	seen := map[string]bool{}
	for _, pd := range c.Properties {
		if pd.Name == "" {
			add("%s: property with no name", where)
		}
		if seen[pd.Name] {
			add("%s: duplicate property %q", where, pd.Name)
		}
		seen[pd.Name] = true
	}
	validateHandlers(where, c.Handlers, add)
	if c.Primitive {
		if c.Template != nil && len(c.Template.Nodes) > 0 {
			add("%s: primitive component has a template", where)
		}
		return
	}
	if c.Template == nil {
		return
	}
	t := c.Template
	t.index = make(map[int]*Node, len(t.Nodes))
	for _, n := range t.Nodes {
		if n == nil {
			add("%s: nil template node", where)
			continue
		}
		if _, dup := t.index[n.ID]; dup {
			add("%s: duplicate template node id %d", where, n.ID)
		}
		t.index[n.ID] = n
	}
	parent := map[int]int{}
	ref := func(from, id int) {
		if _, ok := t.index[id]; !ok {
			add("%s: node %d refers to missing node %d", where, from, id)
			return
		}
		if p, dup := parent[id]; dup {
			add("%s: node %d is a child of both %d and %d", where, id, p, from)
			return
		}
		parent[id] = from
	}
	for _, r := range t.Roots {
		ref(-1, r)
	}
	for _, n := range t.Nodes {
		if n == nil {
			continue
		}
		for _, ch := range n.Children {
			ref(n.ID, ch)
		}
		m.validateNode(fmt.Sprintf("%s node %d", where, n.ID), n, add)
	}
	reached := map[int]bool{}
	var reach func(id int)
	reach = func(id int) {
		n := t.index[id]
		if n == nil || reached[id] {
			return
		}
		reached[id] = true
		for _, ch := range n.Children {
			reach(ch)
		}
	}
	for _, r := range t.Roots {
		reach(r)
	}
	for _, n := range t.Nodes {
		if n != nil && !reached[n.ID] {
			add("%s: node %d is unreachable from the roots", where, n.ID)
		}
	}
}

func (m *Manifest) validateNode(where string, n *Node, add func(string, ...any)) {
	validateHandlers(where, n.Handlers, add)
	for i := range n.Settings {
		m.validateSetting(where, &n.Settings[i], add)
	}
	switch n.Kind {
	case ComponentNode:
		if n.Type == "" {
			add("%s: component node has no type", where)
		}
	case ConditionalNode:
		if n.Condition == nil {
			add("%s: conditional node has no condition", where)
		}
	case RepeatNode:
		if (n.ListSource == nil) == (n.RangeSource == nil) {
			add("%s: repeat node needs exactly one of list_source and range_source", where)
		}
		if n.Elem == "" {
			add("%s: repeat node has no elem binding name", where)
		}
	case SlotNode:
		if n.SlotIndex == nil {
			add("%s: slot node has no slot_index", where)
		}
	}
	if n.Kind != ComponentNode && len(n.Settings) > 0 {
		add("%s: %v node cannot have settings", where, n.Kind)
	}
}

func (m *Manifest) validateSetting(where string, s *Setting, add func(string, ...any)) {
	if s.count() != 1 {
		add("%s: setting %q needs exactly one of literal, expression, bind and block", where, s.Name)
	}
	if s.BlockType != "" {
		if _, ok := m.Types[s.BlockType]; !ok {
			add("%s: setting %q: unknown block type %q%s", where, s.Name, s.BlockType,
				suggest.Hint(s.BlockType, slices.Sorted(maps.Keys(m.Types))))
		}
	}
	for i := range s.Block {
		m.validateSetting(where+" block "+s.Name, &s.Block[i], add)
	}
}
