// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine provides the [Engine], which owns the instance tree of
// a manifest and runs it for a host: ticking, rendering, event dispatch
// and lookup of nodes by id.
package engine

import (
	"fmt"
	"log/slog"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/build"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/component"
	"cogentcore.org/weave/events"
	"cogentcore.org/weave/expr"
	"cogentcore.org/weave/handlers"
	"cogentcore.org/weave/manifest"
	"cogentcore.org/weave/tree"
)

var (
	// ErrNotFound is returned for a user id that no node has.
	ErrNotFound = errors.New("engine: no node with id")

	// ErrNotDesigntime is returned by [Engine.RebuildByID] when
	// [Config.Designtime] is off.
	ErrNotDesigntime = errors.New("engine: rebuild by id requires designtime")

	// ErrClosed is returned when using a closed engine.
	ErrClosed = errors.New("engine: closed")
)

// Renderer draws the instance tree. [Engine.Render] calls Enter for
// each rendered component instance in paint order, and Exit after the
// instances rendered inside of it. Control flow nodes are not passed
// to the renderer: it only sees what they currently render.
type Renderer interface {

	// Enter is called on a component instance before those inside of
	// it. If it returns false, they are skipped and Exit is not called.
	Enter(n *tree.Node) bool

	// Exit is called after the instances inside of n.
	Exit(n *tree.Node)
}

// Engine runs the instance tree of a manifest. It is not safe for
// concurrent use: all of its methods must be called from one goroutine.
type Engine struct {

	// Config is the configuration of the engine.
	Config Config

	// Manifest is the manifest being run.
	Manifest *manifest.Manifest

	// Components are the component factories.
	Components *component.Registry

	// Table is the expression table.
	Table *expr.Table

	// Arena holds all of the cells of the tree.
	Arena *cell.Arena

	traverser *build.Traverser
	root      *tree.Node
	frames    uint64
}

// New returns a new engine for the manifest, having built the tree of
// its main component. The registry is completed from the manifest and
// the table is sealed. A nil config uses [DefaultConfig].
func New(m *manifest.Manifest, reg *component.Registry, table *expr.Table, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := reg.FromManifest(m); err != nil {
		return nil, err
	}
	table.Seal()
	e := &Engine{Config: *cfg, Manifest: m, Components: reg, Table: table, Arena: cell.NewArena()}
	e.traverser = build.New(m, reg, table, e.Arena)
	e.traverser.MaxRepeatItems = cfg.MaxRepeatItems
	root, err := e.traverser.Build(m.Main)
	if err != nil {
		return nil, err
	}
	e.root = root
	return e, nil
}

// Root returns the root of the tree, or nil once the engine is closed.
func (e *Engine) Root() *tree.Node { return e.root }

// Frames returns the number of ticks so far.
func (e *Engine) Frames() uint64 { return e.frames }

// Tick advances the engine by one frame. It regenerates the repeats
// whose sources have changed, in the parts of the tree that are
// showing, and then dispatches the mount event to each newly rendered
// component instance and the tick event to every rendered one.
func (e *Engine) Tick() error {
	if e.root == nil {
		return ErrClosed
	}
	var errs []error
	regenerated := 0
	e.root.WalkDown(func(n *tree.Node) bool {
		switch n.Kind {
		case tree.Conditional:
			return n.IsActive()
		case tree.Repeat:
			if e.traverser.NeedsRegenerate(n) {
				regenerated++
				if err := e.traverser.Regenerate(n); err != nil {
					errs = append(errs, err)
					return tree.Break
				}
			}
		}
		return tree.Continue
	})

	var rendered []*tree.Node
	e.root.WalkRender(func(n *tree.Node) bool {
		if n.Kind == tree.Component {
			rendered = append(rendered, n)
		}
		return tree.Continue
	}, nil)
	mounted := 0
	for _, n := range rendered {
		if n.IsDestroyed() {
			continue
		}
		if !n.Mounted {
			n.Mounted = true
			if e.Config.DispatchMount {
				e.Dispatch(n, events.Mount, nil)
				mounted++
			}
		}
		if e.Config.DispatchTick && !n.IsDestroyed() {
			e.Dispatch(n, events.Tick, nil)
		}
	}
	e.frames++
	slog.Debug("engine.Engine.Tick", "frame", e.frames, "regenerated", regenerated, "mounted", mounted, "rendered", len(rendered), "cells", e.Arena.Len())
	return errors.Join(errs...)
}

// Render walks the rendered tree in paint order, calling the renderer
// on each component instance.
func (e *Engine) Render(r Renderer) {
	if e.root == nil {
		return
	}
	e.root.WalkRender(func(n *tree.Node) bool {
		if n.Kind != tree.Component {
			return tree.Continue
		}
		return r.Enter(n)
	}, func(n *tree.Node) {
		if n.Kind == tree.Component {
			r.Exit(n)
		}
	})
}

// FindByID returns the first node in depth-first order whose common id
// property is the given id, whether or not it is rendered, or nil.
func (e *Engine) FindByID(id string) *tree.Node {
	if e.root == nil || id == "" {
		return nil
	}
	var found *tree.Node
	e.root.WalkDown(func(n *tree.Node) bool {
		if found != nil {
			return tree.Break
		}
		if n.UserID() == id {
			found = n
			return tree.Break
		}
		return tree.Continue
	})
	return found
}

// RebuildByID rebuilds the node with the given id from its template,
// replacing it in the tree, and returns the new node. It is only
// available in designtime, for tools that edit the manifest while it
// runs.
func (e *Engine) RebuildByID(id string) (*tree.Node, error) {
	if !e.Config.Designtime {
		return nil, ErrNotDesigntime
	}
	n := e.FindByID(id)
	if n == nil {
		return nil, fmt.Errorf("%w %q", ErrNotFound, id)
	}
	nn, err := e.traverser.Rebuild(n)
	if err != nil {
		return nil, err
	}
	if n == e.root {
		e.root = nn
	}
	slog.Info("engine.Engine.RebuildByID", "id", id, "node", nn)
	return nn, nil
}

// Dispatch dispatches an event of the given type and argument to the
// handlers of the component instance n, and returns the event so that
// the host can check [events.Event.Cancelled].
func (e *Engine) Dispatch(n *tree.Node, typ events.Types, args any) *events.Event {
	ev := events.New(typ, args)
	if n.Kind != tree.Component {
		return ev
	}
	ctx := &handlers.Context{Props: n.Props, Common: n.Common, Path: n.Path(), Frame: e.frames}
	if n.Container != nil {
		ctx.Container = n.Container.Props
	}
	n.Handlers.Dispatch(ev, ctx, n.Blob)
	return ev
}

// DispatchByID is [Engine.Dispatch] to the node with the given id.
func (e *Engine) DispatchByID(id string, typ events.Types, args any) (*events.Event, error) {
	n := e.FindByID(id)
	if n == nil {
		return nil, fmt.Errorf("%w %q", ErrNotFound, id)
	}
	return e.Dispatch(n, typ, args), nil
}

// Close destroys the tree, releasing all of its cells.
func (e *Engine) Close() error {
	if e.root == nil {
		return ErrClosed
	}
	e.root.Destroy()
	e.root = nil
	if n := e.Arena.Len(); n > 0 {
		slog.Warn("engine.Engine.Close: cells remain after teardown", "cells", n)
	}
	return nil
}
