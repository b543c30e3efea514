// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handlers

import (
	"log/slog"

	"cogentcore.org/weave/base/keylist"
	"cogentcore.org/weave/events"
)

// Registry maps event types to ordered lists of handlers. Handlers for
// an event are called in the order they were registered, and event
// types are listed in the order their first handler was registered.
type Registry struct {
	lists *keylist.List[events.Types, []Handler]
}

// NewRegistry returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{lists: keylist.New[events.Types, []Handler]()}
}

// Register appends the handler to the list for the event type.
func (r *Registry) Register(ev events.Types, h Handler) {
	hs, _ := r.lists.AtTry(ev)
	r.lists.Set(ev, append(hs, h))
}

// Handlers returns the handlers for the event type, in order.
func (r *Registry) Handlers(ev events.Types) []Handler {
	if r == nil {
		return nil
	}
	hs, _ := r.lists.AtTry(ev)
	return hs
}

// Len returns the number of handlers for the event type.
func (r *Registry) Len(ev events.Types) int { return len(r.Handlers(ev)) }

// Events returns the event types that have handlers.
func (r *Registry) Events() []events.Types {
	if r == nil {
		return nil
	}
	return r.lists.Keys
}

// Dispatch calls every handler for the event type of ev in order,
// with the context, the properties blob and the event argument.
// It returns the number of handlers called.
func (r *Registry) Dispatch(ev *events.Event, ctx *Context, props any) int {
	hs := r.Handlers(ev.Type)
	if len(hs) == 0 {
		return 0
	}
	ctx.Event = ev
	for _, h := range hs {
		slog.Debug("handlers.Registry.Dispatch", "event", ev.Type, "handler", h.Name, "node", ctx.Path)
		h.Invoke(ctx, props, ev.Args)
	}
	return len(hs)
}

// Clone returns a copy of the registry that can be modified without
// affecting r.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	if r == nil {
		return c
	}
	for ev, hs := range r.lists.All() {
		c.lists.Set(ev, append([]Handler(nil), hs...))
	}
	return c
}

// Merge appends all of the handlers of o after those of r, per event.
func (r *Registry) Merge(o *Registry) {
	if o == nil {
		return
	}
	for ev, hs := range o.lists.All() {
		for _, h := range hs {
			r.Register(ev, h)
		}
	}
}
