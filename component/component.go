// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package component provides component factories, which create the
// default properties, handlers and typed properties blob of each
// instance of a component, and the [Registry] of them by id.
package component

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync/atomic"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/base/suggest"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/events"
	"cogentcore.org/weave/handlers"
	"cogentcore.org/weave/manifest"
	"cogentcore.org/weave/props"
)

// ErrUnknown is returned for a component id with no factory.
var ErrUnknown = errors.New("component: unknown component")

// Factory creates the per-instance state of a component.
type Factory struct {

	// ID is the id of the component.
	ID string

	// Primitive is whether the component is rendered by the host
	// rather than by a template.
	Primitive bool

	// Properties are the definitions of the properties of the component,
	// in addition to the [props.Common] ones.
	Properties []props.Def

	// Handlers is the table of handler functions of the component.
	// Handler bindings in the component and in its template are
	// resolved against it.
	Handlers *handlers.Table

	// Declared are the handler bindings that run on every instance.
	Declared []manifest.HandlerBinding

	// Bind returns the properties blob passed to handlers from the
	// property bundle of an instance. If nil, the bundle itself is used.
	Bind func(b *props.Bundle) (any, error)

	// Template is the template of a non-primitive component.
	Template *manifest.Template

	// Serial is a unique number assigned by [Registry.Add].
	Serial uint64
}

// serialCounter is an atomically incremented uint64 used
// for assigning new [Factory.Serial] numbers
var serialCounter uint64

// For returns a new factory with a typed properties blob of type P,
// filled by [props.Bind], and the given handler functions.
func For[P any](id string, hs ...handlers.Handler) *Factory {
	return &Factory{
		ID:       id,
		Handlers: handlers.NewTable(hs...),
		Bind: func(b *props.Bundle) (any, error) {
			return props.Bind[P](b)
		},
	}
}

// Defaults returns a new bundle of owned literal cells holding the
// defaults of the properties of the component. The common properties
// are in a separate bundle; see [props.NewCommon].
func (f *Factory) Defaults(a *cell.Arena) *props.Bundle {
	return props.NewDefaults(a, f.Properties)
}

// PropsBlob returns the properties blob of an instance with the
// given bundle.
func (f *Factory) PropsBlob(b *props.Bundle) (any, error) {
	if f.Bind == nil {
		return b, nil
	}
	return f.Bind(b)
}

// Resolve returns the registry of the given handler bindings, with
// the functions looked up in the handler table of the factory.
func (f *Factory) Resolve(bs []manifest.HandlerBinding) (*handlers.Registry, error) {
	r := handlers.NewRegistry()
	var errs []error
	for _, hb := range bs {
		ev, err := events.Parse(hb.Event)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		h, err := f.Handlers.Func(hb.Func)
		if err != nil {
			errs = append(errs, fmt.Errorf("component %q: %w", f.ID, err))
			continue
		}
		r.Register(ev, h)
	}
	return r, errors.Join(errs...)
}

// DeclaredHandlers returns the registry of the handlers that every
// instance of the component runs.
func (f *Factory) DeclaredHandlers() (*handlers.Registry, error) {
	return f.Resolve(f.Declared)
}

// Registry is a set of component factories by id.
type Registry struct {
	factories map[string]*Factory
}

// NewRegistry returns a new registry with the built in [Group] and
// [Frame] primitives.
func NewRegistry() *Registry {
	r := &Registry{factories: map[string]*Factory{}}
	errors.Must(r.Add(Group()))
	errors.Must(r.Add(Frame()))
	return r
}

// Add adds the factory. It is an error to add a second factory with
// the same id.
func (r *Registry) Add(f *Factory) error {
	if _, has := r.factories[f.ID]; has {
		return fmt.Errorf("component.Registry.Add: %q already exists", f.ID)
	}
	if f.Handlers == nil {
		f.Handlers = handlers.NewTable()
	}
	f.Serial = atomic.AddUint64(&serialCounter, 1)
	r.factories[f.ID] = f
	return nil
}

// Factory returns the factory for the component id.
func (r *Registry) Factory(id string) (*Factory, error) {
	f, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q%s", ErrUnknown, id, suggest.Hint(id, r.IDs()))
	}
	return f, nil
}

// IDs returns the sorted ids of the factories.
func (r *Registry) IDs() []string {
	return slices.Sorted(maps.Keys(r.factories))
}

// Len returns the number of factories.
func (r *Registry) Len() int { return len(r.factories) }

// FromManifest completes the registry from the components of the
// manifest. A component with a registered factory gets its template
// and declared handlers, and its property definitions if the factory
// has none. A component without one gets a generic factory whose
// properties blob is the property bundle itself.
func (r *Registry) FromManifest(m *manifest.Manifest) error {
	var errs []error
	for _, id := range slices.Sorted(maps.Keys(m.Components)) {
		mc := m.Components[id]
		f, ok := r.factories[id]
		if !ok {
			f = &Factory{ID: id, Primitive: mc.Primitive}
			errs = append(errs, r.Add(f))
			slog.Debug("component.Registry.FromManifest: generic factory", "component", id)
		}
		if f.Properties == nil {
			for _, pd := range mc.Properties {
				f.Properties = append(f.Properties, props.Def{Name: pd.Name, Kind: pd.Kind, Default: pd.DefaultValue()})
			}
		}
		f.Template = mc.Template
		f.Declared = mc.Handlers
		if mc.Primitive {
			f.Primitive = true
		}
		if _, err := f.DeclaredHandlers(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Group returns the factory of the built in Group primitive, which
// renders its children with no visual of its own.
func Group() *Factory {
	return &Factory{ID: "Group", Primitive: true}
}

// Frame returns the factory of the built in Frame primitive, which
// renders its children clipped to its bounds.
func Frame() *Factory {
	return &Factory{ID: "Frame", Primitive: true}
}
