// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cell provides reactive cells: literal cells holding a value
// that can be set, and computed cells that lazily recompute from an
// explicit list of dependency cells when any of their versions change.
// All cells live in an [Arena] and are referred to by stable [Handle]s.
package cell

import (
	"fmt"
	"log/slog"
	"reflect"

	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/value"
)

var (
	// ErrReleased is returned for a handle whose cell has been released.
	ErrReleased = errors.New("cell: handle refers to a released cell")

	// ErrComputedSet is the invariant violated by setting a computed cell.
	ErrComputedSet = errors.New("cell: cannot set a computed cell")

	// ErrCycle is the invariant violated when a computed cell is read
	// while its own closure is running.
	ErrCycle = errors.New("cell: dependency cycle")

	// ErrType is returned when a handle is viewed as the wrong type.
	ErrType = errors.New("cell: wrong cell type")
)

// Handle is the type-erased reference to a cell in an [Arena].
// It gives access to the version of the cell and to its identity,
// but not to its typed value. The zero Handle is invalid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsValid returns whether the handle was returned by an [Arena].
// It does not check whether the cell has since been released.
func (h Handle) IsValid() bool { return h.gen != 0 }

func (h Handle) String() string { return fmt.Sprintf("cell#%d.%d", h.index, h.gen) }

// entry is the storage for one cell.
type entry struct {
	gen  uint32
	name string
	typ  reflect.Type

	// version is bumped on every set, and on every recomputation.
	version uint64

	// val is the current value, of type typ.
	val any

	// fromValue converts an erased value to typ, for [Arena.SetValue].
	fromValue func(v value.Value) (any, error)

	// computed cells only:
	compute     func() any
	deps        []Handle
	depVersions []uint64
	evaluated   bool
	running     bool
}

// Arena owns a set of cells. It is not safe for concurrent use;
// all cells of an arena are read and written from one goroutine.
type Arena struct {
	entries []*entry
	free    []uint32
	live    int
}

// NewArena returns a new empty arena.
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) alloc(e *entry) Handle {
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		e.gen = a.entries[idx].gen + 1
		a.entries[idx] = e
		return Handle{index: idx, gen: e.gen}
	}
	e.gen = 1
	a.entries = append(a.entries, e)
	return Handle{index: uint32(len(a.entries) - 1), gen: 1}
}

// lookup returns the live entry for the handle.
func (a *Arena) lookup(h Handle) (*entry, error) {
	if !h.IsValid() || int(h.index) >= len(a.entries) {
		return nil, fmt.Errorf("%w: %v", ErrReleased, h)
	}
	e := a.entries[h.index]
	if e.gen != h.gen || e.typ == nil {
		return nil, fmt.Errorf("%w: %v", ErrReleased, h)
	}
	return e, nil
}

// mustLookup is lookup where a stale handle is an invariant violation.
func (a *Arena) mustLookup(h Handle) *entry {
	e, err := a.lookup(h)
	errors.Invariant(err)
	return e
}

// refresh recomputes a computed entry if it has never been evaluated
// or if the version of any dependency has changed since the last
// evaluation. Computed dependencies are refreshed first.
func (a *Arena) refresh(e *entry) {
	if e.compute == nil {
		return
	}
	if e.running {
		errors.Invariant(fmt.Errorf("%w: reading %q while computing it", ErrCycle, e.name))
	}
	stale := !e.evaluated
	for i, d := range e.deps {
		de := a.mustLookup(d)
		a.refresh(de)
		if de.version != e.depVersions[i] {
			stale = true
		}
	}
	if !stale {
		return
	}
	e.running = true
	defer func() { e.running = false }()
	e.val = e.compute()
	for i, d := range e.deps {
		e.depVersions[i] = a.entries[d.index].version
	}
	e.evaluated = true
	e.version++
}

func (a *Arena) get(h Handle) any {
	e := a.mustLookup(h)
	a.refresh(e)
	return e.val
}

// Version returns the current version of the cell. It does not refresh
// a computed cell; use [Arena.Refresh] first to observe pending changes.
func (a *Arena) Version(h Handle) uint64 {
	return a.mustLookup(h).version
}

// Refresh brings a computed cell up to date with its dependencies,
// recomputing it if needed, and returns its resulting version.
func (a *Arena) Refresh(h Handle) uint64 {
	e := a.mustLookup(h)
	a.refresh(e)
	return e.version
}

// Name returns the debug name of the cell.
func (a *Arena) Name(h Handle) string {
	return a.mustLookup(h).name
}

// IsComputed returns whether the cell is a computed cell.
func (a *Arena) IsComputed(h Handle) bool {
	return a.mustLookup(h).compute != nil
}

// Deps returns the dependency handles of a computed cell.
func (a *Arena) Deps(h Handle) []Handle {
	return a.mustLookup(h).deps
}

// Alive returns whether the handle refers to a live cell.
func (a *Arena) Alive(h Handle) bool {
	_, err := a.lookup(h)
	return err == nil
}

// Value returns the value of any cell as a [value.Value], refreshing
// a computed cell first.
func (a *Arena) Value(h Handle) value.Value {
	return value.From(a.get(h))
}

// SetValue sets a literal cell from a [value.Value], converting it to
// the static type of the cell. Setting a computed cell is an invariant
// violation.
func (a *Arena) SetValue(h Handle, v value.Value) error {
	e, err := a.lookup(h)
	if err != nil {
		return err
	}
	if e.compute != nil {
		errors.Invariant(fmt.Errorf("%w: %q", ErrComputedSet, e.name))
	}
	x, err := e.fromValue(v)
	if err != nil {
		return fmt.Errorf("cell.Arena.SetValue %q: %w", e.name, err)
	}
	e.val = x
	e.version++
	return nil
}

// Release releases the given cells. Later use of their handles is an
// error. Releasing a cell that another live computed cell depends on
// leaves that dependent unreadable, so dependents must be released
// together with, or before, their dependencies.
func (a *Arena) Release(hs ...Handle) error {
	var errs []error
	for _, h := range hs {
		e, err := a.lookup(h)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*e = entry{gen: e.gen}
		a.free = append(a.free, h.index)
		a.live--
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Len returns the number of live cells in the arena.
func (a *Arena) Len() int { return a.live }

// LogValue implements [slog.LogValuer].
func (a *Arena) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("live", a.live), slog.Int("slots", len(a.entries)))
}
