// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"cogentcore.org/weave/base/errors"
	"cogentcore.org/weave/cell"
	"cogentcore.org/weave/value"
	"github.com/jinzhu/copier"
)

// Def defines a property of a component: its name, kind and default.
type Def struct {
	Name    string
	Kind    value.Kinds
	Default value.Value
}

// The names of the common properties that every node has.
const (
	ID      = "id"
	X       = "x"
	Y       = "y"
	Width   = "width"
	Height  = "height"
	AnchorX = "anchor_x"
	AnchorY = "anchor_y"
	ScaleX  = "scale_x"
	ScaleY  = "scale_y"
	SkewX   = "skew_x"
	SkewY   = "skew_y"
	Rotate  = "rotate"
)

// Common are the definitions of the common properties. They are all
// optional, so their default is null.
var Common = []Def{
	{Name: ID, Kind: value.String},
	{Name: X, Kind: value.Size},
	{Name: Y, Kind: value.Size},
	{Name: Width, Kind: value.Size},
	{Name: Height, Kind: value.Size},
	{Name: AnchorX, Kind: value.Size},
	{Name: AnchorY, Kind: value.Size},
	{Name: ScaleX, Kind: value.Size},
	{Name: ScaleY, Kind: value.Size},
	{Name: SkewX, Kind: value.Rotation},
	{Name: SkewY, Kind: value.Rotation},
	{Name: Rotate, Kind: value.Rotation},
}

// IsCommon returns whether the name is one of the common properties.
func IsCommon(name string) bool {
	for _, d := range Common {
		if d.Name == name {
			return true
		}
	}
	return false
}

// cloneValue makes copier deep copy [value.Value]s, which have no
// exported fields of their own.
var cloneValue = copier.TypeConverter{
	SrcType: value.Value{},
	DstType: value.Value{},
	Fn: func(src any) (any, error) {
		return src.(value.Value).Clone(), nil
	},
}

// CloneDefs returns a deep copy of the definitions, so that instances
// never share mutable default lists or objects.
func CloneDefs(defs []Def) []Def {
	cp := make([]Def, 0, len(defs))
	err := copier.CopyWithOption(&cp, &defs, copier.Option{
		DeepCopy:   true,
		Converters: []copier.TypeConverter{cloneValue},
	})
	if errors.Log(err) != nil || len(cp) != len(defs) {
		cp = cp[:0]
		for _, d := range defs {
			cp = append(cp, Def{Name: d.Name, Kind: d.Kind, Default: d.Default.Clone()})
		}
	}
	return cp
}

// NewDefaults returns a new bundle with an owned literal cell holding
// a copy of the default of each definition.
func NewDefaults(a *cell.Arena, defs []Def) *Bundle {
	b := NewBundle(a)
	for _, d := range CloneDefs(defs) {
		v, err := value.Coerce(d.Default, d.Kind)
		if errors.Log(err) != nil {
			v = value.Value{}
		}
		c := cell.NewLiteral(a, v, d.Name)
		b.Set(Property{Name: d.Name, Kind: d.Kind, Handle: c.Handle(), Owned: true})
	}
	return b
}

// NewCommon returns a new bundle of the [Common] properties.
func NewCommon(a *cell.Arena) *Bundle {
	return NewDefaults(a, Common)
}
