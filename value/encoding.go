// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalJSON implements [json.Marshaler]. Sizes, rotations and ranges
// are written as their literal text, and objects keep field order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Size, Rotation, Range:
		return json.Marshal(v.String())
	case List:
		var b bytes.Buffer
		b.WriteByte('[')
		for i, e := range v.x.([]Value) {
			if i > 0 {
				b.WriteByte(',')
			}
			eb, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			b.Write(eb)
		}
		b.WriteByte(']')
		return b.Bytes(), nil
	case Object:
		o := v.x.(*ObjectValue)
		var b bytes.Buffer
		b.WriteByte('{')
		i := 0
		for k, f := range o.fields.All() {
			if i > 0 {
				b.WriteByte(',')
			}
			i++
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			fb, err := f.MarshalJSON()
			if err != nil {
				return nil, err
			}
			b.Write(fb)
		}
		b.WriteByte('}')
		return b.Bytes(), nil
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements [json.Unmarshaler], interpreting strings
// as literals in the same way as [FromLiteral].
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}
	*v = fromJSON(x)
	return nil
}

func fromJSON(x any) Value {
	switch x := x.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return IntOf(i)
		}
		f, _ := x.Float64()
		return FloatOf(f)
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = fromJSON(e)
		}
		return ListOf(elems...)
	case map[string]any:
		// field order is not preserved by encoding/json
		o := FromLiteral(x)
		obj := o.x.(*ObjectValue)
		for i, k := range obj.fields.Keys {
			obj.fields.Values[i] = fromJSON(x[k])
		}
		return o
	}
	return FromLiteral(x)
}

// MarshalYAML implements [yaml.Marshaler], keeping object field order.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case Size, Rotation, Range:
		return v.String(), nil
	case List:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.x.([]Value) {
			en := &yaml.Node{}
			if err := en.Encode(e); err != nil {
				return nil, err
			}
			n.Content = append(n.Content, en)
		}
		return n, nil
	case Object:
		o := v.x.(*ObjectValue)
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if o.Type != "" {
			n.Tag = "!" + o.Type
		}
		for k, f := range o.fields.All() {
			fn := &yaml.Node{}
			if err := fn.Encode(f); err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, fn)
		}
		return n, nil
	case String:
		if Parse(v.s).kind != String {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s, Style: yaml.DoubleQuotedStyle}, nil
		}
	case Opaque:
		return fmt.Sprintf("%v", v.x), nil
	}
	return v.Interface(), nil
}

// UnmarshalYAML implements [yaml.Unmarshaler]. Mapping nodes become
// objects with fields in document order, and the node tag, if it is
// not a standard one, becomes the object type.
func (v *Value) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			*v = Value{}
			return nil
		}
		return v.UnmarshalYAML(n.Content[0])
	case yaml.AliasNode:
		return v.UnmarshalYAML(n.Alias)
	case yaml.SequenceNode:
		elems := make([]Value, len(n.Content))
		for i, c := range n.Content {
			if err := elems[i].UnmarshalYAML(c); err != nil {
				return err
			}
		}
		*v = ListOf(elems...)
		return nil
	case yaml.MappingNode:
		typ := ""
		if n.Tag != "" && n.Tag != "!!map" {
			typ = n.Tag[1:]
		}
		o := NewObject(typ)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var f Value
			if err := f.UnmarshalYAML(n.Content[i+1]); err != nil {
				return err
			}
			o.Set(n.Content[i].Value, f)
		}
		*v = ObjectOf(o)
		return nil
	}
	switch n.ShortTag() {
	case "!!null":
		*v = Value{}
	case "!!bool", "!!int", "!!float":
		var x any
		if err := n.Decode(&x); err != nil {
			return err
		}
		*v = From(x)
	default:
		if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			*v = StringOf(n.Value)
		} else {
			*v = Parse(n.Value)
		}
	}
	return nil
}
