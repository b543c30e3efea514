// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlx provides functions for reading and writing YAML
// from readers, writers and byte slices.
package yamlx

import (
	"bytes"
	"io"

	"cogentcore.org/weave/base/iox"
	"gopkg.in/yaml.v3"
)

// Read reads the given object from the given reader as YAML.
func Read(v any, r io.Reader) error {
	return iox.Read(v, r, NewDecoder)
}

// ReadBytes reads the given object from the given bytes as YAML.
func ReadBytes(v any, b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	return yaml.Unmarshal(b, v)
}

// Write writes the given object to the given writer as YAML.
func Write(v any, w io.Writer) error {
	return yaml.NewEncoder(w).Encode(v)
}

// WriteBytes writes the given object, returning YAML bytes.
func WriteBytes(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// NewDecoder returns a new [iox.Decoder] reading YAML from r.
func NewDecoder(r io.Reader) iox.Decoder {
	return yaml.NewDecoder(r)
}

// Open reads the given object from the given filename as YAML.
func Open(v any, filename string) error {
	return iox.Open(v, filename, NewDecoder)
}
