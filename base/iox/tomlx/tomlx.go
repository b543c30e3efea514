// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx provides functions for reading and writing TOML
// from readers, writers and byte slices.
package tomlx

import (
	"bytes"
	"io"

	"cogentcore.org/weave/base/iox"
	"github.com/pelletier/go-toml/v2"
)

// Read reads the given object from the given reader as TOML.
func Read(v any, r io.Reader) error {
	return iox.Read(v, r, NewDecoder)
}

// ReadBytes reads the given object from the given bytes as TOML.
func ReadBytes(v any, b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	return toml.Unmarshal(b, v)
}

// Write writes the given object to the given writer as TOML.
func Write(v any, w io.Writer) error {
	return toml.NewEncoder(w).Encode(v)
}

// WriteBytes writes the given object, returning TOML bytes.
func WriteBytes(v any) ([]byte, error) {
	return toml.Marshal(v)
}

// NewDecoder returns a new [iox.Decoder] reading TOML from r.
func NewDecoder(r io.Reader) iox.Decoder {
	return toml.NewDecoder(r)
}

// Open reads the given object from the given filename as TOML.
func Open(v any, filename string) error {
	return iox.Open(v, filename, NewDecoder)
}
