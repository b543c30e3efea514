// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonx provides functions for reading and writing JSON
// from readers, writers and byte slices.
package jsonx

import (
	"bytes"
	"encoding/json"
	"io"

	"cogentcore.org/weave/base/iox"
)

// Read reads the given object from the given reader as JSON.
func Read(v any, r io.Reader) error {
	return iox.Read(v, r, NewDecoder)
}

// ReadBytes reads the given object from the given bytes as JSON.
func ReadBytes(v any, b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	return json.Unmarshal(b, v)
}

// Write writes the given object to the given writer as JSON.
func Write(v any, w io.Writer) error {
	return json.NewEncoder(w).Encode(v)
}

// WriteBytes writes the given object, returning JSON bytes.
func WriteBytes(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "\t")
}

// NewDecoder returns a new [iox.Decoder] reading JSON from r.
func NewDecoder(r io.Reader) iox.Decoder {
	return json.NewDecoder(r)
}

// Open reads the given object from the given filename as JSON.
func Open(v any, filename string) error {
	return iox.Open(v, filename, NewDecoder)
}
