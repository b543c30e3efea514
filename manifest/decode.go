// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cogentcore.org/weave/base/iox/jsonx"
	"cogentcore.org/weave/base/iox/tomlx"
	"cogentcore.org/weave/base/iox/yamlx"
)

// Formats are the file formats a manifest can be encoded in.
type Formats int32 //enums:enum

const (
	TOML Formats = iota
	YAML
	JSON
)

func (f Formats) String() string {
	switch f {
	case YAML:
		return "YAML"
	case JSON:
		return "JSON"
	}
	return "TOML"
}

// FormatFromPath returns the format for the extension of the filename.
func FormatFromPath(filename string) (Formats, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return TOML, fmt.Errorf("manifest: unknown format for file %q", filename)
}

// Decode reads a manifest in the given format and validates it.
func Decode(r io.Reader, f Formats) (*Manifest, error) {
	m := &Manifest{}
	var err error
	switch f {
	case YAML:
		err = yamlx.Read(m, r)
	case JSON:
		err = jsonx.Read(m, r)
	default:
		err = tomlx.Read(m, r)
	}
	if err != nil {
		return nil, fmt.Errorf("manifest.Decode %v: %w", f, err)
	}
	return m, m.Validate()
}

// DecodeBytes is [Decode] from a byte slice.
func DecodeBytes(b []byte, f Formats) (*Manifest, error) {
	m := &Manifest{}
	var err error
	switch f {
	case YAML:
		err = yamlx.ReadBytes(m, b)
	case JSON:
		err = jsonx.ReadBytes(m, b)
	default:
		err = tomlx.ReadBytes(m, b)
	}
	if err != nil {
		return nil, fmt.Errorf("manifest.DecodeBytes %v: %w", f, err)
	}
	return m, m.Validate()
}

// Open reads and validates the manifest file, in the format given by
// its extension.
func Open(filename string) (*Manifest, error) {
	f, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	switch f {
	case YAML:
		err = yamlx.Open(m, filename)
	case JSON:
		err = jsonx.Open(m, filename)
	default:
		err = tomlx.Open(m, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("manifest.Open %q: %w", filename, err)
	}
	return m, m.Validate()
}

// Encode writes the manifest in the given format.
func (m *Manifest) Encode(w io.Writer, f Formats) error {
	switch f {
	case YAML:
		return yamlx.Write(m, w)
	case JSON:
		return jsonx.Write(m, w)
	}
	return tomlx.Write(m, w)
}
