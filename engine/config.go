// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"io"
	"log/slog"
	"os"

	"cogentcore.org/weave/base/iox/tomlx"
	"cogentcore.org/weave/base/logx"
)

// Config is the configuration of an [Engine], typically read from TOML.
type Config struct {

	// LogLevel is the minimum level of the log messages that are shown:
	// debug, info, warn or error. Empty keeps [logx.UserLevel].
	LogLevel string `toml:"log_level"`

	// Color is whether log messages are colorized on terminals.
	Color bool `toml:"color"`

	// MaxRepeatItems is the maximum number of items generated for a
	// repeat, with 0 for no limit.
	MaxRepeatItems int `toml:"max_repeat_items"`

	// DispatchMount is whether the mount event is dispatched to each
	// component instance on the first tick it is rendered.
	DispatchMount bool `toml:"dispatch_mount"`

	// DispatchTick is whether the tick event is dispatched to each
	// rendered component instance on every tick.
	DispatchTick bool `toml:"dispatch_tick"`

	// Designtime enables [Engine.RebuildByID] for design tools.
	Designtime bool `toml:"designtime"`
}

// DefaultConfig returns a new config with the default values.
func DefaultConfig() *Config {
	return &Config{LogLevel: "warn", Color: true, DispatchMount: true, DispatchTick: true}
}

// ReadConfig reads a config in TOML from r over the defaults.
func ReadConfig(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	if err := tomlx.Read(c, r); err != nil {
		return nil, err
	}
	return c, c.validate()
}

// ReadConfigBytes is [ReadConfig] from a byte slice.
func ReadConfigBytes(b []byte) (*Config, error) {
	c := DefaultConfig()
	if err := tomlx.ReadBytes(c, b); err != nil {
		return nil, err
	}
	return c, c.validate()
}

func (c *Config) validate() error {
	_, err := c.Level()
	return err
}

// Level returns the [slog.Level] of [Config.LogLevel].
func (c *Config) Level() (slog.Level, error) {
	return logx.LevelFromString(c.LogLevel)
}

// SetDefaultLogger sets [logx.UserLevel] from the config and installs
// a [logx.Handler] writing to [os.Stderr] as the default logger.
func (c *Config) SetDefaultLogger() error {
	level, err := c.Level()
	if err != nil {
		return err
	}
	logx.UserLevel = level
	slog.SetDefault(slog.New(logx.NewHandler(os.Stderr, level, c.Color)))
	return nil
}
