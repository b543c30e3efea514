// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandler(&buf, slog.LevelInfo, false))
	l.Debug("hidden")
	l.Info("shown", "node", "/main/rect")
	l.With("tick", 3).WithGroup("build").Warn("warned", "type", "Counter")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO shown node=/main/rect\n")
	assert.Contains(t, out, "WARN warned tick=3 build.type=Counter\n")
}

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, true, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestLevelFromString(t *testing.T) {
	l, err := LevelFromString("Debug")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
	_, err = LevelFromString("loud")
	assert.Error(t, err)
}
