// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	names := []string{"width", "height", "count", "items"}
	assert.Equal(t, "count", Closest("cuont", names))
	assert.Equal(t, "width", Closest("Widht", names))
	assert.Equal(t, "", Closest("zzzzzz", names))
	assert.Equal(t, ` (did you mean "items"?)`, Hint("itemz", names))
	assert.Equal(t, "", Hint("q", nil))
}
