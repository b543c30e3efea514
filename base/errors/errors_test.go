// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errTest = New("test error")

func TestLog(t *testing.T) {
	assert.Nil(t, Log(nil))
	assert.Equal(t, errTest, Log(errTest))
	assert.Equal(t, 5, Log1(5, errTest))
	assert.Equal(t, 3, Ignore1(3, errTest))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.PanicsWithValue(t, errTest, func() { Must(errTest) })
	assert.Equal(t, 2, Must1(2, nil))
	assert.Panics(t, func() { Must1(2, errTest) })
}

func TestInvariant(t *testing.T) {
	assert.NotPanics(t, func() { Invariant(nil) })

	err := func() (err error) {
		defer func() { err = Recover(recover(), err) }()
		Invariant(fmt.Errorf("broken: %w", errTest))
		return nil
	}()
	var ie *InvariantError
	assert.True(t, As(err, &ie))
	assert.True(t, Is(err, errTest))
	assert.Equal(t, "invariant violation: broken: test error", err.Error())

	err = func() (err error) {
		defer func() { err = Recover(recover(), err) }()
		Invariantf("bad %d", 1)
		return nil
	}()
	assert.EqualError(t, err, "invariant violation: bad 1")

	assert.PanicsWithValue(t, "other", func() {
		defer func() { _ = Recover(recover(), nil) }()
		panic("other")
	})
	assert.Equal(t, errTest, Recover(nil, errTest))
}

func TestCallerInfo(t *testing.T) {
	info := func() string { return CallerInfo() }()
	assert.Contains(t, info, "errors_test.go")
}
