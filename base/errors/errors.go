// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of error functions that are helpful
// for handling errors in the common case where an error should be
// logged or treated as fatal, along with the standard library
// error functions so that it can be used as a drop-in replacement
// for the errors package.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
)

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As is [errors.As].
func As(err error, target any) bool { return errors.As(err, target) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Log takes the given error and logs it if it is non-nil.
// The intended usage is:
//
//	errors.Log(MyFunc(v))
//	// or
//	return errors.Log(MyFunc(v))
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 takes the given value and error and returns the value if
// the error is nil, and logs the error and returns a zero value
// if the error is non-nil. The intended usage is:
//
//	a := errors.Log1(MyFunc(v))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must takes the given error and panics if it is non-nil.
// The intended usage is:
//
//	errors.Must(MyFunc(v))
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 takes the given value and error and returns the value if
// the error is nil, and panics if the error is non-nil. The intended usage is:
//
//	a := errors.Must1(MyFunc(v))
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Ignore1 ignores an error return value for a function returning
// a value and an error, allowing direct usage of the value.
// The intended usage is:
//
//	a := errors.Ignore1(MyFunc(v))
func Ignore1[T any](v T, err error) T {
	return v
}

// CallerInfo returns string information about the caller
// of the function that called CallerInfo.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name() + " " + file + ":" + strconv.Itoa(line)
}

// InvariantError is the panic value used for broken runtime contracts:
// states that the manifest compiler guarantees can never happen, such as
// an unresolved symbol or a failed downcast at a handler boundary.
// These are not recoverable at the point where they are detected.
type InvariantError struct {
	Err error
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Err.Error()
}

func (e *InvariantError) Unwrap() error { return e.Err }

// Invariant panics with an [InvariantError] wrapping the given error.
// It does nothing if err is nil.
func Invariant(err error) {
	if err == nil {
		return
	}
	panic(&InvariantError{Err: err})
}

// Invariantf is [Invariant] with a formatted error.
func Invariantf(format string, args ...any) {
	panic(&InvariantError{Err: fmt.Errorf(format, args...)})
}

// Recover converts a recovered [InvariantError] panic value into an error.
// Any other non-nil panic value is re-panicked. It must be called directly
// from a deferred function:
//
//	defer func() { err = errors.Recover(recover(), err) }()
func Recover(r any, err error) error {
	if r == nil {
		return err
	}
	if ie, ok := r.(*InvariantError); ok {
		return ie
	}
	panic(r)
}
