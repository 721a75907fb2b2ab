/*
Copyright 2019 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package vterrors provides simple error handling primitives for the planner.
//
// Every error created here carries a gRPC code and, optionally, a State that
// mirrors the MySQL error the query would be rejected with. Errors wrapped
// with Wrap or Wrapf keep the code of the innermost vterror.
//
// The stack of the creation site is recorded and printed with %v when
// LogErrStacks is set.
package vterrors

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc/codes"
)

// LogErrStacks controls whether printing errors includes the embedded stack trace in the output.
var LogErrStacks bool

type fundamental struct {
	msg   string
	code  codes.Code
	state State
	*stack
}

// New returns an error with the supplied message and code.
func New(code codes.Code, message string) error {
	return &fundamental{
		msg:   message,
		code:  code,
		stack: callers(),
	}
}

// Errorf formats according to a format specifier and returns the string
// as a value that satisfies error.
func Errorf(code codes.Code, format string, args ...any) error {
	return &fundamental{
		msg:   fmt.Sprintf(format, args...),
		code:  code,
		stack: callers(),
	}
}

// NewErrorf formats according to a format specifier and returns an error
// carrying both the code and the State.
func NewErrorf(code codes.Code, state State, format string, args ...any) error {
	return &fundamental{
		msg:   fmt.Sprintf(format, args...),
		code:  code,
		state: state,
		stack: callers(),
	}
}

func (f *fundamental) Error() string { return f.msg }

// ErrorCode returns the code of the error.
func (f *fundamental) ErrorCode() codes.Code { return f.code }

// ErrorState returns the State of the error.
func (f *fundamental) ErrorState() State { return f.state }

func (f *fundamental) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		panicIfError(io.WriteString(s, "Code: "+f.code.String()+"\n"))
		panicIfError(io.WriteString(s, f.msg+"\n"))
		if LogErrStacks {
			f.stack.Format(s, verb)
		}
	case 's':
		panicIfError(io.WriteString(s, f.msg))
	case 'q':
		panicIfError(fmt.Fprintf(s, "%q", f.msg))
	}
}

func panicIfError(_ int, err error) {
	if err != nil {
		panic(err)
	}
}

type wrapping struct {
	cause error
	msg   string
	stack *stack
}

func (w *wrapping) Error() string { return w.msg + ": " + w.cause.Error() }

func (w *wrapping) Cause() error { return w.cause }

func (w *wrapping) Unwrap() error { return w.cause }

func (w *wrapping) Format(s fmt.State, verb rune) {
	if rune('v') == verb {
		panicIfError(fmt.Fprintf(s, "%v\n", w.Cause()))
		panicIfError(io.WriteString(s, w.msg))
		if LogErrStacks {
			w.stack.Format(s, verb)
		}
		return
	}

	if rune('s') == verb || rune('q') == verb {
		panicIfError(io.WriteString(s, w.Error()))
	}
}

// Wrap returns an error annotating err with a stack trace at the point Wrap
// is called and the supplied message. If err is nil, Wrap returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrapping{
		cause: err,
		msg:   message,
		stack: callers(),
	}
}

// Wrapf returns an error annotating err with a stack trace at the point Wrapf
// is called and the format specifier. If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Unwrap attempts to return the Cause of the given error, if it is indeed the result of a vterrors.Wrapf()
// The function indicates whether the error was indeed wrapped. If the error was not wrapped, the function
// returns the original error.
func Unwrap(err error) (wasWrapped bool, unwrapped error) {
	var w *wrapping
	if errors.As(err, &w) {
		return true, w.Cause()
	}
	return false, err
}

// Code returns the error code if it's a vtError.
// If err is nil, it returns ok.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}

	var withCode ErrorWithCode
	if errors.As(err, &withCode) {
		return withCode.ErrorCode()
	}

	// Handle some special cases.
	switch {
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	}
	return codes.Unknown
}

// ErrState returns the error state if it's a vtError.
// If err is nil, it returns Undefined.
func ErrState(err error) State {
	var withState ErrorWithState
	if errors.As(err, &withState) {
		return withState.ErrorState()
	}
	return Undefined
}

// RootCause returns the underlying cause of the error, if possible.
// If the error does not implement Cause, the error itself is returned.
func RootCause(err error) error {
	for {
		cause := Cause(err)
		if cause == nil {
			return err
		}
		err = cause
	}
}

// Cause will return the immediate cause, if possible.
// An error value has a cause if it implements the following
// interface:
//
//	type causer interface {
//	       Cause() error
//	}
//
// If the error does not implement Cause, nil will be returned
func Cause(err error) error {
	type causer interface {
		Cause() error
	}

	causerObj, ok := err.(causer)
	if !ok {
		return nil
	}

	return causerObj.Cause()
}
