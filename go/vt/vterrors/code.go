/*
Copyright 2022 The Vitess Authors.

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

package vterrors

import (
	"fmt"

	"google.golang.org/grpc/codes"
)

var (
	VT03019 = errorWithState("VT03019", codes.InvalidArgument, BadFieldError, "column %s not found", "The given column was not found or is not available.")
	VT03030 = errorWithState("VT03030", codes.InvalidArgument, DataOutOfRange, "limit and offset combined exceed the maximum of %d: %s", "The sum of LIMIT and OFFSET pushed down to a relation is larger than the configured maximum.")

	VT12001 = errorWithState("VT12001", codes.Unimplemented, NotSupportedYet, "unsupported: %s", "This statement is unsupported by the planner.")

	// VT13001 General Error
	VT13001 = errorWithoutState("VT13001", codes.Internal, "[BUG] %s", "This error should not happen and is a bug. Please file an issue on GitHub: https://github.com/vitessio/vitess/issues/new/choose.")

	Errors = []func(args ...any) *VitessError{
		VT03019,
		VT03030,
		VT12001,
		VT13001,
	}
)

type VitessError struct {
	Err         error
	Description string
	ID          string
	State       State
}

func (o *VitessError) Error() string {
	return o.Err.Error()
}

func (o *VitessError) Cause() error {
	return o.Err
}

func (o *VitessError) Unwrap() error {
	return o.Err
}

var _ error = (*VitessError)(nil)

func errorWithoutState(id string, code codes.Code, short, long string) func(args ...any) *VitessError {
	return func(args ...any) *VitessError {
		s := short
		if len(args) != 0 {
			s = fmt.Sprintf(s, args...)
		}

		return &VitessError{
			Err:         New(code, id+": "+s),
			Description: long,
			ID:          id,
		}
	}
}

func errorWithState(id string, code codes.Code, state State, short, long string) func(args ...any) *VitessError {
	return func(args ...any) *VitessError {
		return &VitessError{
			Err:         NewErrorf(code, state, id+": "+short, args...),
			Description: long,
			ID:          id,
			State:       state,
		}
	}
}
