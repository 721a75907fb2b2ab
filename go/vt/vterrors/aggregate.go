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

package vterrors

import (
	"sort"
	"strings"

	"google.golang.org/grpc/codes"
)

// A list of all codes, ordered by priority from lowest to highest. When
// several errors are aggregated the code with the highest priority wins.
const (
	PriorityOK = iota
	PriorityCanceled
	PriorityAlreadyExists
	PriorityOutOfRange
	PriorityInvalidArgument
	PriorityNotFound
	PriorityFailedPrecondition
	PriorityUnimplemented
	PriorityUnknown
	PriorityInternal
)

var errPriorities = map[codes.Code]int{
	codes.OK:                 PriorityOK,
	codes.Canceled:           PriorityCanceled,
	codes.AlreadyExists:      PriorityAlreadyExists,
	codes.OutOfRange:         PriorityOutOfRange,
	codes.InvalidArgument:    PriorityInvalidArgument,
	codes.NotFound:           PriorityNotFound,
	codes.FailedPrecondition: PriorityFailedPrecondition,
	codes.Unimplemented:      PriorityUnimplemented,
	codes.Unknown:            PriorityUnknown,
	codes.Internal:           PriorityInternal,
}

// AggregateCodes returns the code with the highest priority.
func AggregateCodes(errs []error) codes.Code {
	highCode := codes.OK
	for _, e := range errs {
		code := Code(e)
		if errPriorities[code] > errPriorities[highCode] {
			highCode = code
		}
	}
	return highCode
}

// Aggregate aggregates several errors into a single one.
// The resulting error code will be the one with the highest
// priority as defined by the priority constants in this package.
func Aggregate(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return New(AggregateCodes(errs), aggregateErrors(errs))
}

func aggregateErrors(errs []error) string {
	errStrs := make([]string, 0, len(errs))
	for _, e := range errs {
		errStrs = append(errStrs, e.Error())
	}
	// sort the error strings so we always have deterministic ordering
	sort.Strings(errStrs)
	return strings.Join(errStrs, "\n")
}
