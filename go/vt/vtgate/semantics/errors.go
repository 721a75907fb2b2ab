/*
Copyright 2026 The Vitess Authors.

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

package semantics

import (
	"fmt"

	"google.golang.org/grpc/codes"

	"vitess.io/relsplit/go/vt/vterrors"
)

type ErrType int

const (
	UndefinedErrorType ErrType = iota
	UnsupportedErrorType
	BugErrorType
)

func printf(e SemanticsError, msg string, args ...any) string {
	format := msg

	if e.Info().id != "" {
		format = fmt.Sprintf("%s: %s", e.Info().id, format)
	}

	switch e.Info().typ {
	case UnsupportedErrorType:
		format = "VT12001: unsupported: " + format
	case BugErrorType:
		format = "VT13001: [BUG] " + format
	}
	return fmt.Sprintf(format, args...)
}

// SemanticsError should be implemented by all errors in this package that arise from a semantic problem
type SemanticsError interface {
	Error() string
	Info() *SemanticsErrorInfo
}

// SemanticsErrorInfo provides additional information about a semantic error
type SemanticsErrorInfo struct {
	code  codes.Code
	state vterrors.State
	typ   ErrType
	id    string
}

func (c *SemanticsErrorInfo) ErrorCode() codes.Code {
	switch c.typ {
	case UnsupportedErrorType:
		return codes.Unimplemented
	case BugErrorType:
		return codes.Internal
	}
	if c.code == codes.OK {
		return codes.Unknown
	}
	return c.code
}

func (c *SemanticsErrorInfo) State() vterrors.State {
	if c.typ == UnsupportedErrorType && c.state == vterrors.Undefined {
		return vterrors.NotSupportedYet
	}
	return c.state
}

func (c *SemanticsErrorInfo) ErrorType() ErrType {
	return c.typ
}

func (c *SemanticsErrorInfo) Id() string {
	return c.id
}

// semanticsError makes a SemanticsError usable by vterrors.Code and
// vterrors.ErrState.
type semanticsError struct {
	SemanticsError
}

func (e semanticsError) ErrorCode() codes.Code {
	return e.Info().ErrorCode()
}

func (e semanticsError) ErrorState() vterrors.State {
	return e.Info().State()
}

func (e semanticsError) Unwrap() error {
	return e.SemanticsError
}

// NewError wraps a SemanticsError so that its code and state are visible
// to the vterrors helpers.
func NewError(e SemanticsError) error {
	return semanticsError{SemanticsError: e}
}

// Specific error implementations follow

// UnsupportedCrossRelationMatchError
type UnsupportedCrossRelationMatchError struct {
	Relations RelationSet
}

func (e *UnsupportedCrossRelationMatchError) Error() string {
	return printf(e, "cannot use MATCH predicates on columns of 2 different relations if it cannot be logically applied on each of them separately")
}

func (e *UnsupportedCrossRelationMatchError) Info() *SemanticsErrorInfo {
	return &SemanticsErrorInfo{typ: UnsupportedErrorType, state: vterrors.NotSupportedYet}
}

// UnknownRelationError
type UnknownRelationError struct {
	ID RelationID
}

func (e *UnknownRelationError) Error() string {
	return printf(e, "relation %d is not part of the query", e.ID)
}

func (e *UnknownRelationError) Info() *SemanticsErrorInfo {
	return &SemanticsErrorInfo{typ: BugErrorType}
}

// RelationNotFoundError
type RelationNotFoundError struct {
	Name string
}

func (e *RelationNotFoundError) Error() string {
	return printf(e, "Unknown table '%s'", e.Name)
}

func (e *RelationNotFoundError) Info() *SemanticsErrorInfo {
	return &SemanticsErrorInfo{state: vterrors.UnknownTable, code: codes.NotFound}
}

// AmbiguousRelationError
type AmbiguousRelationError struct {
	Name string
}

func (e *AmbiguousRelationError) Error() string {
	return printf(e, "Not unique table/alias: '%s'", e.Name)
}

func (e *AmbiguousRelationError) Info() *SemanticsErrorInfo {
	return &SemanticsErrorInfo{state: vterrors.BadTableError, code: codes.InvalidArgument}
}

// ColumnNotFoundError
type ColumnNotFoundError struct {
	Column   string
	Relation string
}

func (e *ColumnNotFoundError) Error() string {
	return printf(e, "Unknown column '%s' in '%s'", e.Column, e.Relation)
}

func (e *ColumnNotFoundError) Info() *SemanticsErrorInfo {
	return &SemanticsErrorInfo{state: vterrors.BadFieldError, code: codes.InvalidArgument}
}

// DerivedColumnsMismatchError
type DerivedColumnsMismatchError struct {
	Relation string
	Columns  int
	Outputs  int
}

func (e *DerivedColumnsMismatchError) Error() string {
	return printf(e, "derived table '%s' names %d columns but its query has %d outputs", e.Relation, e.Columns, e.Outputs)
}

func (e *DerivedColumnsMismatchError) Info() *SemanticsErrorInfo {
	return &SemanticsErrorInfo{state: vterrors.OperandColumns, code: codes.FailedPrecondition}
}
