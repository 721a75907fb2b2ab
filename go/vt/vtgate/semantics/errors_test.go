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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"vitess.io/relsplit/go/vt/vterrors"
)

func TestSemanticErrors(t *testing.T) {
	tcases := []struct {
		err   SemanticsError
		msg   string
		code  codes.Code
		state vterrors.State
	}{{
		err:   &UnsupportedCrossRelationMatchError{Relations: R1.Merge(R2)},
		msg:   "VT12001: unsupported: cannot use MATCH predicates on columns of 2 different relations if it cannot be logically applied on each of them separately",
		code:  codes.Unimplemented,
		state: vterrors.NotSupportedYet,
	}, {
		err:  &UnknownRelationError{ID: 4},
		msg:  "VT13001: [BUG] relation 4 is not part of the query",
		code: codes.Internal,
	}, {
		err:   &RelationNotFoundError{Name: "t"},
		msg:   "Unknown table 't'",
		code:  codes.NotFound,
		state: vterrors.UnknownTable,
	}, {
		err:   &ColumnNotFoundError{Column: "c", Relation: "t"},
		msg:   "Unknown column 'c' in 't'",
		code:  codes.InvalidArgument,
		state: vterrors.BadFieldError,
	}}
	for _, tcase := range tcases {
		t.Run(tcase.msg, func(t *testing.T) {
			err := NewError(tcase.err)
			require.EqualError(t, err, tcase.msg)
			assert.Equal(t, tcase.code, vterrors.Code(err))
			assert.Equal(t, tcase.state, vterrors.ErrState(err))
			assert.True(t, errors.Is(err, tcase.err))

			wrapped := vterrors.Wrap(err, "planning")
			assert.Equal(t, tcase.code, vterrors.Code(wrapped))
		})
	}
}

func TestErrorCodeDefaults(t *testing.T) {
	info := &SemanticsErrorInfo{}
	assert.Equal(t, codes.Unknown, info.ErrorCode())
	info = &SemanticsErrorInfo{typ: UnsupportedErrorType}
	assert.Equal(t, vterrors.NotSupportedYet, info.State())
	assert.Equal(t, UnsupportedErrorType, info.ErrorType())
}
