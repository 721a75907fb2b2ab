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

package queryspec

import (
	"fmt"
	"math"

	"google.golang.org/grpc/codes"

	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vterrors"
)

// DefaultMaxLimit is the largest bound MergeAdd produces unless configured
// otherwise.
const DefaultMaxLimit = math.MaxInt32

// LimitOverflowError is returned when a limit and an offset add up to more
// than the allowed maximum.
type LimitOverflowError struct {
	Limit, Offset int64
	Max           int64
}

func (e *LimitOverflowError) Error() string {
	return vterrors.VT03030(e.Max, e.value()).Error()
}

func (e *LimitOverflowError) value() string {
	sum := e.Limit + e.Offset
	if (e.Offset > 0 && sum < e.Limit) || (e.Offset < 0 && sum > e.Limit) {
		return fmt.Sprintf("%d + %d", e.Limit, e.Offset)
	}
	return fmt.Sprintf("%d", sum)
}

// ErrorCode implements vterrors.ErrorWithCode
func (e *LimitOverflowError) ErrorCode() codes.Code {
	return codes.InvalidArgument
}

// ErrorState implements vterrors.ErrorWithState
func (e *LimitOverflowError) ErrorState() vterrors.State {
	return vterrors.DataOutOfRange
}

// MergeAdd combines a limit and an offset into the bound a relation has to
// produce so that the coordinator can still apply both. When both are
// integer literals the sum is computed and checked against max; otherwise
// an addition over the two symbols is returned. A nil offset returns the
// limit.
func MergeAdd(limit, offset symbol.Symbol, max int64) (symbol.Symbol, error) {
	if limit == nil {
		return offset, nil
	}
	l, lok := intLiteral(limit)
	if offset == nil {
		if lok && l > max {
			return nil, &LimitOverflowError{Limit: l, Max: max}
		}
		return limit, nil
	}
	o, ook := intLiteral(offset)
	if !lok || !ook {
		return symbol.Plus(limit, offset), nil
	}
	sum := l + o
	overflow := (o > 0 && sum < l) || (o < 0 && sum > l)
	if overflow || sum > max {
		return nil, &LimitOverflowError{Limit: l, Offset: o, Max: max}
	}
	return symbol.Int(sum), nil
}

func intLiteral(sym symbol.Symbol) (int64, bool) {
	lit, ok := sym.(*symbol.Literal)
	if !ok {
		return 0, false
	}
	v, ok := lit.Value.(int64)
	return v, ok
}
