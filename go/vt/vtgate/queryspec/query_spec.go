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

// Package queryspec describes what a (sub)query computes: its outputs,
// filter, grouping, ordering and bounds.
package queryspec

import (
	"strings"

	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vterrors"
)

// QuerySpec is the logical description of a query over one or more
// relations. The outputs can be assigned only once; the remaining parts are
// plain fields.
type QuerySpec struct {
	outputs    []symbol.Symbol
	hasOutputs bool

	Where   WhereClause
	GroupBy []symbol.Symbol
	Having  *HavingClause
	OrderBy *OrderBy
	Limit   symbol.Symbol
	Offset  symbol.Symbol
}

// WithOutputs returns a new QuerySpec with its outputs already assigned.
func WithOutputs(outputs ...symbol.Symbol) *QuerySpec {
	qs := &QuerySpec{}
	qs.outputs, qs.hasOutputs = outputs, true
	return qs
}

// Outputs returns the output symbols, in order.
func (qs *QuerySpec) Outputs() []symbol.Symbol {
	return qs.outputs
}

// HasOutputs returns true once the outputs have been assigned.
func (qs *QuerySpec) HasOutputs() bool {
	return qs.hasOutputs
}

// SetOutputs assigns the outputs. Assigning them a second time is a bug in
// the caller and returns an error.
func (qs *QuerySpec) SetOutputs(outputs []symbol.Symbol) error {
	if qs.hasOutputs {
		return vterrors.VT13001("outputs of the query specification are already set")
	}
	qs.outputs, qs.hasOutputs = outputs, true
	return nil
}

// HasAggregates returns true if the outputs or the HAVING clause contain an
// aggregation.
func (qs *QuerySpec) HasAggregates() bool {
	for _, out := range qs.outputs {
		if symbol.ContainsAggregation(out) {
			return true
		}
	}
	return symbol.ContainsAggregation(qs.Having.Query())
}

// Clone returns a shallow copy of the spec. Symbols are shared, slices are
// not.
func (qs *QuerySpec) Clone() *QuerySpec {
	c := *qs
	if qs.outputs != nil {
		c.outputs = append([]symbol.Symbol(nil), qs.outputs...)
	}
	if qs.GroupBy != nil {
		c.GroupBy = append([]symbol.Symbol(nil), qs.GroupBy...)
	}
	return &c
}

func (qs *QuerySpec) String() string {
	var buf strings.Builder
	buf.WriteString("SELECT ")
	if len(qs.outputs) == 0 {
		buf.WriteString("<none>")
	}
	buf.WriteString(strings.Join(symbol.Strings(qs.outputs), ", "))
	if !qs.Where.MatchAll() {
		buf.WriteString(" WHERE " + qs.Where.String())
	}
	if len(qs.GroupBy) > 0 {
		buf.WriteString(" GROUP BY " + strings.Join(symbol.Strings(qs.GroupBy), ", "))
	}
	if qs.Having != nil {
		buf.WriteString(" HAVING " + qs.Having.String())
	}
	if qs.OrderBy != nil {
		buf.WriteString(" ORDER BY " + qs.OrderBy.String())
	}
	if qs.Limit != nil {
		buf.WriteString(" LIMIT " + symbol.String(qs.Limit))
	}
	if qs.Offset != nil {
		buf.WriteString(" OFFSET " + symbol.String(qs.Offset))
	}
	return buf.String()
}
