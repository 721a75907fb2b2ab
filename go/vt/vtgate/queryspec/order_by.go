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
	"strings"

	"vitess.io/relsplit/go/vt/symbol"
)

// OrderByItem is a single ordering expression.
type OrderByItem struct {
	Expr      symbol.Symbol
	Ascending bool
	// NullsFirst is nil when the default null ordering of the direction
	// applies.
	NullsFirst *bool
}

// OrderBy is an ordered list of ordering expressions.
type OrderBy struct {
	Items []OrderByItem
}

// NewOrderBy creates an OrderBy from the given items.
func NewOrderBy(items ...OrderByItem) *OrderBy {
	return &OrderBy{Items: items}
}

// Asc is an ascending ordering on expr using the default null ordering.
func Asc(expr symbol.Symbol) OrderByItem {
	return OrderByItem{Expr: expr, Ascending: true}
}

// Desc is a descending ordering on expr using the default null ordering.
func Desc(expr symbol.Symbol) OrderByItem {
	return OrderByItem{Expr: expr}
}

// Symbols returns the ordering expressions.
func (o *OrderBy) Symbols() []symbol.Symbol {
	if o == nil {
		return nil
	}
	syms := make([]symbol.Symbol, 0, len(o.Items))
	for _, item := range o.Items {
		syms = append(syms, item.Expr)
	}
	return syms
}

// DeepCopy returns an OrderBy that shares no expression nodes with o.
func (o *OrderBy) DeepCopy() *OrderBy {
	if o == nil {
		return nil
	}
	items := make([]OrderByItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderByItem{Expr: symbol.DeepCopy(item.Expr), Ascending: item.Ascending}
		if item.NullsFirst != nil {
			nf := *item.NullsFirst
			items[i].NullsFirst = &nf
		}
	}
	return &OrderBy{Items: items}
}

func (o *OrderBy) String() string {
	if o == nil {
		return ""
	}
	var buf strings.Builder
	for i, item := range o.Items {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(symbol.String(item.Expr))
		if item.Ascending {
			buf.WriteString(" ASC")
		} else {
			buf.WriteString(" DESC")
		}
		if item.NullsFirst != nil {
			if *item.NullsFirst {
				buf.WriteString(" NULLS FIRST")
			} else {
				buf.WriteString(" NULLS LAST")
			}
		}
	}
	return buf.String()
}
