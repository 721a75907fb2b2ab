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

package relsplit

import (
	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vtgate/semantics"
)

// SplitQueries holds the conjuncts of a filter grouped by the exact set
// of relations they reference. Groups keep the order in which their first
// conjunct appeared.
type SplitQueries struct {
	order   []semantics.RelationSet
	queries map[semantics.RelationSet]symbol.Symbol
}

// SplitQuery splits query along its top level AND. Conjuncts referencing
// the same relations are AND-combined in their original order. Conjuncts
// without any field end up in the group of the empty set.
func SplitQuery(query symbol.Symbol) *SplitQueries {
	conjuncts := symbol.SplitAnd(nil, query)
	groups := make(map[semantics.RelationSet][]symbol.Symbol, len(conjuncts))
	sq := &SplitQueries{queries: make(map[semantics.RelationSet]symbol.Symbol, len(conjuncts))}
	for _, c := range conjuncts {
		deps := semantics.DepsOf(c)
		if _, seen := groups[deps]; !seen {
			sq.order = append(sq.order, deps)
		}
		groups[deps] = append(groups[deps], c)
	}
	for _, rs := range sq.order {
		sq.queries[rs] = symbol.AndSymbols(groups[rs]...)
	}
	return sq
}

// Get returns the combined query of the relations.
func (sq *SplitQueries) Get(rs semantics.RelationSet) (symbol.Symbol, bool) {
	q, ok := sq.queries[rs]
	return q, ok
}

// Remove returns the combined query of the relations and drops it.
func (sq *SplitQueries) Remove(rs semantics.RelationSet) (symbol.Symbol, bool) {
	q, ok := sq.queries[rs]
	if !ok {
		return nil, false
	}
	delete(sq.queries, rs)
	for i, o := range sq.order {
		if o == rs {
			sq.order = append(sq.order[:i:i], sq.order[i+1:]...)
			break
		}
	}
	return q, true
}

// Len returns the number of groups left.
func (sq *SplitQueries) Len() int {
	return len(sq.order)
}

// Relations returns the relation sets of the groups left, in order.
func (sq *SplitQueries) Relations() []semantics.RelationSet {
	return append([]semantics.RelationSet(nil), sq.order...)
}

// Remaining returns the queries of the groups left, in order.
func (sq *SplitQueries) Remaining() []symbol.Symbol {
	res := make([]symbol.Symbol, 0, len(sq.order))
	for _, rs := range sq.order {
		res = append(res, sq.queries[rs])
	}
	return res
}
