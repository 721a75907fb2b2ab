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
	"vitess.io/relsplit/go/vt/symbol"
)

// WhereClause is the filter of a QuerySpec. The zero value matches every
// row.
//
// A clause is in exactly one of three states: it matches everything, it
// matches nothing, or it carries a filter query. DocKeys, Partitions and
// ClusteredBy are routing hints derived from the filter by earlier
// analysis; they are carried along when the clause is extended.
type WhereClause struct {
	query   symbol.Symbol
	noMatch bool

	DocKeys     [][]symbol.Symbol
	Partitions  []string
	ClusteredBy []symbol.Symbol
}

// MatchAll returns a clause without a filter.
func MatchAll() WhereClause {
	return WhereClause{}
}

// NoMatch returns a clause that is known to never match.
func NoMatch() WhereClause {
	return WhereClause{noMatch: true}
}

// Filter returns a clause filtering on the given query. A nil query
// returns MatchAll.
func Filter(query symbol.Symbol) WhereClause {
	return WhereClause{query: query}
}

// HasQuery returns true if the clause carries a filter query.
func (w WhereClause) HasQuery() bool {
	return !w.noMatch && w.query != nil
}

// NoMatch returns true if the clause never matches.
func (w WhereClause) NoMatch() bool {
	return w.noMatch
}

// MatchAll returns true if the clause has neither a filter nor is a no-match.
func (w WhereClause) MatchAll() bool {
	return !w.noMatch && w.query == nil
}

// Query returns the filter query or nil.
func (w WhereClause) Query() symbol.Symbol {
	if w.noMatch {
		return nil
	}
	return w.query
}

// Add returns a clause that additionally requires sym to hold. A no-match
// clause stays a no-match clause, a match-all clause becomes a filter on
// sym.
func (w WhereClause) Add(sym symbol.Symbol) WhereClause {
	if w.noMatch || sym == nil {
		return w
	}
	res := w
	if w.query == nil {
		res.query = sym
	} else {
		res.query = symbol.And(w.query, sym)
	}
	return res
}

// ReplaceQuery returns the clause with its filter query replaced, keeping
// the routing hints. It has no effect on a no-match clause.
func (w WhereClause) ReplaceQuery(query symbol.Symbol) WhereClause {
	if w.noMatch {
		return w
	}
	w.query = query
	return w
}

func (w WhereClause) String() string {
	switch {
	case w.noMatch:
		return "NO MATCH"
	case w.query == nil:
		return "MATCH ALL"
	}
	return symbol.String(w.query)
}

// HavingClause is the post aggregation filter of a QuerySpec. It is
// immutable; Add returns a new clause.
type HavingClause struct {
	query   symbol.Symbol
	noMatch bool
}

// NewHaving returns a HAVING clause filtering on query.
func NewHaving(query symbol.Symbol) *HavingClause {
	return &HavingClause{query: query}
}

// NoMatchHaving returns a HAVING clause that never matches.
func NoMatchHaving() *HavingClause {
	return &HavingClause{noMatch: true}
}

func (h *HavingClause) HasQuery() bool {
	return h != nil && !h.noMatch && h.query != nil
}

func (h *HavingClause) NoMatch() bool {
	return h != nil && h.noMatch
}

func (h *HavingClause) Query() symbol.Symbol {
	if h == nil || h.noMatch {
		return nil
	}
	return h.query
}

// Add AND-combines sym into the clause. It can be called on a nil clause.
func (h *HavingClause) Add(sym symbol.Symbol) *HavingClause {
	switch {
	case h == nil:
		return NewHaving(sym)
	case h.noMatch || sym == nil:
		return h
	case h.query == nil:
		return NewHaving(sym)
	}
	return NewHaving(symbol.And(h.query, sym))
}

func (h *HavingClause) String() string {
	switch {
	case h == nil:
		return ""
	case h.noMatch:
		return "NO MATCH"
	}
	return symbol.String(h.query)
}
