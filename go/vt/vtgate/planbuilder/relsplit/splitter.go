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

// Package relsplit decomposes the query specification of a join into one
// specification per participating relation plus the residual work left to
// the coordinator that merges their results.
//
// Filters, orderings and limits are moved to the relations whenever that
// does not change the result of the join. Predicates on the NULL producing
// side of an outer join always stay on top, since the join itself creates
// the NULL rows they might otherwise have filtered.
package relsplit

import (
	"vitess.io/relsplit/go/vt/log"
	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vterrors"
	"vitess.io/relsplit/go/vt/vtgate/queryspec"
	"vitess.io/relsplit/go/vt/vtgate/semantics"
)

// Options tune which parts of the top level query are pushed down.
type Options struct {
	// MaxLimit is the largest limit handed to a relation. Zero means
	// queryspec.DefaultMaxLimit.
	MaxLimit int64

	DisableOrderByPushdown bool
	DisableLimitPushdown   bool
}

func (o Options) maxLimit() int64 {
	if o.MaxLimit <= 0 {
		return queryspec.DefaultMaxLimit
	}
	return o.MaxLimit
}

// Splitter splits a single query. It is not safe for concurrent use and
// can only be processed once.
type Splitter struct {
	top       *queryspec.QuerySpec
	relations []*semantics.Relation
	byID      map[semantics.RelationID]*semantics.Relation
	joinPairs []JoinPair
	opts      Options

	joinConditions   []symbol.Symbol
	inJoinConditions semantics.RelationSet

	specs        map[semantics.RelationID]*queryspec.QuerySpec
	orderByMoved bool
	processed    bool
}

// New creates a Splitter for the top level spec of a query over the given
// relations. Join conditions are validated right away.
func New(top *queryspec.QuerySpec, relations []*semantics.Relation, joinPairs []JoinPair, opts Options) (*Splitter, error) {
	s := &Splitter{
		top:       top,
		relations: relations,
		byID:      make(map[semantics.RelationID]*semantics.Relation, len(relations)),
		joinPairs: joinPairs,
		opts:      opts,
		specs:     make(map[semantics.RelationID]*queryspec.QuerySpec, len(relations)),
	}
	for _, rel := range relations {
		if _, exists := s.byID[rel.ID()]; exists {
			return nil, vterrors.VT13001("relation id used twice: " + rel.String())
		}
		s.byID[rel.ID()] = rel
		s.specs[rel.ID()] = &queryspec.QuerySpec{}
	}
	for _, jp := range joinPairs {
		for _, id := range []semantics.RelationID{jp.Left, jp.Right} {
			if _, ok := s.byID[id]; !ok {
				return nil, semantics.NewError(&semantics.UnknownRelationError{ID: id})
			}
		}
		if jp.Condition == nil {
			continue
		}
		if err := validateMatch(jp.Condition); err != nil {
			return nil, err
		}
		s.joinConditions = append(s.joinConditions, jp.Condition)
		s.inJoinConditions = s.inJoinConditions.WithRelation(jp.Left).WithRelation(jp.Right)
	}
	return s, nil
}

// RelationReorderAllowed returns false once the ordering was moved to the
// first relation. The join then has to keep that relation on its left.
func (s *Splitter) RelationReorderAllowed() bool {
	return !s.orderByMoved
}

// Spec returns the query specification of the given relation.
func (s *Splitter) Spec(rel *semantics.Relation) (*queryspec.QuerySpec, error) {
	if rel == nil || s.byID[rel.ID()] != rel {
		id := semantics.RelationID(-1)
		if rel != nil {
			id = rel.ID()
		}
		return nil, semantics.NewError(&semantics.UnknownRelationError{ID: id})
	}
	return s.specs[rel.ID()], nil
}

// Process splits the top level spec. The top level spec is updated in place
// to hold only the work left after the relations were evaluated. Nothing is
// changed if an error is returned.
func (s *Splitter) Process() error {
	if s.processed {
		return vterrors.VT13001("relation splitter processed twice")
	}
	s.processed = true

	res, err := s.stage().
		relocateOrderBy().
		splitWhere()
	if err != nil {
		return err
	}
	final, err := res.assignOutputs()
	if err != nil {
		return err
	}

	*s.top = *final.top
	s.specs = final.specs
	s.orderByMoved = final.orderByMoved
	return nil
}

// staging is the private state the phases work on.
type staging struct {
	*Splitter

	top              *queryspec.QuerySpec
	specs            map[semantics.RelationID]*queryspec.QuerySpec
	requiredForMerge []symbol.Symbol
	orderByMoved     bool
}

type (
	orderByStage struct{ st *staging }
	whereStage   struct{ st *staging }
	outputStage  struct{ st *staging }
)

func (s *Splitter) stage() orderByStage {
	st := &staging{
		Splitter: s,
		top:      s.top.Clone(),
		specs:    make(map[semantics.RelationID]*queryspec.QuerySpec, len(s.specs)),
	}
	for id, spec := range s.specs {
		st.specs[id] = spec.Clone()
	}
	return orderByStage{st: st}
}

func (st *staging) addRequiredForMerge(syms ...symbol.Symbol) {
outer:
	for _, sym := range syms {
		for _, existing := range st.requiredForMerge {
			if symbol.Equals(existing, sym) {
				continue outer
			}
		}
		st.requiredForMerge = append(st.requiredForMerge, sym)
	}
}

// relocateOrderBy moves the ordering to a relation if a nested loop over
// that relation preserves it: the ordering uses fields of a single relation
// only, that relation is the left most one and no outer join can insert
// NULL rows that break it.
func (s orderByStage) relocateOrderBy() whereStage {
	st := s.st
	top := st.top
	orderBy := top.OrderBy
	if orderBy == nil || top.HasAggregates() || len(top.GroupBy) > 0 {
		return whereStage(s)
	}
	if rel, ok := st.orderByTarget(semantics.DepsOf(orderBy.Symbols()...)); ok {
		st.specs[rel.ID()].OrderBy = orderBy.DeepCopy()
		top.OrderBy = nil
		st.orderByMoved = true
		log.DebugS("order by pushed down", "relation", rel.String())
		return whereStage(s)
	}
	st.addRequiredForMerge(orderBy.Symbols()...)
	return whereStage(s)
}

func (st *staging) orderByTarget(deps semantics.RelationSet) (*semantics.Relation, bool) {
	if st.opts.DisableOrderByPushdown || len(st.relations) == 0 || hasOuterJoin(st.joinPairs) {
		return nil, false
	}
	id, ok := deps.Single()
	if !ok || id != st.relations[0].ID() {
		return nil, false
	}
	rel := st.relations[0]
	// a sub-select might already have an ordering that comes with a limit
	if orderedAndBounded(st.specs[id]) || orderedAndBounded(rel.Spec) {
		return nil, false
	}
	return rel, true
}

func orderedAndBounded(spec *queryspec.QuerySpec) bool {
	return spec != nil && spec.OrderBy != nil && (spec.Limit != nil || spec.Offset != nil)
}

// splitWhere pushes every conjunct of the filter that references a single
// relation into that relation, unless it is NULL extended by an outer join.
func (s whereStage) splitWhere() (outputStage, error) {
	st := s.st
	top := st.top
	if top.Where.NoMatch() {
		for _, spec := range st.specs {
			spec.Where = queryspec.NoMatch()
		}
		return outputStage(s), nil
	}
	if !top.Where.HasQuery() {
		return outputStage(s), nil
	}

	split := SplitQuery(top.Where.Query())
	for _, rel := range st.relations {
		if IsOuterRelation(rel.ID(), st.joinPairs) {
			continue
		}
		query, ok := split.Remove(rel.Set())
		if !ok {
			continue
		}
		spec := st.specs[rel.ID()]
		if rel.IsDerived() {
			applyAsWhereOrHaving(spec, query, rel)
		} else {
			spec.Where = spec.Where.Add(query)
		}
		log.DebugS("filter pushed down", "relation", rel.String(), "filter", symbol.String(query))
	}

	if split.Len() == 0 {
		top.Where = queryspec.MatchAll()
		return outputStage(s), nil
	}
	residual := symbol.AndSymbols(split.Remaining()...)
	if err := validateMatch(residual); err != nil {
		return outputStage{}, err
	}
	top.Where = queryspec.Filter(residual)
	return outputStage(s), nil
}

// applyAsWhereOrHaving adds the query to the HAVING clause of a derived
// relation if it filters on one of its aggregated outputs.
func applyAsWhereOrHaving(spec *queryspec.QuerySpec, query symbol.Symbol, rel *semantics.Relation) {
	aggregated := false
	symbol.VisitFields(func(f *symbol.Field) {
		aggregated = aggregated || symbol.ContainsAggregation(rel.OutputAt(f.Index))
	}, query)
	if aggregated {
		spec.Having = spec.Having.Add(query)
		return
	}
	spec.Where = spec.Where.Add(query)
}

// assignOutputs decides which fields every relation has to produce and
// pushes the limit into relations that are not filtered after the join.
func (s outputStage) assignOutputs() (*staging, error) {
	st := s.st
	top := st.top
	fields := newFieldsByRelation()

	fields.add(top.GroupBy...)
	fields.add(top.Having.Query())
	fields.add(top.Where.Query())
	fields.add(st.joinConditions...)

	if err := st.pushLimit(fields); err != nil {
		return nil, err
	}

	for _, rel := range st.relations {
		fields.add(st.specs[rel.ID()].OrderBy.Symbols()...)
	}
	fields.add(top.Outputs()...)
	fields.add(st.requiredForMerge...)

	for _, rel := range st.relations {
		if err := st.specs[rel.ID()].SetOutputs(fields.get(rel.ID())); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// pushLimit hands limit + offset to the relations when nothing after the
// join can drop rows: no filter, ordering, grouping or aggregation on top
// and the relation takes no part in any join condition.
func (st *staging) pushLimit(fields *fieldsByRelation) error {
	top := st.top
	if top.Limit == nil || st.opts.DisableLimitPushdown {
		return nil
	}
	_, literalFilter := top.Where.Query().(*symbol.Literal)
	filterNeeded := top.Where.HasQuery() && !literalFilter
	if len(top.GroupBy) > 0 || top.HasAggregates() || filterNeeded || top.OrderBy != nil {
		return nil
	}

	var bound symbol.Symbol
	for _, rel := range st.relations {
		id := rel.ID()
		if fields.has(id) || st.inJoinConditions.Contains(id) {
			continue
		}
		spec := st.specs[id]
		// a sub-select might already have a limit
		if spec.Limit != nil || (rel.Spec != nil && rel.Spec.Limit != nil) {
			continue
		}
		if bound == nil {
			var err error
			bound, err = queryspec.MergeAdd(top.Limit, top.Offset, st.opts.maxLimit())
			if err != nil {
				return err
			}
		}
		spec.Limit = bound
		log.DebugS("limit pushed down", "relation", rel.String(), "limit", symbol.String(bound))
	}
	return nil
}

// fieldsByRelation collects the distinct fields of every relation in the
// order they are first seen.
type fieldsByRelation struct {
	seen   map[symbol.FieldKey]bool
	fields map[semantics.RelationID][]symbol.Symbol
}

func newFieldsByRelation() *fieldsByRelation {
	return &fieldsByRelation{
		seen:   map[symbol.FieldKey]bool{},
		fields: map[semantics.RelationID][]symbol.Symbol{},
	}
}

func (fr *fieldsByRelation) add(syms ...symbol.Symbol) {
	symbol.VisitFields(func(f *symbol.Field) {
		key := f.Key()
		if fr.seen[key] {
			return
		}
		fr.seen[key] = true
		fr.fields[f.Relation] = append(fr.fields[f.Relation], f)
	}, syms...)
}

func (fr *fieldsByRelation) has(id semantics.RelationID) bool {
	return len(fr.fields[id]) > 0
}

func (fr *fieldsByRelation) get(id semantics.RelationID) []symbol.Symbol {
	if f := fr.fields[id]; f != nil {
		return f
	}
	return []symbol.Symbol{}
}
