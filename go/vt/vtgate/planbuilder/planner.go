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

// Package planbuilder turns the analyzed specification of a join into a
// plan: one specification per relation, evaluated close to the data, and
// the residual work of the coordinator that merges them.
package planbuilder

import (
	"vitess.io/relsplit/go/vt/log"
	"vitess.io/relsplit/go/vt/vtgate/planbuilder/relsplit"
	"vitess.io/relsplit/go/vt/vtgate/planbuilder/where"
	"vitess.io/relsplit/go/vt/vtgate/queryspec"
	"vitess.io/relsplit/go/vt/vtgate/semantics"
)

// Planner builds plans. It holds no per query state and is safe for
// concurrent use.
type Planner struct {
	cfg     Config
	metrics *Metrics
}

// NewPlanner returns a Planner. metrics may be nil.
func NewPlanner(cfg Config, metrics *Metrics) *Planner {
	return &Planner{cfg: cfg, metrics: metrics}
}

// Plan splits top over the given relations. top is updated in place to
// the work left to the coordinator and is part of the returned plan.
func (p *Planner) Plan(top *queryspec.QuerySpec, relations []*semantics.Relation, joins []relsplit.JoinPair) (*Plan, error) {
	plan, err := p.plan(top, relations, joins)
	p.metrics.recordSplit(err)
	if err != nil {
		return nil, err
	}
	p.metrics.recordPlan(plan)
	log.DebugS("query split", "relations", len(plan.Relations), "reorder_allowed", plan.ReorderAllowed, "top", top.String())
	return plan, nil
}

func (p *Planner) plan(top *queryspec.QuerySpec, relations []*semantics.Relation, joins []relsplit.JoinPair) (*Plan, error) {
	splitter, err := relsplit.New(top, relations, joins, p.cfg.options())
	if err != nil {
		return nil, err
	}
	if err := splitter.Process(); err != nil {
		return nil, err
	}

	plan := &Plan{
		Top:            top,
		Joins:          joins,
		ReorderAllowed: splitter.RelationReorderAllowed(),
	}
	for _, rel := range relations {
		spec, err := splitter.Spec(rel)
		if err != nil {
			return nil, err
		}
		if p.cfg.EliminateNulls && spec.Where.HasQuery() {
			spec.Where = spec.Where.ReplaceQuery(where.EliminateNulls(spec.Where.Query()))
		}
		plan.Relations = append(plan.Relations, RelationPlan{Relation: rel, Spec: spec})
	}
	return plan, nil
}
