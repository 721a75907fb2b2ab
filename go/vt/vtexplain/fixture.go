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


package vtexplain

import (
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/grpc/codes"
	"sigs.k8s.io/yaml"

	"vitess.io/relsplit/go/vt/vterrors"
	"vitess.io/relsplit/go/vt/vtgate/planbuilder/relsplit"
	"vitess.io/relsplit/go/vt/vtgate/queryspec"
	"vitess.io/relsplit/go/vt/vtgate/semantics"
)

type (
	// Fixture describes a join to plan: the relations, how they are
	// joined, the analyzed top level query and optionally the plan that
	// is expected for it.
	Fixture struct {
		Name    string       `json:"name,omitempty"`
		Tables  []TableDef   `json:"tables"`
		Derived []DerivedDef `json:"derived,omitempty"`
		// Relations lists the participants of the join in order. It
		// defaults to all tables and has to be given when derived tables
		// are used.
		Relations []string     `json:"relations,omitempty"`
		Joins     []JoinDef    `json:"joins,omitempty"`
		Query     QueryDef     `json:"query"`
		Expect    *Expectation `json:"expect,omitempty"`
	}

	TableDef struct {
		Name    string      `json:"name"`
		Columns []ColumnDef `json:"columns"`
	}

	ColumnDef struct {
		Name string `json:"name"`
		Type string `json:"type,omitempty"`
	}

	// DerivedDef is a sub-select over previously defined relations.
	// Columns default to the names of the inner outputs.
	DerivedDef struct {
		Name    string   `json:"name"`
		Query   QueryDef `json:"query"`
		Columns []string `json:"columns,omitempty"`
	}

	// JoinDef joins two relations. The join condition must not be named
	// `on` since YAML reads that as a boolean.
	JoinDef struct {
		Left      string `json:"left"`
		Right     string `json:"right"`
		Type      string `json:"type,omitempty"`
		Condition *Expr  `json:"condition,omitempty"`
	}

	QueryDef struct {
		Outputs []Expr     `json:"outputs"`
		Where   *Expr      `json:"where,omitempty"`
		NoMatch bool       `json:"no_match,omitempty"`
		GroupBy []Expr     `json:"group_by,omitempty"`
		Having  *Expr      `json:"having,omitempty"`
		OrderBy []OrderDef `json:"order_by,omitempty"`
		Limit   *Expr      `json:"limit,omitempty"`
		Offset  *Expr      `json:"offset,omitempty"`
	}

	OrderDef struct {
		Expr       Expr  `json:"expr"`
		Desc       bool  `json:"desc,omitempty"`
		NullsFirst *bool `json:"nulls_first,omitempty"`
	}

	// Expectation is the part of a plan a fixture checks. Only the parts
	// that are given are compared; Error excludes all others.
	Expectation struct {
		Error          string            `json:"error,omitempty"`
		ReorderAllowed *bool             `json:"reorder_allowed,omitempty"`
		Top            string            `json:"top,omitempty"`
		Relations      map[string]string `json:"relations,omitempty"`
	}

	// Query is a fixture bound to relations, ready to be planned.
	Query struct {
		Top       *queryspec.QuerySpec
		Relations []*semantics.Relation
		Joins     []relsplit.JoinPair
	}
)

// Parse decodes a YAML fixture. Unknown keys are rejected.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, vterrors.Wrap(err, "invalid fixture")
	}
	return &f, nil
}

// Load reads the fixture at path. The name defaults to the file name
// without its extension.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, vterrors.Wrapf(err, "%s", path)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Build registers the relations of the fixture and resolves its
// expressions against them.
func (f *Fixture) Build() (*Query, error) {
	reg := semantics.NewRegistry()
	r := resolver{reg: reg}

	for _, t := range f.Tables {
		cols := make([]semantics.Column, 0, len(t.Columns))
		for _, c := range t.Columns {
			typ, err := dataType(c.Type)
			if err != nil {
				return nil, vterrors.Wrapf(err, "table %s", t.Name)
			}
			cols = append(cols, semantics.Column{Name: c.Name, Type: typ})
		}
		reg.AddTable(t.Name, cols...)
	}
	for _, d := range f.Derived {
		spec, err := r.spec(&d.Query)
		if err != nil {
			return nil, vterrors.Wrapf(err, "derived table %s", d.Name)
		}
		var cols []semantics.Column
		for i, name := range d.Columns {
			col := semantics.Column{Name: name}
			if i < len(spec.Outputs()) {
				col.Type = spec.Outputs()[i].ValueType()
			}
			cols = append(cols, col)
		}
		if _, err := reg.AddDerived(d.Name, spec, cols...); err != nil {
			return nil, err
		}
	}

	q := &Query{}
	switch {
	case len(f.Relations) > 0:
		for _, name := range f.Relations {
			rel, err := reg.Lookup(name)
			if err != nil {
				return nil, err
			}
			q.Relations = append(q.Relations, rel)
		}
	case len(f.Derived) > 0:
		return nil, vterrors.New(codes.InvalidArgument, "relations have to be listed when derived tables are used")
	default:
		q.Relations = reg.Relations()
	}

	for _, j := range f.Joins {
		jp, err := r.join(j)
		if err != nil {
			return nil, err
		}
		q.Joins = append(q.Joins, jp)
	}

	top, err := r.spec(&f.Query)
	if err != nil {
		return nil, vterrors.Wrap(err, "query")
	}
	q.Top = top
	return q, nil
}

func (r resolver) join(j JoinDef) (relsplit.JoinPair, error) {
	jt, ok := relsplit.ParseJoinType(j.Type)
	if !ok {
		return relsplit.JoinPair{}, vterrors.Errorf(codes.InvalidArgument, "unknown join type %q", j.Type)
	}
	left, err := r.reg.Lookup(j.Left)
	if err != nil {
		return relsplit.JoinPair{}, err
	}
	right, err := r.reg.Lookup(j.Right)
	if err != nil {
		return relsplit.JoinPair{}, err
	}
	cond, err := r.optional(j.Condition)
	if err != nil {
		return relsplit.JoinPair{}, vterrors.Wrapf(err, "join %s %s", j.Left, j.Right)
	}
	return relsplit.JoinPair{Left: left.ID(), Right: right.ID(), Type: jt, Condition: cond}, nil
}

func (r resolver) spec(def *QueryDef) (*queryspec.QuerySpec, error) {
	outputs, err := r.exprs(def.Outputs)
	if err != nil {
		return nil, err
	}
	spec := queryspec.WithOutputs(outputs...)

	where, err := r.optional(def.Where)
	if err != nil {
		return nil, err
	}
	switch {
	case def.NoMatch:
		spec.Where = queryspec.NoMatch()
	case where != nil:
		spec.Where = queryspec.Filter(where)
	}

	if spec.GroupBy, err = r.exprs(def.GroupBy); err != nil {
		return nil, err
	}
	having, err := r.optional(def.Having)
	if err != nil {
		return nil, err
	}
	if having != nil {
		spec.Having = queryspec.NewHaving(having)
	}

	if len(def.OrderBy) > 0 {
		items := make([]queryspec.OrderByItem, 0, len(def.OrderBy))
		for i := range def.OrderBy {
			o := &def.OrderBy[i]
			expr, err := r.expr(&o.Expr)
			if err != nil {
				return nil, err
			}
			items = append(items, queryspec.OrderByItem{Expr: expr, Ascending: !o.Desc, NullsFirst: o.NullsFirst})
		}
		spec.OrderBy = queryspec.NewOrderBy(items...)
	}

	if spec.Limit, err = r.optional(def.Limit); err != nil {
		return nil, err
	}
	if spec.Offset, err = r.optional(def.Offset); err != nil {
		return nil, err
	}
	return spec, nil
}
