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

	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vtgate/queryspec"
)

// RelationKind tells base tables and derived tables apart.
type RelationKind int8

const (
	BaseTable RelationKind = iota
	DerivedTable
)

func (k RelationKind) String() string {
	switch k {
	case BaseTable:
		return "table"
	case DerivedTable:
		return "derived"
	}
	return "unknown"
}

// Column is a named, typed output of a relation.
type Column struct {
	Name string
	Type symbol.DataType
}

// Relation is a participant of a query: a base table or a derived table
// (a subquery in the FROM clause). Relations are identified by their id,
// never by their name.
type Relation struct {
	id      RelationID
	Name    string
	Kind    RelationKind
	Columns []Column

	// Spec is the inner query of a derived table, nil for base tables.
	Spec *queryspec.QuerySpec
}

// ID returns the per query id of the relation.
func (r *Relation) ID() RelationID {
	return r.id
}

// Set returns a RelationSet holding only this relation.
func (r *Relation) Set() RelationSet {
	return SingleRelationSet(r.id)
}

// IsDerived returns true for derived tables.
func (r *Relation) IsDerived() bool {
	return r.Kind == DerivedTable
}

// Column returns a field referencing the named column.
func (r *Relation) Column(name string) (*symbol.Field, error) {
	for idx, col := range r.Columns {
		if col.Name == name {
			return symbol.NewField(r.id, idx, col.Name, col.Type), nil
		}
	}
	return nil, NewError(&ColumnNotFoundError{Column: name, Relation: r.Name})
}

// OutputAt returns the inner output a field of a derived table at position
// idx resolves to. It returns nil for base tables.
func (r *Relation) OutputAt(idx int) symbol.Symbol {
	if r.Spec == nil {
		return nil
	}
	outputs := r.Spec.Outputs()
	if idx < 0 || idx >= len(outputs) {
		return nil
	}
	return outputs[idx]
}

func (r *Relation) String() string {
	return fmt.Sprintf("%s#%d", r.Name, r.id)
}

// Registry hands out relation ids for a single query.
type Registry struct {
	relations []*Relation
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (reg *Registry) add(r *Relation) *Relation {
	r.id = RelationID(len(reg.relations))
	reg.relations = append(reg.relations, r)
	return r
}

// AddTable registers a base table.
func (reg *Registry) AddTable(name string, cols ...Column) *Relation {
	return reg.add(&Relation{Name: name, Kind: BaseTable, Columns: cols})
}

// AddDerived registers a derived table over the given inner query. If no
// columns are given they are named after the inner outputs.
func (reg *Registry) AddDerived(name string, spec *queryspec.QuerySpec, cols ...Column) (*Relation, error) {
	outputs := spec.Outputs()
	if len(cols) == 0 {
		cols = make([]Column, 0, len(outputs))
		for _, out := range outputs {
			colName := symbol.String(out)
			if f, ok := out.(*symbol.Field); ok && f.Name != "" {
				colName = f.Name
			}
			cols = append(cols, Column{Name: colName, Type: out.ValueType()})
		}
	}
	if len(cols) != len(outputs) {
		return nil, NewError(&DerivedColumnsMismatchError{Relation: name, Columns: len(cols), Outputs: len(outputs)})
	}
	return reg.add(&Relation{Name: name, Kind: DerivedTable, Columns: cols, Spec: spec}), nil
}

// Relations returns the relations in registration order.
func (reg *Registry) Relations() []*Relation {
	return reg.relations
}

// Get returns the relation with the given id.
func (reg *Registry) Get(id RelationID) (*Relation, error) {
	if id < 0 || int(id) >= len(reg.relations) {
		return nil, NewError(&UnknownRelationError{ID: id})
	}
	return reg.relations[id], nil
}

// Lookup returns the relation registered under name. Names do not have to
// be unique, but looking up a name that is used twice is an error.
func (reg *Registry) Lookup(name string) (*Relation, error) {
	var found *Relation
	for _, r := range reg.relations {
		if r.Name != name {
			continue
		}
		if found != nil {
			return nil, NewError(&AmbiguousRelationError{Name: name})
		}
		found = r
	}
	if found == nil {
		return nil, NewError(&RelationNotFoundError{Name: name})
	}
	return found, nil
}

// DepsOf returns the relations owning the fields referenced in the given
// trees.
func DepsOf(syms ...symbol.Symbol) RelationSet {
	var deps RelationSet
	symbol.VisitFields(func(f *symbol.Field) {
		deps = deps.WithRelation(f.Relation)
	}, syms...)
	return deps
}

// MatchSpansRelations returns the relations of the first MATCH predicate in
// the given trees whose fields belong to more than one relation.
func MatchSpansRelations(syms ...symbol.Symbol) (RelationSet, bool) {
	var spans RelationSet
	found := false
	symbol.Walk(func(node symbol.Symbol) bool {
		if found {
			return false
		}
		m, ok := node.(*symbol.MatchPredicate)
		if !ok {
			return true
		}
		var deps RelationSet
		for _, f := range m.Fields {
			deps = deps.WithRelation(f.Relation)
		}
		if deps.NumberOfRelations() > 1 {
			spans, found = deps, true
		}
		return false
	}, syms...)
	return spans, found
}
