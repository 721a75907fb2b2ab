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

// Package symbol contains the analyzed expression tree the planner works on.
//
// A Symbol is a node of an already resolved expression: literals, parameter
// placeholders, field references owned by a relation, function applications
// and full text MATCH predicates. The set of node types is closed; code that
// behaves differently per node switches over the concrete types.
//
// Symbols are treated as immutable. Subtrees may be shared between several
// trees, so any transformation producing a modified tree builds new nodes
// (see DeepCopy) instead of mutating existing ones.
package symbol

// RelationID identifies a relation participating in a single query. Ids are
// handed out in registration order and are only meaningful within the query
// that registered them.
type RelationID int

type (
	// Symbol is a node in the analyzed expression tree.
	Symbol interface {
		iSymbol()
		ValueType() DataType
	}

	// Literal is a constant value. A nil Value is the SQL NULL.
	Literal struct {
		Value any
		Type  DataType
	}

	// Parameter is a prepared statement placeholder, e.g. `$1`.
	// Index is zero based.
	Parameter struct {
		Index int
		Type  DataType
	}

	// Field references the column at position Index of the outputs of the
	// owning relation.
	Field struct {
		Relation RelationID
		Index    int
		Name     string
		Type     DataType
	}

	// Function is the application of a scalar function, an operator or an
	// aggregation to its arguments.
	Function struct {
		Name       string
		Args       []Symbol
		Kind       FunctionKind
		ReturnType DataType
	}

	// MatchPredicate is a full text search over one or more fields.
	MatchPredicate struct {
		Fields    []*Field
		Query     Symbol
		MatchType string
	}
)

// FunctionKind tells scalar functions and aggregations apart.
type FunctionKind int8

const (
	ScalarFunction FunctionKind = iota
	AggregateFunction
)

func (*Literal) iSymbol()        {}
func (*Parameter) iSymbol()      {}
func (*Field) iSymbol()          {}
func (*Function) iSymbol()       {}
func (*MatchPredicate) iSymbol() {}

// ValueType implements the Symbol interface.
func (l *Literal) ValueType() DataType { return l.Type }

// ValueType implements the Symbol interface.
func (p *Parameter) ValueType() DataType { return p.Type }

// ValueType implements the Symbol interface.
func (f *Field) ValueType() DataType { return f.Type }

// ValueType implements the Symbol interface.
func (f *Function) ValueType() DataType { return f.ReturnType }

// ValueType implements the Symbol interface.
func (*MatchPredicate) ValueType() DataType { return BooleanType }

// IsNull returns true if the literal is the SQL NULL.
func (l *Literal) IsNull() bool {
	return l.Value == nil
}

// IsAggregate returns true if the function is an aggregation.
func (f *Function) IsAggregate() bool {
	return f.Kind == AggregateFunction
}

// NewLiteral creates a literal and infers its type. Integers are normalized
// to int64 and floats to float64. Unsupported values panic.
func NewLiteral(v any) *Literal {
	switch v := v.(type) {
	case nil:
		return &Literal{Type: UndefinedType}
	case bool:
		return &Literal{Value: v, Type: BooleanType}
	case int:
		return &Literal{Value: int64(v), Type: LongType}
	case int32:
		return &Literal{Value: int64(v), Type: IntegerType}
	case int64:
		return &Literal{Value: v, Type: LongType}
	case float32:
		return &Literal{Value: float64(v), Type: DoubleType}
	case float64:
		return &Literal{Value: v, Type: DoubleType}
	case string:
		return &Literal{Value: v, Type: StringType}
	}
	panic("symbol: unsupported literal type")
}

// Null returns a new NULL literal.
func Null() *Literal {
	return &Literal{Type: UndefinedType}
}

// Bool returns a new boolean literal.
func Bool(b bool) *Literal {
	return &Literal{Value: b, Type: BooleanType}
}

// Int returns a new bigint literal.
func Int(i int64) *Literal {
	return &Literal{Value: i, Type: LongType}
}

// NewField creates a reference to the column at position idx of rel.
func NewField(rel RelationID, idx int, name string, typ DataType) *Field {
	return &Field{Relation: rel, Index: idx, Name: name, Type: typ}
}

// NewMatch creates a MATCH predicate over the given fields.
func NewMatch(query Symbol, matchType string, fields ...*Field) *MatchPredicate {
	return &MatchPredicate{Fields: fields, Query: query, MatchType: matchType}
}
