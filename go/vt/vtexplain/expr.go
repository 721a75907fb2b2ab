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
	"bytes"
	"encoding/json"
	"strings"

	"google.golang.org/grpc/codes"

	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vterrors"
	"vitess.io/relsplit/go/vt/vtgate/semantics"
)

// Expr is the fixture notation of an analyzed expression. Exactly one of
// Col, Lit, Param, Fn, Agg and Match must be set.
//
// A plain string is a shorthand for a column reference (`r1.a`), any other
// scalar a shorthand for a literal:
//
//	where: {fn: and, args: [{fn: "=", args: [r1.a, 1]}, {lit: foo}]}
type Expr struct {
	Col   string          `json:"col,omitempty"`
	Lit   json.RawMessage `json:"lit,omitempty"`
	Param *int            `json:"param,omitempty"`
	Fn    string          `json:"fn,omitempty"`
	Agg   string          `json:"agg,omitempty"`
	Args  []Expr          `json:"args,omitempty"`
	Match []string        `json:"match,omitempty"`
	Query *Expr           `json:"query,omitempty"`
	Using string          `json:"using,omitempty"`
	// Type overrides the inferred type of literals, parameters and
	// functions.
	Type string `json:"type,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Expr) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return vterrors.New(codes.InvalidArgument, "empty expression")
	}
	switch data[0] {
	case '{':
		type plain Expr
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		var p plain
		if err := dec.Decode(&p); err != nil {
			return err
		}
		*e = Expr(p)
	case '"':
		var col string
		if err := json.Unmarshal(data, &col); err != nil {
			return err
		}
		*e = Expr{Col: col}
	default:
		*e = Expr{Lit: append(json.RawMessage(nil), data...)}
	}
	return nil
}

func (e *Expr) kinds() int {
	n := 0
	for _, set := range []bool{e.Col != "", e.Lit != nil, e.Param != nil, e.Fn != "", e.Agg != "", e.Match != nil} {
		if set {
			n++
		}
	}
	return n
}

// resolver binds the column references of expressions to the relations of
// a registry.
type resolver struct {
	reg *semantics.Registry
}

func (r resolver) exprs(es []Expr) ([]symbol.Symbol, error) {
	if len(es) == 0 {
		return nil, nil
	}
	syms := make([]symbol.Symbol, 0, len(es))
	for i := range es {
		sym, err := r.expr(&es[i])
		if err != nil {
			return nil, err
		}
		syms = append(syms, sym)
	}
	return syms, nil
}

func (r resolver) optional(e *Expr) (symbol.Symbol, error) {
	if e == nil {
		return nil, nil
	}
	return r.expr(e)
}

func (r resolver) expr(e *Expr) (symbol.Symbol, error) {
	if n := e.kinds(); n != 1 {
		return nil, vterrors.Errorf(codes.InvalidArgument, "expression must have exactly one of col, lit, param, fn, agg or match, got %d", n)
	}
	typ, err := dataType(e.Type)
	if err != nil {
		return nil, err
	}

	switch {
	case e.Col != "":
		f, err := r.column(e.Col)
		if err != nil {
			return nil, err
		}
		return f, nil
	case e.Lit != nil:
		lit, err := literal(e.Lit)
		if err != nil {
			return nil, err
		}
		if e.Type != "" {
			lit.Type = typ
		}
		return lit, nil
	case e.Param != nil:
		if *e.Param < 1 {
			return nil, vterrors.Errorf(codes.InvalidArgument, "parameters are numbered from 1, got %d", *e.Param)
		}
		return &symbol.Parameter{Index: *e.Param - 1, Type: typ}, nil
	case e.Match != nil:
		return r.match(e)
	}

	args, err := r.exprs(e.Args)
	if err != nil {
		return nil, err
	}
	if e.Agg != "" {
		if e.Type == "" {
			typ = aggregateType(e.Agg, args)
		}
		return symbol.Aggregate(e.Agg, typ, args...), nil
	}
	if e.Type == "" {
		typ = functionType(e.Fn, args)
	}
	return symbol.Call(e.Fn, typ, args...), nil
}

func (r resolver) column(ref string) (*symbol.Field, error) {
	dot := strings.LastIndexByte(ref, '.')
	if dot <= 0 || dot == len(ref)-1 {
		return nil, vterrors.VT03019(ref + " (columns are written as relation.column)")
	}
	rel, err := r.reg.Lookup(ref[:dot])
	if err != nil {
		return nil, err
	}
	return rel.Column(ref[dot+1:])
}

func (r resolver) match(e *Expr) (symbol.Symbol, error) {
	if e.Query == nil {
		return nil, vterrors.New(codes.InvalidArgument, "match needs a query")
	}
	query, err := r.expr(e.Query)
	if err != nil {
		return nil, err
	}
	fields := make([]*symbol.Field, 0, len(e.Match))
	for _, ref := range e.Match {
		f, err := r.column(ref)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return symbol.NewMatch(query, e.Using, fields...), nil
}

func literal(raw json.RawMessage) (*symbol.Literal, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case nil:
		return symbol.Null(), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return symbol.Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return symbol.NewLiteral(f), nil
	case bool, string:
		return symbol.NewLiteral(v), nil
	}
	return nil, vterrors.Errorf(codes.InvalidArgument, "unsupported literal %s", string(raw))
}

func dataType(name string) (symbol.DataType, error) {
	if name == "" {
		return symbol.UndefinedType, nil
	}
	typ, ok := symbol.TypeByName(name)
	if !ok {
		return symbol.UndefinedType, vterrors.Errorf(codes.InvalidArgument, "unknown type %q", name)
	}
	return typ, nil
}

var predicates = map[string]bool{
	symbol.EqName:  true,
	symbol.NeqName: true,
	symbol.LtName:  true,
	symbol.LteName: true,
	symbol.GtName:  true,
	symbol.GteName: true,
	"is_null":      true,
	"like":         true,
}

func functionType(name string, args []symbol.Symbol) symbol.DataType {
	if predicates[name] || symbol.IsLogicalOperator(name) {
		return symbol.BooleanType
	}
	if len(args) > 0 {
		return args[0].ValueType()
	}
	return symbol.UndefinedType
}

func aggregateType(name string, args []symbol.Symbol) symbol.DataType {
	if name == "count" || len(args) == 0 {
		return symbol.LongType
	}
	return args[0].ValueType()
}
