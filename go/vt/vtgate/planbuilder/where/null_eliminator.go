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

// Package where contains rewrites of filter expressions.
package where

import (
	"vitess.io/relsplit/go/vt/symbol"
)

// nullContext is passed by value; every subtree sees the context of its
// parent only.
type nullContext struct {
	insideLogicalOperator bool
	nullReplacement       bool
}

// EliminateNulls replaces NULL literals that are arguments of AND, OR and
// NOT with a boolean. Within a filter a NULL operand of a logical operator
// behaves like FALSE, except below an odd number of NOTs where it behaves
// like TRUE. `NULL AND a = 1` becomes `false AND a = 1`, which later
// normalizes to a no-match.
//
// Other functions are not looked into since they can treat NULL in their
// own way, e.g. `if(NULL, a, b)` or `a = NULL`. Subtrees without a
// replacement are returned as is.
func EliminateNulls(sym symbol.Symbol) symbol.Symbol {
	return eliminate(sym, nullContext{})
}

func eliminate(sym symbol.Symbol, ctx nullContext) symbol.Symbol {
	switch sym := sym.(type) {
	case *symbol.Literal:
		if ctx.insideLogicalOperator && sym.IsNull() {
			return symbol.Bool(ctx.nullReplacement)
		}
		return sym
	case *symbol.Function:
		if !symbol.IsLogicalOperator(sym.Name) {
			return sym
		}
		inner := nullContext{insideLogicalOperator: true, nullReplacement: ctx.nullReplacement}
		if sym.Name == symbol.NotName {
			inner.nullReplacement = !inner.nullReplacement
		}
		return rewriteArgs(sym, inner)
	case *symbol.Field, *symbol.Parameter, *symbol.MatchPredicate, nil:
		return sym
	}
	return sym
}

func rewriteArgs(f *symbol.Function, ctx nullContext) symbol.Symbol {
	var args []symbol.Symbol
	for i, arg := range f.Args {
		rewritten := eliminate(arg, ctx)
		if args == nil {
			if rewritten == arg {
				continue
			}
			args = make([]symbol.Symbol, len(f.Args))
			copy(args, f.Args[:i])
		}
		args[i] = rewritten
	}
	if args == nil {
		return f
	}
	return &symbol.Function{Name: f.Name, Args: args, Kind: f.Kind, ReturnType: f.ReturnType}
}
