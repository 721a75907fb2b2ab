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

package symbol

// Names of the functions the planner knows about.
const (
	AndName = "and"
	OrName  = "or"
	NotName = "not"

	EqName  = "="
	NeqName = "<>"
	LtName  = "<"
	LteName = "<="
	GtName  = ">"
	GteName = ">="

	PlusName  = "+"
	MinusName = "-"
	MulName   = "*"
	DivName   = "/"
)

// logicalOperators are the functions whose arguments are evaluated in a
// purely boolean context.
var logicalOperators = map[string]bool{
	AndName: true,
	OrName:  true,
	NotName: true,
}

// infixOperators are rendered as `left op right`.
var infixOperators = map[string]bool{
	AndName:   true,
	OrName:    true,
	EqName:    true,
	NeqName:   true,
	LtName:    true,
	LteName:   true,
	GtName:    true,
	GteName:   true,
	PlusName:  true,
	MinusName: true,
	MulName:   true,
	DivName:   true,
}

// IsLogicalOperator returns true for AND, OR and NOT.
func IsLogicalOperator(name string) bool {
	return logicalOperators[name]
}

// Call creates a scalar function application.
func Call(name string, returnType DataType, args ...Symbol) *Function {
	return &Function{Name: name, Args: args, Kind: ScalarFunction, ReturnType: returnType}
}

// Aggregate creates an aggregation, e.g. `count(x)`.
func Aggregate(name string, returnType DataType, args ...Symbol) *Function {
	return &Function{Name: name, Args: args, Kind: AggregateFunction, ReturnType: returnType}
}

// And creates `left AND right`.
func And(left, right Symbol) *Function {
	return Call(AndName, BooleanType, left, right)
}

// Or creates `left OR right`.
func Or(left, right Symbol) *Function {
	return Call(OrName, BooleanType, left, right)
}

// Not creates `NOT arg`.
func Not(arg Symbol) *Function {
	return Call(NotName, BooleanType, arg)
}

// Compare creates a comparison using one of the comparison operator names.
func Compare(op string, left, right Symbol) *Function {
	return Call(op, BooleanType, left, right)
}

// Eq creates `left = right`.
func Eq(left, right Symbol) *Function {
	return Compare(EqName, left, right)
}

// Gt creates `left > right`.
func Gt(left, right Symbol) *Function {
	return Compare(GtName, left, right)
}

// Plus creates `left + right` typed after the left argument.
func Plus(left, right Symbol) *Function {
	return Call(PlusName, left.ValueType(), left, right)
}

// IsAnd returns the function if sym is an AND application.
func IsAnd(sym Symbol) (*Function, bool) {
	f, ok := sym.(*Function)
	if !ok || f.Name != AndName {
		return nil, false
	}
	return f, true
}

// SplitAnd appends the conjuncts of node to conjuncts. Nested and n-ary ANDs
// are flattened; anything that is not an AND is a conjunct of its own.
func SplitAnd(conjuncts []Symbol, node Symbol) []Symbol {
	if node == nil {
		return conjuncts
	}
	if and, ok := IsAnd(node); ok {
		for _, arg := range and.Args {
			conjuncts = SplitAnd(conjuncts, arg)
		}
		return conjuncts
	}
	return append(conjuncts, node)
}

// AndSymbols ands together the given symbols from left to right, keeping the
// order of the input. nil entries are skipped. It returns nil when there is
// nothing to combine and the only symbol itself when there is just one.
func AndSymbols(syms ...Symbol) Symbol {
	var result Symbol
	for _, sym := range syms {
		if sym == nil {
			continue
		}
		if result == nil {
			result = sym
			continue
		}
		result = And(result, sym)
	}
	return result
}

// ContainsAggregation returns true if sym contains an aggregate function
// anywhere in its tree.
func ContainsAggregation(sym Symbol) bool {
	found := false
	Walk(func(node Symbol) bool {
		if f, ok := node.(*Function); ok && f.IsAggregate() {
			found = true
		}
		return !found
	}, sym)
	return found
}
