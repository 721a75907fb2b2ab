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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t1a = NewField(0, 0, "a", LongType)
	t1x = NewField(0, 1, "x", StringType)
	t2b = NewField(1, 0, "b", LongType)
)

func TestString(t *testing.T) {
	tcases := []struct {
		sym Symbol
		exp string
	}{
		{sym: NewLiteral(nil), exp: "NULL"},
		{sym: NewLiteral(1), exp: "1"},
		{sym: NewLiteral(1.5), exp: "1.5"},
		{sym: NewLiteral("it's"), exp: "'it''s'"},
		{sym: Bool(true), exp: "true"},
		{sym: &Parameter{Index: 0}, exp: "$1"},
		{sym: NewField(3, 2, "", LongType), exp: "_3.2"},
		{sym: Eq(t1a, Int(1)), exp: "a = 1"},
		{sym: And(Eq(t1a, Int(1)), Eq(t2b, Int(2))), exp: "(a = 1) AND (b = 2)"},
		{sym: Gt(Plus(t1a, t2b), Int(3)), exp: "(a + b) > 3"},
		{sym: Not(And(t1a, Null())), exp: "NOT (a AND NULL)"},
		{sym: Call("if", LongType, Null(), t1a, t2b), exp: "if(NULL, a, b)"},
		{sym: Aggregate("count", LongType, t1x), exp: "count(x)"},
		{sym: NewMatch(NewLiteral("q"), "best_fields", t1x), exp: "MATCH((x), 'q') USING best_fields"},
		{sym: NewMatch(NewLiteral("q"), "", t1x, t2b), exp: "MATCH((x, b), 'q')"},
	}
	for _, tcase := range tcases {
		t.Run(tcase.exp, func(t *testing.T) {
			assert.Equal(t, tcase.exp, String(tcase.sym))
		})
	}
}

func TestSplitAnd(t *testing.T) {
	p1 := Eq(t1a, Int(1))
	p2 := Eq(t2b, Int(2))
	p3 := Gt(Plus(t1a, t2b), Int(3))
	p4 := Or(p1, p2)

	tcases := []struct {
		name string
		in   Symbol
		exp  []Symbol
	}{
		{name: "nil", in: nil, exp: nil},
		{name: "single", in: p1, exp: []Symbol{p1}},
		{name: "left deep", in: And(And(p1, p2), p3), exp: []Symbol{p1, p2, p3}},
		{name: "right deep", in: And(p1, And(p2, p3)), exp: []Symbol{p1, p2, p3}},
		{name: "n-ary", in: &Function{Name: AndName, Args: []Symbol{p1, p2, p3}}, exp: []Symbol{p1, p2, p3}},
		{name: "or is a single conjunct", in: And(p4, p3), exp: []Symbol{p4, p3}},
	}
	for _, tcase := range tcases {
		t.Run(tcase.name, func(t *testing.T) {
			got := SplitAnd(nil, tcase.in)
			require.Len(t, got, len(tcase.exp))
			for i := range got {
				assert.Same(t, tcase.exp[i], got[i])
			}
		})
	}
}

func TestAndSymbols(t *testing.T) {
	p1 := Eq(t1a, Int(1))
	p2 := Eq(t2b, Int(2))
	p3 := Eq(t1x, NewLiteral("x"))

	assert.Nil(t, AndSymbols())
	assert.Nil(t, AndSymbols(nil, nil))
	assert.Same(t, p1, AndSymbols(nil, p1))
	assert.Equal(t, And(And(p1, p2), p3), AndSymbols(p1, p2, p3))
}

func TestDeepCopy(t *testing.T) {
	shared := Eq(t1a, Int(1))
	orig := And(shared, NewMatch(&Parameter{Index: 1, Type: StringType}, "phrase", t1x, t2b))

	cp := DeepCopy(orig)
	if diff := cmp.Diff(orig, cp); diff != "" {
		t.Fatalf("copy differs (-orig +copy):\n%s", diff)
	}
	assert.True(t, Equals(orig, cp))

	cpFn := cp.(*Function)
	assert.NotSame(t, orig, cpFn)
	assert.NotSame(t, shared, cpFn.Args[0])
	assert.NotSame(t, t1a, cpFn.Args[0].(*Function).Args[0])
	assert.NotSame(t, t1x, cpFn.Args[1].(*MatchPredicate).Fields[0])

	assert.Nil(t, DeepCopy(nil))
	assert.Nil(t, DeepCopyAll(nil))
}

func TestEquals(t *testing.T) {
	renamed := NewField(0, 0, "alias", LongType)
	tcases := []struct {
		name string
		a, b Symbol
		exp  bool
	}{
		{name: "nils", exp: true},
		{name: "nil and literal", a: Int(1), exp: false},
		{name: "literals", a: Int(1), b: NewLiteral(1), exp: true},
		{name: "literal types", a: Int(1), b: NewLiteral(int32(1)), exp: false},
		{name: "null literals", a: Null(), b: NewLiteral(nil), exp: true},
		{name: "fields by position", a: t1a, b: renamed, exp: true},
		{name: "fields of different relations", a: t1a, b: t2b, exp: false},
		{name: "functions", a: Eq(t1a, Int(1)), b: Eq(renamed, Int(1)), exp: true},
		{name: "function names", a: Eq(t1a, Int(1)), b: Gt(t1a, Int(1)), exp: false},
		{name: "function kinds", a: Call("max", LongType, t1a), b: Aggregate("max", LongType, t1a), exp: false},
		{name: "match", a: NewMatch(NewLiteral("q"), "", t1x), b: NewMatch(NewLiteral("q"), "", t1x), exp: true},
		{name: "match query", a: NewMatch(NewLiteral("q"), "", t1x), b: NewMatch(NewLiteral("r"), "", t1x), exp: false},
		{name: "parameters", a: &Parameter{Index: 1}, b: &Parameter{Index: 1, Type: LongType}, exp: true},
	}
	for _, tcase := range tcases {
		t.Run(tcase.name, func(t *testing.T) {
			assert.Equal(t, tcase.exp, Equals(tcase.a, tcase.b))
			assert.Equal(t, tcase.exp, Equals(tcase.b, tcase.a))
		})
	}
}

func TestVisitFields(t *testing.T) {
	sym := And(Eq(t1a, Int(1)), NewMatch(NewLiteral("q"), "", t1x, t2b))
	fields := Fields(sym)
	require.Len(t, fields, 3)
	assert.Same(t, t1a, fields[0])
	assert.Same(t, t1x, fields[1])
	assert.Same(t, t2b, fields[2])

	assert.Empty(t, Fields(Int(1), nil))
}

func TestContainsAggregation(t *testing.T) {
	assert.False(t, ContainsAggregation(Gt(t1a, Int(1))))
	assert.True(t, ContainsAggregation(Gt(Aggregate("count", LongType, t1a), Int(1))))
	assert.True(t, ContainsAggregation(Call("abs", LongType, Aggregate("sum", LongType, t1a))))
	assert.False(t, ContainsAggregation(nil))
}

func TestDataType(t *testing.T) {
	for _, typ := range []DataType{UndefinedType, BooleanType, IntegerType, LongType, DoubleType, StringType, ObjectType} {
		got, ok := TypeByName(typ.String())
		require.True(t, ok, typ.String())
		assert.Equal(t, typ, got)
	}
	_, ok := TypeByName("geo_shape")
	assert.False(t, ok)
	assert.Equal(t, "unknown", DataType(42).String())
	assert.True(t, LongType.IsNumeric())
	assert.False(t, StringType.IsNumeric())
}
