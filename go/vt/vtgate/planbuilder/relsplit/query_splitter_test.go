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

package relsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vtgate/semantics"
)

func TestSplitQuery(t *testing.T) {
	f := newFixture(t)
	r1, r2 := f.r1.Set(), f.r2.Set()

	p1 := symbol.Eq(f.a, symbol.Int(1))
	p2 := symbol.Eq(f.b, symbol.Int(2))
	p3 := symbol.Gt(f.a, symbol.Int(5))
	p4 := symbol.Eq(symbol.Int(1), symbol.Int(1))
	p5 := symbol.Gt(symbol.Plus(f.a, f.b), symbol.Int(3))

	sq := SplitQuery(symbol.AndSymbols(p1, p2, p3, p4, p5))
	require.Equal(t, 4, sq.Len())
	assert.Equal(t, []semantics.RelationSet{r1, r2, semantics.EmptyRelationSet(), r1.Merge(r2)}, sq.Relations())

	q, ok := sq.Get(r1)
	require.True(t, ok)
	assert.Equal(t, "(a = 1) AND (a > 5)", symbol.String(q))

	q, ok = sq.Get(r2)
	require.True(t, ok)
	assert.Same(t, p2, q, "single conjuncts are not copied")

	q, ok = sq.Get(semantics.EmptyRelationSet())
	require.True(t, ok)
	assert.Same(t, p4, q)

	q, ok = sq.Remove(r2)
	require.True(t, ok)
	assert.Same(t, p2, q)
	_, ok = sq.Remove(r2)
	assert.False(t, ok)
	_, ok = sq.Get(r2)
	assert.False(t, ok)

	assert.Equal(t, 3, sq.Len())
	assert.Equal(t, []string{"(a = 1) AND (a > 5)", "1 = 1", "(a + b) > 3"}, symbol.Strings(sq.Remaining()))
}

func TestSplitQueryNestedAnd(t *testing.T) {
	f := newFixture(t)
	p1 := symbol.Eq(f.a, symbol.Int(1))
	p2 := symbol.Eq(f.b, symbol.Int(2))
	p3 := symbol.Eq(f.txt1, symbol.NewLiteral("x"))
	nary := &symbol.Function{Name: symbol.AndName, Args: []symbol.Symbol{p1, symbol.And(p2, p3)}, ReturnType: symbol.BooleanType}

	sq := SplitQuery(nary)
	require.Equal(t, 2, sq.Len())
	q, _ := sq.Get(f.r1.Set())
	assert.Equal(t, "(a = 1) AND (txt = 'x')", symbol.String(q))
}

func TestSplitQueryOr(t *testing.T) {
	f := newFixture(t)
	or := symbol.Or(symbol.Eq(f.a, symbol.Int(1)), symbol.Eq(f.b, symbol.Int(2)))

	sq := SplitQuery(or)
	require.Equal(t, 1, sq.Len())
	q, ok := sq.Get(f.r1.Set().Merge(f.r2.Set()))
	require.True(t, ok)
	assert.Same(t, or, q)
}
