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

package where

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vitess.io/relsplit/go/vt/symbol"
)

func TestEliminateNulls(t *testing.T) {
	x := symbol.NewField(0, 0, "x", symbol.BooleanType)
	y := symbol.NewField(0, 1, "y", symbol.BooleanType)
	a := symbol.NewField(0, 2, "a", symbol.LongType)

	tcases := []struct {
		in  symbol.Symbol
		exp string
	}{
		{in: symbol.And(x, symbol.Null()), exp: "x AND false"},
		{in: symbol.Or(symbol.Null(), x), exp: "false OR x"},
		{in: symbol.Not(symbol.And(x, symbol.Null())), exp: "NOT (x AND true)"},
		{in: symbol.Not(symbol.Not(symbol.Null())), exp: "NOT (NOT false)"},
		{in: symbol.And(symbol.Not(symbol.Null()), symbol.Null()), exp: "(NOT true) AND false"},
		{in: symbol.And(symbol.And(x, y), symbol.Null()), exp: "(x AND y) AND false"},
		{in: symbol.And(symbol.Or(x, symbol.Null()), symbol.Null()), exp: "(x OR false) AND false"},
		{in: symbol.Call("if", symbol.LongType, symbol.Null(), a, a), exp: "if(NULL, a, a)"},
		{in: symbol.And(x, symbol.Call("if", symbol.BooleanType, symbol.Null(), x, y)), exp: "x AND if(NULL, x, y)"},
		{in: symbol.And(x, symbol.Eq(a, symbol.Null())), exp: "x AND (a = NULL)"},
		{in: symbol.Null(), exp: "NULL"},
		{in: x, exp: "x"},
	}
	for _, tcase := range tcases {
		t.Run(tcase.exp, func(t *testing.T) {
			assert.Equal(t, tcase.exp, symbol.String(EliminateNulls(tcase.in)))
		})
	}
}

func TestEliminateNullsKeepsUnchangedTrees(t *testing.T) {
	x := symbol.NewField(0, 0, "x", symbol.BooleanType)
	eq := symbol.Eq(x, symbol.Null())
	unchanged := symbol.And(x, eq)
	assert.Same(t, unchanged, EliminateNulls(unchanged))

	in := symbol.And(eq, symbol.Null())
	out := EliminateNulls(in).(*symbol.Function)
	assert.NotSame(t, in, out)
	assert.Same(t, eq, out.Args[0], "untouched arguments are shared")
	assert.True(t, in.Args[1].(*symbol.Literal).IsNull(), "the input is not modified")
	assert.Nil(t, EliminateNulls(nil))
}
