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
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitess.io/relsplit/go/test/utils"
	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vtgate/planbuilder"
)

func testPlanner() *planbuilder.Planner {
	return planbuilder.NewPlanner(planbuilder.DefaultConfig(), nil)
}

func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	explains, err := Run(utils.LeakCheckContext(t), paths, testPlanner(), 4)
	require.NoError(t, err)
	require.Len(t, explains, len(paths))

	for i, explain := range explains {
		t.Run(explain.Name, func(t *testing.T) {
			assert.Equal(t, paths[i], explain.Path)
			require.NotNil(t, explain.expect, "fixture without expectation")
			require.NoError(t, explain.Check())
		})
	}
	require.NoError(t, CheckAll(explains))
}

const shorthand = `
tables:
  - name: r1
    columns: [{name: a, type: bigint}, {name: s, type: text}]
query:
  outputs: [r1.a, {fn: "+", args: [r1.a, 1.5]}, {param: 1, type: text}, {agg: count, args: [r1.s]}]
  where: {fn: and, args: [{fn: "=", args: [r1.s, {lit: "it's"}]}, true, {lit: null}]}
  order_by:
    - {expr: r1.s, desc: true, nulls_first: true}
`

func TestParseShorthand(t *testing.T) {
	f, err := Parse([]byte(shorthand))
	require.NoError(t, err)
	q, err := f.Build()
	require.NoError(t, err)

	require.Len(t, q.Relations, 1)
	assert.Equal(t, []string{"a", "a + 1.5", "$1", "count(s)"}, symbol.Strings(q.Top.Outputs()))
	assert.Equal(t, "(s = 'it''s') AND true AND NULL", symbol.String(q.Top.Where.Query()))
	assert.Equal(t, "s DESC NULLS FIRST", q.Top.OrderBy.String())

	outputs := q.Top.Outputs()
	assert.Equal(t, symbol.LongType, outputs[1].ValueType())
	assert.Equal(t, symbol.StringType, outputs[2].ValueType())
	assert.Equal(t, symbol.LongType, outputs[3].ValueType())
	assert.True(t, q.Top.HasAggregates())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("tables: []\nquery: {outputs: []}\nbogus: 1\n"))
	require.Error(t, err)

	_, err = Parse([]byte("tables: []\nquery: {outputs: [{col: r1.a, bogus: 1}]}\n"))
	require.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	const tables = `
tables:
  - name: r1
    columns: [{name: a}]
`
	tcases := []struct {
		name    string
		fixture string
		err     string
	}{{
		name:    "unknown column",
		fixture: tables + "query: {outputs: [r1.x]}",
		err:     "Unknown column 'x' in 'r1'",
	}, {
		name:    "unqualified column",
		fixture: tables + "query: {outputs: [a]}",
		err:     "VT03019: column a (columns are written as relation.column) not found",
	}, {
		name:    "unknown relation",
		fixture: tables + "query: {outputs: [r9.a]}",
		err:     "Unknown table 'r9'",
	}, {
		name:    "unknown type",
		fixture: "tables: [{name: r1, columns: [{name: a, type: blob}]}]\nquery: {outputs: []}",
		err:     `unknown type "blob"`,
	}, {
		name:    "unknown join type",
		fixture: tables + "joins: [{left: r1, right: r1, type: sideways}]\nquery: {outputs: []}",
		err:     `unknown join type "sideways"`,
	}, {
		name:    "ambiguous expression",
		fixture: tables + "query: {outputs: [{col: r1.a, fn: abs}]}",
		err:     "exactly one of col, lit, param, fn, agg or match, got 2",
	}, {
		name:    "parameters start at one",
		fixture: tables + "query: {outputs: [{param: 0}]}",
		err:     "parameters are numbered from 1",
	}, {
		name:    "derived without relations",
		fixture: tables + "derived: [{name: d, query: {outputs: [r1.a]}}]\nquery: {outputs: []}",
		err:     "relations have to be listed when derived tables are used",
	}, {
		name:    "derived column count",
		fixture: tables + "derived: [{name: d, columns: [x, y], query: {outputs: [r1.a]}}]\nrelations: [d]\nquery: {outputs: []}",
		err:     "derived table 'd' names 2 columns but its query has 1 outputs",
	}}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Parse([]byte(tc.fixture))
			require.NoError(t, err)
			_, err = f.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.err)
		})
	}
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsName(t *testing.T) {
	path := writeFixture(t, "my_join.yaml", "tables: []\nquery: {outputs: []}\n")
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "my_join", f.Name)
}

func TestRunLoadErrors(t *testing.T) {
	good := writeFixture(t, "good.yaml", "tables: [{name: r1, columns: [{name: a}]}]\nquery: {outputs: [r1.a]}\n")
	bad := writeFixture(t, "bad.yaml", "tables: [{name: r1, columns: [{name: a}]}]\nquery: {outputs: [r1.b]}\n")

	_, err := Run(context.Background(), []string{good, bad, "testdata/does-not-exist.yaml"}, testPlanner(), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown column 'b' in 'r1'")
	assert.Contains(t, err.Error(), "does-not-exist.yaml")
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, []string{"testdata/filters.yaml"}, testPlanner(), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckMismatch(t *testing.T) {
	path := writeFixture(t, "mismatch.yaml", `
tables:
  - name: r1
    columns: [{name: a}]
query:
  outputs: [r1.a]
expect:
  top: SELECT nothing
`)
	explains, err := Run(context.Background(), []string{path}, testPlanner(), 1)
	require.NoError(t, err)
	err = explains[0].Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan mismatch")
	assert.Contains(t, err.Error(), "SELECT nothing")
	require.Error(t, CheckAll(explains))
}

func TestCheckExpectedErrorMissing(t *testing.T) {
	path := writeFixture(t, "no_error.yaml", `
tables:
  - name: r1
    columns: [{name: a}]
query:
  outputs: [r1.a]
expect:
  error: VT03030
`)
	explains, err := Run(context.Background(), []string{path}, testPlanner(), 1)
	require.NoError(t, err)
	require.ErrorContains(t, explains[0].Check(), "but got a plan")
}

func TestExplainsAsText(t *testing.T) {
	explains, err := Run(context.Background(), []string{"testdata/filters.yaml", "testdata/limit_overflow.yaml"}, testPlanner(), 2)
	require.NoError(t, err)

	text := ExplainsAsText(explains)
	assert.Equal(t, 3, strings.Count(text, separator))
	assert.Contains(t, text, "filters\n\n")
	assert.Contains(t, text, "SELECT a WHERE a > 1")
	assert.Contains(t, text, "limit_overflow\n\nERROR: VT03030")
}

func TestExplainsAsJSON(t *testing.T) {
	explains, err := Run(context.Background(), []string{"testdata/limit_overflow.yaml", "testdata/filters.yaml"}, testPlanner(), 2)
	require.NoError(t, err)

	out, err := ExplainsAsJSON(explains)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "filters", decoded[0]["name"])
	assert.NotNil(t, decoded[0]["plan"])
	assert.NotContains(t, decoded[0], "error")
	assert.Equal(t, "limit_overflow", decoded[1]["name"])
	assert.Contains(t, decoded[1]["error"], "VT03030")
	assert.NotContains(t, decoded[1], "plan")
}

func TestExplainsAsTable(t *testing.T) {
	explains, err := Run(context.Background(), []string{"testdata/filters.yaml", "testdata/limit_overflow.yaml"}, testPlanner(), 2)
	require.NoError(t, err)

	out, err := ExplainsAsTable(explains)
	require.NoError(t, err)
	assert.Contains(t, out, "filters")
	assert.Contains(t, out, "merge")
	assert.Contains(t, out, "r1#0")
	assert.Contains(t, out, "r2#1")
	assert.Contains(t, out, "limit_overflow")
}
