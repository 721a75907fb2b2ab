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
)

func TestIsOuterRelation(t *testing.T) {
	tcases := []struct {
		typ         JoinType
		left, right bool
	}{
		{typ: InnerJoin},
		{typ: CrossJoin},
		{typ: LeftJoin, right: true},
		{typ: RightJoin, left: true},
		{typ: FullJoin, left: true, right: true},
	}
	for _, tcase := range tcases {
		t.Run(tcase.typ.String(), func(t *testing.T) {
			pairs := []JoinPair{{Left: 0, Right: 1, Type: tcase.typ}}
			assert.Equal(t, tcase.left, IsOuterRelation(0, pairs))
			assert.Equal(t, tcase.right, IsOuterRelation(1, pairs))
			assert.False(t, IsOuterRelation(2, pairs))
			assert.Equal(t, tcase.left || tcase.right, tcase.typ.IsOuter())
			assert.Equal(t, tcase.typ.IsOuter(), hasOuterJoin(pairs))
		})
	}
}

func TestParseJoinType(t *testing.T) {
	for _, name := range []string{"inner", "LEFT", " right ", "Full", "cross"} {
		_, ok := ParseJoinType(name)
		assert.True(t, ok, name)
	}
	jt, ok := ParseJoinType("")
	assert.True(t, ok)
	assert.Equal(t, InnerJoin, jt)

	jt, _ = ParseJoinType("left")
	assert.Equal(t, LeftJoin, jt)

	_, ok = ParseJoinType("semi")
	assert.False(t, ok)
	assert.Equal(t, "unknown", JoinType(42).String())
}
