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
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	// Just here to make outputs more readable
	None = EmptyRelationSet()
	R1   = SingleRelationSet(0)
	R2   = SingleRelationSet(1)
	R3   = SingleRelationSet(2)
)

func TestRelationSet(t *testing.T) {
	r12 := R1.Merge(R2)
	assert.Equal(t, RelationSetFromIDs(0, 1), r12)
	assert.Equal(t, RelationSetFromIDs(1, 0), r12)
	assert.Equal(t, 2, r12.NumberOfRelations())
	assert.True(t, r12.Contains(1))
	assert.False(t, r12.Contains(2))
	assert.True(t, R1.IsSolvedBy(r12))
	assert.False(t, r12.IsSolvedBy(R1))
	assert.True(t, r12.IsOverlapping(R2.Merge(R3)))
	assert.False(t, r12.IsOverlapping(R3))
	assert.Equal(t, R2, r12.Remove(R1))
	assert.Equal(t, R2, r12.KeepOnly(R2.Merge(R3)))
	assert.Equal(t, RelationSetFromIDs(0, 1, 2), r12.WithRelation(2))
	assert.Equal(t, []RelationID{0, 1}, r12.IDs())
	assert.True(t, None.IsEmpty())
	assert.Equal(t, None, r12.Remove(r12))
}

func TestRelationSetSingle(t *testing.T) {
	id, ok := R3.Single()
	assert.True(t, ok)
	assert.EqualValues(t, 2, id)

	_, ok = None.Single()
	assert.False(t, ok)
	_, ok = R1.Merge(R2).Single()
	assert.False(t, ok)
}

func TestRelationSetFormat(t *testing.T) {
	assert.Equal(t, "RelationSet{}", fmt.Sprintf("%v", None))
	assert.Equal(t, "RelationSet{0,2,40}", fmt.Sprintf("%v", RelationSetFromIDs(40, 2, 0)))
}

func TestRelationSetAsMapKey(t *testing.T) {
	m := map[RelationSet]string{}
	m[R1.Merge(R2)] = "first"
	m[R2.Merge(R1)] = "second"
	m[R1.WithRelation(9).Remove(SingleRelationSet(9))] = "third"
	assert.Len(t, m, 2)
	assert.Equal(t, "second", m[RelationSetFromIDs(0, 1)])
	assert.Equal(t, "third", m[R1])
}
