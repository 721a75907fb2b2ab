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

package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(bs Bitset) []int {
	var res []int
	bs.ForEach(func(i int) {
		res = append(res, i)
	})
	return res
}

func TestBuild(t *testing.T) {
	assert.Equal(t, Bitset(""), Build())
	assert.Equal(t, []int{0, 3, 9, 40}, collect(Build(40, 3, 9, 0, 3)))
	assert.Equal(t, Build(5), Single(5))
	assert.Equal(t, 4, Build(40, 3, 9, 0).Popcount())
}

func TestCanonical(t *testing.T) {
	a := Build(1, 20)
	b := Build(1, 20).AndNot(Single(20))
	assert.Equal(t, Single(1), b)
	assert.Equal(t, Bitset(""), a.AndNot(a))
	assert.Equal(t, Bitset(""), Single(20).And(Single(1)))

	m := map[Bitset]int{Single(1): 1}
	m[b]++
	assert.Len(t, m, 1)
	assert.Equal(t, 2, m[Single(1)])
}

func TestSetOps(t *testing.T) {
	a := Build(0, 2, 17)
	b := Build(2, 3)

	assert.Equal(t, Build(0, 2, 3, 17), a.Or(b))
	assert.Equal(t, Build(0, 2, 3, 17), b.Or(a))
	assert.Equal(t, Single(2), a.And(b))
	assert.Equal(t, Build(0, 17), a.AndNot(b))
	assert.Equal(t, Single(3), b.AndNot(a))
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(Single(3)))
	assert.True(t, Single(17).IsContainedBy(a))
	assert.False(t, b.IsContainedBy(a))
	assert.True(t, Bitset("").IsContainedBy(a))

	// inputs are not modified
	assert.Equal(t, []int{0, 2, 17}, collect(a))
	assert.Equal(t, []int{2, 3}, collect(b))
}

func TestSetContains(t *testing.T) {
	var bs Bitset
	bs = bs.Set(9)
	bs = bs.Set(1)
	assert.Equal(t, bs, bs.Set(9))
	assert.True(t, bs.Contains(9))
	assert.True(t, bs.Contains(1))
	assert.False(t, bs.Contains(2))
	assert.False(t, bs.Contains(100))
	assert.False(t, bs.Contains(-1))
}

func TestSingleBit(t *testing.T) {
	assert.Equal(t, -1, Bitset("").SingleBit())
	assert.Equal(t, 0, Single(0).SingleBit())
	assert.Equal(t, 33, Single(33).SingleBit())
	assert.Equal(t, -1, Build(1, 33).SingleBit())
	assert.Equal(t, -1, Build(1, 2).SingleBit())
}
