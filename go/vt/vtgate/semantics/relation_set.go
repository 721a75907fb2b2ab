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

	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vtgate/semantics/bitset"
)

// RelationID is the per query identifier of a relation.
type RelationID = symbol.RelationID

// RelationSet is how a set of relations is expressed.
// Each relation's bit is its RelationID, assigned in registration order.
type RelationSet bitset.Bitset

// Format formats the RelationSet.
func (rs RelationSet) Format(f fmt.State, _ rune) {
	first := true
	fmt.Fprintf(f, "RelationSet{")
	bitset.Bitset(rs).ForEach(func(id int) {
		if first {
			fmt.Fprintf(f, "%d", id)
			first = false
		} else {
			fmt.Fprintf(f, ",%d", id)
		}
	})
	fmt.Fprintf(f, "}")
}

// IsOverlapping returns true if at least one relation exists in both sets
func (rs RelationSet) IsOverlapping(other RelationSet) bool {
	return bitset.Bitset(rs).Overlaps(bitset.Bitset(other))
}

// IsSolvedBy returns true if all of `rs` is contained in `other`
func (rs RelationSet) IsSolvedBy(other RelationSet) bool {
	return bitset.Bitset(rs).IsContainedBy(bitset.Bitset(other))
}

// Contains returns true if the relation is part of the set
func (rs RelationSet) Contains(id RelationID) bool {
	return bitset.Bitset(rs).Contains(int(id))
}

// NumberOfRelations returns the number of bits set
func (rs RelationSet) NumberOfRelations() int {
	return bitset.Bitset(rs).Popcount()
}

// IsEmpty returns true if there are no relations in the set
func (rs RelationSet) IsEmpty() bool {
	return len(rs) == 0
}

// Single returns the only relation of the set. ok is false if the set is
// empty or holds more than one relation.
func (rs RelationSet) Single() (id RelationID, ok bool) {
	bit := bitset.Bitset(rs).SingleBit()
	return RelationID(bit), bit >= 0
}

// ForEach calls the given callback with the ids of all relations in the set, in id order
func (rs RelationSet) ForEach(callback func(RelationID)) {
	bitset.Bitset(rs).ForEach(func(bit int) {
		callback(RelationID(bit))
	})
}

// IDs returns the ids of all relations in the set, in id order
func (rs RelationSet) IDs() (result []RelationID) {
	rs.ForEach(func(id RelationID) {
		result = append(result, id)
	})
	return
}

// Merge creates a RelationSet that contains both inputs
func (rs RelationSet) Merge(other RelationSet) RelationSet {
	return RelationSet(bitset.Bitset(rs).Or(bitset.Bitset(other)))
}

// Remove returns a new RelationSet with all the relations in `other` removed
func (rs RelationSet) Remove(other RelationSet) RelationSet {
	return RelationSet(bitset.Bitset(rs).AndNot(bitset.Bitset(other)))
}

// KeepOnly removes all the relations not in `other` from this RelationSet
func (rs RelationSet) KeepOnly(other RelationSet) RelationSet {
	return RelationSet(bitset.Bitset(rs).And(bitset.Bitset(other)))
}

// WithRelation returns a new RelationSet that contains this relation too
func (rs RelationSet) WithRelation(id RelationID) RelationSet {
	return RelationSet(bitset.Bitset(rs).Set(int(id)))
}

// SingleRelationSet creates a RelationSet that contains only the given relation
func SingleRelationSet(id RelationID) RelationSet {
	return RelationSet(bitset.Single(int(id)))
}

// EmptyRelationSet creates an empty RelationSet
func EmptyRelationSet() RelationSet {
	return ""
}

// RelationSetFromIDs returns a RelationSet for all the ids passed in argument.
func RelationSetFromIDs(ids ...RelationID) RelationSet {
	bits := make([]int, len(ids))
	for i, id := range ids {
		bits[i] = int(id)
	}
	return RelationSet(bitset.Build(bits...))
}
