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
	"strings"

	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vtgate/semantics"
)

// JoinType is the kind of join between two relations.
type JoinType int8

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

var joinTypeNames = [...]string{
	InnerJoin: "inner",
	LeftJoin:  "left",
	RightJoin: "right",
	FullJoin:  "full",
	CrossJoin: "cross",
}

func (jt JoinType) String() string {
	if int(jt) < len(joinTypeNames) && jt >= 0 {
		return joinTypeNames[jt]
	}
	return "unknown"
}

// IsOuter returns true for joins that can produce NULL rows for one of
// their sides.
func (jt JoinType) IsOuter() bool {
	switch jt {
	case LeftJoin, RightJoin, FullJoin:
		return true
	}
	return false
}

// ParseJoinType returns the JoinType for names like "left" or "LEFT".
// An empty name is an inner join.
func ParseJoinType(name string) (JoinType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return InnerJoin, true
	}
	for jt, n := range joinTypeNames {
		if n == name {
			return JoinType(jt), true
		}
	}
	return InnerJoin, false
}

// JoinPair is a join between two relations with an optional condition.
type JoinPair struct {
	Left, Right semantics.RelationID
	Type        JoinType
	Condition   symbol.Symbol
}

// nullable returns the relations of the pair that can be NULL extended.
func (jp JoinPair) nullable() semantics.RelationSet {
	switch jp.Type {
	case LeftJoin:
		return semantics.SingleRelationSet(jp.Right)
	case RightJoin:
		return semantics.SingleRelationSet(jp.Left)
	case FullJoin:
		return semantics.RelationSetFromIDs(jp.Left, jp.Right)
	}
	return semantics.EmptyRelationSet()
}

// IsOuterRelation returns true if the relation is on the NULL producing side
// of any of the outer joins.
func IsOuterRelation(id semantics.RelationID, pairs []JoinPair) bool {
	for _, jp := range pairs {
		if jp.nullable().Contains(id) {
			return true
		}
	}
	return false
}

func hasOuterJoin(pairs []JoinPair) bool {
	for _, jp := range pairs {
		if jp.Type.IsOuter() {
			return true
		}
	}
	return false
}
