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

package planbuilder

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/xlab/treeprint"

	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vtgate/planbuilder/relsplit"
	"vitess.io/relsplit/go/vt/vtgate/queryspec"
	"vitess.io/relsplit/go/vt/vtgate/semantics"
)

// PushdownKind is a part of the top level query that was moved to a
// relation.
type PushdownKind int

const (
	FilterPushdown PushdownKind = iota
	HavingPushdown
	OrderByPushdown
	LimitPushdown
	NumPushdowns
)

// Must exactly match order of pushdown constants.
var pushdownName = []string{
	"filter",
	"having",
	"order_by",
	"limit",
}

func (k PushdownKind) String() string {
	if k < 0 || k >= NumPushdowns {
		return ""
	}
	return pushdownName[k]
}

func PushdownByName(s string) (k PushdownKind, ok bool) {
	for i, v := range pushdownName {
		if v == s {
			return PushdownKind(i), true
		}
	}
	return NumPushdowns, false
}

func (k PushdownKind) MarshalJSON() ([]byte, error) {
	return ([]byte)(fmt.Sprintf("\"%s\"", k.String())), nil
}

// RelationPlan is the work a single relation does.
type RelationPlan struct {
	Relation *semantics.Relation
	Spec     *queryspec.QuerySpec
}

// Pushdowns lists what the relation took over from the top level query.
func (rp RelationPlan) Pushdowns() []PushdownKind {
	var kinds []PushdownKind
	if rp.Spec.Where.HasQuery() || rp.Spec.Where.NoMatch() {
		kinds = append(kinds, FilterPushdown)
	}
	if rp.Spec.Having != nil {
		kinds = append(kinds, HavingPushdown)
	}
	if rp.Spec.OrderBy != nil {
		kinds = append(kinds, OrderByPushdown)
	}
	if rp.Spec.Limit != nil {
		kinds = append(kinds, LimitPushdown)
	}
	return kinds
}

// Plan is the result of splitting a query: what every relation computes
// and what the coordinator still has to do after joining them.
type Plan struct {
	Top            *queryspec.QuerySpec
	Relations      []RelationPlan
	Joins          []relsplit.JoinPair
	ReorderAllowed bool
}

// Relation returns the plan of the named relation.
func (p *Plan) Relation(name string) (RelationPlan, bool) {
	for _, rp := range p.Relations {
		if rp.Relation.Name == name {
			return rp, true
		}
	}
	return RelationPlan{}, false
}

func (p *Plan) relationName(id semantics.RelationID) string {
	for _, rp := range p.Relations {
		if rp.Relation.ID() == id {
			return rp.Relation.String()
		}
	}
	return fmt.Sprintf("#%d", id)
}

// String renders the plan as a tree with the coordinator at its root.
func (p *Plan) String() string {
	root := "Merge " + p.Top.String()
	if !p.ReorderAllowed {
		root += " (fixed join order)"
	}
	tree := treeprint.NewWithRoot(root)
	for _, jp := range p.Joins {
		join := fmt.Sprintf("Join %s %s, %s", jp.Type, p.relationName(jp.Left), p.relationName(jp.Right))
		if jp.Condition != nil {
			join += " ON " + symbol.String(jp.Condition)
		}
		tree.AddNode(join)
	}
	for _, rp := range p.Relations {
		branch := tree.AddBranch(fmt.Sprintf("%s %s", rp.Relation.Kind, rp.Relation))
		branch.AddNode(rp.Spec.String())
		if kinds := rp.Pushdowns(); len(kinds) > 0 {
			names := make([]string, len(kinds))
			for i, k := range kinds {
				names[i] = k.String()
			}
			branch.AddNode("pushed: " + strings.Join(names, ", "))
		}
	}
	return tree.String()
}

// Digest fingerprints the rendered plan. Plans that render the same have
// the same digest.
func (p *Plan) Digest() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(p.String()))
}

type relationDescription struct {
	Name      string         `json:"name"`
	Kind      string         `json:"kind"`
	Spec      string         `json:"spec"`
	Pushdowns []PushdownKind `json:"pushdowns,omitempty"`
}

type planDescription struct {
	Top            string                `json:"top"`
	ReorderAllowed bool                  `json:"reorder_allowed"`
	Relations      []relationDescription `json:"relations"`
	Digest         string                `json:"digest"`
}

// MarshalJSON describes the plan with every spec rendered as text.
func (p *Plan) MarshalJSON() ([]byte, error) {
	descr := planDescription{Top: p.Top.String(), ReorderAllowed: p.ReorderAllowed, Digest: p.Digest()}
	for _, rp := range p.Relations {
		descr.Relations = append(descr.Relations, relationDescription{
			Name:      rp.Relation.String(),
			Kind:      rp.Relation.Kind.String(),
			Spec:      rp.Spec.String(),
			Pushdowns: rp.Pushdowns(),
		})
	}
	return json.Marshal(descr)
}
