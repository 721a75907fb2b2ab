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

// Visit is called for every node of a tree during Walk. Returning false
// skips the children of the node.
type Visit func(node Symbol) (kontinue bool)

// Walk visits the given trees in pre-order.
func Walk(visit Visit, nodes ...Symbol) {
	for _, node := range nodes {
		walk(visit, node)
	}
}

func walk(visit Visit, node Symbol) {
	if node == nil || !visit(node) {
		return
	}
	switch node := node.(type) {
	case *Function:
		for _, arg := range node.Args {
			walk(visit, arg)
		}
	case *MatchPredicate:
		for _, f := range node.Fields {
			walk(visit, f)
		}
		walk(visit, node.Query)
	case *Literal, *Parameter, *Field:
	}
}

// VisitFields calls visit for every field reference in the given trees, in
// the order they appear.
func VisitFields(visit func(*Field), nodes ...Symbol) {
	Walk(func(node Symbol) bool {
		if f, ok := node.(*Field); ok {
			visit(f)
		}
		return true
	}, nodes...)
}

// Fields returns all field references of the given trees, in the order they
// appear. Duplicates are kept.
func Fields(nodes ...Symbol) []*Field {
	var fields []*Field
	VisitFields(func(f *Field) {
		fields = append(fields, f)
	}, nodes...)
	return fields
}
