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

// Equals compares two trees structurally. Fields are equal when they point
// to the same position of the same relation, regardless of name and type.
func Equals(a, b Symbol) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Literal:
		b, ok := b.(*Literal)
		return ok && a.Type == b.Type && a.Value == b.Value
	case *Parameter:
		b, ok := b.(*Parameter)
		return ok && a.Index == b.Index
	case *Field:
		b, ok := b.(*Field)
		return ok && a.Key() == b.Key()
	case *Function:
		b, ok := b.(*Function)
		if !ok || a.Name != b.Name || a.Kind != b.Kind || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equals(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case *MatchPredicate:
		b, ok := b.(*MatchPredicate)
		if !ok || a.MatchType != b.MatchType || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Key() != b.Fields[i].Key() {
				return false
			}
		}
		return Equals(a.Query, b.Query)
	}
	return false
}

// FieldKey is the identity of a field reference: the owning relation and
// the position in the relation outputs.
type FieldKey struct {
	Relation RelationID
	Index    int
}

// Key returns the identity of the field.
func (f *Field) Key() FieldKey {
	return FieldKey{Relation: f.Relation, Index: f.Index}
}
