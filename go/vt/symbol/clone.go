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

// DeepCopy returns a copy of sym that shares no nodes with the original.
func DeepCopy(sym Symbol) Symbol {
	switch sym := sym.(type) {
	case nil:
		return nil
	case *Literal:
		return &Literal{Value: sym.Value, Type: sym.Type}
	case *Parameter:
		return &Parameter{Index: sym.Index, Type: sym.Type}
	case *Field:
		return cloneField(sym)
	case *Function:
		var args []Symbol
		if sym.Args != nil {
			args = make([]Symbol, len(sym.Args))
			for i, arg := range sym.Args {
				args[i] = DeepCopy(arg)
			}
		}
		return &Function{Name: sym.Name, Args: args, Kind: sym.Kind, ReturnType: sym.ReturnType}
	case *MatchPredicate:
		var fields []*Field
		if sym.Fields != nil {
			fields = make([]*Field, len(sym.Fields))
			for i, f := range sym.Fields {
				fields[i] = cloneField(f)
			}
		}
		return &MatchPredicate{Fields: fields, Query: DeepCopy(sym.Query), MatchType: sym.MatchType}
	}
	panic("symbol: unknown node type")
}

func cloneField(f *Field) *Field {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

// DeepCopyAll deep copies every symbol of the slice into a new slice.
func DeepCopyAll(syms []Symbol) []Symbol {
	if syms == nil {
		return nil
	}
	res := make([]Symbol, len(syms))
	for i, s := range syms {
		res[i] = DeepCopy(s)
	}
	return res
}
