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

import (
	"strconv"
	"strings"
)

// String renders a symbol in a SQL like notation. Binary operators are
// written infix; operands that are themselves infix operators are put in
// parentheses so the output is unambiguous.
func String(sym Symbol) string {
	var buf strings.Builder
	format(&buf, sym)
	return buf.String()
}

// Strings renders every symbol of the slice.
func Strings(syms []Symbol) []string {
	res := make([]string, 0, len(syms))
	for _, s := range syms {
		res = append(res, String(s))
	}
	return res
}

func format(buf *strings.Builder, sym Symbol) {
	switch sym := sym.(type) {
	case nil:
		buf.WriteString("<nil>")
	case *Literal:
		formatLiteral(buf, sym)
	case *Parameter:
		buf.WriteByte('$')
		buf.WriteString(strconv.Itoa(sym.Index + 1))
	case *Field:
		if sym.Name != "" {
			buf.WriteString(sym.Name)
			return
		}
		buf.WriteString("_" + strconv.Itoa(int(sym.Relation)) + "." + strconv.Itoa(sym.Index))
	case *Function:
		formatFunction(buf, sym)
	case *MatchPredicate:
		buf.WriteString("MATCH((")
		for i, f := range sym.Fields {
			if i > 0 {
				buf.WriteString(", ")
			}
			format(buf, f)
		}
		buf.WriteString("), ")
		format(buf, sym.Query)
		if sym.MatchType != "" {
			buf.WriteString(") USING " + sym.MatchType)
			return
		}
		buf.WriteByte(')')
	}
}

func formatLiteral(buf *strings.Builder, l *Literal) {
	switch v := l.Value.(type) {
	case nil:
		buf.WriteString("NULL")
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case int64:
		buf.WriteString(strconv.FormatInt(v, 10))
	case float64:
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		buf.WriteByte('\'')
		buf.WriteString(strings.ReplaceAll(v, "'", "''"))
		buf.WriteByte('\'')
	default:
		buf.WriteString("<unknown>")
	}
}

func formatFunction(buf *strings.Builder, f *Function) {
	switch {
	case f.Name == NotName && len(f.Args) == 1:
		buf.WriteString("NOT ")
		formatOperand(buf, f.Args[0])
	case infixOperators[f.Name] && len(f.Args) >= 2:
		op := f.Name
		if IsLogicalOperator(op) {
			op = strings.ToUpper(op)
		}
		for i, arg := range f.Args {
			if i > 0 {
				buf.WriteString(" " + op + " ")
			}
			formatOperand(buf, arg)
		}
	default:
		buf.WriteString(f.Name)
		buf.WriteByte('(')
		for i, arg := range f.Args {
			if i > 0 {
				buf.WriteString(", ")
			}
			format(buf, arg)
		}
		buf.WriteByte(')')
	}
}

func formatOperand(buf *strings.Builder, sym Symbol) {
	if f, ok := sym.(*Function); ok && (infixOperators[f.Name] || f.Name == NotName) {
		buf.WriteByte('(')
		format(buf, f)
		buf.WriteByte(')')
		return
	}
	format(buf, sym)
}
