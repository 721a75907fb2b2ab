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

// DataType is the resolved type of a Symbol.
type DataType int8

const (
	UndefinedType DataType = iota
	BooleanType
	IntegerType
	LongType
	DoubleType
	StringType
	ObjectType
)

var typeNames = [...]string{
	UndefinedType: "undefined",
	BooleanType:   "boolean",
	IntegerType:   "integer",
	LongType:      "bigint",
	DoubleType:    "double",
	StringType:    "text",
	ObjectType:    "object",
}

func (t DataType) String() string {
	if int(t) < len(typeNames) && t >= 0 {
		return typeNames[t]
	}
	return "unknown"
}

// IsNumeric returns true for integral and floating point types.
func (t DataType) IsNumeric() bool {
	switch t {
	case IntegerType, LongType, DoubleType:
		return true
	}
	return false
}

// TypeByName returns the DataType for the given name and whether it is known.
func TypeByName(name string) (DataType, bool) {
	for t, n := range typeNames {
		if n == name {
			return DataType(t), true
		}
	}
	return UndefinedType, false
}
