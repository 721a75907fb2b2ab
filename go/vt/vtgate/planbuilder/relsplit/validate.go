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
	"vitess.io/relsplit/go/vt/symbol"
	"vitess.io/relsplit/go/vt/vtgate/semantics"
)

// validateMatch rejects MATCH predicates over fields of more than one
// relation. They can only be evaluated on each relation separately.
func validateMatch(cond symbol.Symbol) error {
	if cond == nil {
		return nil
	}
	if rs, found := semantics.MatchSpansRelations(cond); found {
		return semantics.NewError(&semantics.UnsupportedCrossRelationMatchError{Relations: rs})
	}
	return nil
}
