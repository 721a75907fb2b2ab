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


package utils

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// MustMatchFn returns a diff function for a test file. Unexported fields
// are compared; the fields named in ignoredFields, written as ".name", are
// skipped.
//
//	var mustMatch = utils.MustMatchFn(".hasOutputs")
//	mustMatch(t, want, got, "spec was modified")
func MustMatchFn(ignoredFields ...string) func(t testing.TB, want, got any, errMsg ...string) {
	diffOpts := []cmp.Option{
		cmp.Exporter(func(reflect.Type) bool {
			return true
		}),
		cmpIgnoreFields(ignoredFields...),
	}
	return func(t testing.TB, want, got any, errMsg ...string) {
		t.Helper()
		if diff := cmp.Diff(want, got, diffOpts...); diff != "" {
			t.Fatalf("%v: (-want +got)\n%v", errMsg, diff)
		}
	}
}

// MustMatch is MustMatchFn without ignored fields.
var MustMatch = MustMatchFn()

// cmpIgnoreFields is cmpopts.IgnoreFields for unexported fields.
func cmpIgnoreFields(pathNames ...string) cmp.Option {
	skip := make(map[string]bool, len(pathNames))
	for _, name := range pathNames {
		skip[name] = true
	}
	return cmp.FilterPath(func(path cmp.Path) bool {
		for _, ps := range path {
			if skip[ps.String()] {
				return true
			}
		}
		return false
	}, cmp.Ignore())
}
