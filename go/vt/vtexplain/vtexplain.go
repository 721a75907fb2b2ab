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


// Package vtexplain plans fixtures describing joins and prints the plans,
// showing what is pushed down to every relation and what is left to the
// coordinator.
package vtexplain

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"

	"vitess.io/relsplit/go/vt/log"
	"vitess.io/relsplit/go/vt/vterrors"
	"vitess.io/relsplit/go/vt/vtgate/planbuilder"
)

// Explain is the outcome of planning a single fixture. Err holds the
// planning error; fixtures that cannot be loaded fail Run instead.
type Explain struct {
	Path string
	Name string
	Plan *planbuilder.Plan
	Err  error

	expect *Expectation
}

// Run plans the fixtures at the given paths using up to concurrency
// goroutines. The explains are returned in the order of paths.
func Run(ctx context.Context, paths []string, planner *planbuilder.Planner, concurrency int) ([]*Explain, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	explains := make([]*Explain, len(paths))

	var (
		mu       sync.Mutex
		loadErrs []error
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			explain, err := explainFile(path, planner)
			if err != nil {
				mu.Lock()
				loadErrs = append(loadErrs, err)
				mu.Unlock()
				return nil
			}
			explains[i] = explain
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := vterrors.Aggregate(loadErrs); err != nil {
		return nil, err
	}
	return explains, nil
}

func explainFile(path string, planner *planbuilder.Planner) (*Explain, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	q, err := f.Build()
	if err != nil {
		return nil, vterrors.Wrapf(err, "%s", path)
	}
	explain := &Explain{Path: path, Name: f.Name, expect: f.Expect}
	explain.Plan, explain.Err = planner.Plan(q.Top, q.Relations, q.Joins)
	if explain.Err != nil {
		log.InfoS("planning failed", "fixture", f.Name, "error", explain.Err)
	}
	return explain, nil
}

// Check compares the plan against the expectation of the fixture. It
// returns nil for fixtures without one.
func (e *Explain) Check() error {
	want := e.expect
	if want == nil {
		return nil
	}
	if want.Error != "" {
		if e.Err == nil {
			return vterrors.Errorf(codes.FailedPrecondition, "%s: expected error %q but got a plan", e.Name, want.Error)
		}
		if !strings.Contains(e.Err.Error(), want.Error) {
			return vterrors.Errorf(codes.FailedPrecondition, "%s: expected error %q, got %q", e.Name, want.Error, e.Err.Error())
		}
		return nil
	}
	if e.Err != nil {
		return vterrors.Wrapf(e.Err, "%s", e.Name)
	}

	got := Expectation{}
	if want.ReorderAllowed != nil {
		got.ReorderAllowed = &e.Plan.ReorderAllowed
	}
	if want.Top != "" {
		got.Top = e.Plan.Top.String()
	}
	if want.Relations != nil {
		got.Relations = map[string]string{}
		for _, rp := range e.Plan.Relations {
			if _, ok := want.Relations[rp.Relation.Name]; ok {
				got.Relations[rp.Relation.Name] = rp.Spec.String()
			}
		}
	}
	if diff := cmp.Diff(*want, got); diff != "" {
		return vterrors.Errorf(codes.FailedPrecondition, "%s: plan mismatch (-want +got):\n%s", e.Name, diff)
	}
	return nil
}

// CheckAll checks every explain and aggregates the failures.
func CheckAll(explains []*Explain) error {
	var errs []error
	for _, e := range explains {
		if err := e.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	return vterrors.Aggregate(errs)
}

const separator = "----------------------------------------------------------------------\n"

// ExplainsAsText returns a human readable rendering of the explains.
func ExplainsAsText(explains []*Explain) string {
	var b strings.Builder
	for _, e := range explains {
		b.WriteString(separator)
		b.WriteString(e.Name)
		b.WriteString("\n\n")
		if e.Err != nil {
			b.WriteString("ERROR: " + e.Err.Error() + "\n")
		} else {
			b.WriteString(e.Plan.String())
		}
		b.WriteString("\n")
	}
	b.WriteString(separator)
	return b.String()
}

// ExplainsAsTable summarizes the explains with one row for the coordinator
// and one per relation of every fixture.
func ExplainsAsTable(explains []*Explain) (string, error) {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.Header("fixture", "relation", "pushed", "spec")
	for _, e := range explains {
		if e.Err != nil {
			if err := table.Append([]string{e.Name, "", "", "ERROR: " + e.Err.Error()}); err != nil {
				return "", err
			}
			continue
		}
		if err := table.Append([]string{e.Name, "merge", "", e.Plan.Top.String()}); err != nil {
			return "", err
		}
		for _, rp := range e.Plan.Relations {
			kinds := rp.Pushdowns()
			pushed := make([]string, len(kinds))
			for i, k := range kinds {
				pushed[i] = k.String()
			}
			row := []string{e.Name, rp.Relation.String(), strings.Join(pushed, ","), rp.Spec.String()}
			if err := table.Append(row); err != nil {
				return "", err
			}
		}
	}
	if err := table.Render(); err != nil {
		return "", err
	}
	return b.String(), nil
}

type explainJSON struct {
	Name  string            `json:"name"`
	Path  string            `json:"path"`
	Plan  *planbuilder.Plan `json:"plan,omitempty"`
	Error string            `json:"error,omitempty"`
}

// ExplainsAsJSON returns the explains as indented JSON, sorted by name.
func ExplainsAsJSON(explains []*Explain) (string, error) {
	out := make([]explainJSON, 0, len(explains))
	for _, e := range explains {
		ej := explainJSON{Name: e.Name, Path: e.Path, Plan: e.Plan}
		if e.Err != nil {
			ej.Error = e.Err.Error()
		}
		out = append(out, ej)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	data, err := json.MarshalIndent(out, "", "\t")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
