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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what the planner does. A nil *Metrics records nothing.
type Metrics struct {
	splits    *prometheus.CounterVec
	pushdowns *prometheus.CounterVec
}

// NewMetrics creates the planner metrics and registers them with reg, if
// reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		splits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relsplit",
			Name:      "splits_total",
			Help:      "Number of queries split into per relation specifications, by result.",
		}, []string{"result"}),
		pushdowns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relsplit",
			Name:      "pushdowns_total",
			Help:      "Number of query parts moved into a relation, by kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.splits, m.pushdowns)
	}
	return m
}

func (m *Metrics) recordSplit(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.splits.WithLabelValues(result).Inc()
}

func (m *Metrics) recordPlan(p *Plan) {
	if m == nil {
		return
	}
	for _, rp := range p.Relations {
		for _, k := range rp.Pushdowns() {
			m.pushdowns.WithLabelValues(k.String()).Inc()
		}
	}
}
