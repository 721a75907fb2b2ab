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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"vitess.io/relsplit/go/vt/vtgate/planbuilder/relsplit"
	"vitess.io/relsplit/go/vt/vtgate/queryspec"
)

// Flag and config keys.
const (
	maxLimitKey        = "planner-max-limit"
	orderByPushdownKey = "planner-order-by-pushdown"
	limitPushdownKey   = "planner-limit-pushdown"
	eliminateNullsKey  = "planner-eliminate-nulls"
)

// Config controls what the planner pushes down to the relations.
type Config struct {
	// MaxLimit is the largest limit + offset handed to a relation.
	MaxLimit        int64
	OrderByPushdown bool
	LimitPushdown   bool
	// EliminateNulls rewrites NULL operands of logical operators in the
	// filters pushed down to relations.
	EliminateNulls bool
}

// DefaultConfig pushes down everything it can.
func DefaultConfig() Config {
	return Config{
		MaxLimit:        queryspec.DefaultMaxLimit,
		OrderByPushdown: true,
		LimitPushdown:   true,
		EliminateNulls:  true,
	}
}

// RegisterFlags installs the planner flags on the given FlagSet.
func RegisterFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()
	fs.Int64(maxLimitKey, def.MaxLimit, "Largest limit plus offset pushed down to a relation. Queries exceeding it are rejected.")
	fs.Bool(orderByPushdownKey, def.OrderByPushdown, "Move an ORDER BY on the first relation of a join into that relation.")
	fs.Bool(limitPushdownKey, def.LimitPushdown, "Push LIMIT and OFFSET down to relations that are not filtered after the join.")
	fs.Bool(eliminateNullsKey, def.EliminateNulls, "Replace NULL operands of AND, OR and NOT in pushed down filters with booleans.")
}

// ConfigFromViper reads the planner configuration. Keys that are neither
// set nor bound to a flag keep their default.
func ConfigFromViper(v *viper.Viper) Config {
	def := DefaultConfig()
	v.SetDefault(maxLimitKey, def.MaxLimit)
	v.SetDefault(orderByPushdownKey, def.OrderByPushdown)
	v.SetDefault(limitPushdownKey, def.LimitPushdown)
	v.SetDefault(eliminateNullsKey, def.EliminateNulls)
	return Config{
		MaxLimit:        v.GetInt64(maxLimitKey),
		OrderByPushdown: v.GetBool(orderByPushdownKey),
		LimitPushdown:   v.GetBool(limitPushdownKey),
		EliminateNulls:  v.GetBool(eliminateNullsKey),
	}
}

func (c Config) options() relsplit.Options {
	return relsplit.Options{
		MaxLimit:               c.MaxLimit,
		DisableOrderByPushdown: !c.OrderByPushdown,
		DisableLimitPushdown:   !c.LimitPushdown,
	}
}
