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


package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc/codes"

	"vitess.io/relsplit/go/vt/log"
	"vitess.io/relsplit/go/vt/vterrors"
	"vitess.io/relsplit/go/vt/vtexplain"
	"vitess.io/relsplit/go/vt/vtgate/planbuilder"
)

const (
	outputText  = "text"
	outputJSON  = "json"
	outputTable = "table"
)

type options struct {
	configFile   string
	concurrency  int
	output       string
	check        bool
	printMetrics bool
}

// New returns the vtexplain root command.
func New() *cobra.Command {
	opts := &options{}
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "vtexplain [flags] <fixture|dir>...",
		Short: "vtexplain shows how the planner splits a join into per relation queries.",
		Long: `vtexplain plans the given YAML fixtures and prints, for every fixture, what is
evaluated by each relation and what is left to the coordinator merging them.
Directories are expanded to the *.yaml files they contain.`,
		Example: `vtexplain --output json go/vt/vtexplain/testdata
vtexplain --check --planner-limit-pushdown=false join.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Init(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, opts, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.configFile, "config", "", "YAML file with planner settings. Flags take precedence.")
	fs.IntVar(&opts.concurrency, "concurrency", 4, "Number of fixtures planned in parallel.")
	fs.StringVar(&opts.output, "output", outputText, "Output format: text, json or table.")
	fs.BoolVar(&opts.check, "check", false, "Compare the plans against the expectations of the fixtures and fail on mismatches.")
	fs.BoolVar(&opts.printMetrics, "print-metrics", false, "Print the planner counters after planning.")
	planbuilder.RegisterFlags(fs)
	log.RegisterFlags(fs)
	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, opts *options, args []string) error {
	switch opts.output {
	case outputText, outputJSON, outputTable:
	default:
		return vterrors.Errorf(codes.InvalidArgument, "unknown output format %q", opts.output)
	}
	cfg, err := loadConfig(cmd, v, opts.configFile)
	if err != nil {
		return err
	}
	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	planner := planbuilder.NewPlanner(cfg, planbuilder.NewMetrics(reg))
	log.InfoS("planning fixtures", "count", len(paths), "concurrency", opts.concurrency)
	explains, err := vtexplain.Run(cmd.Context(), paths, planner, opts.concurrency)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := write(out, opts.output, explains); err != nil {
		return err
	}
	if opts.printMetrics {
		if err := writeMetrics(out, reg); err != nil {
			return err
		}
	}
	if opts.check {
		return vtexplain.CheckAll(explains)
	}
	return nil
}

// loadConfig merges the config file, RELSPLIT_ environment variables and
// the flags, in increasing order of precedence.
func loadConfig(cmd *cobra.Command, v *viper.Viper, configFile string) (planbuilder.Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return planbuilder.Config{}, vterrors.Wrapf(err, "reading config %s", configFile)
		}
	}
	v.SetEnvPrefix("relsplit")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return planbuilder.Config{}, err
	}
	return planbuilder.ConfigFromViper(v), nil
}

func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.yaml"))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, vterrors.Errorf(codes.NotFound, "no fixtures in %s", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func write(w io.Writer, format string, explains []*vtexplain.Explain) error {
	var (
		out string
		err error
	)
	switch format {
	case outputJSON:
		out, err = vtexplain.ExplainsAsJSON(explains)
		out += "\n"
	case outputTable:
		out, err = vtexplain.ExplainsAsTable(explains)
	default:
		out = vtexplain.ExplainsAsText(explains)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// writeMetrics prints the gathered counters in the text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
