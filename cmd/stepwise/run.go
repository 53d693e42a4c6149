// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/algoviz/stepwise"
	"github.com/algoviz/stepwise/steps"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var engine string

var runConfig struct {
	path         string
	tree         bool
	maxTreeDepth int
}

var runCmd = &cobra.Command{
	Use:   "run [values...]",
	Short: "print the steps of a demonstration run",
	Long: `
Inserts the given values one by one into an empty tree and prints every step
of the run. Without values, the default demonstration input of the engine is
used. A YAML scenario file can provide the engine and the values; flags and
arguments override it.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var sc scenario
		if runConfig.path != "" {
			var err error
			if sc, err = loadScenario(runConfig.path); err != nil {
				return err
			}
		}
		if sc.Engine == "" || cmd.Flags().Changed("engine") {
			sc.Engine = engine
		}
		if cmd.Flags().Changed("tree") {
			sc.Tree = runConfig.tree
		}
		if cmd.Flags().Changed("max-depth") {
			sc.MaxTreeDepth = runConfig.maxTreeDepth
		}
		if len(args) > 0 {
			values, err := parseValues(args)
			if err != nil {
				return err
			}
			sc.Values = values
		}
		return runScenario(cmd.OutOrStdout(), sc)
	},
}

func runScenario(w io.Writer, sc scenario) error {
	k, err := stepwise.ParseKind(sc.Engine)
	if err != nil {
		return err
	}
	values := sc.Values
	if len(values) == 0 {
		values = stepwise.DefaultValues(k)
	}
	var opts []steps.Option
	if sc.MaxTreeDepth > 0 {
		opts = append(opts, steps.MaxTreeDepth(sc.MaxTreeDepth))
	}
	seq, err := stepwise.Build(k, values, opts...)
	if err != nil {
		return err
	}

	var summary stepwise.Summary
	if sc.Tree {
		for step := range seq.All() {
			summary.Add(step)
			fmt.Fprintf(w, "%s\n%s\n", step, step.Tree)
		}
	} else {
		tbl := tablewriter.NewWriter(w)
		tbl.SetHeader([]string{"#", "Kind", "Nodes", "Description"})
		tbl.SetAutoWrapText(false)
		tbl.SetAlignment(tablewriter.ALIGN_LEFT)
		for step := range seq.All() {
			summary.Add(step)
			tbl.Append([]string{
				fmt.Sprintf("%d", step.Index),
				step.Kind.String(),
				formatValues(step.HighlightedValues()),
				step.Description,
			})
		}
		tbl.Render()
	}

	root, _ := seq.Result()
	fmt.Fprintf(w, "%s: %s\n", stepwise.Info(k).Name, summary)
	if !sc.Tree {
		fmt.Fprint(w, steps.Snapshot(root))
	}
	return nil
}

func formatValues(vals []int) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = fmt.Sprint(v)
	}
	return strings.Join(s, ",")
}
