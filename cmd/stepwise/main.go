// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// The stepwise command replays the steps of the tree engines in a terminal.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stepwise [command] (flags)",
	Short: "step-by-step balanced tree demonstrations",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		runCmd,
		benchCmd,
		infoCmd,
	)

	for _, cmd := range []*cobra.Command{runCmd, infoCmd} {
		cmd.Flags().StringVarP(
			&engine, "engine", "e", "avl", "tree engine (avl, rbtree, bst)")
	}

	runCmd.Flags().StringVar(
		&runConfig.path, "config", "", "YAML scenario file")
	runCmd.Flags().BoolVar(
		&runConfig.tree, "tree", false, "print the tree after every step")
	runCmd.Flags().IntVar(
		&runConfig.maxTreeDepth, "max-depth", 0,
		"truncate printed trees below this depth (0 means unlimited)")

	benchCmd.Flags().IntVarP(
		&benchConfig.n, "num", "n", 1000, "number of insertions per engine")
	benchCmd.Flags().Uint64Var(
		&benchConfig.seed, "seed", 1, "random seed")
	benchCmd.Flags().IntVar(
		&benchConfig.keySpace, "key-space", 0,
		"insert keys in [0, key-space) (0 means 10 times the number of insertions)")
	benchCmd.Flags().IntVar(
		&benchConfig.plotHeight, "plot-height", 10, "height of the tree height plots")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
