// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/algoviz/stepwise"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "describe an engine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := stepwise.ParseKind(engine)
		if err != nil {
			return err
		}
		printInfo(cmd.OutOrStdout(), k)
		return nil
	},
}

func printInfo(w io.Writer, k stepwise.Kind) {
	info := stepwise.Info(k)
	fmt.Fprintf(w, "%s\n\n%s\n\n", info.Name, info.Description)
	fmt.Fprintf(w, "time:  %s\nspace: %s\n\n", info.TimeComplexity, info.SpaceComplexity)
	for i, line := range info.Pseudocode {
		fmt.Fprintf(w, "%3d  %s\n", i+1, line)
	}
}
