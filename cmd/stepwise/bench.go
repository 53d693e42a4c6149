// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/algoviz/stepwise"
	"github.com/algoviz/stepwise/steps"
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/errors"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var benchConfig struct {
	n          int
	seed       uint64
	keySpace   int
	plotHeight int
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "compare the engines on random insertions",
	Long: `
Inserts the same random values into a tree of every engine and reports the
distribution of the number of steps per insertion, the step totals by kind,
and a plot of the tree height after each insertion. The engines run
concurrently, each on its own tree.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench(context.Background(), cmd.OutOrStdout(), benchConfig.n, benchConfig.seed,
			benchConfig.keySpace, benchConfig.plotHeight)
	},
}

const maxStepsPerInsert = 1 << 20

type benchResult struct {
	kind    stepwise.Kind
	hist    *hdrhistogram.Histogram
	summary stepwise.Summary
	// heights[i] is the tree height after the i-th insertion.
	heights []float64
}

func benchEngine(ctx context.Context, k stepwise.Kind, values []int) (*benchResult, error) {
	res := &benchResult{
		kind:    k,
		hist:    hdrhistogram.New(1, maxStepsPerInsert, 3),
		heights: make([]float64, 0, len(values)),
	}
	tr, err := stepwise.NewTree(k)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		all, root := steps.Collect(tr.Insert(v))
		res.summary.Merge(stepwise.Summarize(all))
		if err := res.hist.RecordValue(int64(len(all))); err != nil {
			return nil, errors.Wrapf(err, "%s: recording %d steps", k, len(all))
		}
		res.heights = append(res.heights, float64(steps.Snapshot(root).Height()))
	}
	return res, nil
}

func randomValues(n int, seed uint64, keySpace int) []int {
	if keySpace <= 0 {
		keySpace = 10 * n
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	values := make([]int, n)
	for i := range values {
		values[i] = rng.IntN(keySpace)
	}
	return values
}

func runBench(ctx context.Context, w io.Writer, n int, seed uint64, keySpace, plotHeight int) error {
	if n <= 0 {
		return errors.Newf("invalid number of insertions %d", n)
	}
	values := randomValues(n, seed, keySpace)

	kinds := stepwise.Kinds()
	results := make([]*benchResult, len(kinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, k := range kinds {
		g.Go(func() error {
			res, err := benchEngine(ctx, k, values)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s random insertions (seed %d)\n\n", crhumanize.Count(int64(n), crhumanize.Compact), seed)

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Engine", "Steps", "Mean", "p50", "p90", "p99", "Max", "Height"})
	tbl.SetAutoWrapText(false)
	for _, res := range results {
		tbl.Append([]string{
			res.kind.String(),
			string(crhumanize.Count(int64(res.summary.Steps), crhumanize.Compact)),
			fmt.Sprintf("%.1f", res.hist.Mean()),
			fmt.Sprint(res.hist.ValueAtPercentile(50)),
			fmt.Sprint(res.hist.ValueAtPercentile(90)),
			fmt.Sprint(res.hist.ValueAtPercentile(99)),
			fmt.Sprint(res.hist.Max()),
			fmt.Sprint(res.heights[len(res.heights)-1]),
		})
	}
	tbl.Render()
	fmt.Fprintln(w)

	kindTbl := tablewriter.NewWriter(w)
	header := []string{"Kind"}
	for _, res := range results {
		header = append(header, res.kind.String())
	}
	kindTbl.SetHeader(header)
	for _, sk := range steps.Kinds() {
		row := []string{sk.String()}
		var nonzero bool
		for _, res := range results {
			c := res.summary.ByKind[sk]
			nonzero = nonzero || c > 0
			row = append(row, fmt.Sprint(c))
		}
		if nonzero {
			kindTbl.Append(row)
		}
	}
	kindTbl.Render()

	if plotHeight > 0 {
		for _, res := range results {
			fmt.Fprintf(w, "\n%s tree height per insertion\n", res.kind)
			fmt.Fprintln(w, asciigraph.Plot(res.heights, asciigraph.Height(plotHeight)))
		}
	}
	return nil
}
