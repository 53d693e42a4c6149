// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/algoviz/stepwise"
	"github.com/stretchr/testify/require"
)

func TestParseScenario(t *testing.T) {
	sc, err := loadScenario("testdata/scenario.yaml")
	require.NoError(t, err)
	require.Equal(t, scenario{Engine: "rbtree", Values: []int{10, 20, 30}}, sc)

	sc, err = parseScenario(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, scenario{}, sc)

	_, err = parseScenario(strings.NewReader("engine: splay\n"))
	require.ErrorContains(t, err, "unknown engine")

	_, err = parseScenario(strings.NewReader("engine: avl\nspeed: 3\n"))
	require.ErrorContains(t, err, "parsing scenario")

	_, err = parseScenario(strings.NewReader("max_tree_depth: -1\n"))
	require.ErrorContains(t, err, "invalid max_tree_depth")
}

func TestParseValues(t *testing.T) {
	values, err := parseValues([]string{"3", "-1", "7"})
	require.NoError(t, err)
	require.Equal(t, []int{3, -1, 7}, values)

	_, err = parseValues([]string{"3", "x"})
	require.ErrorContains(t, err, `invalid value "x"`)
}

func TestRunScenario(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runScenario(&buf, scenario{Engine: "rbtree", Values: []int{10, 20, 30}}))
	out := buf.String()
	require.Contains(t, out, "Case 4: Recoloring and left rotating grandparent 10")
	require.Contains(t, out, "Red-Black tree: ")
	require.True(t, strings.HasSuffix(out, "20 color=black\n├── 10 color=red\n└── 30 color=red\n"), out)

	buf.Reset()
	require.NoError(t, runScenario(&buf, scenario{Engine: "avl", Tree: true, MaxTreeDepth: 1}))
	out = buf.String()
	require.Contains(t, out, "0 info: Starting AVL tree demonstration\n(empty)\n")
	require.Contains(t, out, "└── ...")

	require.Error(t, runScenario(&buf, scenario{Engine: "heap"}))
}

func TestBench(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runBench(context.Background(), &buf, 200, 1, 0, 5))
	out := buf.String()
	for _, k := range stepwise.Kinds() {
		require.Contains(t, out, k.String()+" tree height per insertion")
	}
	require.Contains(t, out, "random insertions (seed 1)")
	require.Contains(t, out, "rotate")

	require.Error(t, runBench(context.Background(), &buf, 0, 1, 0, 5))
}

func TestBenchDeterministic(t *testing.T) {
	require.Equal(t, randomValues(50, 7, 100), randomValues(50, 7, 100))
	for _, v := range randomValues(50, 7, 100) {
		require.True(t, v >= 0 && v < 100)
	}
}

func TestPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	printInfo(&buf, stepwise.AVL)
	require.Contains(t, buf.String(), "AVL tree\n\n")
	require.Contains(t, buf.String(), "  1  insert(node, key):\n")
}
