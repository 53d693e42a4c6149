// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rbtree

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/algoviz/stepwise/steps"
	"github.com/cockroachdb/crlib/crstrings"
	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

func parseValues(t *testing.T, input string) []int {
	var vals []int
	for _, line := range crstrings.Lines(input) {
		for _, f := range strings.Fields(line) {
			v, err := strconv.Atoi(f)
			require.NoError(t, err)
			vals = append(vals, v)
		}
	}
	return vals
}

func insertAll(root *Node, values []int, opts ...steps.Option) *Node {
	for _, v := range values {
		_, root = steps.Collect(Insert(root, v, opts...))
	}
	return root
}

func TestInsertDataDriven(t *testing.T) {
	var root *Node
	ids := steps.SequentialIDs()
	datadriven.RunTest(t, "testdata/insert", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "reset":
			root = nil
			return ""

		case "insert":
			root = insertAll(root, parseValues(t, td.Input), steps.NodeIDs(ids))
			require.NoError(t, Check(root))
			return steps.Snapshot(root).String()

		case "steps":
			var buf strings.Builder
			for _, v := range parseValues(t, td.Input) {
				seq := Insert(root, v, steps.NodeIDs(ids))
				for step := range seq.All() {
					fmt.Fprintln(&buf, step)
				}
				var ok bool
				root, ok = seq.Result()
				require.True(t, ok)
			}
			require.NoError(t, Check(root))
			buf.WriteString(steps.Snapshot(root).String())
			return buf.String()

		default:
			td.Fatalf(t, "unknown command %q", td.Cmd)
			return ""
		}
	})
}

func TestScenario(t *testing.T) {
	root := insertAll(nil, []int{10, 20})
	all, root := steps.Collect(Insert(root, 30))

	require.Equal(t, 20, root.Value())
	require.Equal(t, Black, root.Color())
	require.Nil(t, root.Parent())
	require.Equal(t, 10, root.Left().Value())
	require.Equal(t, Red, root.Left().Color())
	require.Same(t, root, root.Left().Parent())
	require.Equal(t, 30, root.Right().Value())
	require.Equal(t, Red, root.Right().Color())
	require.Same(t, root, root.Right().Parent())
	require.NoError(t, Check(root))

	var rotations int
	for _, s := range all {
		if s.Kind == steps.KindRotate && strings.HasPrefix(s.Description, "Completed left rotation") {
			rotations++
		}
	}
	require.Equal(t, 1, rotations)

	last := all[len(all)-1]
	require.Equal(t, map[steps.NodeID]string{
		root.ID():         "black",
		root.Left().ID():  "red",
		root.Right().ID(): "red",
	}, last.Aux[NodeColorsKey])
}

func TestDuplicate(t *testing.T) {
	root := insertAll(nil, []int{10, 5, 15, 1})
	before := steps.Snapshot(root)
	all, res := steps.Collect(Insert(root, 1))
	require.Same(t, root, res)
	require.Equal(t, steps.KindDuplicate, all[len(all)-1].Kind)
	require.Contains(t, all[len(all)-1].Description, "already exists")
	for _, s := range all[:len(all)-1] {
		require.Equal(t, steps.KindCompare, s.Kind)
	}
	if diff := pretty.Diff(before, steps.Snapshot(res)); diff != nil {
		t.Fatalf("tree changed:\n%v", diff)
	}
}

func TestRandomInsertions(t *testing.T) {
	for seed := uint64(0); seed < 5; seed++ {
		rng := rand.New(rand.NewPCG(seed, 7))
		var root *Node
		present := map[int]bool{}
		for i := 0; i < 300; i++ {
			v := rng.IntN(200)
			all, newRoot := steps.Collect(Insert(root, v))
			if present[v] {
				require.Same(t, root, newRoot)
			}
			present[v] = true
			root = newRoot
			require.NoError(t, Check(root), "seed %d, after inserting %d", seed, v)
			for _, s := range all {
				require.NoError(t, s.Tree.CheckOrdering())
				require.Len(t, s.Aux[NodeColorsKey], s.Tree.Size())
			}
		}
		var expected []int
		for v := range present {
			expected = append(expected, v)
		}
		slices.Sort(expected)
		require.Equal(t, expected, steps.Snapshot(root).InOrder())
		// A red-black tree with n nodes has height at most 2*log2(n+1).
		require.LessOrEqual(t, steps.Snapshot(root).Height(), 16)
	}
}

func TestDeterministicSteps(t *testing.T) {
	values := []int{10, 20, 30, 15, 25, 5, 1, 12, 13, 14, 30}
	describe := func(opts ...steps.Option) []string {
		var root *Node
		var out []string
		for _, v := range values {
			var all []steps.Step
			all, root = steps.Collect(Insert(root, v, opts...))
			for _, s := range all {
				out = append(out, s.String())
			}
		}
		return out
	}
	require.Equal(t, describe(), describe(steps.NodeIDs(steps.SequentialIDs())))
}

func requireAssertionPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "expected error panic, got %v", r)
		require.True(t, errors.HasAssertionFailure(err), "expected assertion failure, got %v", err)
	}()
	fn()
}

func TestRotateWithoutChildPanics(t *testing.T) {
	for _, rotate := range []func(*tree, *Node){(*tree).rotateLeft, (*tree).rotateRight} {
		leaf := &Node{id: "leaf", value: 1, color: Black}
		seq := steps.New("rotate", func(r *steps.Recorder) *Node {
			tr := tree{rec: r, root: leaf}
			rotate(&tr, leaf)
			return tr.root
		})
		requireAssertionPanic(t, func() { steps.Collect(seq) })
		require.Nil(t, leaf.left)
		require.Nil(t, leaf.right)
	}
}

func TestRotationsMaintainParents(t *testing.T) {
	// Rotating at a non-root node rewires the grandparent's child pointer.
	root := insertAll(nil, []int{50, 25, 75, 60, 80})
	require.NoError(t, Check(root))
	seq := steps.New("rotate", func(r *steps.Recorder) *Node {
		tr := tree{rec: r, root: root}
		tr.rotateLeft(root.right)
		tr.rotateRight(tr.root.right)
		return tr.root
	})
	all, res := steps.Collect(seq)
	require.Len(t, all, 4)
	require.Same(t, root, res)
	require.Equal(t, 75, res.Right().Value())
	require.Same(t, res, res.Right().Parent())
	require.Equal(t, 60, res.Right().Left().Value())
	require.Same(t, res.Right(), res.Right().Left().Parent())
	require.NoError(t, Check(res))
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(nil))

	red := &Node{value: 1, color: Red}
	require.ErrorContains(t, Check(red), "root 1 is red")

	root := &Node{value: 2, color: Black}
	child := &Node{value: 1, color: Red}
	root.left = child
	require.ErrorContains(t, Check(root), "stale parent pointer")

	child.parent = root
	require.NoError(t, Check(root))

	grandchild := &Node{value: 0, color: Red, parent: child}
	child.left = grandchild
	require.ErrorContains(t, Check(root), "red node 1 has red child 0")

	grandchild.color = Black
	require.ErrorContains(t, Check(root), "black heights")

	bad := &Node{value: 2, color: Black}
	bad.right = &Node{value: 1, color: Red, parent: bad}
	require.ErrorContains(t, Check(bad), "node 1 violates the ordering")
}

func TestColorFormat(t *testing.T) {
	require.Equal(t, "red", Red.String())
	require.Equal(t, "black", redact.StringWithoutMarkers(Black))
	require.Equal(t, "black", string(redact.Sprint(Black).Redact()))
}

func TestFixupLines(t *testing.T) {
	linesOf := func(all []steps.Step, prefix string) []int {
		for _, s := range all {
			if strings.HasPrefix(s.Description, prefix) {
				return s.Lines
			}
		}
		t.Fatalf("no step starting with %q", prefix)
		return nil
	}

	// Parent is a left child.
	root := insertAll(nil, []int{30, 20})
	all, _ := steps.Collect(Insert(root, 10))
	require.Equal(t, []int{30, 31, 32}, linesOf(all, "Case 4:"))
	require.Equal(t, []int{33}, linesOf(all, "After right rotation and recoloring"))

	root = insertAll(nil, []int{10, 15, 5})
	all, _ = steps.Collect(Insert(root, 1))
	require.Equal(t, []int{15, 16, 17, 18}, linesOf(all, "Case 2:"))
	require.Equal(t, []int{19}, linesOf(all, "After recoloring"))

	// Parent is a right child.
	root = insertAll(nil, []int{10, 20})
	all, _ = steps.Collect(Insert(root, 30))
	require.Equal(t, []int{55, 56, 57}, linesOf(all, "Case 4:"))
	require.Equal(t, []int{58}, linesOf(all, "After left rotation and recoloring"))

	root = insertAll(nil, []int{10, 5, 15})
	all, _ = steps.Collect(Insert(root, 20))
	require.Equal(t, []int{40, 41, 42, 43}, linesOf(all, "Case 2:"))
	require.Equal(t, []int{44}, linesOf(all, "After recoloring"))
}
