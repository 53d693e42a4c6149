// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package steps

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

// testNode is a minimal binary tree node used to exercise the protocol.
type testNode struct {
	id          NodeID
	value       int
	left, right *testNode
}

var _ Node = (*testNode)(nil)

func (n *testNode) StepNode() NodeInfo {
	info := NodeInfoOf(n.id, n.value)
	info.AddPropf("tag", "v%d", n.value)
	info.AddAuxf("tags", "v%d", n.value)
	info.SetChildren(n.left, n.right)
	return info
}

func tn(v int, l, r *testNode) *testNode {
	return &testNode{id: NodeID(fmt.Sprintf("id%d", v)), value: v, left: l, right: r}
}

func sampleTree() *testNode {
	return tn(2, tn(1, nil, nil), tn(3, nil, tn(4, nil, nil)))
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

func TestSequenceIsLazy(t *testing.T) {
	root := tn(1, nil, nil)
	var progress int
	seq := New("lazy", func(r *Recorder) int {
		for i := 0; i < 3; i++ {
			progress++
			r.Stepf(KindInfo, root, Nodes(root.id), "step %d", i)
		}
		progress++
		return 42
	})

	next, stop := seq.Pull()
	defer stop()
	require.Equal(t, 0, progress)

	for i := 0; i < 3; i++ {
		step, ok := next()
		require.True(t, ok)
		require.Equal(t, i+1, progress)
		require.Equal(t, i, step.Index)
		require.Equal(t, fmt.Sprintf("step %d", i), step.Description)
		_, done := seq.Result()
		require.False(t, done)
	}
	_, ok := next()
	require.False(t, ok)
	require.Equal(t, 4, progress)

	res, done := seq.Result()
	require.True(t, done)
	require.Equal(t, 42, res)
	require.Equal(t, 3, seq.Len())
}

func TestSequenceAbandon(t *testing.T) {
	root := tn(1, nil, nil)
	var reachedEnd bool
	seq := New("abandon", func(r *Recorder) int {
		for i := 0; i < 10; i++ {
			root.value = i
			r.Stepf(KindInfo, root, Highlight{}, "value %d", i)
		}
		reachedEnd = true
		return root.value
	})
	var n int
	for step := range seq.All() {
		require.Equal(t, n, step.Tree.Value)
		n++
		if n == 2 {
			break
		}
	}
	require.False(t, reachedEnd)
	require.Equal(t, 1, root.value)
	_, done := seq.Result()
	require.False(t, done)
	require.Equal(t, 2, seq.Len())

	// Stopping a pulled sequence is also an abandonment.
	seq = New("abandon-pull", func(r *Recorder) int {
		r.Stepf(KindInfo, nil, Highlight{}, "first")
		r.Stepf(KindInfo, nil, Highlight{}, "second")
		reachedEnd = true
		return 0
	})
	reachedEnd = false
	next, stop := seq.Pull()
	_, ok := next()
	require.True(t, ok)
	stop()
	require.False(t, reachedEnd)
	_, done = seq.Result()
	require.False(t, done)
}

func TestSequenceLenDuringIteration(t *testing.T) {
	seq := New("len", func(r *Recorder) int {
		for i := 0; i < 3; i++ {
			r.Stepf(KindInfo, nil, Highlight{}, "step %d", i)
		}
		return 0
	})
	require.Equal(t, 0, seq.Len())
	var n int
	for step := range seq.All() {
		n++
		require.Equal(t, n, seq.Len())
		require.Equal(t, n-1, step.Index)
	}
	require.Equal(t, 3, seq.Len())

	seq = New("len-pull", func(r *Recorder) int {
		r.Stepf(KindInfo, nil, Highlight{}, "first")
		r.Stepf(KindInfo, nil, Highlight{}, "second")
		return 0
	})
	next, stop := seq.Pull()
	defer stop()
	_, ok := next()
	require.True(t, ok)
	require.Equal(t, 1, seq.Len())
	_, ok = next()
	require.True(t, ok)
	require.Equal(t, 2, seq.Len())
}

func TestSequenceSingleUse(t *testing.T) {
	seq := New("once", func(r *Recorder) int { return 1 })
	steps, res := Collect(seq)
	require.Empty(t, steps)
	require.Equal(t, 1, res)
	requireAssertionPanic(t, func() { seq.All() })
	requireAssertionPanic(t, func() { _, _ = seq.Pull() })
}

func TestSequenceBodyPanic(t *testing.T) {
	seq := New("panics", func(r *Recorder) int {
		r.Stepf(KindInfo, nil, Highlight{}, "before")
		panic(errors.AssertionFailedf("broken"))
	})
	requireAssertionPanic(t, func() {
		for range seq.All() {
		}
	})
	_, done := seq.Result()
	require.False(t, done)
}

func TestRunNested(t *testing.T) {
	inner := func(v int) *Sequence[int] {
		return New("inner", func(r *Recorder) int {
			r.Stepf(KindInfo, nil, Highlight{}, "inner %d a", v)
			r.Stepf(KindInfo, nil, Highlight{}, "inner %d b", v)
			return v * 10
		})
	}
	var inners []*Sequence[int]
	outer := New("outer", func(r *Recorder) int {
		sum := 0
		for _, v := range []int{1, 2} {
			r.Stepf(KindInfo, nil, Highlight{}, "outer %d", v)
			in := inner(v)
			inners = append(inners, in)
			sum += Run(r, in)
		}
		return sum
	})
	steps, res := Collect(outer)
	require.Equal(t, 30, res)
	require.Equal(t, 6, outer.Len())
	for _, in := range inners {
		require.Equal(t, 2, in.Len())
	}
	var descs []string
	for i, s := range steps {
		require.Equal(t, i, s.Index)
		descs = append(descs, s.Description)
	}
	require.Equal(t, []string{
		"outer 1", "inner 1 a", "inner 1 b",
		"outer 2", "inner 2 a", "inner 2 b",
	}, descs)
}

func TestEmptyTreeStep(t *testing.T) {
	var root *testNode
	seq := New("empty", func(r *Recorder) *testNode {
		r.Stepf(KindInfo, root, Nodes(RootID(root)...), "nothing here")
		return root
	})
	steps, _ := Collect(seq)
	require.Len(t, steps, 1)
	require.Nil(t, steps[0].Tree)
	require.Empty(t, steps[0].Highlight)
	require.Nil(t, steps[0].Aux)
	require.True(t, IsNil(root))
}

func TestStepsAreSnapshots(t *testing.T) {
	root := sampleTree()
	seq := New("snapshots", func(r *Recorder) *testNode {
		r.Stepf(KindInfo, root, Nodes(root.id), "before")
		root.right.right.value = 5
		r.Stepf(KindUpdate, root, Nodes(root.right.right.id).AtLines(3, 4), "after")
		return root
	})
	steps, _ := Collect(seq)
	require.Len(t, steps, 2)
	require.Equal(t, []int{1, 2, 3, 4}, steps[0].Tree.InOrder())
	require.Equal(t, []int{1, 2, 3, 5}, steps[1].Tree.InOrder())
	require.Equal(t, []int{3, 4}, steps[1].Lines)
	require.True(t, steps[1].IsHighlighted("id4"))
	require.Equal(t, []int{5}, steps[1].HighlightedValues())
	require.Equal(t, "v5", steps[1].Aux["tags"]["id4"])
	require.Equal(t, "1 update: after", steps[1].String())
}

func TestStepRedaction(t *testing.T) {
	s := Step{Index: 3, Kind: KindRotate, Description: "secret"}
	require.Equal(t, "3 rotate: ‹secret›", string(redact.Sprint(s)))
	require.Equal(t, "3 rotate: ‹×›", string(redact.Sprint(s).Redact()))
}

func TestKinds(t *testing.T) {
	for _, k := range Kinds() {
		require.NotEqual(t, "unknown", k.String())
	}
	require.Equal(t, "unknown", Kind(200).String())
}

func TestSequentialIDs(t *testing.T) {
	gen := SequentialIDs()
	seq := New("ids", func(r *Recorder) []NodeID {
		return []NodeID{r.NewID(), r.NewID()}
	}, NodeIDs(gen))
	_, ids := Collect(seq)
	require.Equal(t, []NodeID{"n1", "n2"}, ids)
	require.Equal(t, NodeID("n3"), gen())

	seq = New("uuids", func(r *Recorder) []NodeID {
		return []NodeID{r.NewID(), r.NewID()}
	})
	_, ids = Collect(seq)
	require.Len(t, ids[0], 36)
	require.NotEqual(t, ids[0], ids[1])
}

func TestFind(t *testing.T) {
	root := sampleTree()
	id, ok := Find(root, 4)
	require.True(t, ok)
	require.Equal(t, NodeID("id4"), id)
	_, ok = Find(root, 7)
	require.False(t, ok)
	_, ok = Find((*testNode)(nil), 1)
	require.False(t, ok)
}
