// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package steps

import (
	"strconv"
	"strings"

	"github.com/algoviz/stepwise/internal/treeprinter"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

const (
	// HorizontalSpacing is the distance, in pixels, that a unit of
	// HorizontalPosition maps to.
	HorizontalSpacing = 60
	// VerticalSpacing is the distance, in pixels, between tree levels.
	VerticalSpacing = 80
)

// TreeNode is an immutable copy of a tree node taken when a step was recorded.
// The presentation fields (Depth, HorizontalPosition, X, Y) are computed when
// the snapshot is taken and carry no algorithmic meaning.
type TreeNode struct {
	ID         NodeID
	Value      int
	Properties [][2]string

	Depth int
	// HorizontalPosition is the midpoint of the node's horizontal bounds; the
	// root spans [-1, 1] and every child gets half of its parent's span.
	HorizontalPosition float64
	X, Y               float64

	Left, Right *TreeNode
	// Truncated is set when the node has children that were omitted because
	// of MaxTreeDepth.
	Truncated bool
}

// Snapshot takes a snapshot of the tree rooted at root. Returns nil if the tree
// is empty.
func Snapshot(root Node, opts ...Option) *TreeNode {
	o := makeOptions(opts)
	s := snapshotter{maxTreeDepth: o.maxTreeDepth}
	return s.build(root)
}

type snapshotter struct {
	maxTreeDepth int
	seen         map[Node]struct{}
	aux          map[string]map[NodeID]string
}

func (s *snapshotter) build(root Node) *TreeNode {
	if IsNil(root) {
		return nil
	}
	s.seen = make(map[Node]struct{})
	return s.buildNode(root, 0, -1, 1)
}

func (s *snapshotter) buildNode(n Node, depth int, lo, hi float64) *TreeNode {
	if _, ok := s.seen[n]; ok {
		panic(errors.AssertionFailedf("node %v reachable from two places", n.StepNode().id))
	}
	s.seen[n] = struct{}{}

	info := n.StepNode()
	x := (lo + hi) / 2
	t := &TreeNode{
		ID:                 info.id,
		Value:              info.value,
		Properties:         info.properties,
		Depth:              depth,
		HorizontalPosition: x,
		X:                  x * HorizontalSpacing,
		Y:                  float64(depth * VerticalSpacing),
	}
	for _, kv := range info.aux {
		if s.aux == nil {
			s.aux = make(map[string]map[NodeID]string)
		}
		m, ok := s.aux[kv[0]]
		if !ok {
			m = make(map[NodeID]string)
			s.aux[kv[0]] = m
		}
		m[info.id] = kv[1]
	}
	if info.left == nil && info.right == nil {
		return t
	}
	if s.maxTreeDepth > 0 && depth+1 >= s.maxTreeDepth {
		t.Truncated = true
		return t
	}
	if info.left != nil {
		t.Left = s.buildNode(info.left, depth+1, lo, x)
	}
	if info.right != nil {
		t.Right = s.buildNode(info.right, depth+1, x, hi)
	}
	return t
}

// Prop returns the value of the given property, or "" if the node does not
// have it.
func (t *TreeNode) Prop(key string) string {
	for _, kv := range t.Properties {
		if kv[0] == key {
			return kv[1]
		}
	}
	return ""
}

// InOrder returns the values of the tree in in-order sequence.
func (t *TreeNode) InOrder() []int {
	var out []int
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		if n == nil {
			return
		}
		walk(n.Left)
		out = append(out, n.Value)
		walk(n.Right)
	}
	walk(t)
	return out
}

// Find returns the node holding value, or nil.
func (t *TreeNode) Find(value int) *TreeNode {
	for n := t; n != nil; {
		switch {
		case value < n.Value:
			n = n.Left
		case value > n.Value:
			n = n.Right
		default:
			return n
		}
	}
	return nil
}

// Size returns the number of nodes in the snapshot.
func (t *TreeNode) Size() int {
	if t == nil {
		return 0
	}
	return 1 + t.Left.Size() + t.Right.Size()
}

// Height returns the number of levels in the snapshot (0 for an empty tree).
func (t *TreeNode) Height() int {
	if t == nil {
		return 0
	}
	return 1 + max(t.Left.Height(), t.Right.Height())
}

// CheckOrdering verifies that every value in a node's left subtree is smaller
// than the node's value, and every value in the right subtree is larger.
func (t *TreeNode) CheckOrdering() error {
	vals := t.InOrder()
	for i := 1; i < len(vals); i++ {
		if vals[i-1] >= vals[i] {
			return errors.Newf("values out of order: %d before %d", vals[i-1], vals[i])
		}
	}
	return nil
}

// String returns an ASCII rendering of the snapshot, one node per line in the
// form "value key=val ...". An absent child is shown as "(nil)" when its
// sibling is present.
func (t *TreeNode) String() string {
	if t == nil {
		return "(empty)\n"
	}
	tp := treeprinter.New()
	t.print(tp)
	return tp.String()
}

func (t *TreeNode) label() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(t.Value))
	for _, kv := range t.Properties {
		b.WriteByte(' ')
		b.WriteString(kv[0])
		b.WriteByte('=')
		b.WriteString(kv[1])
	}
	return b.String()
}

func (t *TreeNode) print(tp *treeprinter.Node) {
	n := tp.Child(t.label())
	switch {
	case t.Truncated:
		n.Child("...")
	case t.Left == nil && t.Right == nil:
	default:
		for _, c := range []*TreeNode{t.Left, t.Right} {
			if c == nil {
				n.Child("(nil)")
			} else {
				c.print(n)
			}
		}
	}
}

// SafeFormat implements redact.SafeFormatter. Node values are considered safe;
// property values are not.
func (t *TreeNode) SafeFormat(w redact.SafePrinter, _ rune) {
	if t == nil {
		w.SafeString("(empty)")
		return
	}
	w.Printf("%d", redact.SafeInt(t.Value))
	if t.Left != nil || t.Right != nil {
		w.SafeString(" (")
		if t.Left != nil {
			w.Print(t.Left)
		} else {
			w.SafeString("nil")
		}
		w.SafeString(" ")
		if t.Right != nil {
			w.Print(t.Right)
		} else {
			w.SafeString("nil")
		}
		w.SafeString(")")
	}
}
