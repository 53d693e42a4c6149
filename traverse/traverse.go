// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package traverse implements depth-first traversals of any steps.Node tree as
// step sequences. The result of each sequence is the list of visited values.
package traverse

import (
	"github.com/algoviz/stepwise/steps"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Order is a depth-first traversal order.
type Order uint8

const (
	// PreOrder visits a node before its subtrees.
	PreOrder Order = iota
	// InOrder visits a node between its left and right subtrees.
	InOrder
	// PostOrder visits a node after its subtrees.
	PostOrder
)

func (o Order) String() string {
	return redact.StringWithoutMarkers(o)
}

// SafeFormat implements redact.SafeFormatter.
func (o Order) SafeFormat(w redact.SafePrinter, _ rune) {
	switch o {
	case PreOrder:
		w.SafeString("preorder")
	case InOrder:
		w.SafeString("inorder")
	case PostOrder:
		w.SafeString("postorder")
	default:
		w.Printf("Order(%d)", redact.SafeUint(o))
	}
}

// pseudocode lines highlighted by the steps of each order.
type lines struct {
	visit, left, noLeft, right, noRight []int
}

var orderLines = [...]lines{
	PreOrder:  {visit: []int{1, 2}, left: []int{4, 5}, noLeft: []int{7}, right: []int{10, 11}, noRight: []int{13}},
	InOrder:   {left: []int{1, 2}, noLeft: []int{4}, visit: []int{7, 8}, right: []int{10, 11}, noRight: []int{13}},
	PostOrder: {left: []int{1, 2}, noLeft: []int{4}, right: []int{7, 8}, noRight: []int{10}, visit: []int{13, 14}},
}

// Preorder returns a root-left-right traversal of the tree rooted at root.
func Preorder(root steps.Node, opts ...steps.Option) *steps.Sequence[[]int] {
	return Walk(PreOrder, root, opts...)
}

// Inorder returns a left-root-right traversal of the tree rooted at root. On a
// binary search tree the values are visited in ascending order.
func Inorder(root steps.Node, opts ...steps.Option) *steps.Sequence[[]int] {
	return Walk(InOrder, root, opts...)
}

// Postorder returns a left-right-root traversal of the tree rooted at root.
func Postorder(root steps.Node, opts ...steps.Option) *steps.Sequence[[]int] {
	return Walk(PostOrder, root, opts...)
}

// Walk returns a traversal of the tree rooted at root in the given order. The
// tree is not modified. An empty tree produces no steps.
func Walk(order Order, root steps.Node, opts ...steps.Option) *steps.Sequence[[]int] {
	if int(order) >= len(orderLines) {
		panic(errors.AssertionFailedf("traverse: invalid order %s", order))
	}
	return steps.New(order.String(), func(r *steps.Recorder) []int {
		w := walker{rec: r, root: root, lines: orderLines[order], order: order}
		if !steps.IsNil(root) {
			w.walk(root)
		}
		return w.visited
	}, opts...)
}

type walker struct {
	rec     *steps.Recorder
	root    steps.Node
	lines   lines
	order   Order
	visited []int
}

func (w *walker) visit(info steps.NodeInfo) {
	w.visited = append(w.visited, info.Value())
	w.rec.Stepf(steps.KindVisit, w.root, steps.Nodes(info.ID()).AtLines(w.lines.visit...),
		"Visit node %d", info.Value())
}

func (w *walker) walk(n steps.Node) {
	info := n.StepNode()
	if w.order == PreOrder {
		w.visit(info)
	}

	if l := info.Left(); l != nil {
		w.rec.Stepf(steps.KindTraverse, w.root, steps.Nodes(info.ID(), l.StepNode().ID()).AtLines(w.lines.left...),
			"Moving to left child of %d", info.Value())
		w.walk(l)
	} else {
		w.rec.Stepf(steps.KindInfo, w.root, steps.Nodes(info.ID()).AtLines(w.lines.noLeft...),
			"Node %d has no left child", info.Value())
	}

	if w.order == InOrder {
		w.visit(info)
	}

	if r := info.Right(); r != nil {
		w.rec.Stepf(steps.KindTraverse, w.root, steps.Nodes(info.ID(), r.StepNode().ID()).AtLines(w.lines.right...),
			"Moving to right child of %d", info.Value())
		w.walk(r)
	} else {
		w.rec.Stepf(steps.KindInfo, w.root, steps.Nodes(info.ID()).AtLines(w.lines.noRight...),
			"Node %d has no right child", info.Value())
	}

	if w.order == PostOrder {
		w.visit(info)
	}
}
