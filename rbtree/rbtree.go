// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package rbtree implements red-black tree insertion as a step sequence.
//
// After an insertion completes the tree satisfies the red-black invariants:
// the root is black, no red node has a red child, and every path from a node
// to a nil leaf contains the same number of black nodes. The invariants can be
// transiently violated between steps of a fixup.
package rbtree

import (
	"fmt"

	"github.com/algoviz/stepwise/internal/invariants"
	"github.com/algoviz/stepwise/steps"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Color is the color of a node.
type Color uint8

const (
	// Red nodes are created by insertions.
	Red Color = iota
	// Black nodes count towards the black height.
	Black
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// SafeFormat implements redact.SafeFormatter.
func (c Color) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString(redact.SafeString(c.String()))
}

// NodeColorsKey is the Step.Aux key under which node colors are recorded.
const NodeColorsKey = "nodeColors"

// Node is a node of a red-black tree. Children are owned by their parent; the
// parent pointer is a back-reference used to walk up during fixup.
type Node struct {
	id     steps.NodeID
	value  int
	color  Color
	left   *Node
	right  *Node
	parent *Node
}

var _ steps.Node = (*Node)(nil)

// ID returns the node's id.
func (n *Node) ID() steps.NodeID { return n.id }

// Value returns the node's key.
func (n *Node) Value() int { return n.value }

// Color returns the node's color.
func (n *Node) Color() Color { return n.color }

// Left returns the left child, or nil.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child, or nil.
func (n *Node) Right() *Node { return n.right }

// Parent returns the parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// StepNode implements the steps.Node interface.
func (n *Node) StepNode() steps.NodeInfo {
	info := steps.NodeInfoOf(n.id, n.value)
	info.AddPropf("color", "%s", n.color)
	info.AddAuxf(NodeColorsKey, "%s", n.color)
	info.SetChildren(n.left, n.right)
	return info
}

// Insert returns a sequence that inserts value into the tree rooted at root
// (which can be nil) and whose result is the new root. Inserting a value that
// is already present leaves the tree unchanged.
func Insert(root *Node, value int, opts ...steps.Option) *steps.Sequence[*Node] {
	return steps.New(fmt.Sprintf("rbtree insert(%d)", value), func(r *steps.Recorder) *Node {
		t := tree{rec: r, root: root}
		t.insert(value)
		invariants.MaybeCheck("rbtree", func() error { return Check(t.root) })
		return t.root
	}, opts...)
}

// tree holds the root while an insertion is in progress; rotations at the root
// replace it.
type tree struct {
	rec  *steps.Recorder
	root *Node
}

func (t *tree) stepf(kind steps.Kind, h steps.Highlight, format string, args ...any) {
	t.rec.Stepf(kind, t.root, h, format, args...)
}

func (t *tree) insert(value int) {
	if t.root == nil {
		n := &Node{id: t.rec.NewID(), value: value, color: Black}
		t.root = n
		t.stepf(steps.KindCreate, steps.Nodes(n.id).AtLines(1, 2),
			"Creating new root node with value %d (colored black)", value)
		return
	}

	var parent *Node
	for cur := t.root; cur != nil; {
		if value == cur.value {
			t.stepf(steps.KindDuplicate, steps.Nodes(cur.id).AtLines(15),
				"Value %d already exists in the tree, not inserting", value)
			return
		}
		t.stepf(steps.KindCompare, steps.Nodes(cur.id).AtLines(6, 7), "Comparing %d with %d", value, cur.value)
		parent = cur
		if value < cur.value {
			t.stepf(steps.KindCompare, steps.Nodes(cur.id).AtLines(10), "%d is less than %d, going left", value, cur.value)
			cur = cur.left
		} else {
			t.stepf(steps.KindCompare, steps.Nodes(cur.id).AtLines(12), "%d is greater than %d, going right", value, cur.value)
			cur = cur.right
		}
	}

	n := &Node{id: t.rec.NewID(), value: value, color: Red, parent: parent}
	side := "left"
	if value < parent.value {
		parent.left = n
	} else {
		parent.right = n
		side = "right"
	}
	t.stepf(steps.KindCreate, steps.Nodes(n.id, parent.id).AtLines(19, 20),
		"Created new red node with value %d as %s child of %d", value, side, parent.value)
	t.fixInsert(n)
}

// fixupLines are the pseudocode lines of the recoloring and outer rotation
// cases, which differ depending on the side of the parent.
type fixupLines struct {
	recolor, recolored, outer, rotated []int
}

var (
	leftFixupLines  = fixupLines{recolor: []int{15, 16, 17, 18}, recolored: []int{19}, outer: []int{30, 31, 32}, rotated: []int{33}}
	rightFixupLines = fixupLines{recolor: []int{40, 41, 42, 43}, recolored: []int{44}, outer: []int{55, 56, 57}, rotated: []int{58}}
)

// fixInsert restores the red-black invariants after n was inserted as a red
// leaf.
func (t *tree) fixInsert(n *Node) {
	if n.parent.color == Black {
		t.stepf(steps.KindBalanced, steps.Nodes(n.id, n.parent.id).AtLines(5, 6),
			"Parent of %d is already black, no fix needed", n.value)
		t.root.color = Black
		return
	}
	t.stepf(steps.KindInfo, steps.Nodes(n.id).AtLines(28, 29),
		"Fixing Red-Black Tree properties after insertion of %d", n.value)

	for n.parent != nil && n.parent.color == Red {
		parent := n.parent
		grandparent := parent.parent
		if grandparent == nil {
			panic(errors.AssertionFailedf("rbtree: red node %d is the root", parent.value))
		}
		t.stepf(steps.KindCase, steps.Nodes(n.id, parent.id, grandparent.id).AtLines(10, 11),
			"Node %d has red parent %d and black grandparent %d", n.value, parent.value, grandparent.value)

		parentIsLeft := parent == grandparent.left
		uncle := grandparent.right
		lines := leftFixupLines
		if !parentIsLeft {
			uncle = grandparent.left
			lines = rightFixupLines
		}

		if uncle != nil && uncle.color == Red {
			t.stepf(steps.KindCase, steps.Nodes(n.id, parent.id, grandparent.id, uncle.id).AtLines(lines.recolor...),
				"Case 2: Uncle %d is red. Recoloring parent, uncle, and grandparent", uncle.value)
			parent.color = Black
			uncle.color = Black
			grandparent.color = Red
			t.stepf(steps.KindRecolor, steps.Nodes(parent.id, uncle.id, grandparent.id).AtLines(lines.recolored...),
				"After recoloring: %d and %d are black, %d is red", parent.value, uncle.value, grandparent.value)
			n = grandparent
			continue
		}

		// The uncle is black (or absent). An inner grandchild is first rotated
		// into the outer position.
		if parentIsLeft && n == parent.right {
			t.stepf(steps.KindCase, steps.Nodes(n.id, parent.id).AtLines(23, 24),
				"Case 3: Node %d is a right child of red parent %d. Left rotation needed.", n.value, parent.value)
			t.rotateLeft(parent)
			n, parent = parent, n
			t.stepf(steps.KindRotate, steps.Nodes(n.id, parent.id).AtLines(26),
				"After left rotation: %d is now left child of %d", n.value, parent.value)
		} else if !parentIsLeft && n == parent.left {
			t.stepf(steps.KindCase, steps.Nodes(n.id, parent.id).AtLines(48, 49),
				"Case 3: Node %d is a left child of red parent %d. Right rotation needed.", n.value, parent.value)
			t.rotateRight(parent)
			n, parent = parent, n
			t.stepf(steps.KindRotate, steps.Nodes(n.id, parent.id).AtLines(51),
				"After right rotation: %d is now right child of %d", n.value, parent.value)
		}

		dir := "right"
		if !parentIsLeft {
			dir = "left"
		}
		t.stepf(steps.KindCase, steps.Nodes(n.id, parent.id, grandparent.id).AtLines(lines.outer...),
			"Case 4: Recoloring and %s rotating grandparent %d", dir, grandparent.value)
		parent.color = Black
		grandparent.color = Red
		if parentIsLeft {
			t.rotateRight(grandparent)
		} else {
			t.rotateLeft(grandparent)
		}
		t.stepf(steps.KindRecolor, steps.Nodes(parent.id, grandparent.id).AtLines(lines.rotated...),
			"After %s rotation and recoloring: %d is black and %d is red", dir, parent.value, grandparent.value)
	}

	t.root.color = Black
	t.stepf(steps.KindRecolor, steps.Nodes(t.root.id).AtLines(65, 66), "Ensuring root %d is black", t.root.value)
}

// rotateLeft rotates the subtree rooted at x to the left. x must have a right
// child.
func (t *tree) rotateLeft(x *Node) {
	y := x.right
	if y == nil {
		panic(errors.AssertionFailedf("rbtree: left rotation on %d without a right child", x.value))
	}
	t.stepf(steps.KindRotate, steps.Nodes(x.id).AtLines(1, 2), "Starting left rotation on node %d", x.value)

	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	t.replaceChild(x, y)
	y.left = x
	x.parent = y

	t.stepf(steps.KindRotate, steps.Nodes(x.id, y.id).AtLines(3, 4, 5),
		"Completed left rotation. New parent: %d, left child: %d", y.value, x.value)
}

// rotateRight rotates the subtree rooted at y to the right. y must have a left
// child.
func (t *tree) rotateRight(y *Node) {
	x := y.left
	if x == nil {
		panic(errors.AssertionFailedf("rbtree: right rotation on %d without a left child", y.value))
	}
	t.stepf(steps.KindRotate, steps.Nodes(y.id).AtLines(1, 2), "Starting right rotation on node %d", y.value)

	y.left = x.right
	if x.right != nil {
		x.right.parent = y
	}
	t.replaceChild(y, x)
	x.right = y
	y.parent = x

	t.stepf(steps.KindRotate, steps.Nodes(y.id, x.id).AtLines(3, 4, 5),
		"Completed right rotation. New parent: %d, right child: %d", x.value, y.value)
}

// replaceChild makes n take old's place under old's parent (or as the root).
func (t *tree) replaceChild(old, n *Node) {
	n.parent = old.parent
	switch {
	case old.parent == nil:
		t.root = n
	case old == old.parent.left:
		old.parent.left = n
	default:
		old.parent.right = n
	}
}

// Check verifies the ordering of the tree, the consistency of parent pointers,
// and the red-black invariants.
func Check(root *Node) error {
	if root == nil {
		return nil
	}
	if root.parent != nil {
		return errors.Newf("root %d has parent %d", root.value, root.parent.value)
	}
	if root.color != Black {
		return errors.Newf("root %d is %s", root.value, root.color)
	}
	_, err := check(root, nil, nil)
	return err
}

// check returns the black height of the subtree rooted at n, counting the nil
// leaves.
func check(n *Node, lo, hi *int) (int, error) {
	if n == nil {
		return 1, nil
	}
	if (lo != nil && n.value <= *lo) || (hi != nil && n.value >= *hi) {
		return 0, errors.Newf("node %d violates the ordering of its ancestors", n.value)
	}
	for _, c := range []*Node{n.left, n.right} {
		if c == nil {
			continue
		}
		if c.parent != n {
			return 0, errors.Newf("node %d has a stale parent pointer (expected %d)", c.value, n.value)
		}
		if n.color == Red && c.color == Red {
			return 0, errors.Newf("red node %d has red child %d", n.value, c.value)
		}
	}
	lh, err := check(n.left, lo, &n.value)
	if err != nil {
		return 0, err
	}
	rh, err := check(n.right, &n.value, hi)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, errors.Newf("node %d has black heights %d (left) and %d (right)", n.value, lh, rh)
	}
	if n.color == Black {
		lh++
	}
	return lh, nil
}
