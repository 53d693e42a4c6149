// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package avl implements AVL tree insertion as a step sequence. Every node
// keeps its height and balance factor (height(left) - height(right)); after an
// insertion completes, all balance factors are in [-1, 1].
package avl

import (
	"fmt"

	"github.com/algoviz/stepwise/internal/invariants"
	"github.com/algoviz/stepwise/steps"
	"github.com/cockroachdb/errors"
)

// Node is a node of an AVL tree. The tree is owned by whoever holds the root.
type Node struct {
	id      steps.NodeID
	value   int
	height  int
	balance int
	left    *Node
	right   *Node
}

var _ steps.Node = (*Node)(nil)

// ID returns the node's id.
func (n *Node) ID() steps.NodeID { return n.id }

// Value returns the node's key.
func (n *Node) Value() int { return n.value }

// Height returns the height of the subtree rooted at n; a leaf has height 1.
func (n *Node) Height() int { return n.height }

// Balance returns the balance factor of n.
func (n *Node) Balance() int { return n.balance }

// Left returns the left child, or nil.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child, or nil.
func (n *Node) Right() *Node { return n.right }

// StepNode implements the steps.Node interface.
func (n *Node) StepNode() steps.NodeInfo {
	info := steps.NodeInfoOf(n.id, n.value)
	info.AddPropf("height", "%d", n.height)
	info.AddPropf("balance", "%d", n.balance)
	info.SetChildren(n.left, n.right)
	return info
}

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return n.height
}

// update recomputes the height and balance factor from the children.
func (n *Node) update() {
	lh, rh := height(n.left), height(n.right)
	n.height = max(lh, rh) + 1
	n.balance = lh - rh
}

// Insert returns a sequence that inserts value into the tree rooted at root
// (which can be nil) and whose result is the new root. Inserting a value that
// is already present leaves the tree unchanged.
func Insert(root *Node, value int, opts ...steps.Option) *steps.Sequence[*Node] {
	return steps.New(fmt.Sprintf("avl insert(%d)", value), func(r *steps.Recorder) *Node {
		ins := inserter{rec: r, root: root, value: value}
		ins.insert(&ins.root)
		invariants.MaybeCheck("avl", func() error { return Check(ins.root) })
		return ins.root
	}, opts...)
}

type inserter struct {
	rec *steps.Recorder
	// root is the root of the whole tree. Links passed down the recursion point
	// either here or to a child field, so a rotation is visible in the whole
	// tree as soon as it happens.
	root  *Node
	value int
}

func (ins *inserter) stepf(kind steps.Kind, h steps.Highlight, format string, args ...any) {
	ins.rec.Stepf(kind, ins.root, h, format, args...)
}

func (ins *inserter) newNode() *Node {
	return &Node{id: ins.rec.NewID(), value: ins.value, height: 1}
}

// insert inserts the value into the subtree stored at *link and rebalances it.
// Returns false if the value was already present.
func (ins *inserter) insert(link **Node) bool {
	n := *link
	v := ins.value
	if n == nil {
		n = ins.newNode()
		*link = n
		ins.stepf(steps.KindCreate, steps.Nodes(n.id).AtLines(1, 2), "Creating new node with value %d", v)
		return true
	}
	if v == n.value {
		ins.stepf(steps.KindDuplicate, steps.Nodes(n.id).AtLines(27),
			"Value %d already exists in the tree, not inserting", v)
		return false
	}

	ins.stepf(steps.KindCompare, steps.Nodes(n.id).AtLines(5, 6), "Comparing %d with %d", v, n.value)
	if v < n.value {
		ins.stepf(steps.KindCompare, steps.Nodes(n.id).AtLines(8, 9), "%d is less than %d, going left", v, n.value)
		if n.left == nil {
			n.left = ins.newNode()
			ins.stepf(steps.KindCreate, steps.Nodes(n.left.id).AtLines(11, 12), "Created left child with value %d", v)
		} else {
			ins.stepf(steps.KindTraverse, steps.Nodes(n.id, n.left.id).AtLines(14),
				"Traversing to left child with value %d", n.left.value)
			if !ins.insert(&n.left) {
				return false
			}
		}
	} else {
		ins.stepf(steps.KindCompare, steps.Nodes(n.id).AtLines(17, 18), "%d is greater than %d, going right", v, n.value)
		if n.right == nil {
			n.right = ins.newNode()
			ins.stepf(steps.KindCreate, steps.Nodes(n.right.id).AtLines(20, 21), "Created right child with value %d", v)
		} else {
			ins.stepf(steps.KindTraverse, steps.Nodes(n.id, n.right.id).AtLines(23),
				"Traversing to right child with value %d", n.right.value)
			if !ins.insert(&n.right) {
				return false
			}
		}
	}
	ins.rebalance(link)
	return true
}

// rebalance updates the node stored at *link and performs the rotations needed
// to restore its balance.
func (ins *inserter) rebalance(link **Node) {
	n := *link
	n.update()
	ins.stepf(steps.KindUpdate, steps.Nodes(n.id).AtLines(31, 32),
		"Updated height of %d: %d, balance factor: %d", n.value, n.height, n.balance)

	switch {
	case n.balance > 1 && n.left.balance >= 0:
		ins.stepf(steps.KindCase, steps.Nodes(n.id, n.left.id).AtLines(36, 37),
			"Left-Left case detected: balance factor of %d is %d and balance factor of %d is %d",
			n.value, n.balance, n.left.value, n.left.balance)
		ins.rotateRight(link)

	case n.balance > 1:
		ins.stepf(steps.KindCase, steps.Nodes(n.id, n.left.id).AtLines(42, 43),
			"Left-Right case detected: balance factor of %d is %d and balance factor of %d is %d",
			n.value, n.balance, n.left.value, n.left.balance)
		ins.stepf(steps.KindCase, steps.Nodes(n.id, n.left.id).AtLines(45),
			"First, performing left rotation on %d", n.left.value)
		ins.rotateLeft(&n.left)
		ins.stepf(steps.KindCase, steps.Nodes(n.id, n.left.id).AtLines(47),
			"Then, performing right rotation on %d", n.value)
		ins.rotateRight(link)

	case n.balance < -1 && n.right.balance <= 0:
		ins.stepf(steps.KindCase, steps.Nodes(n.id, n.right.id).AtLines(54, 55),
			"Right-Right case detected: balance factor of %d is %d and balance factor of %d is %d",
			n.value, n.balance, n.right.value, n.right.balance)
		ins.rotateLeft(link)

	case n.balance < -1:
		ins.stepf(steps.KindCase, steps.Nodes(n.id, n.right.id).AtLines(60, 61),
			"Right-Left case detected: balance factor of %d is %d and balance factor of %d is %d",
			n.value, n.balance, n.right.value, n.right.balance)
		ins.stepf(steps.KindCase, steps.Nodes(n.id, n.right.id).AtLines(63),
			"First, performing right rotation on %d", n.right.value)
		ins.rotateRight(&n.right)
		ins.stepf(steps.KindCase, steps.Nodes(n.id, n.right.id).AtLines(65),
			"Then, performing left rotation on %d", n.value)
		ins.rotateLeft(link)

	default:
		ins.stepf(steps.KindBalanced, steps.Nodes(n.id).AtLines(69, 70),
			"Node %d is balanced (balance factor: %d)", n.value, n.balance)
	}
}

// rotateRight rotates the subtree stored at *link to the right, making its left
// child the new local root. A node without a left child is left unchanged.
func (ins *inserter) rotateRight(link **Node) {
	y := *link
	if y.left == nil {
		ins.stepf(steps.KindRotate, steps.Nodes(y.id), "Cannot perform right rotation without a left child")
		return
	}
	ins.stepf(steps.KindRotate, steps.Nodes(y.id).AtLines(1, 2), "Starting right rotation on node %d", y.value)

	x := y.left
	ins.stepf(steps.KindRotate, steps.Nodes(y.id, x.id).AtLines(3, 4, 5),
		"Setting %d as the new root and %d as its right child", x.value, y.value)
	y.left = x.right
	x.right = y
	y.update()
	x.update()
	*link = x

	ins.stepf(steps.KindRotate, steps.Nodes(x.id, y.id).AtLines(6, 7, 8),
		"Completed right rotation. New root: %d, right child: %d", x.value, y.value)
}

// rotateLeft is the mirror of rotateRight.
func (ins *inserter) rotateLeft(link **Node) {
	x := *link
	if x.right == nil {
		ins.stepf(steps.KindRotate, steps.Nodes(x.id), "Cannot perform left rotation without a right child")
		return
	}
	ins.stepf(steps.KindRotate, steps.Nodes(x.id).AtLines(1, 2), "Starting left rotation on node %d", x.value)

	y := x.right
	ins.stepf(steps.KindRotate, steps.Nodes(x.id, y.id).AtLines(3, 4, 5),
		"Setting %d as the new root and %d as its left child", y.value, x.value)
	x.right = y.left
	y.left = x
	x.update()
	y.update()
	*link = y

	ins.stepf(steps.KindRotate, steps.Nodes(y.id, x.id).AtLines(6, 7, 8),
		"Completed left rotation. New root: %d, left child: %d", y.value, x.value)
}

// Check verifies the ordering of the tree and that every node has a correct
// height and a balance factor in [-1, 1].
func Check(root *Node) error {
	_, err := check(root, nil, nil)
	return err
}

func check(n *Node, lo, hi *int) (int, error) {
	if n == nil {
		return 0, nil
	}
	if (lo != nil && n.value <= *lo) || (hi != nil && n.value >= *hi) {
		return 0, errors.Newf("node %d violates the ordering of its ancestors", n.value)
	}
	lh, err := check(n.left, lo, &n.value)
	if err != nil {
		return 0, err
	}
	rh, err := check(n.right, &n.value, hi)
	if err != nil {
		return 0, err
	}
	h := max(lh, rh) + 1
	switch {
	case n.height != h:
		return 0, errors.Newf("node %d has height %d, expected %d", n.value, n.height, h)
	case n.balance != lh-rh:
		return 0, errors.Newf("node %d has balance factor %d, expected %d", n.value, n.balance, lh-rh)
	case n.balance < -1 || n.balance > 1:
		return 0, errors.Newf("node %d is unbalanced (balance factor %d)", n.value, n.balance)
	}
	return h, nil
}
