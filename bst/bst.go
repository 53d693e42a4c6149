// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bst implements insertion and search on an unbalanced binary search
// tree as step sequences.
package bst

import (
	"fmt"

	"github.com/algoviz/stepwise/internal/invariants"
	"github.com/algoviz/stepwise/steps"
	"github.com/cockroachdb/errors"
)

// Node is a node of a binary search tree.
type Node struct {
	id    steps.NodeID
	value int
	left  *Node
	right *Node
}

var _ steps.Node = (*Node)(nil)

// ID returns the node's id.
func (n *Node) ID() steps.NodeID { return n.id }

// Value returns the node's key.
func (n *Node) Value() int { return n.value }

// Left returns the left child, or nil.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child, or nil.
func (n *Node) Right() *Node { return n.right }

// StepNode implements the steps.Node interface.
func (n *Node) StepNode() steps.NodeInfo {
	info := steps.NodeInfoOf(n.id, n.value)
	info.SetChildren(n.left, n.right)
	return info
}

// Insert returns a sequence that inserts value into the tree rooted at root
// (which can be nil) and whose result is the new root. Duplicates are not
// inserted.
func Insert(root *Node, value int, opts ...steps.Option) *steps.Sequence[*Node] {
	return steps.New(fmt.Sprintf("bst insert(%d)", value), func(r *steps.Recorder) *Node {
		ins := inserter{rec: r, root: root, value: value}
		if ins.root == nil {
			ins.root = ins.newNode()
			ins.stepf(steps.KindCreate, steps.Nodes(ins.root.id).AtLines(1, 2),
				"Creating new node with value %d", value)
		} else {
			ins.insert(ins.root)
		}
		invariants.MaybeCheck("bst", func() error { return Check(ins.root) })
		return ins.root
	}, opts...)
}

type inserter struct {
	rec   *steps.Recorder
	root  *Node
	value int
}

func (ins *inserter) stepf(kind steps.Kind, h steps.Highlight, format string, args ...any) {
	ins.rec.Stepf(kind, ins.root, h, format, args...)
}

func (ins *inserter) newNode() *Node {
	return &Node{id: ins.rec.NewID(), value: ins.value}
}

func (ins *inserter) insert(n *Node) {
	v := ins.value
	if v == n.value {
		ins.stepf(steps.KindDuplicate, steps.Nodes(n.id).AtLines(31),
			"Value %d already exists in the tree, not inserting", v)
		return
	}
	ins.stepf(steps.KindCompare, steps.Nodes(n.id).AtLines(6, 7), "Comparing %d with %d", v, n.value)
	if v < n.value {
		ins.stepf(steps.KindCompare, steps.Nodes(n.id).AtLines(9, 10), "%d is less than %d, going left", v, n.value)
		if n.left == nil {
			n.left = ins.newNode()
			ins.stepf(steps.KindCreate, steps.Nodes(n.left.id).AtLines(12, 13), "Created new left child with value %d", v)
			return
		}
		ins.stepf(steps.KindTraverse, steps.Nodes(n.id, n.left.id).AtLines(15),
			"Traversing to left child with value %d", n.left.value)
		ins.insert(n.left)
		return
	}
	ins.stepf(steps.KindCompare, steps.Nodes(n.id).AtLines(20, 21), "%d is greater than %d, going right", v, n.value)
	if n.right == nil {
		n.right = ins.newNode()
		ins.stepf(steps.KindCreate, steps.Nodes(n.right.id).AtLines(23, 24), "Created new right child with value %d", v)
		return
	}
	ins.stepf(steps.KindTraverse, steps.Nodes(n.id, n.right.id).AtLines(26),
		"Traversing to right child with value %d", n.right.value)
	ins.insert(n.right)
}

// Search returns a sequence that looks for value in the tree rooted at root.
// The result is the node holding value, or nil.
func Search(root *Node, value int, opts ...steps.Option) *steps.Sequence[*Node] {
	return steps.New(fmt.Sprintf("bst search(%d)", value), func(r *steps.Recorder) *Node {
		if root == nil {
			r.Stepf(steps.KindNotFound, nil, steps.Highlight{}.AtLines(1, 2), "Value %d not found in the tree", value)
			return nil
		}
		for n := root; ; {
			r.Stepf(steps.KindVisit, root, steps.Nodes(n.id).AtLines(6, 7), "Checking node with value %d", n.value)
			switch {
			case value == n.value:
				r.Stepf(steps.KindFound, root, steps.Nodes(n.id).AtLines(10, 11), "Found %d at current node!", value)
				return n
			case value < n.value && n.left != nil:
				r.Stepf(steps.KindTraverse, root, steps.Nodes(n.id, n.left.id).AtLines(14, 15),
					"%d is less than %d, searching left subtree", value, n.value)
				n = n.left
			case value > n.value && n.right != nil:
				r.Stepf(steps.KindTraverse, root, steps.Nodes(n.id, n.right.id).AtLines(19, 20),
					"%d is greater than %d, searching right subtree", value, n.value)
				n = n.right
			default:
				r.Stepf(steps.KindNotFound, root, steps.Nodes(n.id).AtLines(23), "Value %d not found", value)
				return nil
			}
		}
	}, opts...)
}

// Check verifies that the tree rooted at root is ordered.
func Check(root *Node) error {
	return check(root, nil, nil)
}

func check(n *Node, lo, hi *int) error {
	if n == nil {
		return nil
	}
	if (lo != nil && n.value <= *lo) || (hi != nil && n.value >= *hi) {
		return errors.Newf("node %d violates the ordering of its ancestors", n.value)
	}
	if err := check(n.left, lo, &n.value); err != nil {
		return err
	}
	return check(n.right, &n.value, hi)
}
