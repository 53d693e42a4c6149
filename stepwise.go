// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package stepwise ties the step-instrumented tree engines together: it names
// them, builds demonstration runs that insert a list of values one by one, and
// summarizes the resulting steps.
//
// The engines themselves live in the avl, rbtree and bst packages and can be
// used directly; see the steps package for the step protocol.
package stepwise

import (
	"fmt"
	"strings"

	"github.com/algoviz/stepwise/avl"
	"github.com/algoviz/stepwise/bst"
	"github.com/algoviz/stepwise/rbtree"
	"github.com/algoviz/stepwise/steps"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Kind identifies a tree engine.
type Kind uint8

const (
	// AVL is the AVL tree engine.
	AVL Kind = iota
	// RedBlack is the red-black tree engine.
	RedBlack
	// BST is the unbalanced binary search tree engine.
	BST

	numKinds
)

var kindNames = [numKinds]string{
	AVL:      "avl",
	RedBlack: "rbtree",
	BST:      "bst",
}

var kindAliases = map[string]Kind{
	"avl":       AVL,
	"rbtree":    RedBlack,
	"rb":        RedBlack,
	"red-black": RedBlack,
	"redblack":  RedBlack,
	"bst":       BST,
}

// Kinds returns all engine kinds.
func Kinds() []Kind {
	return []Kind{AVL, RedBlack, BST}
}

// ParseKind returns the engine with the given name. Names are case
// insensitive; "rb" and "red-black" are accepted for the red-black engine.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return 0, errors.Newf("unknown engine %q (expected one of %s)", s, redact.Safe(strings.Join(kindNames[:], ", ")))
}

func (k Kind) String() string {
	return redact.StringWithoutMarkers(k)
}

// SafeFormat implements redact.SafeFormatter.
func (k Kind) SafeFormat(w redact.SafePrinter, _ rune) {
	if k >= numKinds {
		w.Printf("Kind(%d)", redact.SafeUint(k))
		return
	}
	w.SafeString(redact.SafeString(kindNames[k]))
}

// DefaultValues returns the values inserted by the demonstration of the given
// engine when no values are specified.
func DefaultValues(k Kind) []int {
	switch k {
	case AVL:
		return []int{30, 20, 40, 10, 25, 35, 50}
	case RedBlack:
		return []int{10, 20, 30, 15, 25, 5, 35}
	case BST:
		return []int{50, 30, 70, 20, 40, 60, 80}
	default:
		return nil
	}
}

// inserter runs an engine's insertion as part of the sequence recorded by r.
type inserter func(r *steps.Recorder, root steps.Node, value int) steps.Node

func engineInserter[N steps.Node](insert func(N, int, ...steps.Option) *steps.Sequence[N]) inserter {
	return func(r *steps.Recorder, root steps.Node, value int) steps.Node {
		var n N
		if root != nil {
			n = root.(N)
		}
		res := steps.Run(r, insert(n, value))
		if steps.IsNil(res) {
			return nil
		}
		return res
	}
}

var inserters = [numKinds]inserter{
	AVL:      engineInserter(avl.Insert),
	RedBlack: engineInserter(rbtree.Insert),
	BST:      engineInserter(bst.Insert),
}

func inserterFor(k Kind) (inserter, error) {
	if k >= numKinds {
		return nil, errors.Newf("unknown engine %s", k)
	}
	return inserters[k], nil
}

// Tree is a tree of some engine that grows one insertion at a time.
type Tree struct {
	kind   Kind
	insert inserter
	opts   []steps.Option
	root   steps.Node
}

// NewTree returns an empty tree of the given kind. The options apply to every
// insertion.
func NewTree(k Kind, opts ...steps.Option) (*Tree, error) {
	ins, err := inserterFor(k)
	if err != nil {
		return nil, err
	}
	return &Tree{kind: k, insert: ins, opts: opts}, nil
}

// Kind returns the engine of the tree.
func (t *Tree) Kind() Kind { return t.kind }

// Root returns the root of the tree, or nil if it is empty.
func (t *Tree) Root() steps.Node { return t.root }

// Insert returns a sequence that inserts value into the tree. The tree takes
// the new root when the sequence completes. The engines modify nodes in place,
// so the tree must not be used after an insertion is abandoned.
func (t *Tree) Insert(value int) *steps.Sequence[steps.Node] {
	return steps.New(fmt.Sprintf("%s insert(%d)", t.kind, value), func(r *steps.Recorder) steps.Node {
		t.root = t.insert(r, t.root, value)
		return t.root
	}, t.opts...)
}

// Build returns a demonstration run that inserts values, in order, into an
// empty tree of the given kind. The result of the sequence is the final root
// (nil if values is empty).
func Build(k Kind, values []int, opts ...steps.Option) (*steps.Sequence[steps.Node], error) {
	insert, err := inserterFor(k)
	if err != nil {
		return nil, err
	}
	name := Info(k).Name
	return steps.New(k.String()+" demo", func(r *steps.Recorder) steps.Node {
		var root steps.Node
		r.Stepf(steps.KindInfo, root, steps.Highlight{}.AtLines(1), "Starting %s demonstration", name)
		for _, v := range values {
			r.Stepf(steps.KindInfo, root, steps.Nodes(steps.RootID(root)...).AtLines(2),
				"Inserting value %d into the %s", v, name)
			root = insert(r, root, v)
			var h steps.Highlight
			if id, ok := steps.Find(root, v); ok {
				h = steps.Nodes(id)
			}
			r.Stepf(steps.KindInfo, root, h.AtLines(3), "Tree after inserting %d", v)
		}
		r.Stepf(steps.KindComplete, root, steps.Highlight{}.AtLines(4), "%s construction completed", name)
		return root
	}, opts...), nil
}
