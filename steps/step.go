// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package steps

import (
	"slices"

	"github.com/cockroachdb/redact"
)

// Kind classifies a step by the decision point that produced it.
type Kind uint8

const (
	// KindInfo is a narrative step that does not correspond to a decision.
	KindInfo Kind = iota
	// KindCompare is a key comparison.
	KindCompare
	// KindTraverse moves the focus to a child.
	KindTraverse
	// KindCreate creates a node.
	KindCreate
	// KindDuplicate reports that the value is already present.
	KindDuplicate
	// KindUpdate recomputes derived node state (e.g. AVL height).
	KindUpdate
	// KindBalanced reports that no rebalancing is needed.
	KindBalanced
	// KindCase reports which rebalancing case applies.
	KindCase
	// KindRotate is part of a rotation.
	KindRotate
	// KindRecolor changes node colors.
	KindRecolor
	// KindVisit visits a node during a traversal or a search.
	KindVisit
	// KindFound reports a successful search.
	KindFound
	// KindNotFound reports an unsuccessful search.
	KindNotFound
	// KindComplete ends a demonstration.
	KindComplete

	numKinds
)

var kindNames = [numKinds]string{
	KindInfo:      "info",
	KindCompare:   "compare",
	KindTraverse:  "traverse",
	KindCreate:    "create",
	KindDuplicate: "duplicate",
	KindUpdate:    "update",
	KindBalanced:  "balanced",
	KindCase:      "case",
	KindRotate:    "rotate",
	KindRecolor:   "recolor",
	KindVisit:     "visit",
	KindFound:     "found",
	KindNotFound:  "not-found",
	KindComplete:  "complete",
}

// Kinds returns all step kinds in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, numKinds)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

func (k Kind) String() string {
	if k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// SafeFormat implements redact.SafeFormatter.
func (k Kind) SafeFormat(w redact.SafePrinter, _ rune) {
	w.SafeString(redact.SafeString(k.String()))
}

// Step is an immutable snapshot of an algorithm at one of its suspension
// points. Each step carries a full snapshot of the tree; steps are not diffs.
type Step struct {
	// Index is the position of the step in its sequence, starting at 0.
	Index int
	Kind  Kind
	// Tree is the snapshot of the whole tree; nil if the tree is empty.
	Tree *TreeNode
	// Highlight contains the ids of the nodes involved in this step.
	Highlight []NodeID
	// Lines are the pseudocode lines that correspond to this step.
	Lines       []int
	Description string
	// Aux contains per-node auxiliary data (e.g. "nodeColors"), keyed by
	// the name the node used in NodeInfo.AddAuxf.
	Aux map[string]map[NodeID]string
}

// IsHighlighted returns true if the node with the given id is highlighted.
func (s Step) IsHighlighted(id NodeID) bool {
	for _, h := range s.Highlight {
		if h == id {
			return true
		}
	}
	return false
}

// HighlightedValues returns the values of the highlighted nodes that are
// present in the snapshot, in highlight order.
func (s Step) HighlightedValues() []int {
	var out []int
	for _, id := range s.Highlight {
		if n := s.Tree.findID(id); n != nil {
			out = append(out, n.Value)
		}
	}
	return out
}

func (t *TreeNode) findID(id NodeID) *TreeNode {
	if t == nil {
		return nil
	}
	if t.ID == id {
		return t
	}
	if n := t.Left.findID(id); n != nil {
		return n
	}
	return t.Right.findID(id)
}

func (s Step) String() string {
	return redact.StringWithoutMarkers(s)
}

// SafeFormat implements redact.SafeFormatter. The description is considered
// unsafe.
func (s Step) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%d %s: %s", redact.SafeInt(s.Index), s.Kind, s.Description)
}

// Highlight describes what a step draws attention to: a set of nodes and a set
// of pseudocode lines.
type Highlight struct {
	Nodes []NodeID
	Lines []int
}

// Nodes returns a Highlight for the given node ids.
func Nodes(ids ...NodeID) Highlight {
	return Highlight{Nodes: ids}
}

// AtLines returns a copy of the Highlight with the given pseudocode lines.
func (h Highlight) AtLines(lines ...int) Highlight {
	h.Lines = slices.Clone(lines)
	return h
}
