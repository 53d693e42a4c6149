// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package treeprinter renders hierarchies as indented ASCII trees:
//
//	root
//	├── a
//	│   └── b
//	└── c
package treeprinter

import (
	"fmt"
	"strings"
)

const (
	edgeMid  = "├── "
	edgeLast = "└── "
	pipeMid  = "│   "
	pipeLast = "    "
)

// Node is a node in the tree being printed. The Node returned by New is a
// placeholder; its children are printed as top-level trees.
type Node struct {
	text     string
	children []*Node
}

// New creates an empty tree printer.
func New() *Node {
	return &Node{}
}

// Child adds a child with the given text.
func (n *Node) Child(text string) *Node {
	c := &Node{text: text}
	n.children = append(n.children, c)
	return c
}

// Childf adds a child with a formatted text.
func (n *Node) Childf(format string, args ...any) *Node {
	return n.Child(fmt.Sprintf(format, args...))
}

// String returns the rendered tree. Every line, including the last one, is
// terminated by a newline.
func (n *Node) String() string {
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.text)
		b.WriteByte('\n')
		c.writeChildren(&b, "")
	}
	return b.String()
}

func (n *Node) writeChildren(b *strings.Builder, prefix string) {
	for i, c := range n.children {
		edge, pipe := edgeMid, pipeMid
		if i == len(n.children)-1 {
			edge, pipe = edgeLast, pipeLast
		}
		b.WriteString(prefix)
		b.WriteString(edge)
		b.WriteString(c.text)
		b.WriteByte('\n')
		c.writeChildren(b, prefix+pipe)
	}
}
