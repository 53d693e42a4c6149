// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package steps

import (
	"fmt"
	"reflect"
)

// NodeID identifies a node across the steps of a sequence. It is stable across
// rotations and recoloring.
type NodeID string

// Node must be implemented by every node of a tree that is shown in steps.
type Node interface {
	StepNode() NodeInfo
}

// NodeInfo contains the information that we present for each node.
type NodeInfo struct {
	id          NodeID
	value       int
	properties  [][2]string
	aux         [][2]string
	left, right Node
}

// NodeInfoOf returns a NodeInfo for the node with the given id and value.
func NodeInfoOf(id NodeID, value int) NodeInfo {
	return NodeInfo{id: id, value: value}
}

// AddPropf adds a property to the NodeInfo. Properties show up in the snapshot
// node and in its textual rendering.
func (ni *NodeInfo) AddPropf(key string, format string, args ...any) {
	ni.properties = append(ni.properties, [2]string{key, fmt.Sprintf(format, args...)})
}

// AddAuxf adds auxiliary per-node data that is collected, for all nodes of the
// tree, into Step.Aux[key].
func (ni *NodeInfo) AddAuxf(key string, format string, args ...any) {
	ni.aux = append(ni.aux, [2]string{key, fmt.Sprintf(format, args...)})
}

// SetChildren sets the left and right children. Nil children (including nil
// pointers of any type) are recorded as absent.
func (ni *NodeInfo) SetChildren(left, right Node) {
	ni.left, ni.right = nilIfNil(left), nilIfNil(right)
}

// ID returns the node id.
func (ni NodeInfo) ID() NodeID { return ni.id }

// Value returns the node's ordering key.
func (ni NodeInfo) Value() int { return ni.value }

// Left returns the left child, or nil.
func (ni NodeInfo) Left() Node { return ni.left }

// Right returns the right child, or nil.
func (ni NodeInfo) Right() Node { return ni.right }

// IsNil returns true if n is nil or a nil pointer of any type.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	val := reflect.ValueOf(n)
	return val.Kind() == reflect.Ptr && val.IsNil()
}

func nilIfNil(n Node) Node {
	if IsNil(n) {
		return nil
	}
	return n
}

// Find returns the id of the node holding value, descending by key
// comparison from root.
func Find(root Node, value int) (NodeID, bool) {
	for n := nilIfNil(root); n != nil; {
		info := n.StepNode()
		switch {
		case value < info.value:
			n = info.left
		case value > info.value:
			n = info.right
		default:
			return info.id, true
		}
	}
	return "", false
}

// RootID returns the id of root, or no ids if the tree is empty.
func RootID(root Node) []NodeID {
	if IsNil(root) {
		return nil
	}
	return []NodeID{root.StepNode().id}
}
