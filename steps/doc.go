// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package steps provides the protocol through which algorithms expose their
// execution as an ordered sequence of inspection steps, suitable for
// step-by-step visualization and playback.
//
// An algorithm is written as a body function that receives a Recorder. At every
// meaningful decision point it calls Recorder.Stepf, which takes a full
// snapshot of the tree, hands it to the consumer and suspends the body until
// the consumer asks for the next step. Between two steps the body mutates its
// tree freely.
//
// # Basic Usage
//
// Every node of the tree must implement the Node interface, which returns the
// node's id, value, presentation properties and children:
//
//	func (n *Node) StepNode() steps.NodeInfo {
//	    info := steps.NodeInfoOf(n.id, n.value)
//	    info.AddPropf("height", "%d", n.height)
//	    info.SetChildren(n.left, n.right)
//	    return info
//	}
//
// An algorithm is wrapped in a Sequence:
//
//	func Insert(root *Node, value int, opts ...steps.Option) *steps.Sequence[*Node] {
//	    return steps.New("insert", func(r *steps.Recorder) *Node {
//	        ...
//	        r.Stepf(steps.KindCompare, root, steps.Nodes(n.id), "Comparing %d with %d", value, n.value)
//	        ...
//	        return root
//	    }, opts...)
//	}
//
// The consumer ranges over the steps and reads the result at the end:
//
//	seq := avl.Insert(root, 42)
//	for step := range seq.All() {
//	    fmt.Println(step)
//	}
//	root, _ = seq.Result()
//
// Pull can be used instead to advance one step at a time (e.g. from a playback
// control). Stopping early abandons the run; the tree is left in whatever
// structurally valid state the body reached at its last step, and the
// sequence must not be resumed.
//
// # Snapshots
//
// Steps are not diffs: each one carries a TreeNode snapshot of the whole tree,
// with presentation metadata (depth, horizontal position and pixel
// coordinates) computed at snapshot time. Per-node auxiliary data that a
// renderer needs (such as node colors) is collected into Step.Aux.
//
// # Concurrency
//
// A Sequence is single-use and must be driven by a single caller. When driven
// with All, the body runs on the consumer's goroutine. Pull runs it on a
// separate coroutine (see iter.Pull) that hands control back and forth with
// the caller, so the body and the caller never run at the same time.
package steps
