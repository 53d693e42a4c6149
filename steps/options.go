// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package steps

import (
	"fmt"

	"github.com/google/uuid"
)

// Option is an optional argument to New, Snapshot and the engines' Insert
// functions.
type Option func(*options)

type options struct {
	maxTreeDepth int
	newID        func() NodeID
}

func makeOptions(opts []Option) options {
	o := options{newID: randomID}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// MaxTreeDepth configures snapshots to only show trees up to a certain depth.
// Nodes with children below that level are marked as Truncated. Zero means no
// limit.
func MaxTreeDepth(maxTreeDepth int) Option {
	return func(o *options) {
		o.maxTreeDepth = maxTreeDepth
	}
}

// NodeIDs configures how ids are generated for nodes created by the algorithm.
// The default generates random UUIDs.
//
// Ids never influence the algorithms; they only correlate steps to nodes.
func NodeIDs(gen func() NodeID) Option {
	return func(o *options) {
		o.newID = gen
	}
}

// SequentialIDs returns an id generator that produces "n1", "n2", and so on.
// The same generator must be reused across all insertions into a tree, so
// that ids stay unique.
func SequentialIDs() func() NodeID {
	var n int
	return func() NodeID {
		n++
		return NodeID(fmt.Sprintf("n%d", n))
	}
}

func randomID() NodeID {
	return NodeID(uuid.NewString())
}
