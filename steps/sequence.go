// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package steps

import (
	"fmt"
	"iter"

	"github.com/cockroachdb/errors"
)

// Sequence is a lazily evaluated algorithm run that produces steps and, once
// complete, a result of type R.
//
// The algorithm body executes up to its next step, hands the step to the
// consumer, and resumes only when the consumer asks for the next one. With
// All, it runs on the consumer's goroutine. A Sequence can be driven only
// once.
type Sequence[R any] struct {
	name  string
	body  func(*Recorder) R
	opts  options
	state seqState

	result R
	count  int
}

type seqState uint8

const (
	seqNotStarted seqState = iota
	seqRunning
	seqDone
	seqAbandoned
)

// New creates a sequence that runs body when iterated. The body records steps
// through the Recorder it is given.
func New[R any](name string, body func(*Recorder) R, opts ...Option) *Sequence[R] {
	return &Sequence[R]{
		name: name,
		body: body,
		opts: makeOptions(opts),
	}
}

// Name returns the name of the sequence.
func (s *Sequence[R]) Name() string {
	return s.name
}

func (s *Sequence[R]) start() {
	if s.state != seqNotStarted {
		panic(errors.AssertionFailedf("sequence %q already started", errors.Safe(s.name)))
	}
	s.state = seqRunning
}

// abandoned is the panic value used to unwind an algorithm body when the
// consumer stops iterating.
type abandoned struct{}

// All returns an iterator over the steps of the sequence. It must be called at
// most once. Breaking out of the iteration abandons the run: the body is
// unwound at its current suspension point and Result reports false.
func (s *Sequence[R]) All() iter.Seq[Step] {
	s.start()
	return func(yield func(Step) bool) {
		r := &Recorder{name: s.name, opts: s.opts, yield: yield, counts: []*int{&s.count}}
		defer func() {
			if p := recover(); p != nil {
				if _, ok := p.(abandoned); ok {
					s.state = seqAbandoned
					return
				}
				panic(p)
			}
		}()
		s.result = s.body(r)
		s.state = seqDone
	}
}

// Pull returns the sequence as a pair of next and stop functions, for callers
// that advance one step at a time. See iter.Pull.
func (s *Sequence[R]) Pull() (next func() (Step, bool), stop func()) {
	return iter.Pull(s.All())
}

// Result returns the final value of the sequence and true, if the sequence ran
// to completion.
func (s *Sequence[R]) Result() (R, bool) {
	if s.state != seqDone {
		var zero R
		return zero, false
	}
	return s.result, true
}

// Len returns the number of steps produced so far. It can be called while the
// sequence is being iterated.
func (s *Sequence[R]) Len() int {
	return s.count
}

// Collect runs the sequence to completion and returns all its steps and its
// result.
func Collect[R any](s *Sequence[R]) ([]Step, R) {
	var out []Step
	for step := range s.All() {
		out = append(out, step)
	}
	res, _ := s.Result()
	return out, res
}

// Run executes the body of s as part of the sequence that r records to, and
// returns its result. The steps of s are recorded by r, with r's options.
func Run[R any](r *Recorder, s *Sequence[R]) R {
	s.start()
	r.counts = append(r.counts, &s.count)
	defer func() { r.counts = r.counts[:len(r.counts)-1] }()
	s.result = s.body(r)
	s.state = seqDone
	return s.result
}

// Recorder is passed to the body of a sequence; the body records steps through
// it.
type Recorder struct {
	name  string
	opts  options
	yield func(Step) bool
	n     int

	// counts are the step counters of the sequences being recorded: the
	// outer sequence and any nested ones started by Run.
	counts []*int
}

// Stepf records a step of the given kind showing the tree rooted at tree, and
// suspends the body until the consumer asks for the next step.
func (r *Recorder) Stepf(kind Kind, tree Node, h Highlight, format string, args ...any) {
	s := snapshotter{maxTreeDepth: r.opts.maxTreeDepth}
	step := Step{
		Index:       r.n,
		Kind:        kind,
		Tree:        s.build(tree),
		Highlight:   h.Nodes,
		Lines:       h.Lines,
		Description: fmt.Sprintf(format, args...),
		Aux:         s.aux,
	}
	r.n++
	for _, c := range r.counts {
		*c++
	}
	if !r.yield(step) {
		panic(abandoned{})
	}
}

// NewID returns a new node id.
func (r *Recorder) NewID() NodeID {
	return r.opts.newID()
}

// Name returns the name of the sequence being recorded.
func (r *Recorder) Name() string {
	return r.name
}
