// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package stepwise

import (
	"github.com/algoviz/stepwise/steps"
	"github.com/cockroachdb/redact"
)

// Summary counts the steps of a run by kind.
type Summary struct {
	Steps  int
	ByKind map[steps.Kind]int
}

// Summarize counts the given steps.
func Summarize(ss []steps.Step) Summary {
	s := Summary{ByKind: make(map[steps.Kind]int)}
	for i := range ss {
		s.Add(ss[i])
	}
	return s
}

// Add counts one more step.
func (s *Summary) Add(step steps.Step) {
	if s.ByKind == nil {
		s.ByKind = make(map[steps.Kind]int)
	}
	s.Steps++
	s.ByKind[step.Kind]++
}

// Merge adds the counts of o to s.
func (s *Summary) Merge(o Summary) {
	if s.ByKind == nil {
		s.ByKind = make(map[steps.Kind]int)
	}
	s.Steps += o.Steps
	for k, n := range o.ByKind {
		s.ByKind[k] += n
	}
}

func (s Summary) String() string {
	return redact.StringWithoutMarkers(s)
}

// SafeFormat implements redact.SafeFormatter. Kinds are listed in declaration
// order and kinds with no steps are omitted.
func (s Summary) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%d steps", redact.SafeInt(s.Steps))
	sep := redact.SafeString(": ")
	for _, k := range steps.Kinds() {
		if n := s.ByKind[k]; n > 0 {
			w.Printf("%s%d %s", sep, redact.SafeInt(n), k)
			sep = ", "
		}
	}
}
