// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants exposes whether the binary was built with the
// "invariants" (or "race") build tag, and helpers that only do work in such
// builds.
package invariants

import "github.com/cockroachdb/errors"

// MaybeCheck runs check if invariants are enabled and panics with an assertion
// failure wrapping the returned error, if any. The what argument names the
// structure being checked and shows up in the panic message.
func MaybeCheck(what string, check func() error) {
	if !Enabled {
		return
	}
	if err := check(); err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "%s: invariant violated", errors.Safe(what)))
	}
}
